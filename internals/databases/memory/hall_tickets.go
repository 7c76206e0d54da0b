package memory

import (
	"context"
	"sort"
	"strings"

	"hallticket_backend/internals/features/applications/hall_tickets/model"
	"hallticket_backend/internals/features/applications/hall_tickets/repository"
	helper "hallticket_backend/internals/helpers"

	"github.com/google/uuid"
)

type HallTicketRepo struct{ s *Store }

var _ repository.HallTicketRepository = (*HallTicketRepo)(nil)

// conflictLocked memeriksa unique index: submission_id dulu (arbiter ON CONFLICT),
// lalu unique_id / primary key.
func (s *Store) conflictLocked(t *model.HallTicketModel) (bySubmission, conflict bool) {
	for _, existing := range s.tickets {
		if existing.HallTicketSubmissionID == t.HallTicketSubmissionID {
			return true, true
		}
	}
	for _, existing := range s.tickets {
		if existing.HallTicketUniqueID == t.HallTicketUniqueID || existing.HallTicketID == t.HallTicketID {
			return false, true
		}
	}
	return false, false
}

func (s *Store) insertTicketLocked(t *model.HallTicketModel) {
	if t.HallTicketID == uuid.Nil {
		t.HallTicketID = uuid.New()
	}
	if t.HallTicketStatus == "" {
		t.HallTicketStatus = model.StatusIssued
	}
	now := s.now()
	t.HallTicketCreatedAt = now
	t.HallTicketUpdatedAt = now
	s.tickets[t.HallTicketID] = *t
}

func (s *Store) appendEventLocked(ev model.HallTicketEventModel) {
	if ev.HallTicketEventID == uuid.Nil {
		ev.HallTicketEventID = uuid.New()
	}
	ev.HallTicketEventCreatedAt = s.now()
	s.events = append(s.events, ev)
}

func (s *Store) dropEventsLocked(ticketID uuid.UUID) {
	kept := s.events[:0]
	for _, ev := range s.events {
		if ev.HallTicketEventHallTicketID != ticketID {
			kept = append(kept, ev)
		}
	}
	s.events = kept
}

func (r *HallTicketRepo) InsertIfAbsent(ctx context.Context, t *model.HallTicketModel, ev *model.HallTicketEventModel) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if t.HallTicketID == uuid.Nil {
		t.HallTicketID = uuid.New()
	}
	bySubmission, conflict := r.s.conflictLocked(t)
	if bySubmission {
		return false, nil
	}
	if conflict {
		return false, helper.ErrDuplicate
	}
	r.s.insertTicketLocked(t)
	if ev != nil {
		ev.HallTicketEventHallTicketID = t.HallTicketID
		r.s.appendEventLocked(*ev)
	}
	return true, nil
}

func (r *HallTicketRepo) InsertMany(ctx context.Context, tickets []model.HallTicketModel, ev model.HallTicketEventModel) ([]model.HallTicketModel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var inserted []model.HallTicketModel
	for i := range tickets {
		t := tickets[i]
		if t.HallTicketID == uuid.Nil {
			t.HallTicketID = uuid.New()
		}
		if _, conflict := r.s.conflictLocked(&t); conflict {
			continue
		}
		r.s.insertTicketLocked(&t)
		e := ev
		e.HallTicketEventID = uuid.Nil
		e.HallTicketEventHallTicketID = t.HallTicketID
		e.HallTicketEventToStatus = t.HallTicketStatus
		r.s.appendEventLocked(e)
		inserted = append(inserted, r.s.tickets[t.HallTicketID])
	}
	return inserted, nil
}

func (r *HallTicketRepo) findLocked(match func(model.HallTicketModel) bool) (*model.HallTicketModel, error) {
	for _, t := range r.s.tickets {
		if match(t) {
			return &t, nil
		}
	}
	return nil, helper.ErrNotFound
}

func (r *HallTicketRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.HallTicketModel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.findLocked(func(t model.HallTicketModel) bool { return t.HallTicketID == id })
}

func (r *HallTicketRepo) FindBySubmissionID(ctx context.Context, submissionID uuid.UUID) (*model.HallTicketModel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.findLocked(func(t model.HallTicketModel) bool { return t.HallTicketSubmissionID == submissionID })
}

func (r *HallTicketRepo) FindByUniqueID(ctx context.Context, uniqueID string) (*model.HallTicketModel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	uniqueID = strings.TrimSpace(uniqueID)
	return r.findLocked(func(t model.HallTicketModel) bool { return t.HallTicketUniqueID == uniqueID })
}

func (r *HallTicketRepo) TicketedSubmissionIDs(ctx context.Context, submissionIDs []uuid.UUID) (map[uuid.UUID]struct{}, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	want := make(map[uuid.UUID]struct{}, len(submissionIDs))
	for _, id := range submissionIDs {
		want[id] = struct{}{}
	}
	out := map[uuid.UUID]struct{}{}
	for _, t := range r.s.tickets {
		if _, ok := want[t.HallTicketSubmissionID]; ok {
			out[t.HallTicketSubmissionID] = struct{}{}
		}
	}
	return out, nil
}

func (r *HallTicketRepo) List(ctx context.Context, f repository.ListFilter) ([]model.HallTicketModel, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rows := make([]model.HallTicketModel, 0, len(r.s.tickets))
	for _, t := range r.s.tickets {
		if f.Status != "" && t.HallTicketStatus != f.Status {
			continue
		}
		if f.ProgramCode != "" && t.HallTicketProgramCode != f.ProgramCode {
			continue
		}
		if f.Zone != "" && t.HallTicketZone != f.Zone {
			continue
		}
		rows = append(rows, t)
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].HallTicketIssuedAt.Equal(rows[j].HallTicketIssuedAt) {
			return rows[i].HallTicketIssuedAt.After(rows[j].HallTicketIssuedAt)
		}
		return rows[i].HallTicketID.String() > rows[j].HallTicketID.String()
	})
	return paginate(rows, f.Limit, f.Offset), int64(len(rows)), nil
}

func (r *HallTicketRepo) Transition(ctx context.Context, id uuid.UUID, from, to string, ev *model.HallTicketEventModel) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tickets[id]
	if !ok || t.HallTicketStatus != from {
		return false, nil
	}
	t.HallTicketStatus = to
	t.HallTicketUpdatedAt = r.s.now()
	r.s.tickets[id] = t
	if ev != nil {
		ev.HallTicketEventHallTicketID = id
		ev.HallTicketEventFromStatus = from
		ev.HallTicketEventToStatus = to
		r.s.appendEventLocked(*ev)
	}
	return true, nil
}

func (r *HallTicketRepo) UpdateFields(ctx context.Context, id uuid.UUID, p repository.FieldsPatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tickets[id]
	if !ok {
		return helper.ErrNotFound
	}
	if p.Centre != nil {
		t.HallTicketCentre = *p.Centre
	}
	if p.Name != nil {
		t.HallTicketName = *p.Name
	}
	if p.DateOfBirth != nil {
		t.HallTicketDateOfBirth = *p.DateOfBirth
	}
	if p.Zone != nil {
		t.HallTicketZone = *p.Zone
	}
	if p.MembershipID != nil {
		t.HallTicketMembershipID = *p.MembershipID
	}
	t.HallTicketUpdatedAt = r.s.now()
	r.s.tickets[id] = t
	return nil
}

func (r *HallTicketRepo) Events(ctx context.Context, ticketID uuid.UUID) ([]model.HallTicketEventModel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.HallTicketEventModel
	for _, ev := range r.s.events {
		if ev.HallTicketEventHallTicketID == ticketID {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (r *HallTicketRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := map[string]int64{}
	for _, t := range r.s.tickets {
		out[t.HallTicketStatus]++
	}
	return out, nil
}

func (r *HallTicketRepo) PhotoURLs(ctx context.Context) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	seen := map[string]struct{}{}
	out := make([]string, 0, len(r.s.tickets))
	for _, t := range r.s.tickets {
		if t.HallTicketPhotoURL == "" {
			continue
		}
		if _, ok := seen[t.HallTicketPhotoURL]; ok {
			continue
		}
		seen[t.HallTicketPhotoURL] = struct{}{}
		out = append(out, t.HallTicketPhotoURL)
	}
	return out, nil
}
