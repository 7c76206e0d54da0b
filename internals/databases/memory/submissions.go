package memory

import (
	"context"
	"sort"
	"strings"

	"hallticket_backend/internals/features/applications/submissions/model"
	"hallticket_backend/internals/features/applications/submissions/repository"
	helper "hallticket_backend/internals/helpers"

	"github.com/google/uuid"
)

type SubmissionRepo struct{ s *Store }

var _ repository.SubmissionRepository = (*SubmissionRepo)(nil)

func (r *SubmissionRepo) Create(ctx context.Context, m *model.SubmissionModel) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if m.SubmissionID == uuid.Nil {
		m.SubmissionID = uuid.New()
	}
	if _, ok := r.s.submissions[m.SubmissionID]; ok {
		return helper.ErrDuplicate
	}
	for _, existing := range r.s.submissions {
		if existing.SubmissionUniqueID == m.SubmissionUniqueID {
			return helper.ErrDuplicate
		}
	}
	if m.SubmissionStatus == "" {
		m.SubmissionStatus = model.StatusDraft
	}
	now := r.s.now()
	m.SubmissionCreatedAt = now
	m.SubmissionUpdatedAt = now
	r.s.submissions[m.SubmissionID] = *m
	return nil
}

func (r *SubmissionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.SubmissionModel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.submissions[id]
	if !ok {
		return nil, helper.ErrNotFound
	}
	return &m, nil
}

func (r *SubmissionRepo) FindByUniqueID(ctx context.Context, uniqueID string) (*model.SubmissionModel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	uniqueID = strings.TrimSpace(uniqueID)
	for _, m := range r.s.submissions {
		if m.SubmissionUniqueID == uniqueID {
			return &m, nil
		}
	}
	return nil, helper.ErrNotFound
}

func (r *SubmissionRepo) List(ctx context.Context, f repository.ListFilter) ([]model.SubmissionModel, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rows := make([]model.SubmissionModel, 0, len(r.s.submissions))
	for _, m := range r.s.submissions {
		if f.Category != "" && m.SubmissionCategory != f.Category {
			continue
		}
		if f.Status != "" && m.SubmissionStatus != f.Status {
			continue
		}
		if f.Zone != "" && m.SubmissionEducation.Zone != f.Zone {
			continue
		}
		rows = append(rows, m)
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].SubmissionCreatedAt.Equal(rows[j].SubmissionCreatedAt) {
			return rows[i].SubmissionCreatedAt.After(rows[j].SubmissionCreatedAt)
		}
		return rows[i].SubmissionID.String() > rows[j].SubmissionID.String()
	})
	return paginate(rows, f.Limit, f.Offset), int64(len(rows)), nil
}

func (r *SubmissionRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.submissions[id]
	if !ok {
		return helper.ErrNotFound
	}
	m.SubmissionStatus = status
	m.SubmissionUpdatedAt = r.s.now()
	r.s.submissions[id] = m
	return nil
}

func (r *SubmissionRepo) UpdateDetails(ctx context.Context, id uuid.UUID, personal *model.PersonalDetails, education *model.EducationDetails) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.submissions[id]
	if !ok {
		return helper.ErrNotFound
	}
	if personal != nil {
		m.SubmissionPersonal = *personal
	}
	if education != nil {
		m.SubmissionEducation = *education
	}
	m.SubmissionUpdatedAt = r.s.now()
	r.s.submissions[id] = m
	return nil
}

// Delete meniru FK ON DELETE CASCADE: tiket dan event ikut terhapus.
func (r *SubmissionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.submissions[id]; !ok {
		return helper.ErrNotFound
	}
	delete(r.s.submissions, id)
	for tid, t := range r.s.tickets {
		if t.HallTicketSubmissionID == id {
			delete(r.s.tickets, tid)
			r.s.dropEventsLocked(tid)
		}
	}
	return nil
}

func (r *SubmissionRepo) CountBy(ctx context.Context, column string) (map[string]int64, error) {
	if column != repository.CountByCategory && column != repository.CountByStatus {
		return nil, helper.ErrInvalidInput
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := map[string]int64{}
	for _, m := range r.s.submissions {
		if column == repository.CountByCategory {
			out[m.SubmissionCategory]++
		} else {
			out[m.SubmissionStatus]++
		}
	}
	return out, nil
}

func (r *SubmissionRepo) FileURLs(ctx context.Context) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]string, 0, len(r.s.submissions)*2)
	for _, m := range r.s.submissions {
		if m.SubmissionPersonal.PhotoURL != "" {
			out = append(out, m.SubmissionPersonal.PhotoURL)
		}
		if m.SubmissionEducation.PaymentProofURL != "" {
			out = append(out, m.SubmissionEducation.PaymentProofURL)
		}
	}
	return out, nil
}

func paginate[T any](rows []T, limit, offset int) []T {
	if limit <= 0 {
		return rows
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(rows) {
		return []T{}
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end]
}
