package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"hallticket_backend/internals/features/applications/hall_tickets/model"
	"hallticket_backend/internals/features/applications/hall_tickets/repository"
	subModel "hallticket_backend/internals/features/applications/submissions/model"
	subRepo "hallticket_backend/internals/features/applications/submissions/repository"
	helper "hallticket_backend/internals/helpers"

	"github.com/google/uuid"
)

// SubmissionReader: bagian repository submission yang dibutuhkan penerbitan tiket.
type SubmissionReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*subModel.SubmissionModel, error)
	List(ctx context.Context, f subRepo.ListFilter) ([]subModel.SubmissionModel, int64, error)
}

type Options struct {
	Centre string

	// StrictStatus: hanya maju issued → downloaded → used.
	StrictStatus bool
	Now          func() time.Time
}

// AlreadyIssuedError dibawa ke 409 bersama tiket yang sudah ada.
type AlreadyIssuedError struct {
	Ticket *model.HallTicketModel
}

func (e *AlreadyIssuedError) Error() string { return "Hall ticket already exists for this submission" }
func (e *AlreadyIssuedError) Unwrap() error { return helper.ErrDuplicate }

// StatusChange: metadata perubahan status untuk audit trail.
type StatusChange struct {
	Source string
	Actor  string
	Detail map[string]any

	// Public: pemanggil tanpa sesi admin; hanya boleh set "downloaded".
	Public bool
}

type HallTicketService struct {
	repo        repository.HallTicketRepository
	submissions SubmissionReader
	opts        Options
}

func NewHallTicketService(repo repository.HallTicketRepository, submissions SubmissionReader, opts Options) *HallTicketService {
	if strings.TrimSpace(opts.Centre) == "" {
		opts.Centre = "ANVARUL ISLAM ARABIC COLLAGE RAMAPURAM"
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &HallTicketService{repo: repo, submissions: submissions, opts: opts}
}

// SnapshotFrom menyalin field submission ke tiket baru. Pure.
func SnapshotFrom(s *subModel.SubmissionModel, centre string, now time.Time) model.HallTicketModel {
	return model.HallTicketModel{
		HallTicketID:           uuid.New(),
		HallTicketSubmissionID: s.SubmissionID,
		HallTicketUniqueID:     s.SubmissionUniqueID,
		HallTicketProgramCode:  s.SubmissionCategory,
		HallTicketCentre:       centre,
		HallTicketName:         s.SubmissionPersonal.Name,
		HallTicketDateOfBirth:  s.SubmissionPersonal.DateOfBirth,
		HallTicketZone:         s.SubmissionEducation.Zone,
		HallTicketMembershipID: s.SubmissionPersonal.MembershipID,
		HallTicketPhotoURL:     s.SubmissionPersonal.PhotoURL,
		HallTicketIssuedAt:     now,
		HallTicketStatus:       model.StatusIssued,
	}
}

func (s *HallTicketService) event(source, actor string, detail map[string]any) *model.HallTicketEventModel {
	return &model.HallTicketEventModel{
		HallTicketEventID:     uuid.New(),
		HallTicketEventSource: source,
		HallTicketEventActor:  actor,
		HallTicketEventDetail: detail,
	}
}

/* =========================
   Issuance
========================= */

// IssueForApproval: idempotent. Tiket yang sudah ada dikembalikan dengan created=false.
func (s *HallTicketService) IssueForApproval(ctx context.Context, sub *subModel.SubmissionModel, actor string) (*model.HallTicketModel, bool, error) {
	t := SnapshotFrom(sub, s.opts.Centre, s.opts.Now())
	ev := s.event(model.EventSourceIssue, actor, nil)
	ev.HallTicketEventToStatus = model.StatusIssued

	created, err := s.repo.InsertIfAbsent(ctx, &t, ev)
	if err != nil {
		return nil, false, err
	}
	if created {
		log.Printf("[INFO] hall ticket %s issued for submission %s", t.HallTicketUniqueID, sub.SubmissionID)
		return &t, true, nil
	}
	existing, err := s.repo.FindBySubmissionID(ctx, sub.SubmissionID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// IssueExplicit: penerbitan manual oleh admin. 404 / 400 (belum approved) / 409.
func (s *HallTicketService) IssueExplicit(ctx context.Context, submissionID uuid.UUID, actor string) (*model.HallTicketModel, error) {
	sub, err := s.submissions.FindByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if sub.SubmissionStatus != subModel.StatusApproved {
		return nil, fmt.Errorf("%w (status: %s)", helper.ErrNotApproved, sub.SubmissionStatus)
	}

	if existing, err := s.repo.FindBySubmissionID(ctx, submissionID); err == nil {
		return nil, &AlreadyIssuedError{Ticket: existing}
	} else if !errors.Is(err, helper.ErrNotFound) {
		return nil, err
	}

	t, created, err := s.IssueForApproval(ctx, sub, actor)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, &AlreadyIssuedError{Ticket: t}
	}
	return t, nil
}

/* =========================
   Batch
========================= */

type BatchFilter struct {
	Category string
	Zone     string
}

type BatchResult struct {
	Generated int    `json:"generated"`
	Message   string `json:"message"`
}

const (
	msgBatchNoEligible  = "No eligible submissions found for hall ticket generation"
	msgBatchAllIssued   = "All eligible submissions already have hall tickets"
	msgBatchGeneratedFm = "Generated %d hall tickets successfully"
)

// IssueBatch menerbitkan tiket untuk semua submission approved yang belum punya tiket.
// Generated = baris yang benar-benar masuk; panggilan kedua yang identik → 0.
func (s *HallTicketService) IssueBatch(ctx context.Context, f BatchFilter, actor string) (BatchResult, error) {
	if f.Category != "" && !subModel.IsValidCategory(f.Category) {
		return BatchResult{}, fmt.Errorf("%w: category must be ECC or TCC", helper.ErrInvalidInput)
	}

	subs, _, err := s.submissions.List(ctx, subRepo.ListFilter{
		Status:   subModel.StatusApproved,
		Category: f.Category,
		Zone:     f.Zone,
	})
	if err != nil {
		return BatchResult{}, err
	}
	if len(subs) == 0 {
		return BatchResult{Generated: 0, Message: msgBatchNoEligible}, nil
	}

	ids := make([]uuid.UUID, 0, len(subs))
	for _, sub := range subs {
		ids = append(ids, sub.SubmissionID)
	}
	ticketed, err := s.repo.TicketedSubmissionIDs(ctx, ids)
	if err != nil {
		return BatchResult{}, err
	}

	now := s.opts.Now()
	snapshots := make([]model.HallTicketModel, 0, len(subs))
	for i := range subs {
		if _, ok := ticketed[subs[i].SubmissionID]; ok {
			continue
		}
		snapshots = append(snapshots, SnapshotFrom(&subs[i], s.opts.Centre, now))
	}
	if len(snapshots) == 0 {
		return BatchResult{Generated: 0, Message: msgBatchAllIssued}, nil
	}

	ev := s.event(model.EventSourceBatch, actor, map[string]any{"category": f.Category, "zone": f.Zone})
	inserted, err := s.repo.InsertMany(ctx, snapshots, *ev)
	if err != nil {
		return BatchResult{}, err
	}
	if len(inserted) == 0 {
		return BatchResult{Generated: 0, Message: msgBatchAllIssued}, nil
	}
	log.Printf("[INFO] batch issuance: %d hall tickets (category=%q zone=%q)", len(inserted), f.Category, f.Zone)
	return BatchResult{Generated: len(inserted), Message: fmt.Sprintf(msgBatchGeneratedFm, len(inserted))}, nil
}

/* =========================
   Query
========================= */

// Get: key = id internal (uuid) atau unique id.
func (s *HallTicketService) Get(ctx context.Context, key string) (*model.HallTicketModel, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, helper.ErrNotFound
	}
	if id, err := uuid.Parse(key); err == nil {
		t, err := s.repo.FindByID(ctx, id)
		if err == nil || !errors.Is(err, helper.ErrNotFound) {
			return t, err
		}
	}
	return s.repo.FindByUniqueID(ctx, key)
}

func (s *HallTicketService) GetBySubmission(ctx context.Context, submissionID uuid.UUID) (*model.HallTicketModel, error) {
	return s.repo.FindBySubmissionID(ctx, submissionID)
}

func (s *HallTicketService) GetByUniqueID(ctx context.Context, uniqueID string) (*model.HallTicketModel, error) {
	return s.repo.FindByUniqueID(ctx, uniqueID)
}

func (s *HallTicketService) List(ctx context.Context, f repository.ListFilter) ([]model.HallTicketModel, int64, error) {
	if f.Status != "" && !model.IsValidStatus(f.Status) {
		return nil, 0, fmt.Errorf("%w: unknown status %q", helper.ErrInvalidInput, f.Status)
	}
	return s.repo.List(ctx, f)
}

// PhotoURLs: foto yang masih tampil di tiket walau submission sudah ganti foto.
func (s *HallTicketService) PhotoURLs(ctx context.Context) ([]string, error) {
	return s.repo.PhotoURLs(ctx)
}

func (s *HallTicketService) Events(ctx context.Context, id uuid.UUID) ([]model.HallTicketEventModel, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.Events(ctx, id)
}

/* =========================
   Status machine
========================= */

// CheckTransition: maju saja bila StrictStatus; status sama ditangani caller (no-op).
func (s *HallTicketService) CheckTransition(from, to string) error {
	if !model.IsValidStatus(to) {
		return fmt.Errorf("%w: unknown status %q", helper.ErrInvalidInput, to)
	}
	if s.opts.StrictStatus && model.StatusRank(to) < model.StatusRank(from) {
		return fmt.Errorf("%w: %s → %s", helper.ErrInvalidTransition, from, to)
	}
	return nil
}

const maxTransitionAttempts = 3

// UpdateStatus menjalankan status machine; status sama = no-op sukses.
func (s *HallTicketService) UpdateStatus(ctx context.Context, id uuid.UUID, to string, ch StatusChange) (*model.HallTicketModel, error) {
	to = strings.ToLower(strings.TrimSpace(to))
	if !model.IsValidStatus(to) {
		return nil, fmt.Errorf("%w: status must be one of issued, downloaded, used", helper.ErrInvalidInput)
	}
	if ch.Public && to != model.StatusDownloaded {
		return nil, fmt.Errorf("%w: only admins may set status %q", helper.ErrForbidden, to)
	}
	if ch.Source == "" {
		ch.Source = model.EventSourceAdmin
	}

	for attempt := 0; attempt < maxTransitionAttempts; attempt++ {
		t, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if t.HallTicketStatus == to {
			return t, nil
		}
		if err := s.CheckTransition(t.HallTicketStatus, to); err != nil {
			return nil, err
		}
		ok, err := s.repo.Transition(ctx, id, t.HallTicketStatus, to, s.event(ch.Source, ch.Actor, ch.Detail))
		if err != nil {
			return nil, err
		}
		if ok {
			return s.repo.FindByID(ctx, id)
		}
		// status berubah di antara baca & tulis → baca ulang
	}
	return nil, fmt.Errorf("%w: concurrent status update", helper.ErrInvalidTransition)
}

// MarkPrinted: dipanggil setelah halaman cetak dirender; downloaded → used, selain itu tidak berubah.
func (s *HallTicketService) MarkPrinted(ctx context.Context, t *model.HallTicketModel, detail map[string]any) error {
	if t.HallTicketStatus != model.StatusDownloaded {
		return nil
	}
	_, err := s.repo.Transition(ctx, t.HallTicketID, model.StatusDownloaded, model.StatusUsed,
		s.event(model.EventSourcePrint, "", detail))
	return err
}

/* =========================
   Admin update
========================= */

type FieldsUpdate struct {
	Patch  repository.FieldsPatch
	Status *string
}

// UpdateFields: update snapshot oleh admin (+ status opsional lewat status machine).
func (s *HallTicketService) UpdateFields(ctx context.Context, id uuid.UUID, u FieldsUpdate, ch StatusChange) (*model.HallTicketModel, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.Status != nil && *u.Status != current.HallTicketStatus {
		if err := s.CheckTransition(current.HallTicketStatus, strings.ToLower(strings.TrimSpace(*u.Status))); err != nil {
			return nil, err
		}
	}
	if !u.Patch.IsEmpty() {
		if err := s.repo.UpdateFields(ctx, id, u.Patch); err != nil {
			return nil, err
		}
	}
	if u.Status != nil {
		return s.UpdateStatus(ctx, id, *u.Status, ch)
	}
	return s.repo.FindByID(ctx, id)
}
