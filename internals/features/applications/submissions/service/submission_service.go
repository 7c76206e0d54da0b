package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	htModel "hallticket_backend/internals/features/applications/hall_tickets/model"
	"hallticket_backend/internals/features/applications/submissions/dto"
	"hallticket_backend/internals/features/applications/submissions/model"
	"hallticket_backend/internals/features/applications/submissions/repository"
	helper "hallticket_backend/internals/helpers"

	"github.com/google/uuid"
)

// HallTicketIssuer: penerbitan tiket idempotent saat submission di-approve.
type HallTicketIssuer interface {
	IssueForApproval(ctx context.Context, sub *model.SubmissionModel, actor string) (*htModel.HallTicketModel, bool, error)
}

type SubmissionService struct {
	repo   repository.SubmissionRepository
	issuer HallTicketIssuer
	now    func() time.Time
}

func NewSubmissionService(repo repository.SubmissionRepository, issuer HallTicketIssuer) *SubmissionService {
	return &SubmissionService{repo: repo, issuer: issuer, now: time.Now}
}

// Create: validasi, generate unique id bila kosong, status awal submitted.
// Unique id duplikat → ErrDuplicate (tanpa retry).
func (s *SubmissionService) Create(ctx context.Context, req dto.CreateSubmissionRequest) (*model.SubmissionModel, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	m := req.ToModel()
	if m.SubmissionUniqueID == "" {
		m.SubmissionUniqueID = model.GenerateUniqueID(m.SubmissionCategory, s.now())
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	log.Printf("[INFO] submission %s created (%s)", m.SubmissionUniqueID, m.SubmissionCategory)
	return m, nil
}

// Get: key = id internal (uuid) atau unique id.
func (s *SubmissionService) Get(ctx context.Context, key string) (*model.SubmissionModel, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, helper.ErrNotFound
	}
	if id, err := uuid.Parse(key); err == nil {
		m, err := s.repo.FindByID(ctx, id)
		if err == nil || !errors.Is(err, helper.ErrNotFound) {
			return m, err
		}
	}
	return s.repo.FindByUniqueID(ctx, key)
}

func (s *SubmissionService) List(ctx context.Context, q dto.ListQuery, p helper.Paging) ([]model.SubmissionModel, int64, error) {
	if err := q.Normalize(); err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, repository.ListFilter{
		Category: q.Category,
		Status:   q.Status,
		Zone:     q.Zone,
		Limit:    p.Limit,
		Offset:   p.Offset,
	})
}

type ApplyResult struct {
	Submission        *model.SubmissionModel
	HallTicket        *htModel.HallTicketModel
	HallTicketCreated bool
}

// Apply menjalankan UpdateCommand. Approve memicu penerbitan tiket (idempotent).
func (s *SubmissionService) Apply(ctx context.Context, id uuid.UUID, cmd dto.UpdateCommand, actor string) (*ApplyResult, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch c := cmd.(type) {
	case dto.SetStatus:
		return s.setStatus(ctx, current, c.Status, actor)
	case dto.ReplaceFields:
		if c.Personal == nil && c.Education == nil {
			return nil, fmt.Errorf("%w: nothing to update", helper.ErrInvalidInput)
		}
		if err := s.repo.UpdateDetails(ctx, id, c.Personal, c.Education); err != nil {
			return nil, err
		}
		updated, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return &ApplyResult{Submission: updated}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported update command", helper.ErrInvalidInput)
	}
}

func (s *SubmissionService) setStatus(ctx context.Context, current *model.SubmissionModel, to, actor string) (*ApplyResult, error) {
	if !model.IsValidStatus(to) {
		return nil, fmt.Errorf("%w: unknown status %q", helper.ErrInvalidInput, to)
	}
	if err := CheckTransition(current.SubmissionStatus, to); err != nil {
		return nil, err
	}

	if current.SubmissionStatus != to {
		if err := s.repo.UpdateStatus(ctx, current.SubmissionID, to); err != nil {
			return nil, err
		}
		log.Printf("[INFO] submission %s: %s → %s by %q", current.SubmissionUniqueID, current.SubmissionStatus, to, actor)
		current.SubmissionStatus = to
	}

	res := &ApplyResult{Submission: current}
	if to != model.StatusApproved || s.issuer == nil {
		return res, nil
	}

	ticket, created, err := s.issuer.IssueForApproval(ctx, current, actor)
	if err != nil {
		return nil, fmt.Errorf("issue hall ticket: %w", err)
	}
	res.HallTicket = ticket
	res.HallTicketCreated = created

	if fresh, err := s.repo.FindByID(ctx, current.SubmissionID); err == nil {
		res.Submission = fresh
	}
	return res, nil
}

// Delete: hard delete; tiket ikut terhapus (cascade).
func (s *SubmissionService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// FileURLs: semua URL upload yang masih dirujuk (untuk reaper).
func (s *SubmissionService) FileURLs(ctx context.Context) ([]string, error) {
	return s.repo.FileURLs(ctx)
}
