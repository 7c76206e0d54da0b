// Package memory berisi implementasi repository in-memory untuk test.
// Unique index, insert-if-absent dan cascade dijaga sama seperti di Postgres.
package memory

import (
	"sync"
	"time"

	htModel "hallticket_backend/internals/features/applications/hall_tickets/model"
	subModel "hallticket_backend/internals/features/applications/submissions/model"
	adminModel "hallticket_backend/internals/features/auth/admins/model"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.Mutex

	submissions map[uuid.UUID]subModel.SubmissionModel
	tickets     map[uuid.UUID]htModel.HallTicketModel
	events      []htModel.HallTicketEventModel
	admins      map[uuid.UUID]adminModel.AdminModel

	// Clock dipakai untuk created_at / updated_at.
	Clock func() time.Time
}

func NewStore() *Store {
	return &Store{
		submissions: map[uuid.UUID]subModel.SubmissionModel{},
		tickets:     map[uuid.UUID]htModel.HallTicketModel{},
		admins:      map[uuid.UUID]adminModel.AdminModel{},
		Clock:       time.Now,
	}
}

func (s *Store) Submissions() *SubmissionRepo { return &SubmissionRepo{s: s} }
func (s *Store) HallTickets() *HallTicketRepo { return &HallTicketRepo{s: s} }
func (s *Store) Admins() *AdminRepo           { return &AdminRepo{s: s} }

func (s *Store) now() time.Time { return s.Clock() }
