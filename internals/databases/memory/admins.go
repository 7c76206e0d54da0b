package memory

import (
	"context"
	"strings"

	"hallticket_backend/internals/constants"
	"hallticket_backend/internals/features/auth/admins/model"
	"hallticket_backend/internals/features/auth/admins/repository"
	helper "hallticket_backend/internals/helpers"

	"github.com/google/uuid"
)

type AdminRepo struct{ s *Store }

var _ repository.AdminRepository = (*AdminRepo)(nil)

func (r *AdminRepo) FindByUsername(ctx context.Context, username string) (*model.AdminModel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	username = strings.ToLower(strings.TrimSpace(username))
	for _, a := range r.s.admins {
		if strings.ToLower(a.AdminUsername) == username {
			return &a, nil
		}
	}
	return nil, helper.ErrNotFound
}

func (r *AdminRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.AdminModel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.admins[id]
	if !ok {
		return nil, helper.ErrNotFound
	}
	return &a, nil
}

// Create menjalankan hash password seperti hook BeforeSave.
func (r *AdminRepo) Create(ctx context.Context, a *model.AdminModel) error {
	if err := a.HashPassword(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.admins {
		if strings.EqualFold(existing.AdminUsername, a.AdminUsername) {
			return helper.ErrDuplicate
		}
	}
	if a.AdminID == uuid.Nil {
		a.AdminID = uuid.New()
	}
	if a.AdminRole == "" {
		a.AdminRole = constants.RoleAdmin
	}
	now := r.s.now()
	a.AdminCreatedAt = now
	a.AdminUpdatedAt = now
	r.s.admins[a.AdminID] = *a
	return nil
}
