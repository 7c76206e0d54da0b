package repository

import (
	"context"
	"strings"

	"hallticket_backend/internals/features/auth/admins/model"
	helper "hallticket_backend/internals/helpers"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AdminRepository interface {
	FindByUsername(ctx context.Context, username string) (*model.AdminModel, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.AdminModel, error)
	Create(ctx context.Context, a *model.AdminModel) error
}

type gormAdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &gormAdminRepository{db: db}
}

func (r *gormAdminRepository) FindByUsername(ctx context.Context, username string) (*model.AdminModel, error) {
	var a model.AdminModel
	if err := r.db.WithContext(ctx).
		Where("LOWER(admin_username) = ?", strings.ToLower(strings.TrimSpace(username))).
		First(&a).Error; err != nil {
		return nil, helper.NormalizeDBError(err)
	}
	return &a, nil
}

func (r *gormAdminRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.AdminModel, error) {
	var a model.AdminModel
	if err := r.db.WithContext(ctx).Where("admin_id = ?", id).First(&a).Error; err != nil {
		return nil, helper.NormalizeDBError(err)
	}
	return &a, nil
}

// Create: password di-hash oleh hook BeforeSave.
func (r *gormAdminRepository) Create(ctx context.Context, a *model.AdminModel) error {
	return helper.NormalizeDBError(r.db.WithContext(ctx).Create(a).Error)
}
