package repository

import (
	"context"
	"strings"

	"hallticket_backend/internals/features/applications/submissions/model"
	helper "hallticket_backend/internals/helpers"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListFilter: Limit 0 = tanpa batas.
type ListFilter struct {
	Category string
	Status   string
	Zone     string
	Limit    int
	Offset   int
}

type SubmissionRepository interface {
	Create(ctx context.Context, s *model.SubmissionModel) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.SubmissionModel, error)
	FindByUniqueID(ctx context.Context, uniqueID string) (*model.SubmissionModel, error)
	List(ctx context.Context, f ListFilter) ([]model.SubmissionModel, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	UpdateDetails(ctx context.Context, id uuid.UUID, personal *model.PersonalDetails, education *model.EducationDetails) error
	Delete(ctx context.Context, id uuid.UUID) error

	CountBy(ctx context.Context, column string) (map[string]int64, error)
	FileURLs(ctx context.Context) ([]string, error)
}

const (
	CountByCategory = "submission_category"
	CountByStatus   = "submission_status"
)

type gormSubmissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &gormSubmissionRepository{db: db}
}

func (r *gormSubmissionRepository) Create(ctx context.Context, s *model.SubmissionModel) error {
	return helper.NormalizeDBError(r.db.WithContext(ctx).Create(s).Error)
}

func (r *gormSubmissionRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.SubmissionModel, error) {
	var m model.SubmissionModel
	if err := r.db.WithContext(ctx).Where("submission_id = ?", id).First(&m).Error; err != nil {
		return nil, helper.NormalizeDBError(err)
	}
	return &m, nil
}

func (r *gormSubmissionRepository) FindByUniqueID(ctx context.Context, uniqueID string) (*model.SubmissionModel, error) {
	var m model.SubmissionModel
	if err := r.db.WithContext(ctx).Where("submission_unique_id = ?", strings.TrimSpace(uniqueID)).First(&m).Error; err != nil {
		return nil, helper.NormalizeDBError(err)
	}
	return &m, nil
}

func (r *gormSubmissionRepository) List(ctx context.Context, f ListFilter) ([]model.SubmissionModel, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.SubmissionModel{})
	if f.Category != "" {
		q = q.Where("submission_category = ?", f.Category)
	}
	if f.Status != "" {
		q = q.Where("submission_status = ?", f.Status)
	}
	if f.Zone != "" {
		q = q.Where("submission_education_zone = ?", f.Zone)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q = q.Order("submission_created_at DESC").Order("submission_id DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}
	var rows []model.SubmissionModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *gormSubmissionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	res := r.db.WithContext(ctx).Model(&model.SubmissionModel{}).
		Where("submission_id = ?", id).
		Update("submission_status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return helper.ErrNotFound
	}
	return nil
}

func (r *gormSubmissionRepository) UpdateDetails(ctx context.Context, id uuid.UUID, personal *model.PersonalDetails, education *model.EducationDetails) error {
	patch := map[string]any{}
	if personal != nil {
		patch["submission_personal_name"] = personal.Name
		patch["submission_personal_father_name"] = personal.FatherName
		patch["submission_personal_date_of_birth"] = personal.DateOfBirth
		patch["submission_personal_phone_number"] = personal.PhoneNumber
		patch["submission_personal_whatsapp_number"] = personal.WhatsAppNumber
		patch["submission_personal_address"] = personal.Address
		patch["submission_personal_photo_url"] = personal.PhotoURL
		patch["submission_personal_membership_id"] = personal.MembershipID
		patch["submission_personal_position_held"] = personal.PositionHeld
	}
	if education != nil {
		patch["submission_education_institute_type"] = education.InstituteType
		patch["submission_education_institute_name"] = education.InstituteName
		patch["submission_education_principal_or_mudaris_name"] = education.PrincipalOrMudarisName
		patch["submission_education_district"] = education.District
		patch["submission_education_state"] = education.State
		patch["submission_education_zone"] = education.Zone
		patch["submission_education_payment_proof_url"] = education.PaymentProofURL
	}
	if len(patch) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(&model.SubmissionModel{}).
		Where("submission_id = ?", id).
		Updates(patch)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return helper.ErrNotFound
	}
	return nil
}

// Delete: hall ticket ikut terhapus lewat FK ON DELETE CASCADE.
func (r *gormSubmissionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("submission_id = ?", id).Delete(&model.SubmissionModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return helper.ErrNotFound
	}
	return nil
}

func (r *gormSubmissionRepository) CountBy(ctx context.Context, column string) (map[string]int64, error) {
	if column != CountByCategory && column != CountByStatus {
		return nil, helper.ErrInvalidInput
	}
	var rows []struct {
		Label string
		Total int64
	}
	if err := r.db.WithContext(ctx).Model(&model.SubmissionModel{}).
		Select(column + " AS label, COUNT(*) AS total").
		Group(column).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Label] = row.Total
	}
	return out, nil
}

func (r *gormSubmissionRepository) FileURLs(ctx context.Context) ([]string, error) {
	var rows []struct {
		Photo   string
		Payment string
	}
	if err := r.db.WithContext(ctx).Model(&model.SubmissionModel{}).
		Select("submission_personal_photo_url AS photo, submission_education_payment_proof_url AS payment").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]string, 0, len(rows)*2)
	for _, row := range rows {
		if row.Photo != "" {
			out = append(out, row.Photo)
		}
		if row.Payment != "" {
			out = append(out, row.Payment)
		}
	}
	return out, nil
}
