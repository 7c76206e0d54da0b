package dto

import (
	"fmt"
	"strings"
	"time"

	"hallticket_backend/internals/features/applications/submissions/model"
	helper "hallticket_backend/internals/helpers"

	"github.com/google/uuid"
)

/* =========================
   Create
========================= */

// CreateSubmissionRequest menerima snake_case maupun camelCase (klien lama:
// uniqueId, category, personalDetails, educationDetails). snake_case menang.
type CreateSubmissionRequest struct {
	SubmissionUniqueID  string                 `json:"submission_unique_id"  validate:"omitempty,max=20,alphanum"`
	SubmissionCategory  string                 `json:"submission_category"   validate:"required,oneof=ECC TCC"`
	SubmissionPersonal  model.PersonalDetails  `json:"submission_personal"`
	SubmissionEducation model.EducationDetails `json:"submission_education"`

	UniqueIDCamel  string                 `json:"uniqueId"         validate:"-"`
	CategoryCamel  string                 `json:"category"         validate:"-"`
	PersonalCamel  *PersonalDetailsCamel  `json:"personalDetails"  validate:"-"`
	EducationCamel *EducationDetailsCamel `json:"educationDetails" validate:"-"`
}

type PersonalDetailsCamel struct {
	Name               string `json:"name"`
	FatherName         string `json:"fatherName"`
	DateOfBirth        string `json:"dateOfBirth"`
	PhoneNumber        string `json:"phoneNumber"`
	WhatsAppNumber     string `json:"whatsappNumber"`
	Address            string `json:"address"`
	PhotoURL           string `json:"photoUrl"`
	MembershipID       string `json:"membershipId"`
	SkssflMembershipID string `json:"skssflMembershipId"`
	PositionHeld       string `json:"positionHeld"`
}

func (p PersonalDetailsCamel) ToModel() model.PersonalDetails {
	membership := p.MembershipID
	if strings.TrimSpace(membership) == "" {
		membership = p.SkssflMembershipID
	}
	return model.PersonalDetails{
		Name:           p.Name,
		FatherName:     p.FatherName,
		DateOfBirth:    p.DateOfBirth,
		PhoneNumber:    p.PhoneNumber,
		WhatsAppNumber: p.WhatsAppNumber,
		Address:        p.Address,
		PhotoURL:       p.PhotoURL,
		MembershipID:   membership,
		PositionHeld:   p.PositionHeld,
	}
}

type EducationDetailsCamel struct {
	InstituteType          string `json:"instituteType"`
	InstituteName          string `json:"instituteName"`
	PrincipalOrMudarisName string `json:"principalOrMudarisName"`
	District               string `json:"district"`
	State                  string `json:"state"`
	Zone                   string `json:"zone"`
	PaymentProofURL        string `json:"paymentProofUrl"`
}

func (e EducationDetailsCamel) ToModel() model.EducationDetails {
	return model.EducationDetails{
		InstituteType:          e.InstituteType,
		InstituteName:          e.InstituteName,
		PrincipalOrMudarisName: e.PrincipalOrMudarisName,
		District:               e.District,
		State:                  e.State,
		Zone:                   e.Zone,
		PaymentProofURL:        e.PaymentProofURL,
	}
}

// mergeCamel mengisi field snake_case yang kosong dari alias camelCase, lalu alias dikosongkan.
func (r *CreateSubmissionRequest) mergeCamel() {
	if strings.TrimSpace(r.SubmissionUniqueID) == "" {
		r.SubmissionUniqueID = r.UniqueIDCamel
	}
	if strings.TrimSpace(r.SubmissionCategory) == "" {
		r.SubmissionCategory = r.CategoryCamel
	}
	if r.SubmissionPersonal == (model.PersonalDetails{}) && r.PersonalCamel != nil {
		r.SubmissionPersonal = r.PersonalCamel.ToModel()
	}
	if r.SubmissionEducation == (model.EducationDetails{}) && r.EducationCamel != nil {
		r.SubmissionEducation = r.EducationCamel.ToModel()
	}
	r.UniqueIDCamel, r.CategoryCamel = "", ""
	r.PersonalCamel, r.EducationCamel = nil, nil
}

func (r *CreateSubmissionRequest) Normalize() {
	r.mergeCamel()
	r.SubmissionUniqueID = strings.TrimSpace(r.SubmissionUniqueID)
	r.SubmissionCategory = strings.ToUpper(strings.TrimSpace(r.SubmissionCategory))
	r.SubmissionPersonal.Normalize()
	r.SubmissionEducation.Normalize()
}

func (r *CreateSubmissionRequest) Validate() error {
	return helper.Validator().Struct(r)
}

func (r *CreateSubmissionRequest) ToModel() *model.SubmissionModel {
	return &model.SubmissionModel{
		SubmissionID:        uuid.New(),
		SubmissionUniqueID:  r.SubmissionUniqueID,
		SubmissionCategory:  r.SubmissionCategory,
		SubmissionPersonal:  r.SubmissionPersonal,
		SubmissionEducation: r.SubmissionEducation,
		SubmissionStatus:    model.StatusSubmitted,
	}
}

/* =========================
   Update (tagged union)
========================= */

// UpdateCommand: SetStatus atau ReplaceFields, tidak pernah keduanya.
type UpdateCommand interface {
	isUpdateCommand()
}

type SetStatus struct {
	Status string `validate:"required,oneof=draft submitted approved rejected"`
}

// ReplaceFields mengganti blok detail secara utuh; status, unique id dan kategori tidak disentuh.
type ReplaceFields struct {
	Personal  *model.PersonalDetails
	Education *model.EducationDetails
}

func (SetStatus) isUpdateCommand()     {}
func (ReplaceFields) isUpdateCommand() {}

const (
	OpSetStatus     = "set_status"
	OpReplaceFields = "replace_fields"
)

// UpdateSubmissionRequest: body PUT /submissions/:id.
// Body lama {"status": "..."} dibaca sebagai set_status.
type UpdateSubmissionRequest struct {
	Op                  string                  `json:"op"`
	Status              *string                 `json:"status"`
	SubmissionStatus    *string                 `json:"submission_status"`
	SubmissionPersonal  *model.PersonalDetails  `json:"submission_personal"`
	SubmissionEducation *model.EducationDetails `json:"submission_education"`
}

func (r *UpdateSubmissionRequest) ToCommand() (UpdateCommand, error) {
	status := r.Status
	if status == nil {
		status = r.SubmissionStatus
	}
	hasFields := r.SubmissionPersonal != nil || r.SubmissionEducation != nil
	op := strings.ToLower(strings.TrimSpace(r.Op))

	switch {
	case op == "" && status != nil && hasFields:
		return nil, fmt.Errorf("%w: status and detail fields cannot be updated in one request", helper.ErrInvalidInput)
	case op == OpSetStatus || (op == "" && status != nil):
		if status == nil {
			return nil, fmt.Errorf("%w: status is required", helper.ErrInvalidInput)
		}
		if hasFields {
			return nil, fmt.Errorf("%w: set_status does not accept detail fields", helper.ErrInvalidInput)
		}
		cmd := SetStatus{Status: strings.ToLower(strings.TrimSpace(*status))}
		if err := helper.Validator().Struct(cmd); err != nil {
			return nil, err
		}
		return cmd, nil
	case op == OpReplaceFields || (op == "" && hasFields):
		if !hasFields {
			return nil, fmt.Errorf("%w: submission_personal or submission_education is required", helper.ErrInvalidInput)
		}
		if status != nil {
			return nil, fmt.Errorf("%w: replace_fields does not accept status", helper.ErrInvalidInput)
		}
		cmd := ReplaceFields{Personal: r.SubmissionPersonal, Education: r.SubmissionEducation}
		if cmd.Personal != nil {
			cmd.Personal.Normalize()
			if err := helper.Validator().Struct(cmd.Personal); err != nil {
				return nil, err
			}
		}
		if cmd.Education != nil {
			cmd.Education.Normalize()
			if err := helper.Validator().Struct(cmd.Education); err != nil {
				return nil, err
			}
		}
		return cmd, nil
	case op != "":
		return nil, fmt.Errorf("%w: unknown op %q", helper.ErrInvalidInput, r.Op)
	default:
		return nil, fmt.Errorf("%w: empty update", helper.ErrInvalidInput)
	}
}

/* =========================
   Query
========================= */

type ListQuery struct {
	Category string `query:"category"`
	Status   string `query:"status"`
	Zone     string `query:"zone"`
}

func (q *ListQuery) Normalize() error {
	q.Category = strings.ToUpper(strings.TrimSpace(q.Category))
	q.Status = strings.ToLower(strings.TrimSpace(q.Status))
	q.Zone = strings.TrimSpace(q.Zone)
	if q.Category != "" && !model.IsValidCategory(q.Category) {
		return fmt.Errorf("%w: category must be ECC or TCC", helper.ErrInvalidInput)
	}
	if q.Status != "" && !model.IsValidStatus(q.Status) {
		return fmt.Errorf("%w: unknown status %q", helper.ErrInvalidInput, q.Status)
	}
	return nil
}

/* =========================
   Response
========================= */

// RecentSubmission: ringkasan untuk dashboard.
type RecentSubmission struct {
	SubmissionID       uuid.UUID `json:"submission_id"`
	SubmissionUniqueID string    `json:"submission_unique_id"`
	SubmissionCategory string    `json:"submission_category"`
	Name               string    `json:"name"`
	SubmissionStatus   string    `json:"submission_status"`
	CreatedAt          time.Time `json:"submission_created_at"`
}

func ToRecent(m model.SubmissionModel) RecentSubmission {
	return RecentSubmission{
		SubmissionID:       m.SubmissionID,
		SubmissionUniqueID: m.SubmissionUniqueID,
		SubmissionCategory: m.SubmissionCategory,
		Name:               m.SubmissionPersonal.Name,
		SubmissionStatus:   m.SubmissionStatus,
		CreatedAt:          m.SubmissionCreatedAt,
	}
}
