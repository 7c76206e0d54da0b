package model

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	CategoryECC = "ECC"
	CategoryTCC = "TCC"

	StatusDraft     = "draft"
	StatusSubmitted = "submitted"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"

	InstituteDars          = "Dars"
	InstituteArabicCollege = "Arabic College"
	InstituteHifzCollege   = "Hifz College"
)

var (
	Categories = []string{CategoryECC, CategoryTCC}
	Statuses   = []string{StatusDraft, StatusSubmitted, StatusApproved, StatusRejected}
)

func IsValidCategory(s string) bool { return s == CategoryECC || s == CategoryTCC }

func IsValidStatus(s string) bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// PersonalDetails disimpan inline di tabel submissions (prefix submission_personal_).
type PersonalDetails struct {
	Name           string `json:"name"            gorm:"column:name;type:text;not null"            validate:"required"`
	FatherName     string `json:"father_name"     gorm:"column:father_name;type:text;not null"     validate:"required"`
	DateOfBirth    string `json:"date_of_birth"   gorm:"column:date_of_birth;type:text;not null"   validate:"required"`
	PhoneNumber    string `json:"phone_number"    gorm:"column:phone_number;type:text;not null"    validate:"required"`
	WhatsAppNumber string `json:"whatsapp_number" gorm:"column:whatsapp_number;type:text;not null" validate:"required"`
	Address        string `json:"address"         gorm:"column:address;type:text;not null"         validate:"required"`
	PhotoURL       string `json:"photo_url"       gorm:"column:photo_url;type:text;not null"       validate:"required"`
	MembershipID   string `json:"membership_id"   gorm:"column:membership_id;type:text;not null"   validate:"required"`
	PositionHeld   string `json:"position_held"   gorm:"column:position_held;type:text;not null"   validate:"required"`
}

// EducationDetails disimpan inline (prefix submission_education_).
type EducationDetails struct {
	InstituteType          string `json:"institute_type"             gorm:"column:institute_type;type:varchar(20);not null" validate:"required,oneof='Dars' 'Arabic College' 'Hifz College'"`
	InstituteName          string `json:"institute_name"             gorm:"column:institute_name;type:text;not null"        validate:"required"`
	PrincipalOrMudarisName string `json:"principal_or_mudaris_name"  gorm:"column:principal_or_mudaris_name;type:text;not null" validate:"required"`
	District               string `json:"district"                   gorm:"column:district;type:text;not null"              validate:"required"`
	State                  string `json:"state"                      gorm:"column:state;type:text;not null"                 validate:"required"`
	Zone                   string `json:"zone"                       gorm:"column:zone;type:text;not null;index"            validate:"required"`
	PaymentProofURL        string `json:"payment_proof_url"          gorm:"column:payment_proof_url;type:text;not null"     validate:"required"`
}

func (p *PersonalDetails) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.FatherName = strings.TrimSpace(p.FatherName)
	p.DateOfBirth = strings.TrimSpace(p.DateOfBirth)
	p.PhoneNumber = strings.TrimSpace(p.PhoneNumber)
	p.WhatsAppNumber = strings.TrimSpace(p.WhatsAppNumber)
	p.Address = strings.TrimSpace(p.Address)
	p.PhotoURL = strings.TrimSpace(p.PhotoURL)
	p.MembershipID = strings.TrimSpace(p.MembershipID)
	p.PositionHeld = strings.TrimSpace(p.PositionHeld)
}

func (e *EducationDetails) Normalize() {
	e.InstituteType = strings.TrimSpace(e.InstituteType)
	e.InstituteName = strings.TrimSpace(e.InstituteName)
	e.PrincipalOrMudarisName = strings.TrimSpace(e.PrincipalOrMudarisName)
	e.District = strings.TrimSpace(e.District)
	e.State = strings.TrimSpace(e.State)
	e.Zone = strings.TrimSpace(e.Zone)
	e.PaymentProofURL = strings.TrimSpace(e.PaymentProofURL)
}

type SubmissionModel struct {
	SubmissionID        uuid.UUID        `json:"submission_id"        gorm:"column:submission_id;type:uuid;default:gen_random_uuid();primaryKey"`
	SubmissionUniqueID  string           `json:"submission_unique_id" gorm:"column:submission_unique_id;type:varchar(20);not null;uniqueIndex:uq_submissions_unique_id"`
	SubmissionCategory  string           `json:"submission_category"  gorm:"column:submission_category;type:varchar(3);not null;index"`
	SubmissionPersonal  PersonalDetails  `json:"submission_personal"  gorm:"embedded;embeddedPrefix:submission_personal_"`
	SubmissionEducation EducationDetails `json:"submission_education" gorm:"embedded;embeddedPrefix:submission_education_"`
	SubmissionStatus    string           `json:"submission_status"    gorm:"column:submission_status;type:varchar(12);not null;default:'draft';index"`
	SubmissionCreatedAt time.Time        `json:"submission_created_at" gorm:"column:submission_created_at;type:timestamptz;not null;autoCreateTime"`
	SubmissionUpdatedAt time.Time        `json:"submission_updated_at" gorm:"column:submission_updated_at;type:timestamptz;not null;autoUpdateTime"`
}

func (SubmissionModel) TableName() string {
	return "submissions"
}

// GenerateUniqueID: {ECC|TCC} + 6 digit terakhir unix-millis + 3 digit acak (100..999).
func GenerateUniqueID(category string, now time.Time) string {
	return fmt.Sprintf("%s%06d%d", category, now.UnixMilli()%1_000_000, 100+rand.Intn(900))
}
