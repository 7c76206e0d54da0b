package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusIssued     = "issued"
	StatusDownloaded = "downloaded"
	StatusUsed       = "used"
)

var Statuses = []string{StatusIssued, StatusDownloaded, StatusUsed}

// StatusRank: urutan siklus hidup issued → downloaded → used.
func StatusRank(s string) int {
	switch s {
	case StatusIssued:
		return 1
	case StatusDownloaded:
		return 2
	case StatusUsed:
		return 3
	default:
		return 0
	}
}

func IsValidStatus(s string) bool { return StatusRank(s) > 0 }

// HallTicketModel: snapshot data submission saat tiket diterbitkan.
// Tidak pernah disinkron ulang ke submission.
type HallTicketModel struct {
	HallTicketID           uuid.UUID `json:"hall_ticket_id"            gorm:"column:hall_ticket_id;type:uuid;default:gen_random_uuid();primaryKey"`
	HallTicketSubmissionID uuid.UUID `json:"hall_ticket_submission_id" gorm:"column:hall_ticket_submission_id;type:uuid;not null;uniqueIndex:uq_hall_tickets_submission_id"`
	HallTicketUniqueID     string    `json:"hall_ticket_unique_id"     gorm:"column:hall_ticket_unique_id;type:varchar(20);not null;uniqueIndex:uq_hall_tickets_unique_id"`
	HallTicketProgramCode  string    `json:"hall_ticket_program_code"  gorm:"column:hall_ticket_program_code;type:varchar(3);not null;index"`
	HallTicketCentre       string    `json:"hall_ticket_centre"        gorm:"column:hall_ticket_centre;type:text;not null"`
	HallTicketName         string    `json:"hall_ticket_name"          gorm:"column:hall_ticket_name;type:text;not null"`
	HallTicketDateOfBirth  string    `json:"hall_ticket_date_of_birth" gorm:"column:hall_ticket_date_of_birth;type:text;not null"`
	HallTicketZone         string    `json:"hall_ticket_zone"          gorm:"column:hall_ticket_zone;type:text;not null;index"`
	HallTicketMembershipID string    `json:"hall_ticket_membership_id" gorm:"column:hall_ticket_membership_id;type:text;not null"`
	HallTicketPhotoURL     string    `json:"hall_ticket_photo_url"     gorm:"column:hall_ticket_photo_url;type:text"`
	HallTicketIssuedAt     time.Time `json:"hall_ticket_issued_at"     gorm:"column:hall_ticket_issued_at;type:timestamptz;not null;index"`
	HallTicketStatus       string    `json:"hall_ticket_status"        gorm:"column:hall_ticket_status;type:varchar(12);not null;default:'issued';index"`
	HallTicketCreatedAt    time.Time `json:"hall_ticket_created_at"    gorm:"column:hall_ticket_created_at;type:timestamptz;not null;autoCreateTime"`
	HallTicketUpdatedAt    time.Time `json:"hall_ticket_updated_at"    gorm:"column:hall_ticket_updated_at;type:timestamptz;not null;autoUpdateTime"`
}

func (HallTicketModel) TableName() string {
	return "hall_tickets"
}
