package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	EventSourceIssue = "issue"
	EventSourceBatch = "batch"
	EventSourcePatch = "patch"
	EventSourcePrint = "print"
	EventSourceAdmin = "admin"
)

// HallTicketEventModel: jejak perubahan status tiket.
type HallTicketEventModel struct {
	HallTicketEventID           uuid.UUID         `json:"hall_ticket_event_id"             gorm:"column:hall_ticket_event_id;type:uuid;default:gen_random_uuid();primaryKey"`
	HallTicketEventHallTicketID uuid.UUID         `json:"hall_ticket_event_hall_ticket_id" gorm:"column:hall_ticket_event_hall_ticket_id;type:uuid;not null;index"`
	HallTicketEventFromStatus   string            `json:"hall_ticket_event_from_status"    gorm:"column:hall_ticket_event_from_status;type:varchar(12)"`
	HallTicketEventToStatus     string            `json:"hall_ticket_event_to_status"      gorm:"column:hall_ticket_event_to_status;type:varchar(12);not null"`
	HallTicketEventSource       string            `json:"hall_ticket_event_source"         gorm:"column:hall_ticket_event_source;type:varchar(12);not null"`
	HallTicketEventActor        string            `json:"hall_ticket_event_actor"          gorm:"column:hall_ticket_event_actor;type:text"`
	HallTicketEventDetail       datatypes.JSONMap `json:"hall_ticket_event_detail"         gorm:"column:hall_ticket_event_detail;type:jsonb"`
	HallTicketEventCreatedAt    time.Time         `json:"hall_ticket_event_created_at"     gorm:"column:hall_ticket_event_created_at;type:timestamptz;not null;autoCreateTime"`
}

func (HallTicketEventModel) TableName() string {
	return "hall_ticket_events"
}
