package dto

import (
	"fmt"
	"strings"

	"hallticket_backend/internals/features/applications/hall_tickets/repository"
	"hallticket_backend/internals/features/applications/hall_tickets/service"
	helper "hallticket_backend/internals/helpers"

	"github.com/google/uuid"
)

/* =========================
   Issue
========================= */

// IssueRequest menerima snake_case maupun camelCase (klien lama).
type IssueRequest struct {
	SubmissionID      string `json:"submission_id"`
	SubmissionIDCamel string `json:"submissionId"`
}

func (r IssueRequest) Parse() (uuid.UUID, error) {
	raw := strings.TrimSpace(r.SubmissionID)
	if raw == "" {
		raw = strings.TrimSpace(r.SubmissionIDCamel)
	}
	if raw == "" {
		return uuid.Nil, fmt.Errorf("%w: submission_id is required", helper.ErrInvalidInput)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: submission_id must be a valid uuid", helper.ErrInvalidInput)
	}
	return id, nil
}

/* =========================
   Batch
========================= */

type BatchFilter struct {
	Category string `json:"category"`
	Zone     string `json:"zone"`
}

// BatchRequest: {"filter":{...}} atau field datar {"category","zone"}.
type BatchRequest struct {
	Filter   *BatchFilter `json:"filter"`
	Category string       `json:"category"`
	Zone     string       `json:"zone"`
}

func (r BatchRequest) ToFilter() service.BatchFilter {
	category, zone := r.Category, r.Zone
	if r.Filter != nil {
		category, zone = r.Filter.Category, r.Filter.Zone
	}
	return service.BatchFilter{
		Category: strings.ToUpper(strings.TrimSpace(category)),
		Zone:     strings.TrimSpace(zone),
	}
}

/* =========================
   Status / update
========================= */

type PatchStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=issued downloaded used"`
}

func (r *PatchStatusRequest) Validate() error {
	r.Status = strings.ToLower(strings.TrimSpace(r.Status))
	return helper.Validator().Struct(r)
}

// UpdateHallTicketRequest: PUT admin. Field nil = tidak diubah.
type UpdateHallTicketRequest struct {
	Centre       *string `json:"hall_ticket_centre"        validate:"omitempty,min=1"`
	Name         *string `json:"hall_ticket_name"          validate:"omitempty,min=1"`
	DateOfBirth  *string `json:"hall_ticket_date_of_birth" validate:"omitempty,min=1"`
	Zone         *string `json:"hall_ticket_zone"          validate:"omitempty,min=1"`
	MembershipID *string `json:"hall_ticket_membership_id" validate:"omitempty,min=1"`
	Status       *string `json:"hall_ticket_status"        validate:"omitempty,oneof=issued downloaded used"`
}

func (r *UpdateHallTicketRequest) Normalize() {
	for _, p := range []*string{r.Centre, r.Name, r.DateOfBirth, r.Zone, r.MembershipID} {
		if p != nil {
			*p = strings.TrimSpace(*p)
		}
	}
	if r.Status != nil {
		*r.Status = strings.ToLower(strings.TrimSpace(*r.Status))
	}
}

func (r *UpdateHallTicketRequest) Validate() error {
	if err := helper.Validator().Struct(r); err != nil {
		return err
	}
	if r.Centre == nil && r.Name == nil && r.DateOfBirth == nil && r.Zone == nil && r.MembershipID == nil && r.Status == nil {
		return fmt.Errorf("%w: empty update", helper.ErrInvalidInput)
	}
	return nil
}

func (r *UpdateHallTicketRequest) ToUpdate() service.FieldsUpdate {
	return service.FieldsUpdate{
		Patch: repository.FieldsPatch{
			Centre:       r.Centre,
			Name:         r.Name,
			DateOfBirth:  r.DateOfBirth,
			Zone:         r.Zone,
			MembershipID: r.MembershipID,
		},
		Status: r.Status,
	}
}

/* =========================
   Query
========================= */

// LookupQuery: GET /hall-tickets?submission_id=&unique_id=
type LookupQuery struct {
	SubmissionID      string `query:"submission_id"`
	SubmissionIDCamel string `query:"submissionId"`
	UniqueID          string `query:"unique_id"`
	UniqueIDCamel     string `query:"uniqueId"`
}

func (q LookupQuery) Resolve() (submissionID, uniqueID string) {
	submissionID = strings.TrimSpace(q.SubmissionID)
	if submissionID == "" {
		submissionID = strings.TrimSpace(q.SubmissionIDCamel)
	}
	uniqueID = strings.TrimSpace(q.UniqueID)
	if uniqueID == "" {
		uniqueID = strings.TrimSpace(q.UniqueIDCamel)
	}
	return submissionID, uniqueID
}

type ListQuery struct {
	Status           string `query:"status"`
	ProgramCode      string `query:"program_code"`
	ProgramCodeCamel string `query:"programCode"`
	Zone             string `query:"zone"`
}

func (q ListQuery) ToFilter(p helper.Paging) repository.ListFilter {
	code := q.ProgramCode
	if strings.TrimSpace(code) == "" {
		code = q.ProgramCodeCamel
	}
	return repository.ListFilter{
		Status:      strings.ToLower(strings.TrimSpace(q.Status)),
		ProgramCode: strings.ToUpper(strings.TrimSpace(code)),
		Zone:        strings.TrimSpace(q.Zone),
		Limit:       p.Limit,
		Offset:      p.Offset,
	}
}
