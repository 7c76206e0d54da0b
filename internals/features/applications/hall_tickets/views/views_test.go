package views

import (
	"strings"
	"testing"
	"time"

	"hallticket_backend/internals/features/applications/hall_tickets/model"
)

func TestRenderTicket(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("load templates: %v", err)
	}
	tk := &model.HallTicketModel{
		HallTicketUniqueID:     "ECC123456789",
		HallTicketProgramCode:  "ECC",
		HallTicketCentre:       "TEST CENTRE",
		HallTicketName:         "Ali <script>",
		HallTicketDateOfBirth:  "2005-01-01",
		HallTicketZone:         "North",
		HallTicketMembershipID: "M-77",
		HallTicketPhotoURL:     "https://cdn.test/p.jpg",
		HallTicketIssuedAt:     time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC),
	}

	page, err := r.RenderTicket(tk)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(page)
	for _, want := range []string{
		"ENTRANCE EXAMINATION HALL TICKET",
		"TEST CENTRE",
		"ECC123456789",
		"M-77",
		"https://cdn.test/p.jpg",
		"REF: AI/EEP/2025/ECC123456789",
		"SKSSF Unit Secretary",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(html, "<script>") {
		t.Error("candidate name must be escaped")
	}
}
