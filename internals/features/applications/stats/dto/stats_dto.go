package dto

import subDTO "hallticket_backend/internals/features/applications/submissions/dto"

type SubmissionStats struct {
	Total    int64            `json:"total"`
	Category map[string]int64 `json:"category"`
	Status   map[string]int64 `json:"status"`
}

type HallTicketStats struct {
	Total  int64            `json:"total"`
	Status map[string]int64 `json:"status"`
}

// DashboardResponse: GET /api/admin/stats
type DashboardResponse struct {
	Submissions       SubmissionStats           `json:"submissions"`
	RecentSubmissions []subDTO.RecentSubmission `json:"recent_submissions"`
	HallTickets       HallTicketStats           `json:"hall_tickets"`
}
