package service

import (
	"context"

	htModel "hallticket_backend/internals/features/applications/hall_tickets/model"
	"hallticket_backend/internals/features/applications/stats/dto"
	subDTO "hallticket_backend/internals/features/applications/submissions/dto"
	subModel "hallticket_backend/internals/features/applications/submissions/model"
	subRepo "hallticket_backend/internals/features/applications/submissions/repository"
)

const recentLimit = 5

type SubmissionCounter interface {
	CountBy(ctx context.Context, column string) (map[string]int64, error)
	List(ctx context.Context, f subRepo.ListFilter) ([]subModel.SubmissionModel, int64, error)
}

type HallTicketCounter interface {
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

type StatsService struct {
	submissions SubmissionCounter
	hallTickets HallTicketCounter
}

func NewStatsService(submissions SubmissionCounter, hallTickets HallTicketCounter) *StatsService {
	return &StatsService{submissions: submissions, hallTickets: hallTickets}
}

// zeroFill: semua key yang dikenal selalu muncul walau count 0.
func zeroFill(keys []string, counts map[string]int64) (map[string]int64, int64) {
	out := make(map[string]int64, len(keys))
	var total int64
	for _, k := range keys {
		out[k] = counts[k]
	}
	for _, v := range counts {
		total += v
	}
	return out, total
}

// Dashboard: read-only, tidak mengubah data.
func (s *StatsService) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	byCategory, err := s.submissions.CountBy(ctx, subRepo.CountByCategory)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.submissions.CountBy(ctx, subRepo.CountByStatus)
	if err != nil {
		return nil, err
	}
	recent, total, err := s.submissions.List(ctx, subRepo.ListFilter{Limit: recentLimit})
	if err != nil {
		return nil, err
	}
	byTicket, err := s.hallTickets.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	res := &dto.DashboardResponse{
		RecentSubmissions: make([]subDTO.RecentSubmission, 0, len(recent)),
	}
	res.Submissions.Total = total
	res.Submissions.Category, _ = zeroFill(subModel.Categories, byCategory)
	res.Submissions.Status, _ = zeroFill(subModel.Statuses, byStatus)
	res.HallTickets.Status, res.HallTickets.Total = zeroFill(htModel.Statuses, byTicket)

	for _, m := range recent {
		res.RecentSubmissions = append(res.RecentSubmissions, subDTO.ToRecent(m))
	}
	return res, nil
}
