package service_test

import (
	"context"
	"testing"

	"hallticket_backend/internals/databases/memory"
	htModel "hallticket_backend/internals/features/applications/hall_tickets/model"
	htService "hallticket_backend/internals/features/applications/hall_tickets/service"
	"hallticket_backend/internals/features/applications/stats/service"
	subModel "hallticket_backend/internals/features/applications/submissions/model"
)

func TestDashboardEmpty(t *testing.T) {
	store := memory.NewStore()
	svc := service.NewStatsService(store.Submissions(), store.HallTickets())

	res, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Submissions.Total != 0 || len(res.RecentSubmissions) != 0 || res.HallTickets.Total != 0 {
		t.Fatalf("res = %+v", res)
	}
	for _, k := range subModel.Categories {
		if v, ok := res.Submissions.Category[k]; !ok || v != 0 {
			t.Fatalf("category %s missing or non-zero", k)
		}
	}
	for _, k := range subModel.Statuses {
		if _, ok := res.Submissions.Status[k]; !ok {
			t.Fatalf("status %s missing", k)
		}
	}
	for _, k := range htModel.Statuses {
		if _, ok := res.HallTickets.Status[k]; !ok {
			t.Fatalf("hall ticket status %s missing", k)
		}
	}
}

func TestDashboardCounts(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	tix := htService.NewHallTicketService(store.HallTickets(), store.Submissions(), htService.Options{StrictStatus: true})

	for i := 0; i < 4; i++ {
		if err := store.Submissions().Create(ctx, memory.NewSubmission(subModel.CategoryECC, subModel.StatusSubmitted, "North")); err != nil {
			t.Fatal(err)
		}
	}
	for i := 0; i < 3; i++ {
		m := memory.NewSubmission(subModel.CategoryTCC, subModel.StatusApproved, "South")
		if err := store.Submissions().Create(ctx, m); err != nil {
			t.Fatal(err)
		}
		if _, _, err := tix.IssueForApproval(ctx, m, "admin"); err != nil {
			t.Fatal(err)
		}
	}

	res, err := service.NewStatsService(store.Submissions(), store.HallTickets()).Dashboard(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if res.Submissions.Total != 7 {
		t.Fatalf("total = %d", res.Submissions.Total)
	}
	if res.Submissions.Category["ECC"] != 4 || res.Submissions.Category["TCC"] != 3 {
		t.Fatalf("category = %v", res.Submissions.Category)
	}
	if res.Submissions.Status["submitted"] != 4 || res.Submissions.Status["approved"] != 3 || res.Submissions.Status["draft"] != 0 {
		t.Fatalf("status = %v", res.Submissions.Status)
	}
	if len(res.RecentSubmissions) != 5 {
		t.Fatalf("recent = %d, want 5", len(res.RecentSubmissions))
	}
	if res.HallTickets.Total != 3 || res.HallTickets.Status["issued"] != 3 {
		t.Fatalf("hall tickets = %+v", res.HallTickets)
	}
}
