package service_test

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"hallticket_backend/internals/databases/memory"
	htModel "hallticket_backend/internals/features/applications/hall_tickets/model"
	htRepo "hallticket_backend/internals/features/applications/hall_tickets/repository"
	htService "hallticket_backend/internals/features/applications/hall_tickets/service"
	"hallticket_backend/internals/features/applications/submissions/dto"
	"hallticket_backend/internals/features/applications/submissions/model"
	"hallticket_backend/internals/features/applications/submissions/service"
	helper "hallticket_backend/internals/helpers"
	helperOSS "hallticket_backend/internals/helpers/oss"
)

type fixture struct {
	store *memory.Store
	subs  *service.SubmissionService
	tix   *htService.HallTicketService
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := memory.NewStore()
	tix := htService.NewHallTicketService(store.HallTickets(), store.Submissions(), htService.Options{
		Centre:       "TEST CENTRE",
		StrictStatus: true,
	})
	return fixture{
		store: store,
		subs:  service.NewSubmissionService(store.Submissions(), tix),
		tix:   tix,
	}
}

func (f fixture) seed(t *testing.T, category, status string) *model.SubmissionModel {
	t.Helper()
	m := memory.NewSubmission(category, status, "North")
	if err := f.store.Submissions().Create(context.Background(), m); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return m
}

func (f fixture) ticketCount(t *testing.T) int64 {
	t.Helper()
	_, total, err := f.store.HallTickets().List(context.Background(), htRepo.ListFilter{})
	if err != nil {
		t.Fatal(err)
	}
	return total
}

func createRequest() dto.CreateSubmissionRequest {
	m := memory.NewSubmission(model.CategoryECC, "", "South")
	return dto.CreateSubmissionRequest{
		SubmissionCategory:  "ecc",
		SubmissionPersonal:  m.SubmissionPersonal,
		SubmissionEducation: m.SubmissionEducation,
	}
}

func TestCreateGeneratesUniqueID(t *testing.T) {
	f := newFixture(t)
	m, err := f.subs.Create(context.Background(), createRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !regexp.MustCompile(`^ECC\d{9}$`).MatchString(m.SubmissionUniqueID) {
		t.Fatalf("unique id = %q", m.SubmissionUniqueID)
	}
	if m.SubmissionStatus != model.StatusSubmitted {
		t.Fatalf("status = %s", m.SubmissionStatus)
	}

	got, err := f.subs.Get(context.Background(), m.SubmissionUniqueID)
	if err != nil || got.SubmissionID != m.SubmissionID {
		t.Fatalf("get by unique id: %v %+v", err, got)
	}
}

func TestCreateDuplicateUniqueID(t *testing.T) {
	f := newFixture(t)
	req := createRequest()
	req.SubmissionUniqueID = "ECC123456789"
	if _, err := f.subs.Create(context.Background(), req); err != nil {
		t.Fatal(err)
	}
	if _, err := f.subs.Create(context.Background(), req); !errors.Is(err, helper.ErrDuplicate) {
		t.Fatalf("want ErrDuplicate, got %v", err)
	}
}

func TestCreateValidationError(t *testing.T) {
	f := newFixture(t)
	req := createRequest()
	req.SubmissionPersonal.PhotoURL = ""
	_, err := f.subs.Create(context.Background(), req)
	ve, ok := helper.AsValidationErrors(err)
	if !ok {
		t.Fatalf("want validation error, got %v", err)
	}
	if helper.ValidationFields(ve)["submission_personal.photo_url"] != "required" {
		t.Fatalf("fields = %v", helper.ValidationFields(ve))
	}
}

func TestApproveIssuesHallTicket(t *testing.T) {
	f := newFixture(t)
	sub := f.seed(t, model.CategoryECC, model.StatusSubmitted)

	res, err := f.subs.Apply(context.Background(), sub.SubmissionID, dto.SetStatus{Status: model.StatusApproved}, "admin")
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if res.Submission.SubmissionStatus != model.StatusApproved {
		t.Fatalf("status = %s", res.Submission.SubmissionStatus)
	}
	if res.HallTicket == nil || !res.HallTicketCreated {
		t.Fatalf("expected a new hall ticket, got %+v", res)
	}
	tk := res.HallTicket
	if tk.HallTicketUniqueID != sub.SubmissionUniqueID || tk.HallTicketProgramCode != "ECC" ||
		tk.HallTicketCentre != "TEST CENTRE" || tk.HallTicketStatus != htModel.StatusIssued ||
		tk.HallTicketName != sub.SubmissionPersonal.Name || tk.HallTicketZone != "North" {
		t.Fatalf("snapshot mismatch: %+v", tk)
	}

	events, err := f.tix.Events(context.Background(), tk.HallTicketID)
	if err != nil || len(events) != 1 || events[0].HallTicketEventSource != htModel.EventSourceIssue {
		t.Fatalf("events = %+v err=%v", events, err)
	}
}

func TestRejectDoesNotIssue(t *testing.T) {
	f := newFixture(t)
	sub := f.seed(t, model.CategoryTCC, model.StatusSubmitted)

	res, err := f.subs.Apply(context.Background(), sub.SubmissionID, dto.SetStatus{Status: model.StatusRejected}, "admin")
	if err != nil {
		t.Fatal(err)
	}
	if res.HallTicket != nil || f.ticketCount(t) != 0 {
		t.Fatal("rejecting must not issue a hall ticket")
	}
}

func TestReapproveIsIdempotent(t *testing.T) {
	f := newFixture(t)
	sub := f.seed(t, model.CategoryECC, model.StatusSubmitted)
	ctx := context.Background()

	first, err := f.subs.Apply(ctx, sub.SubmissionID, dto.SetStatus{Status: model.StatusApproved}, "a")
	if err != nil {
		t.Fatal(err)
	}
	second, err := f.subs.Apply(ctx, sub.SubmissionID, dto.SetStatus{Status: model.StatusApproved}, "b")
	if err != nil {
		t.Fatal(err)
	}
	if second.HallTicketCreated {
		t.Fatal("second approval must not create a ticket")
	}
	if second.HallTicket.HallTicketID != first.HallTicket.HallTicketID {
		t.Fatal("second approval must return the existing ticket")
	}

	// approved → rejected → approved tetap satu tiket
	if _, err := f.subs.Apply(ctx, sub.SubmissionID, dto.SetStatus{Status: model.StatusRejected}, "a"); err != nil {
		t.Fatal(err)
	}
	if _, err := f.subs.Apply(ctx, sub.SubmissionID, dto.SetStatus{Status: model.StatusApproved}, "a"); err != nil {
		t.Fatal(err)
	}
	if n := f.ticketCount(t); n != 1 {
		t.Fatalf("ticket count = %d, want 1", n)
	}
}

func TestConcurrentApprovalsIssueOneTicket(t *testing.T) {
	f := newFixture(t)
	sub := f.seed(t, model.CategoryECC, model.StatusSubmitted)

	const workers = 16
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := f.subs.Apply(context.Background(), sub.SubmissionID, dto.SetStatus{Status: model.StatusApproved}, "admin")
			if err != nil {
				t.Errorf("approve: %v", err)
				return
			}
			if res.HallTicketCreated {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if created != 1 {
		t.Fatalf("created = %d, want exactly 1", created)
	}
	if n := f.ticketCount(t); n != 1 {
		t.Fatalf("ticket count = %d, want 1", n)
	}
}

func TestSnapshotIgnoresLaterEdits(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sub := f.seed(t, model.CategoryECC, model.StatusSubmitted)

	res, err := f.subs.Apply(ctx, sub.SubmissionID, dto.SetStatus{Status: model.StatusApproved}, "admin")
	if err != nil {
		t.Fatal(err)
	}
	originalName := res.HallTicket.HallTicketName

	personal := sub.SubmissionPersonal
	personal.Name = "Renamed Student"
	if _, err := f.subs.Apply(ctx, sub.SubmissionID, dto.ReplaceFields{Personal: &personal}, "admin"); err != nil {
		t.Fatal(err)
	}

	updated, _ := f.subs.Get(ctx, sub.SubmissionID.String())
	if updated.SubmissionPersonal.Name != "Renamed Student" {
		t.Fatalf("submission not updated: %s", updated.SubmissionPersonal.Name)
	}
	tk, err := f.tix.GetBySubmission(ctx, sub.SubmissionID)
	if err != nil {
		t.Fatal(err)
	}
	if tk.HallTicketName != originalName {
		t.Fatalf("ticket name changed to %q", tk.HallTicketName)
	}
}

func TestReaperKeepsTicketPhotoAfterPhotoReplaced(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sub := f.seed(t, model.CategoryECC, model.StatusSubmitted)
	if _, err := f.subs.Apply(ctx, sub.SubmissionID, dto.SetStatus{Status: model.StatusApproved}, "admin"); err != nil {
		t.Fatal(err)
	}

	now := time.Now()
	old := now.Add(-60 * 24 * time.Hour)
	blobs := helperOSS.NewMemoryStore("https://cdn.test")
	oldKey, ok := blobs.KeyFromURL(sub.SubmissionPersonal.PhotoURL)
	if !ok {
		t.Fatalf("photo url %q outside blob store", sub.SubmissionPersonal.PhotoURL)
	}
	const newKey = "student-photos/999-new.jpg"
	blobs.PutAt(oldKey, []byte("old"), old)
	blobs.PutAt(newKey, []byte("new"), old)

	personal := sub.SubmissionPersonal
	personal.PhotoURL = blobs.PublicURL(newKey)
	if _, err := f.subs.Apply(ctx, sub.SubmissionID, dto.ReplaceFields{Personal: &personal}, "admin"); err != nil {
		t.Fatal(err)
	}

	prefixes := []string{"student-photos/", "payment-proofs/"}
	retention := 30 * 24 * time.Hour

	// foto lama hanya dirujuk tiket
	orphans, err := helperOSS.RunOrphanReaper(ctx, blobs, f.subs.FileURLs, prefixes, retention, true, now)
	if err != nil {
		t.Fatal(err)
	}
	if len(orphans) != 1 || orphans[0] != oldKey {
		t.Fatalf("submission refs only: orphans = %v", orphans)
	}

	referenced := helperOSS.MergeReferenced(f.subs.FileURLs, f.tix.PhotoURLs)
	deleted, err := helperOSS.RunOrphanReaper(ctx, blobs, referenced, prefixes, retention, false, now)
	if err != nil {
		t.Fatal(err)
	}
	if len(deleted) != 0 {
		t.Fatalf("deleted %v", deleted)
	}
	for _, k := range []string{oldKey, newKey} {
		if _, _, ok := blobs.Get(k); !ok {
			t.Fatalf("%s was removed", k)
		}
	}

	tk, err := f.tix.GetBySubmission(ctx, sub.SubmissionID)
	if err != nil {
		t.Fatal(err)
	}
	if tk.HallTicketPhotoURL != blobs.PublicURL(oldKey) {
		t.Fatalf("ticket photo = %s", tk.HallTicketPhotoURL)
	}
}

func TestInvalidSubmissionTransition(t *testing.T) {
	f := newFixture(t)
	sub := f.seed(t, model.CategoryECC, model.StatusApproved)
	_, err := f.subs.Apply(context.Background(), sub.SubmissionID, dto.SetStatus{Status: model.StatusDraft}, "admin")
	if !errors.Is(err, helper.ErrInvalidTransition) {
		t.Fatalf("want ErrInvalidTransition, got %v", err)
	}
}

func TestDeleteCascadesToHallTicket(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sub := f.seed(t, model.CategoryECC, model.StatusSubmitted)
	if _, err := f.subs.Apply(ctx, sub.SubmissionID, dto.SetStatus{Status: model.StatusApproved}, "admin"); err != nil {
		t.Fatal(err)
	}
	if err := f.subs.Delete(ctx, sub.SubmissionID); err != nil {
		t.Fatal(err)
	}
	if _, err := f.tix.GetBySubmission(ctx, sub.SubmissionID); !errors.Is(err, helper.ErrNotFound) {
		t.Fatalf("ticket should be gone, got %v", err)
	}
	if err := f.subs.Delete(ctx, sub.SubmissionID); !errors.Is(err, helper.ErrNotFound) {
		t.Fatalf("second delete: want ErrNotFound, got %v", err)
	}
}

func TestListFiltersAndPaging(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 3; i++ {
		f.seed(t, model.CategoryECC, model.StatusSubmitted)
	}
	f.seed(t, model.CategoryTCC, model.StatusApproved)

	rows, total, err := f.subs.List(context.Background(), dto.ListQuery{Category: "ecc"}, helper.NormalizePaging(1, 2, 20, 100))
	if err != nil {
		t.Fatal(err)
	}
	if total != 3 || len(rows) != 2 {
		t.Fatalf("total=%d len=%d", total, len(rows))
	}

	if _, _, err := f.subs.List(context.Background(), dto.ListQuery{Status: "archived"}, helper.NormalizePaging(1, 0, 20, 100)); !errors.Is(err, helper.ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput, got %v", err)
	}
}
