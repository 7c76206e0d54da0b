package repository

import (
	"strings"
	"testing"
	"time"

	"hallticket_backend/internals/features/applications/hall_tickets/model"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// dryRunDB: dialect postgres tanpa koneksi; ToSQL tidak pernah mengeksekusi query.
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=127.0.0.1 port=5432 user=test dbname=test sslmode=disable",
	}), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return db
}

func ticket(uniqueID string) model.HallTicketModel {
	return model.HallTicketModel{
		HallTicketID:           uuid.New(),
		HallTicketSubmissionID: uuid.New(),
		HallTicketUniqueID:     uniqueID,
		HallTicketProgramCode:  "ECC",
		HallTicketIssuedAt:     time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		HallTicketStatus:       model.StatusIssued,
	}
}

func assertContains(t *testing.T, sql string, parts ...string) {
	t.Helper()
	for _, p := range parts {
		if !strings.Contains(sql, p) {
			t.Errorf("sql missing %q:\n%s", p, sql)
		}
	}
}

func TestInsertIfAbsentSQL(t *testing.T) {
	db := dryRunDB(t)
	tk := ticket("ECC123456789")
	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return insertIfAbsent(tx, &tk)
	})
	assertContains(t, sql,
		`INSERT INTO "hall_tickets"`,
		`ON CONFLICT ("hall_ticket_submission_id") DO NOTHING`,
		tk.HallTicketSubmissionID.String(),
	)
}

func TestSkipConflictsBulkSQL(t *testing.T) {
	db := dryRunDB(t)
	tickets := []model.HallTicketModel{ticket("ECC000000101"), ticket("ECC000000102")}
	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return skipConflicts(tx).Create(&tickets)
	})
	assertContains(t, sql, `INSERT INTO "hall_tickets"`, "ON CONFLICT DO NOTHING", "ECC000000101", "ECC000000102")
	if n := strings.Count(sql, "),("); n != 1 {
		t.Errorf("want one multi-row VALUES list, got %d separators:\n%s", n, sql)
	}
}

func TestWhereIDInSQL(t *testing.T) {
	db := dryRunDB(t)
	ids := []uuid.UUID{uuid.New(), uuid.New()}
	var found []uuid.UUID
	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return whereIDIn(tx.Model(&model.HallTicketModel{}), "hall_ticket_submission_id", ids).
			Pluck("hall_ticket_submission_id", &found)
	})
	assertContains(t, sql,
		`FROM "hall_tickets"`,
		"hall_ticket_submission_id = ANY(",
		"::uuid[]",
		ids[0].String(),
		ids[1].String(),
	)
}

func TestPluckPhotoURLsSQL(t *testing.T) {
	db := dryRunDB(t)
	var urls []string
	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return pluckPhotoURLs(tx, &urls)
	})
	assertContains(t, sql, `SELECT DISTINCT "hall_ticket_photo_url" FROM "hall_tickets"`, "COALESCE(hall_ticket_photo_url, '') <> ''")
}
