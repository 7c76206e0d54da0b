package database

import (
	"fmt"
	"log"

	htModel "hallticket_backend/internals/features/applications/hall_tickets/model"
	subModel "hallticket_backend/internals/features/applications/submissions/model"
	adminModel "hallticket_backend/internals/features/auth/admins/model"

	"gorm.io/gorm"
)

// FK dibuat manual: kolom snapshot ber-prefix, tanpa field relasi di model.
var foreignKeys = []struct {
	Table, Name, SQL string
}{
	{
		Table: "hall_tickets",
		Name:  "fk_hall_tickets_submission",
		SQL: `ALTER TABLE hall_tickets ADD CONSTRAINT fk_hall_tickets_submission
			FOREIGN KEY (hall_ticket_submission_id) REFERENCES submissions(submission_id) ON DELETE CASCADE`,
	},
	{
		Table: "hall_ticket_events",
		Name:  "fk_hall_ticket_events_ticket",
		SQL: `ALTER TABLE hall_ticket_events ADD CONSTRAINT fk_hall_ticket_events_ticket
			FOREIGN KEY (hall_ticket_event_hall_ticket_id) REFERENCES hall_tickets(hall_ticket_id) ON DELETE CASCADE`,
	},
}

// AutoMigrate membuat tabel, index unik, dan FK cascade. Idempotent.
func AutoMigrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		log.Printf("[WARN] pgcrypto extension: %v", err)
	}

	if err := db.AutoMigrate(
		&subModel.SubmissionModel{},
		&htModel.HallTicketModel{},
		&htModel.HallTicketEventModel{},
		&adminModel.AdminModel{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	for _, fk := range foreignKeys {
		var exists bool
		if err := db.Raw(
			`SELECT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = ?)`, fk.Name,
		).Scan(&exists).Error; err != nil {
			return fmt.Errorf("check constraint %s: %w", fk.Name, err)
		}
		if exists {
			continue
		}
		if err := db.Exec(fk.SQL).Error; err != nil {
			return fmt.Errorf("add constraint %s on %s: %w", fk.Name, fk.Table, err)
		}
		log.Printf("✅ constraint %s created", fk.Name)
	}
	return nil
}
