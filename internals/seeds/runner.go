package seeds

import (
	"context"
	"log"
	"strings"

	"hallticket_backend/internals/configs"
	"hallticket_backend/internals/seeds/admins"
)

// RunAllSeeds: dijalankan lewat `go run . seed`.
func RunAllSeeds(ctx context.Context, s admins.Seeder, cfg *configs.Config) error {
	//* Admin dari ENV
	if strings.TrimSpace(cfg.SeedAdminPassword) == "" {
		log.Println("⚠️ SEED_ADMIN_PASSWORD kosong, seed admin ENV dilewati")
	} else if _, err := s.SeedAdmin(ctx, cfg.SeedAdminUsername, cfg.SeedAdminPassword, cfg.SeedAdminName); err != nil {
		return err
	}

	//* Admin tambahan dari file JSON (opsional)
	if path := configs.GetEnv("SEED_ADMINS_FILE"); path != "" {
		n, err := admins.SeedAdminsFromJSON(ctx, s, path)
		if err != nil {
			return err
		}
		log.Printf("✅ %d admin baru dari %s", n, path)
	}
	return nil
}
