package admins

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
)

type Seeder interface {
	SeedAdmin(ctx context.Context, username, password, name string) (bool, error)
}

type AdminSeed struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// SeedAdminsFromJSON membaca daftar admin dari file JSON; admin yang sudah ada dilewati.
func SeedAdminsFromJSON(ctx context.Context, s Seeder, filePath string) (int, error) {
	log.Println("📥 Membaca file admin:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", filePath, err)
	}

	var inputs []AdminSeed
	if err := json.Unmarshal(file, &inputs); err != nil {
		return 0, fmt.Errorf("decode %s: %w", filePath, err)
	}

	created := 0
	for _, data := range inputs {
		ok, err := s.SeedAdmin(ctx, data.Username, data.Password, data.Name)
		if err != nil {
			log.Printf("❌ Gagal insert admin '%s': %v", data.Username, err)
			continue
		}
		if ok {
			created++
		}
	}
	return created, nil
}
