package configs

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const DefaultHallTicketCentre = "ANVARUL ISLAM ARABIC COLLAGE RAMAPURAM"

// Config dibangun sekali di main lalu di-inject ke semua layer.
type Config struct {
	Port string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	DBSSLMode  string

	JWTSecret string
	JWTTTL    time.Duration

	HallTicketCentre       string
	HallTicketStrictStatus bool

	UploadDriver   string // "oss" | "local"
	UploadLocalDir string
	PublicBaseURL  string
	PhotoAsWebP    bool

	ReaperEnabled       bool
	ReaperCron          string
	ReaperRetentionDays int
	ReaperDryRun        bool

	CorsAllowOrigins string

	SeedAdminUsername string
	SeedAdminPassword string
	SeedAdminName     string
}

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ .env file not found, using system ENV")
		} else {
			log.Println("✅ .env file loaded")
		}
	} else {
		log.Println("🚀 Running in Railway, using system ENV")
	}
}

// Load membaca ENV (panggil LoadEnv dulu) dan mengisi Config dengan default.
func Load() *Config {
	cfg := &Config{
		Port: GetEnv("PORT", "3000"),

		DBUser:     GetEnv("DB_USER"),
		DBPassword: GetEnv("DB_PASSWORD"),
		DBHost:     GetEnv("DB_HOST", "localhost"),
		DBPort:     GetEnv("DB_PORT", "5432"),
		DBName:     GetEnv("DB_NAME"),
		DBSSLMode:  GetEnv("DB_SSLMODE", "require"),

		JWTSecret: GetEnv("JWT_SECRET"),
		JWTTTL:    time.Duration(GetEnvInt("JWT_TTL_HOURS", 24)) * time.Hour,

		HallTicketCentre:       GetEnv("HALL_TICKET_CENTRE", DefaultHallTicketCentre),
		HallTicketStrictStatus: GetEnvBool("HALL_TICKET_STRICT_STATUS", true),

		UploadDriver:   strings.ToLower(GetEnv("UPLOAD_DRIVER", "oss")),
		UploadLocalDir: GetEnv("UPLOAD_LOCAL_DIR", "./uploads"),
		PublicBaseURL:  strings.TrimRight(GetEnv("PUBLIC_BASE_URL", "http://localhost:3000"), "/"),
		PhotoAsWebP:    GetEnvBool("UPLOAD_PHOTO_WEBP", false),

		ReaperEnabled:       GetEnvBool("UPLOAD_REAPER_ENABLED", false),
		ReaperCron:          GetEnv("UPLOAD_REAPER_CRON", "15 2 * * *"),
		ReaperRetentionDays: GetEnvInt("UPLOAD_REAPER_RETENTION_DAYS", 30),
		ReaperDryRun:        GetEnvBool("UPLOAD_REAPER_DRY_RUN", true),

		CorsAllowOrigins: GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000, http://localhost:5173"),

		SeedAdminUsername: GetEnv("SEED_ADMIN_USERNAME", "admin"),
		SeedAdminPassword: GetEnv("SEED_ADMIN_PASSWORD"),
		SeedAdminName:     GetEnv("SEED_ADMIN_NAME", "Admin User"),
	}

	if cfg.JWTSecret == "" {
		log.Println("❌ JWT_SECRET is not set!")
	} else {
		log.Println("✅ JWT_SECRET loaded.")
	}
	return cfg
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if (!exists || strings.TrimSpace(value) == "") && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return strings.TrimSpace(value)
}

func GetEnvInt(key string, def int) int {
	v := GetEnv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}

func GetEnvBool(key string, def bool) bool {
	v := GetEnv(key)
	if v == "" {
		return def
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return def
	}
}
