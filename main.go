package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/robfig/cron/v3"

	"hallticket_backend/internals/configs"
	"hallticket_backend/internals/constants"
	database "hallticket_backend/internals/databases"
	htRepo "hallticket_backend/internals/features/applications/hall_tickets/repository"
	htService "hallticket_backend/internals/features/applications/hall_tickets/service"
	"hallticket_backend/internals/features/applications/hall_tickets/views"
	statsService "hallticket_backend/internals/features/applications/stats/service"
	subRepo "hallticket_backend/internals/features/applications/submissions/repository"
	subService "hallticket_backend/internals/features/applications/submissions/service"
	uploadService "hallticket_backend/internals/features/applications/uploads/service"
	adminRepo "hallticket_backend/internals/features/auth/admins/repository"
	adminService "hallticket_backend/internals/features/auth/admins/service"
	helperOSS "hallticket_backend/internals/helpers/oss"
	middlewares "hallticket_backend/internals/middlewares"
	routes "hallticket_backend/internals/route"
	"hallticket_backend/internals/seeds"
)

// request timeout selaras dengan statement_timeout di DSN
const requestTimeout = 5 * time.Second

func main() {
	configs.LoadEnv()
	cfg := configs.Load()

	// 🔌 DB connect + pool + warm-up
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	database.TunePool(db)
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("❌ %v", err)
	}

	// repository → service
	submissions := subRepo.NewSubmissionRepository(db)
	hallTickets := htRepo.NewHallTicketRepository(db)
	admins := adminRepo.NewAdminRepository(db)

	adminSvc := adminService.NewAdminService(admins, cfg.JWTSecret, cfg.JWTTTL)

	// `go run . seed` → seed admin lalu keluar
	if len(os.Args) > 1 && os.Args[1] == "seed" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := seeds.RunAllSeeds(ctx, adminSvc, cfg); err != nil {
			log.Fatalf("❌ seed: %v", err)
		}
		log.Println("✅ seed selesai")
		return
	}

	if cfg.JWTSecret == "" {
		log.Fatal("❌ JWT_SECRET wajib diisi")
	}

	htSvc := htService.NewHallTicketService(hallTickets, submissions, htService.Options{
		Centre:       cfg.HallTicketCentre,
		StrictStatus: cfg.HallTicketStrictStatus,
	})
	subSvc := subService.NewSubmissionService(submissions, htSvc)
	statsSvc := statsService.NewStatsService(submissions, hallTickets)

	renderer, err := views.NewRenderer()
	if err != nil {
		log.Fatalf("❌ load templates: %v", err)
	}

	// 🗄️ blob store: OSS (produksi) atau disk lokal
	store, localDir := mustBlobStore(cfg)
	uploadSvc := uploadService.NewUploadService(store, cfg.PhotoAsWebP)

	// ⏱ reaper upload yatim
	var reaper *cron.Cron
	if cfg.ReaperEnabled {
		prefixes := make([]string, 0, 2)
		for _, b := range constants.AllBuckets() {
			prefixes = append(prefixes, b+"/")
		}
		reaper, err = helperOSS.StartOrphanReaperCron(helperOSS.ReaperConfig{
			Prefixes:      prefixes,
			RetentionDays: cfg.ReaperRetentionDays,
			CronSchedule:  cfg.ReaperCron,
			DryRun:        cfg.ReaperDryRun,
		}, store, helperOSS.MergeReferenced(subSvc.FileURLs, htSvc.PhotoURLs))
		if err != nil {
			log.Fatalf("❌ reaper: %v", err)
		}
	}

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ErrorHandler:            middlewares.ErrorHandler,
		BodyLimit:               int(constants.MaxUploadSize) + 1024*1024,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault})) // gzip
	app.Use(etag.New())                                                  // 304 caching
	middlewares.SetupMiddlewares(app, cfg.CorsAllowOrigins, requestTimeout)

	// ✅ Routes
	routes.SetupRoutes(app, routes.Deps{
		Config:         cfg,
		Submissions:    subSvc,
		HallTickets:    htSvc,
		Renderer:       renderer,
		Uploads:        uploadSvc,
		Stats:          statsSvc,
		Admins:         adminSvc,
		Limits:         middlewares.Limits{Disabled: configs.GetEnvBool("RATE_LIMIT_DISABLED", false)},
		Ping:           func(ctx context.Context) error { return database.Ping(ctx, db) },
		LocalUploadDir: localDir,
	})

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	database.WarmUp(db)

	// Start server non-blocking
	go func() {
		log.Printf("✅ Listening on :%s", cfg.Port)
		if err := app.Listen("0.0.0.0:" + cfg.Port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown: stop cron → fiber → pool DB (defer)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 shutting down...")

	if reaper != nil {
		<-reaper.Stop().Done()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)
}

func mustBlobStore(cfg *configs.Config) (helperOSS.BlobStore, string) {
	switch cfg.UploadDriver {
	case "local":
		s, err := helperOSS.NewLocalStore(cfg.UploadLocalDir, cfg.PublicBaseURL, "/uploads")
		if err != nil {
			log.Fatalf("❌ local store: %v", err)
		}
		log.Printf("🗄️ upload driver: local (%s)", cfg.UploadLocalDir)
		return s, cfg.UploadLocalDir
	default:
		s, err := helperOSS.NewOSSStoreFromEnv("")
		if err != nil {
			log.Fatalf("❌ OSS store: %v", err)
		}
		log.Printf("🗄️ upload driver: oss (bucket %s)", s.BucketName)
		return s, ""
	}
}
