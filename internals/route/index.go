package routes

import (
	"context"
	"log"
	"time"

	"hallticket_backend/internals/configs"
	htService "hallticket_backend/internals/features/applications/hall_tickets/service"
	"hallticket_backend/internals/features/applications/hall_tickets/views"
	statsService "hallticket_backend/internals/features/applications/stats/service"
	subService "hallticket_backend/internals/features/applications/submissions/service"
	uploadService "hallticket_backend/internals/features/applications/uploads/service"
	adminService "hallticket_backend/internals/features/auth/admins/service"
	"hallticket_backend/internals/middlewares"
	authMiddleware "hallticket_backend/internals/middlewares/auth"
	routeDetails "hallticket_backend/internals/route/details"

	"github.com/gofiber/fiber/v2"
)

var startTime time.Time

// Deps: semua service sudah dirakit di main (atau di test dengan store in-memory).
type Deps struct {
	Config      *configs.Config
	Submissions *subService.SubmissionService
	HallTickets *htService.HallTicketService
	Renderer    *views.Renderer
	Uploads     *uploadService.UploadService
	Stats       *statsService.StatsService
	Admins      *adminService.AdminService
	Limits      middlewares.Limits

	// Ping: health check DB; nil = tanpa DB.
	Ping func(ctx context.Context) error

	// LocalUploadDir: di-serve statis di /uploads bila driver "local".
	LocalUploadDir string
}

func SetupRoutes(app *fiber.App, d Deps) {
	startTime = time.Now()

	BaseRoutes(app, d.Ping)

	if d.LocalUploadDir != "" {
		log.Println("[INFO] Serving local uploads at /uploads")
		app.Static("/uploads", d.LocalUploadDir, fiber.Static{
			Browse: false,
			MaxAge: 3600,
		})
	}

	adminAuth := authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
		Secret:              d.Config.JWTSecret,
		AllowCookieFallback: true,
	})
	optionalAuth := authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
		Secret:              d.Config.JWTSecret,
		Optional:            true,
		AllowCookieFallback: true,
	})

	api := app.Group("/api", d.Limits.Global())

	log.Println("[INFO] Mounting Auth routes...")
	routeDetails.AuthRoutes(api, d.Admins, adminAuth, d.Limits)

	log.Println("[INFO] Mounting Application routes...")
	routeDetails.ApplicationRoutes(api, routeDetails.ApplicationDeps{
		Submissions: d.Submissions,
		HallTickets: d.HallTickets,
		Renderer:    d.Renderer,
		Uploads:     d.Uploads,
		Stats:       d.Stats,
	}, adminAuth, optionalAuth, d.Limits)
}
