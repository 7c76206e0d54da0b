package details

import (
	htRoute "hallticket_backend/internals/features/applications/hall_tickets/route"
	htService "hallticket_backend/internals/features/applications/hall_tickets/service"
	"hallticket_backend/internals/features/applications/hall_tickets/views"
	statsRoute "hallticket_backend/internals/features/applications/stats/route"
	statsService "hallticket_backend/internals/features/applications/stats/service"
	subRoute "hallticket_backend/internals/features/applications/submissions/route"
	subService "hallticket_backend/internals/features/applications/submissions/service"
	uploadRoute "hallticket_backend/internals/features/applications/uploads/route"
	uploadService "hallticket_backend/internals/features/applications/uploads/service"
	"hallticket_backend/internals/middlewares"

	"github.com/gofiber/fiber/v2"
)

type ApplicationDeps struct {
	Submissions *subService.SubmissionService
	HallTickets *htService.HallTicketService
	Renderer    *views.Renderer
	Uploads     *uploadService.UploadService
	Stats       *statsService.StatsService
}

func ApplicationRoutes(api fiber.Router, d ApplicationDeps, adminAuth, optionalAuth fiber.Handler, limits middlewares.Limits) {
	subRoute.SubmissionRoutes(api, d.Submissions, adminAuth, limits)
	htRoute.HallTicketRoutes(api, d.HallTickets, d.Renderer, adminAuth, optionalAuth)
	uploadRoute.UploadRoutes(api, d.Uploads, limits)
	statsRoute.StatsRoutes(api, d.Stats, adminAuth)
}
