package route

import (
	"hallticket_backend/internals/constants"
	"hallticket_backend/internals/features/applications/hall_tickets/controller"
	"hallticket_backend/internals/features/applications/hall_tickets/service"
	"hallticket_backend/internals/features/applications/hall_tickets/views"
	authMiddleware "hallticket_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
)

// HallTicketRoutes: /api/hall-tickets.
// adminAuth = JWT wajib, optionalAuth = JWT opsional (PATCH publik).
func HallTicketRoutes(api fiber.Router, svc *service.HallTicketService, renderer *views.Renderer, adminAuth, optionalAuth fiber.Handler) {
	ctrl := controller.NewHallTicketController(svc, renderer)
	onlyAdmin := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("hall tickets"), constants.AdminAndAbove...)

	g := api.Group("/hall-tickets")

	// 🔓 publik (path statis didaftarkan sebelum /:id)
	g.Get("/", ctrl.Lookup)
	g.Get("/print/:id", ctrl.Print)

	// 🔐 admin
	g.Post("/", adminAuth, onlyAdmin, ctrl.Issue)
	g.Get("/list", adminAuth, onlyAdmin, ctrl.List)
	g.Post("/batch", adminAuth, onlyAdmin, ctrl.Batch)
	g.Put("/:id", adminAuth, onlyAdmin, ctrl.Update)
	g.Get("/:id/events", adminAuth, onlyAdmin, ctrl.Events)

	g.Get("/:id", ctrl.Get)
	g.Patch("/:id", optionalAuth, ctrl.PatchStatus)
}
