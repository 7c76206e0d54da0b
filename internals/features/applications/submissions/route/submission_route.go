package route

import (
	"hallticket_backend/internals/constants"
	"hallticket_backend/internals/features/applications/submissions/controller"
	"hallticket_backend/internals/features/applications/submissions/service"
	"hallticket_backend/internals/middlewares"
	authMiddleware "hallticket_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
)

// SubmissionRoutes: /api/submissions. adminAuth = middleware JWT wajib.
func SubmissionRoutes(api fiber.Router, svc *service.SubmissionService, adminAuth fiber.Handler, limits middlewares.Limits) {
	ctrl := controller.NewSubmissionController(svc)
	onlyAdmin := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("submissions"), constants.AdminAndAbove...)

	g := api.Group("/submissions")

	// 🔓 publik
	g.Post("/", limits.Submit(), ctrl.Create)
	g.Get("/:id", ctrl.Get)

	// 🔐 admin
	g.Get("/", adminAuth, onlyAdmin, ctrl.List)
	g.Put("/:id", adminAuth, onlyAdmin, ctrl.Update)
	g.Delete("/:id", adminAuth, onlyAdmin, ctrl.Delete)
}
