package route

import (
	"hallticket_backend/internals/constants"
	"hallticket_backend/internals/features/applications/stats/controller"
	"hallticket_backend/internals/features/applications/stats/service"
	authMiddleware "hallticket_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
)

func StatsRoutes(api fiber.Router, svc *service.StatsService, adminAuth fiber.Handler) {
	ctrl := controller.NewStatsController(svc)

	admin := api.Group("/admin",
		adminAuth,
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("dashboard"), constants.AdminAndAbove...),
	)
	admin.Get("/stats", ctrl.Dashboard)
}
