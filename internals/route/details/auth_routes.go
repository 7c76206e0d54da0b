package details

import (
	adminRoute "hallticket_backend/internals/features/auth/admins/route"
	adminService "hallticket_backend/internals/features/auth/admins/service"
	"hallticket_backend/internals/middlewares"

	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(api fiber.Router, svc *adminService.AdminService, adminAuth fiber.Handler, limits middlewares.Limits) {
	adminRoute.AuthRoutes(api, svc, adminAuth, limits)
}
