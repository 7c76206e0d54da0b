package route

import (
	"hallticket_backend/internals/features/auth/admins/controller"
	"hallticket_backend/internals/features/auth/admins/service"
	"hallticket_backend/internals/middlewares"

	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(api fiber.Router, svc *service.AdminService, adminAuth fiber.Handler, limits middlewares.Limits) {
	ctrl := controller.NewAdminController(svc)

	g := api.Group("/auth")
	g.Post("/login", limits.Login(), ctrl.Login)
	g.Post("/logout", ctrl.Logout)
	g.Get("/me", adminAuth, ctrl.Me)
}
