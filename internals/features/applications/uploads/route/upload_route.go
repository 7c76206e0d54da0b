package route

import (
	"hallticket_backend/internals/features/applications/uploads/controller"
	"hallticket_backend/internals/features/applications/uploads/service"
	"hallticket_backend/internals/middlewares"

	"github.com/gofiber/fiber/v2"
)

func UploadRoutes(api fiber.Router, svc *service.UploadService, limits middlewares.Limits) {
	ctrl := controller.NewUploadController(svc)
	api.Post("/upload", limits.Upload(), ctrl.Upload)
}
