package controller

import (
	"strings"

	"hallticket_backend/internals/features/applications/uploads/service"
	helper "hallticket_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
)

type UploadController struct {
	Svc *service.UploadService
}

func NewUploadController(svc *service.UploadService) *UploadController {
	return &UploadController{Svc: svc}
}

// POST /api/upload (multipart: file, type=photo|payment)
func (ctrl *UploadController) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "File is required")
	}
	kind := strings.ToLower(strings.TrimSpace(c.FormValue("type")))

	res, err := ctrl.Svc.Upload(c.UserContext(), kind, fh)
	if err != nil {
		return helper.JsonFromError(c, err, "")
	}
	return helper.JsonOK(c, "File uploaded successfully", "upload", res)
}
