package controller

import (
	"errors"
	"time"

	"hallticket_backend/internals/features/auth/admins/dto"
	"hallticket_backend/internals/features/auth/admins/service"
	helper "hallticket_backend/internals/helpers"
	authMiddleware "hallticket_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AdminController struct {
	Svc *service.AdminService
}

func NewAdminController(svc *service.AdminService) *AdminController {
	return &AdminController{Svc: svc}
}

// POST /api/auth/login
func (ctrl *AdminController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	if err := req.Validate(); err != nil {
		return helper.ValidationError(c, err)
	}

	res, err := ctrl.Svc.Authenticate(c.UserContext(), req)
	if err != nil {
		if errors.Is(err, helper.ErrUnauthorized) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid username or password")
		}
		return helper.JsonFromError(c, err, "")
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    res.AccessToken,
		Expires:  res.ExpiresAt,
		HTTPOnly: true,
		Secure:   c.Protocol() == "https",
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
	return helper.JsonOK(c, "Login successful", "data", res)
}

// POST /api/auth/logout: hapus cookie saja (token stateless).
func (ctrl *AdminController) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Path:     "/",
	})
	return helper.JsonOK(c, "Logout successful", "", nil)
}

// GET /api/auth/me
func (ctrl *AdminController) Me(c *fiber.Ctx) error {
	admin, ok := authMiddleware.AdminFromCtx(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(admin.ID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	res, err := ctrl.Svc.Me(c.UserContext(), id)
	if err != nil {
		return helper.JsonFromError(c, err, "Admin not found")
	}
	return helper.JsonOK(c, "ok", "admin", res)
}
