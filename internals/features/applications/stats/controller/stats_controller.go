package controller

import (
	"hallticket_backend/internals/features/applications/stats/service"
	helper "hallticket_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
)

type StatsController struct {
	Svc *service.StatsService
}

func NewStatsController(svc *service.StatsService) *StatsController {
	return &StatsController{Svc: svc}
}

// GET /api/admin/stats
func (ctrl *StatsController) Dashboard(c *fiber.Ctx) error {
	res, err := ctrl.Svc.Dashboard(c.UserContext())
	if err != nil {
		return helper.JsonFromError(c, err, "")
	}
	return helper.JsonOK(c, "ok", "stats", res)
}
