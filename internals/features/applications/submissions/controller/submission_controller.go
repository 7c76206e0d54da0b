package controller

import (
	"hallticket_backend/internals/features/applications/submissions/dto"
	"hallticket_backend/internals/features/applications/submissions/service"
	helper "hallticket_backend/internals/helpers"
	authMiddleware "hallticket_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
)

const msgSubmissionNotFound = "Submission not found"

type SubmissionController struct {
	Svc *service.SubmissionService
}

func NewSubmissionController(svc *service.SubmissionService) *SubmissionController {
	return &SubmissionController{Svc: svc}
}

// POST /api/submissions (publik)
func (ctrl *SubmissionController) Create(c *fiber.Ctx) error {
	var req dto.CreateSubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	m, err := ctrl.Svc.Create(c.UserContext(), req)
	if err != nil {
		return helper.JsonFromError(c, err, "")
	}
	return helper.JsonCreated(c, "Form submitted successfully!", "submission", m)
}

// GET /api/submissions (admin)
func (ctrl *SubmissionController) List(c *fiber.Ctx) error {
	var q dto.ListQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query parameters")
	}
	p := helper.ResolvePaging(c, 20, 100)

	rows, total, err := ctrl.Svc.List(c.UserContext(), q, p)
	if err != nil {
		return helper.JsonFromError(c, err, "")
	}
	return helper.JsonList(c, "submissions", rows, helper.BuildPagination(total, p))
}

// GET /api/submissions/:id (id internal atau unique id)
func (ctrl *SubmissionController) Get(c *fiber.Ctx) error {
	m, err := ctrl.Svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return helper.JsonFromError(c, err, msgSubmissionNotFound)
	}
	return helper.JsonOK(c, "ok", "submission", m)
}

// PUT /api/submissions/:id (admin)
func (ctrl *SubmissionController) Update(c *fiber.Ctx) error {
	var req dto.UpdateSubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	cmd, err := req.ToCommand()
	if err != nil {
		return helper.JsonFromError(c, err, "")
	}

	current, err := ctrl.Svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return helper.JsonFromError(c, err, msgSubmissionNotFound)
	}

	actor := ""
	if admin, ok := authMiddleware.AdminFromCtx(c); ok {
		actor = admin.Username
	}
	res, err := ctrl.Svc.Apply(c.UserContext(), current.SubmissionID, cmd, actor)
	if err != nil {
		return helper.JsonFromError(c, err, msgSubmissionNotFound)
	}

	body := fiber.Map{
		"success":    true,
		"message":    "Submission updated successfully",
		"submission": res.Submission,
	}
	if res.HallTicket != nil {
		body["hall_ticket"] = res.HallTicket
		body["hall_ticket_created"] = res.HallTicketCreated
	}
	return c.Status(fiber.StatusOK).JSON(body)
}

// DELETE /api/submissions/:id (admin)
func (ctrl *SubmissionController) Delete(c *fiber.Ctx) error {
	current, err := ctrl.Svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return helper.JsonFromError(c, err, msgSubmissionNotFound)
	}
	if err := ctrl.Svc.Delete(c.UserContext(), current.SubmissionID); err != nil {
		return helper.JsonFromError(c, err, msgSubmissionNotFound)
	}
	return helper.JsonDeleted(c, "Submission deleted successfully")
}
