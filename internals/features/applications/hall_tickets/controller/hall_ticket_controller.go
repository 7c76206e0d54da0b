package controller

import (
	"errors"
	"log"

	"hallticket_backend/internals/features/applications/hall_tickets/dto"
	"hallticket_backend/internals/features/applications/hall_tickets/model"
	"hallticket_backend/internals/features/applications/hall_tickets/service"
	"hallticket_backend/internals/features/applications/hall_tickets/views"
	helper "hallticket_backend/internals/helpers"
	authMiddleware "hallticket_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const msgHallTicketNotFound = "Hall ticket not found"

type HallTicketController struct {
	Svc      *service.HallTicketService
	Renderer *views.Renderer
}

func NewHallTicketController(svc *service.HallTicketService, renderer *views.Renderer) *HallTicketController {
	return &HallTicketController{Svc: svc, Renderer: renderer}
}

func actorOf(c *fiber.Ctx) (string, bool) {
	admin, ok := authMiddleware.AdminFromCtx(c)
	if !ok {
		return "", false
	}
	return admin.Username, true
}

// GET /api/hall-tickets?submission_id=...|unique_id=...
func (ctrl *HallTicketController) Lookup(c *fiber.Ctx) error {
	var q dto.LookupQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query parameters")
	}
	submissionID, uniqueID := q.Resolve()

	var (
		t   *model.HallTicketModel
		err error
	)
	switch {
	case submissionID != "":
		id, perr := uuid.Parse(submissionID)
		if perr != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "submission_id must be a valid uuid")
		}
		t, err = ctrl.Svc.GetBySubmission(c.UserContext(), id)
	case uniqueID != "":
		t, err = ctrl.Svc.GetByUniqueID(c.UserContext(), uniqueID)
	default:
		return helper.JsonError(c, fiber.StatusBadRequest, "submission_id or unique_id is required")
	}
	if err != nil {
		return helper.JsonFromError(c, err, msgHallTicketNotFound)
	}
	return helper.JsonOK(c, "ok", "hall_ticket", t)
}

// POST /api/hall-tickets (admin)
func (ctrl *HallTicketController) Issue(c *fiber.Ctx) error {
	var req dto.IssueRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	submissionID, err := req.Parse()
	if err != nil {
		return helper.JsonFromError(c, err, "")
	}

	actor, _ := actorOf(c)
	t, err := ctrl.Svc.IssueExplicit(c.UserContext(), submissionID, actor)
	if err != nil {
		var dup *service.AlreadyIssuedError
		if errors.As(err, &dup) {
			return helper.JsonErrorWithEntity(c, fiber.StatusConflict, dup.Error(), "hall_ticket", dup.Ticket)
		}
		return helper.JsonFromError(c, err, "Submission not found")
	}
	return helper.JsonCreated(c, "Hall ticket generated successfully", "hall_ticket", t)
}

// GET /api/hall-tickets/list (admin)
func (ctrl *HallTicketController) List(c *fiber.Ctx) error {
	var q dto.ListQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query parameters")
	}
	p := helper.ResolvePaging(c, 20, 100)

	rows, total, err := ctrl.Svc.List(c.UserContext(), q.ToFilter(p))
	if err != nil {
		return helper.JsonFromError(c, err, "")
	}
	return helper.JsonList(c, "hall_tickets", rows, helper.BuildPagination(total, p))
}

// POST /api/hall-tickets/batch (admin)
func (ctrl *HallTicketController) Batch(c *fiber.Ctx) error {
	var req dto.BatchRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
		}
	}

	actor, _ := actorOf(c)
	res, err := ctrl.Svc.IssueBatch(c.UserContext(), req.ToFilter(), actor)
	if err != nil {
		return helper.JsonFromError(c, err, "")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":   true,
		"message":   res.Message,
		"generated": res.Generated,
	})
}

// GET /api/hall-tickets/:id (id internal atau unique id)
func (ctrl *HallTicketController) Get(c *fiber.Ctx) error {
	t, err := ctrl.Svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return helper.JsonFromError(c, err, msgHallTicketNotFound)
	}
	return helper.JsonOK(c, "ok", "hall_ticket", t)
}

// PATCH /api/hall-tickets/:id. Auth opsional; tanpa admin hanya "downloaded".
func (ctrl *HallTicketController) PatchStatus(c *fiber.Ctx) error {
	var req dto.PatchStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return helper.ValidationError(c, err)
	}

	current, err := ctrl.Svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return helper.JsonFromError(c, err, msgHallTicketNotFound)
	}

	actor, isAdmin := actorOf(c)
	t, err := ctrl.Svc.UpdateStatus(c.UserContext(), current.HallTicketID, req.Status, service.StatusChange{
		Source: model.EventSourcePatch,
		Actor:  actor,
		Detail: map[string]any{"ip": c.IP()},
		Public: !isAdmin,
	})
	if err != nil {
		return helper.JsonFromError(c, err, msgHallTicketNotFound)
	}
	return helper.JsonUpdated(c, "Hall ticket status updated successfully", "hall_ticket", t)
}

// PUT /api/hall-tickets/:id (admin)
func (ctrl *HallTicketController) Update(c *fiber.Ctx) error {
	var req dto.UpdateHallTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return helper.JsonFromError(c, err, "")
	}

	current, err := ctrl.Svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return helper.JsonFromError(c, err, msgHallTicketNotFound)
	}

	actor, _ := actorOf(c)
	t, err := ctrl.Svc.UpdateFields(c.UserContext(), current.HallTicketID, req.ToUpdate(), service.StatusChange{
		Source: model.EventSourceAdmin,
		Actor:  actor,
	})
	if err != nil {
		return helper.JsonFromError(c, err, msgHallTicketNotFound)
	}
	return helper.JsonUpdated(c, "Hall ticket updated successfully", "hall_ticket", t)
}

// GET /api/hall-tickets/:id/events (admin)
func (ctrl *HallTicketController) Events(c *fiber.Ctx) error {
	current, err := ctrl.Svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return helper.JsonFromError(c, err, msgHallTicketNotFound)
	}
	events, err := ctrl.Svc.Events(c.UserContext(), current.HallTicketID)
	if err != nil {
		return helper.JsonFromError(c, err, msgHallTicketNotFound)
	}
	return helper.JsonOK(c, "ok", "events", events)
}

// GET /api/hall-tickets/print/:id → HTML siap cetak.
func (ctrl *HallTicketController) Print(c *fiber.Ctx) error {
	t, err := ctrl.Svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, helper.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).
				Type("html").
				SendString("<!DOCTYPE html><html><body><h1>Hall ticket not found</h1></body></html>")
		}
		return helper.JsonFromError(c, err, msgHallTicketNotFound)
	}

	page, err := ctrl.Renderer.RenderTicket(t)
	if err != nil {
		log.Printf("[ERROR] render hall ticket %s: %v", t.HallTicketUniqueID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to render hall ticket")
	}

	if err := ctrl.Svc.MarkPrinted(c.UserContext(), t, map[string]any{"ip": c.IP()}); err != nil {
		log.Printf("[WARN] mark printed %s: %v", t.HallTicketUniqueID, err)
	}

	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Status(fiber.StatusOK).Type("html", "utf-8").Send(page)
}
