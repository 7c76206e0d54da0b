package helper

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
)

/* ===============================
   Error shape
=================================*/

type ErrorResponse struct {
	Success   bool              `json:"success"`
	Error     string            `json:"error"`
	ErrorCode string            `json:"error_code,omitempty"`
	Errors    map[string]string `json:"errors,omitempty"`
}

func statusToErrorCode(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	case fiber.StatusUnauthorized:
		return "UNAUTHORIZED"
	case fiber.StatusForbidden:
		return "FORBIDDEN"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusConflict:
		return "CONFLICT"
	case fiber.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	case fiber.StatusTooManyRequests:
		return "TOO_MANY_REQUESTS"
	case fiber.StatusServiceUnavailable:
		return "SERVICE_UNAVAILABLE"
	default:
		if status >= 500 {
			return "INTERNAL_ERROR"
		}
		return "ERROR"
	}
}

// JsonError: error generic (bukan validasi)
func JsonError(c *fiber.Ctx, status int, message string) error {
	if status == 0 {
		status = fiber.StatusInternalServerError
	}
	if strings.TrimSpace(message) == "" {
		message = fiber.ErrInternalServerError.Message
	}
	return c.Status(status).JSON(ErrorResponse{
		Success:   false,
		Error:     message,
		ErrorCode: statusToErrorCode(status),
	})
}

// JsonErrorWithEntity: error yang tetap membawa entity (mis. 409 + tiket yang sudah ada)
func JsonErrorWithEntity(c *fiber.Ctx, status int, message, key string, data any) error {
	return c.Status(status).JSON(fiber.Map{
		"success":    false,
		"error":      message,
		"error_code": statusToErrorCode(status),
		key:          data,
	})
}

// JsonFromError memetakan sentinel error service/repository ke status HTTP.
func JsonFromError(c *fiber.Ctx, err error, fallbackMessage string) error {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return JsonError(c, fe.Code, fe.Message)
	case errors.Is(err, ErrInvalidInput):
		return JsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotApproved):
		return JsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		return JsonError(c, fiber.StatusNotFound, fallbackNotFound(fallbackMessage))
	case errors.Is(err, ErrDuplicate):
		return JsonError(c, fiber.StatusConflict, "Duplicate record detected")
	case errors.Is(err, ErrInvalidTransition):
		return JsonError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, ErrUnauthorized):
		return JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, ErrForbidden):
		return JsonError(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, ErrStoragePermission):
		log.Printf("[ERROR] %s %s: %v", c.Method(), c.Path(), err)
		return JsonError(c, fiber.StatusForbidden, "Permission denied. Please contact support.")
	case errors.Is(err, ErrStorage):
		log.Printf("[ERROR] %s %s: %v", c.Method(), c.Path(), err)
		return JsonError(c, fiber.StatusServiceUnavailable, "Unable to connect to storage service. Please try again later.")
	}
	if ve, ok := AsValidationErrors(err); ok {
		return ValidationError(c, ve)
	}
	log.Printf("[ERROR] %s %s: %v", c.Method(), c.Path(), err)
	return JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
}

func fallbackNotFound(msg string) string {
	if strings.TrimSpace(msg) == "" {
		return "Not found"
	}
	return msg
}

/* ===============================
   JSON responses (standard success)
=================================*/

func jsonEntity(c *fiber.Ctx, status int, message, defMessage, key string, data any) error {
	if strings.TrimSpace(message) == "" {
		message = defMessage
	}
	body := fiber.Map{
		"success": true,
		"message": message,
	}
	if key != "" {
		body[key] = data
	}
	return c.Status(status).JSON(body)
}

// JsonOK: response sukses generic (GET detail, dsb)
func JsonOK(c *fiber.Ctx, message, key string, data any) error {
	return jsonEntity(c, fiber.StatusOK, message, "ok", key, data)
}

// JsonCreated: response sukses create (POST)
func JsonCreated(c *fiber.Ctx, message, key string, data any) error {
	return jsonEntity(c, fiber.StatusCreated, message, "created", key, data)
}

// JsonUpdated: response sukses update (PATCH/PUT)
func JsonUpdated(c *fiber.Ctx, message, key string, data any) error {
	return jsonEntity(c, fiber.StatusOK, message, "updated", key, data)
}

// JsonDeleted: response sukses delete (DELETE)
func JsonDeleted(c *fiber.Ctx, message string) error {
	return jsonEntity(c, fiber.StatusOK, message, "deleted", "", nil)
}

// JsonList: list dengan pagination
func JsonList(c *fiber.Ctx, key string, data any, pagination Pagination) error {
	if pagination.Count == 0 {
		pagination.Count = lenOf(data)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":    true,
		"message":    "ok",
		key:          data,
		"pagination": pagination,
	})
}
