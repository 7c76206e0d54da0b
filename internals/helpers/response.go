package helper

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator: satu instance per proses (validator meng-cache struct info).
// Nama field dilaporkan memakai json tag, bukan nama field Go.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

func AsValidationErrors(err error) (validator.ValidationErrors, bool) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// ValidationFields: path field (tanpa nama struct root) → tag yang gagal.
func ValidationFields(ve validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(ve))
	for _, fe := range ve {
		ns := fe.Namespace()
		if i := strings.Index(ns, "."); i >= 0 {
			ns = ns[i+1:]
		}
		out[ns] = fe.Tag()
	}
	return out
}

// ✅ Khusus error validasi (validator.v10) → 400 + map field
func ValidationError(c *fiber.Ctx, err error) error {
	ve, ok := AsValidationErrors(err)
	if !ok {
		return JsonError(c, fiber.StatusBadRequest, "Invalid input")
	}
	fields := ValidationFields(ve)

	names := make([]string, 0, len(fields))
	for _, fe := range ve {
		names = append(names, fe.Field())
	}
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Success:   false,
		Error:     "Validation failed: " + strings.Join(names, ", "),
		ErrorCode: "VALIDATION_ERROR",
		Errors:    fields,
	})
}
