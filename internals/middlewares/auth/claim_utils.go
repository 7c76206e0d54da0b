// internals/middlewares/auth/claims_utils.go
package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var errNoToken = errors.New("No token provided")

func extractBearerToken(c *fiber.Ctx, allowCookie bool) (string, error) {
	auth := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if auth == "" && allowCookie {
		if cookieTok := c.Cookies("access_token"); cookieTok != "" {
			auth = "Bearer " + cookieTok
		}
	}
	if auth == "" {
		return "", errNoToken
	}

	// toleransi spasi ganda & case-insensitive
	fields := strings.Fields(auth)
	if len(fields) < 2 || !strings.EqualFold(fields[0], "Bearer") {
		return auth, errors.New("Invalid token format")
	}
	tok := strings.Trim(strings.TrimSpace(fields[1]), "\"'")
	if tok == "" {
		return auth, errors.New("Empty token")
	}
	return tok, nil
}

// Admin adalah identitas admin dari Locals (hasil AuthJWT).
type Admin struct {
	ID       string
	Username string
	Role     string
}

// AdminFromCtx: ok=false bila request anonymous.
func AdminFromCtx(c *fiber.Ctx) (Admin, bool) {
	id, _ := c.Locals(LocalAdminID).(string)
	if id == "" {
		return Admin{}, false
	}
	username, _ := c.Locals(LocalAdminUsername).(string)
	role, _ := c.Locals(LocalRole).(string)
	return Admin{ID: id, Username: username, Role: role}, true
}
