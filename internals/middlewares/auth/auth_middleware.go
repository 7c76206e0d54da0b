// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

const (
	LocalAdminID       = "admin_id"
	LocalAdminUsername = "admin_username"
	LocalRole          = "userRole"
)

// AdminClaims: payload JWT sesi admin (HS256).
type AdminClaims struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type AuthJWTOpts struct {
	Secret              string
	Optional            bool // tanpa token → lanjut sebagai anonymous; token invalid tetap 401
	AllowCookieFallback bool // pakai cookie access_token jika tidak ada Bearer
}

func AuthJWT(o AuthJWTOpts) fiber.Handler {
	secret := strings.TrimSpace(o.Secret)
	if secret == "" {
		panic("AuthJWT: Secret wajib diisi")
	}

	return func(c *fiber.Ctx) error {
		raw, err := extractBearerToken(c, o.AllowCookieFallback)
		if err != nil {
			if o.Optional && raw == "" {
				return c.Next()
			}
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - "+err.Error())
		}

		// token dikirim tapi kadaluarsa/invalid → 401, juga di mode Optional
		claims, err := ParseAdminToken(raw, secret)
		if err != nil {
			log.Println("[WARN] AuthJWT:", err)
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid token")
		}

		c.Locals(LocalAdminID, claims.ID)
		c.Locals(LocalAdminUsername, claims.Username)
		c.Locals(LocalRole, claims.Role)
		return c.Next()
	}
}

// ParseAdminToken memverifikasi signature HMAC + exp.
func ParseAdminToken(raw, secret string) (*AdminClaims, error) {
	claims := &AdminClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !tok.Valid || strings.TrimSpace(claims.ID) == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
