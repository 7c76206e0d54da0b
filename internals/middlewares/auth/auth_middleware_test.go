package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, method jwt.SigningMethod, exp time.Time) string {
	t.Helper()
	claims := AdminClaims{
		ID:       "7f1c4c8e-1d7e-4f43-9a43-3b1c8f0e2a11",
		Username: "admin",
		Role:     "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	s, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func newApp(opts AuthJWTOpts) *fiber.App {
	app := fiber.New()
	app.Get("/me", AuthJWT(opts), func(c *fiber.Ctx) error {
		a, ok := AdminFromCtx(c)
		if !ok {
			return c.SendString("anonymous")
		}
		return c.SendString(a.Username + ":" + a.Role)
	})
	app.Get("/admin", AuthJWT(opts), OnlyRoles("admins only", "admin", "superadmin"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func do(t *testing.T, app *fiber.App, path, token string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode
}

func TestAuthJWT(t *testing.T) {
	app := newApp(AuthJWTOpts{Secret: testSecret})
	valid := signToken(t, testSecret, jwt.SigningMethodHS256, time.Now().Add(time.Hour))

	cases := []struct {
		name  string
		token string
		want  int
	}{
		{"valid", valid, fiber.StatusOK},
		{"missing", "", fiber.StatusUnauthorized},
		{"wrong secret", signToken(t, "other", jwt.SigningMethodHS256, time.Now().Add(time.Hour)), fiber.StatusUnauthorized},
		{"expired", signToken(t, testSecret, jwt.SigningMethodHS256, time.Now().Add(-time.Minute)), fiber.StatusUnauthorized},
		{"garbage", "not-a-jwt", fiber.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := do(t, app, "/me", tc.token); got != tc.want {
				t.Fatalf("status = %d, want %d", got, tc.want)
			}
		})
	}

	if got := do(t, app, "/admin", valid); got != fiber.StatusNoContent {
		t.Fatalf("admin route status = %d", got)
	}
}

func TestAuthJWTOptional(t *testing.T) {
	app := newApp(AuthJWTOpts{Secret: testSecret, Optional: true})
	if got := do(t, app, "/me", ""); got != fiber.StatusOK {
		t.Fatalf("anonymous status = %d", got)
	}
	// role tidak ada → 401 dari role middleware
	if got := do(t, app, "/admin", ""); got != fiber.StatusUnauthorized {
		t.Fatalf("anonymous admin status = %d", got)
	}

	valid := signToken(t, testSecret, jwt.SigningMethodHS256, time.Now().Add(time.Hour))
	if got := do(t, app, "/admin", valid); got != fiber.StatusNoContent {
		t.Fatalf("valid token status = %d", got)
	}

	// token dikirim tapi tidak valid: tidak turun jadi anonymous
	for name, tok := range map[string]string{
		"expired":      signToken(t, testSecret, jwt.SigningMethodHS256, time.Now().Add(-time.Minute)),
		"wrong secret": signToken(t, "other-secret", jwt.SigningMethodHS256, time.Now().Add(time.Hour)),
		"garbage":      "not.a.jwt",
	} {
		if got := do(t, app, "/me", tok); got != fiber.StatusUnauthorized {
			t.Errorf("%s: status = %d, want 401", name, got)
		}
	}
}

func TestOnlyRolesForbidden(t *testing.T) {
	app := fiber.New()
	app.Get("/x", func(c *fiber.Ctx) error {
		c.Locals(LocalRole, "viewer")
		return c.Next()
	}, OnlyRoles("nope", "admin"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	if got := do(t, app, "/x", ""); got != fiber.StatusForbidden {
		t.Fatalf("status = %d, want 403", got)
	}
}

func TestParseAdminTokenRejectsNone(t *testing.T) {
	tok := signTokenNone(t)
	if _, err := ParseAdminToken(tok, testSecret); err == nil {
		t.Fatal("alg=none must be rejected")
	}
}

func signTokenNone(t *testing.T) string {
	t.Helper()
	claims := AdminClaims{ID: "x", Username: "x", Role: "admin"}
	s, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}
	return s
}
