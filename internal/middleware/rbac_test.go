package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func newRBACApp(preset interface{}, roles ...string) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if preset != nil {
			c.Locals("user_role", preset)
		}
		return c.Next()
	})
	app.Get("/guarded", RequireRole(roles...), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestRequireRole(t *testing.T) {
	cases := []struct {
		name     string
		role     interface{}
		allowed  []string
		expected int
	}{
		{"matching role", "lecturer", []string{"lecturer"}, fiber.StatusOK},
		{"role case insensitive", "Lecturer", []string{"lecturer"}, fiber.StatusOK},
		{"one of several", "ministry", []string{"admin", "ministry"}, fiber.StatusOK},
		{"wrong role", "student", []string{"admin"}, fiber.StatusForbidden},
		{"missing role", nil, []string{"admin"}, fiber.StatusForbidden},
		{"non-string role local", 42, []string{"admin"}, fiber.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newRBACApp(tc.role, tc.allowed...)

			response, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/guarded", nil))
			require.NoError(t, err)
			require.Equal(t, tc.expected, response.StatusCode)
		})
	}
}
