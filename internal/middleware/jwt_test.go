package middleware

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func newJWTApp() *fiber.App {
	app := fiber.New()
	app.Get("/me", JWTProtected(testSecret), func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(uint)
		role, _ := c.Locals("user_role").(string)
		return c.JSON(fiber.Map{"user_id": userID, "role": role})
	})
	return app
}

func TestJWTProtected(t *testing.T) {
	app := newJWTApp()

	t.Run("missing header", func(t *testing.T) {
		response, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/me", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusUnauthorized, response.StatusCode)
	})

	t.Run("malformed header", func(t *testing.T) {
		request := httptest.NewRequest(fiber.MethodGet, "/me", nil)
		request.Header.Set("Authorization", "Token abc")
		response, err := app.Test(request)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusUnauthorized, response.StatusCode)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token := signToken(t, "other-secret", jwt.MapClaims{"sub": "1", "role": "lecturer"})
		request := httptest.NewRequest(fiber.MethodGet, "/me", nil)
		request.Header.Set("Authorization", "Bearer "+token)
		response, err := app.Test(request)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusUnauthorized, response.StatusCode)
	})

	t.Run("expired token", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{
			"sub":  "1",
			"role": "lecturer",
			"exp":  time.Now().Add(-time.Minute).Unix(),
		})
		request := httptest.NewRequest(fiber.MethodGet, "/me", nil)
		request.Header.Set("Authorization", "Bearer "+token)
		response, err := app.Test(request)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusUnauthorized, response.StatusCode)
	})

	t.Run("non-numeric subject", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{
			"sub":  "not-a-user",
			"role": "lecturer",
			"exp":  time.Now().Add(time.Hour).Unix(),
		})
		request := httptest.NewRequest(fiber.MethodGet, "/me", nil)
		request.Header.Set("Authorization", "Bearer "+token)
		response, err := app.Test(request)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusUnauthorized, response.StatusCode)
	})

	t.Run("unknown role", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{
			"sub":  "42",
			"role": "superuser",
			"exp":  time.Now().Add(time.Hour).Unix(),
		})
		request := httptest.NewRequest(fiber.MethodGet, "/me", nil)
		request.Header.Set("Authorization", "Bearer "+token)
		response, err := app.Test(request)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusUnauthorized, response.StatusCode)
	})

	t.Run("valid token resolves principal", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{
			"sub":  "42",
			"role": "Lecturer",
			"exp":  time.Now().Add(time.Hour).Unix(),
		})
		request := httptest.NewRequest(fiber.MethodGet, "/me", nil)
		request.Header.Set("Authorization", "Bearer "+token)
		response, err := app.Test(request)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, response.StatusCode)

		var body struct {
			UserID uint   `json:"user_id"`
			Role   string `json:"role"`
		}
		require.NoError(t, json.NewDecoder(response.Body).Decode(&body))
		require.EqualValues(t, 42, body.UserID)
		require.Equal(t, "lecturer", body.Role)
	})
}
