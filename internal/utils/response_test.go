package utils

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func decodeResponse(t *testing.T, app *fiber.App, path string) (int, APIResponse) {
	t.Helper()

	response, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil))
	require.NoError(t, err)
	defer response.Body.Close()

	var payload APIResponse
	require.NoError(t, json.NewDecoder(response.Body).Decode(&payload))
	return response.StatusCode, payload
}

func TestSendSuccess(t *testing.T) {
	app := fiber.New()
	app.Get("/ok", func(c *fiber.Ctx) error {
		return SendSuccess(c, "fetched", fiber.Map{"id": 1})
	})
	app.Get("/default-message", func(c *fiber.Ctx) error {
		return SendSuccess(c, "", nil)
	})
	app.Get("/created", func(c *fiber.Ctx) error {
		return SendSuccessWithStatus(c, fiber.StatusCreated, "created", nil)
	})

	status, payload := decodeResponse(t, app, "/ok")
	require.Equal(t, fiber.StatusOK, status)
	require.True(t, payload.Success)
	require.Equal(t, "fetched", payload.Message)
	require.NotNil(t, payload.Data)

	status, payload = decodeResponse(t, app, "/default-message")
	require.Equal(t, fiber.StatusOK, status)
	require.Equal(t, "success", payload.Message)

	status, payload = decodeResponse(t, app, "/created")
	require.Equal(t, fiber.StatusCreated, status)
	require.True(t, payload.Success)
}

func TestSendError(t *testing.T) {
	app := fiber.New()
	app.Get("/boom", func(c *fiber.Ctx) error {
		return SendError(c, fiber.StatusConflict, "duplicate")
	})
	app.Get("/default-message", func(c *fiber.Ctx) error {
		return SendError(c, fiber.StatusBadRequest, "")
	})
	app.Get("/traced", func(c *fiber.Ctx) error {
		c.Locals("correlation_id", "corr-123")
		return SendError(c, fiber.StatusNotFound, "missing")
	})

	status, payload := decodeResponse(t, app, "/boom")
	require.Equal(t, fiber.StatusConflict, status)
	require.False(t, payload.Success)
	require.Equal(t, "duplicate", payload.Message)

	status, payload = decodeResponse(t, app, "/default-message")
	require.Equal(t, fiber.StatusBadRequest, status)
	require.Equal(t, "error", payload.Message)
	require.Empty(t, payload.CorrelationID)

	status, payload = decodeResponse(t, app, "/traced")
	require.Equal(t, fiber.StatusNotFound, status)
	require.Equal(t, "corr-123", payload.CorrelationID)
}
