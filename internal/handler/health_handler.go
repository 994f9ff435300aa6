package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/thesis-api/internal/utils"
)

// HealthHandler reports service liveness.
type HealthHandler struct {
	appName string
	appEnv  string
}

// NewHealthHandler constructs a handler instance.
func NewHealthHandler(appName, appEnv string) *HealthHandler {
	return &HealthHandler{appName: appName, appEnv: appEnv}
}

// Register binds the health route.
func (h *HealthHandler) Register(router fiber.Router) {
	router.Get("/health", h.health)
}

func (h *HealthHandler) health(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "ok", fiber.Map{
		"app": h.appName,
		"env": h.appEnv,
	})
}
