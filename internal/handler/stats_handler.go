package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/thesis-api/internal/middleware"
	"github.com/noah-isme/thesis-api/internal/models"
	"github.com/noah-isme/thesis-api/internal/service"
	"github.com/noah-isme/thesis-api/internal/utils"
)

// StatsHandler serves ministry statistics.
type StatsHandler struct {
	service service.StatsService
	logger  zerolog.Logger
}

// NewStatsHandler constructs a handler instance.
func NewStatsHandler(service service.StatsService, logger zerolog.Logger) *StatsHandler {
	return &StatsHandler{
		service: service,
		logger:  logger.With().Str("component", "stats_handler").Logger(),
	}
}

// Register binds the stats routes for ministry and admin staff.
func (h *StatsHandler) Register(router fiber.Router) {
	staffOnly := middleware.RequireRole(models.RoleAdmin, models.RoleMinistry)

	router.Get("/stats", staffOnly, h.overview)
	router.Delete("/stats/cache", staffOnly, h.invalidate)
}

func (h *StatsHandler) overview(c *fiber.Ctx) error {
	stats, err := h.service.Overview(requestContext(c))
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "stats", stats)
}

func (h *StatsHandler) invalidate(c *fiber.Ctx) error {
	if err := h.service.Invalidate(requestContext(c)); err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "stats cache invalidated", nil)
}
