package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/thesis-api/internal/service"
	"github.com/noah-isme/thesis-api/internal/utils"
)

// ReportHandler serves the printable score sheet data.
type ReportHandler struct {
	service service.ReportService
	logger  zerolog.Logger
}

// NewReportHandler constructs a handler instance.
func NewReportHandler(service service.ReportService, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		logger:  logger.With().Str("component", "report_handler").Logger(),
	}
}

// Register binds the report routes.
func (h *ReportHandler) Register(router fiber.Router) {
	router.Get("/theses/:code/score-sheet", h.scoreSheet)
}

func (h *ReportHandler) scoreSheet(c *fiber.Ctx) error {
	sheet, err := h.service.BuildScoreSheet(requestContext(c), c.Params("code"))
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "score sheet", sheet)
}
