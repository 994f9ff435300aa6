package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/thesis-api/internal/dto"
	"github.com/noah-isme/thesis-api/internal/middleware"
	"github.com/noah-isme/thesis-api/internal/models"
	"github.com/noah-isme/thesis-api/internal/service"
	"github.com/noah-isme/thesis-api/internal/utils"
)

// ScoreHandler provides HTTP endpoints for score submission and review.
type ScoreHandler struct {
	service service.ScoreService
	logger  zerolog.Logger
}

// NewScoreHandler constructs a handler instance.
func NewScoreHandler(service service.ScoreService, logger zerolog.Logger) *ScoreHandler {
	return &ScoreHandler{
		service: service,
		logger:  logger.With().Str("component", "score_handler").Logger(),
	}
}

// Register binds the score routes. Mutations are lecturer-only; the full
// per-thesis listing is for administrative review.
func (h *ScoreHandler) Register(router fiber.Router) {
	lecturerOnly := middleware.RequireRole(models.RoleLecturer)

	router.Post("/scores", lecturerOnly, h.submit)
	router.Put("/scores/:id", lecturerOnly, h.update)
	router.Delete("/scores/:id", lecturerOnly, h.delete)

	router.Get("/theses/:code/scores", middleware.RequireRole(models.RoleAdmin, models.RoleMinistry), h.listForThesis)
	router.Get("/theses/:code/scores/mine", lecturerOnly, h.listOwn)
}

func (h *ScoreHandler) submit(c *fiber.Ctx) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	var payload dto.ScoreCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Submit(requestContext(c), actor, payload)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "score submitted", response)
}

func (h *ScoreHandler) update(c *fiber.Ctx) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.ScoreUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Update(requestContext(c), actor, id, payload)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "score updated", response)
}

func (h *ScoreHandler) delete(c *fiber.Ctx) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(requestContext(c), actor, id); err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "score deleted", nil)
}

func (h *ScoreHandler) listForThesis(c *fiber.Ctx) error {
	scores, err := h.service.ListForThesis(requestContext(c), c.Params("code"))
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "scores", scores)
}

func (h *ScoreHandler) listOwn(c *fiber.Ctx) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	scores, err := h.service.ListOwnForThesis(requestContext(c), actor, c.Params("code"))
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "scores", scores)
}
