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

// CriteriaHandler provides HTTP endpoints for the criteria catalogue and
// per-thesis weight bindings.
type CriteriaHandler struct {
	service service.CriteriaService
	logger  zerolog.Logger
}

// NewCriteriaHandler constructs a handler instance.
func NewCriteriaHandler(service service.CriteriaService, logger zerolog.Logger) *CriteriaHandler {
	return &CriteriaHandler{
		service: service,
		logger:  logger.With().Str("component", "criteria_handler").Logger(),
	}
}

// Register binds the criteria routes.
func (h *CriteriaHandler) Register(router fiber.Router) {
	staffOnly := middleware.RequireRole(models.RoleAdmin, models.RoleMinistry)

	router.Get("/criteria", h.list)
	router.Post("/criteria", staffOnly, h.create)
	router.Delete("/criteria/:id", staffOnly, h.delete)

	router.Get("/theses/:code/criteria", h.listForThesis)
	router.Post("/theses/:code/criteria", staffOnly, h.attach)
}

func (h *CriteriaHandler) list(c *fiber.Ctx) error {
	criteria, err := h.service.List(requestContext(c), c.Query("q"))
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "criteria", criteria)
}

func (h *CriteriaHandler) create(c *fiber.Ctx) error {
	var payload dto.CriteriaCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	criteria, err := h.service.Create(requestContext(c), payload)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "criteria created", criteria)
}

func (h *CriteriaHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(requestContext(c), id); err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "criteria deleted", nil)
}

func (h *CriteriaHandler) listForThesis(c *fiber.Ctx) error {
	bindings, err := h.service.ListForThesis(requestContext(c), c.Params("code"))
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "thesis criteria", bindings)
}

func (h *CriteriaHandler) attach(c *fiber.Ctx) error {
	var payload dto.AttachCriteriaRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	binding, err := h.service.AttachToThesis(requestContext(c), c.Params("code"), payload)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "criteria attached", binding)
}
