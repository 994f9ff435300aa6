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

// CouncilHandler provides HTTP endpoints for council administration.
type CouncilHandler struct {
	service service.CouncilService
	logger  zerolog.Logger
}

// NewCouncilHandler constructs a handler instance.
func NewCouncilHandler(service service.CouncilService, logger zerolog.Logger) *CouncilHandler {
	return &CouncilHandler{
		service: service,
		logger:  logger.With().Str("component", "council_handler").Logger(),
	}
}

// Register binds the council routes. All mutations are staff-only.
func (h *CouncilHandler) Register(router fiber.Router) {
	staffOnly := middleware.RequireRole(models.RoleAdmin, models.RoleMinistry)

	router.Get("/councils", h.list)
	router.Post("/councils", staffOnly, h.create)
	router.Get("/councils/:id", h.get)
	router.Put("/councils/:id", staffOnly, h.update)
	router.Delete("/councils/:id", staffOnly, h.delete)

	router.Get("/councils/:id/members", h.listMembers)
	router.Post("/councils/:id/members", staffOnly, h.addMember)
	router.Put("/councils/:id/members/:detailID", staffOnly, h.updateMember)
	router.Delete("/councils/:id/members/:detailID", staffOnly, h.removeMember)

	router.Post("/councils/:id/theses", staffOnly, h.assignThesis)
	router.Post("/councils/:id/lock", staffOnly, h.toggleLock)
}

func (h *CouncilHandler) list(c *fiber.Ctx) error {
	var filter dto.CouncilFilter
	if err := c.QueryParser(&filter); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid query")
	}

	councils, err := h.service.List(requestContext(c), filter)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "councils", councils)
}

func (h *CouncilHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	council, err := h.service.Get(requestContext(c), id)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "council", council)
}

func (h *CouncilHandler) create(c *fiber.Ctx) error {
	var payload dto.CouncilCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	council, err := h.service.Create(requestContext(c), payload)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "council created", council)
}

func (h *CouncilHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.CouncilUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	council, err := h.service.Update(requestContext(c), id, payload)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "council updated", council)
}

func (h *CouncilHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(requestContext(c), id); err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "council deleted", nil)
}

func (h *CouncilHandler) listMembers(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	members, err := h.service.ListMembers(requestContext(c), id)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "council members", members)
}

func (h *CouncilHandler) addMember(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.CouncilMemberRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	member, err := h.service.AddMember(requestContext(c), id, payload)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "council member added", member)
}

func (h *CouncilHandler) updateMember(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	detailID, err := parseUintParam(c, "detailID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload struct {
		PositionCode string `json:"position_code"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	member, err := h.service.UpdateMember(requestContext(c), id, detailID, payload.PositionCode)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "council member updated", member)
}

func (h *CouncilHandler) removeMember(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	detailID, err := parseUintParam(c, "detailID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.RemoveMember(requestContext(c), id, detailID); err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "council member removed", nil)
}

func (h *CouncilHandler) assignThesis(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.AssignThesisRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	thesis, err := h.service.AssignThesis(requestContext(c), id, payload)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "thesis assigned", thesis)
}

func (h *CouncilHandler) toggleLock(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	lock, err := h.service.ToggleLock(requestContext(c), id)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "council lock toggled", lock)
}
