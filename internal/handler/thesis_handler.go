package handler

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/thesis-api/internal/dto"
	"github.com/noah-isme/thesis-api/internal/middleware"
	"github.com/noah-isme/thesis-api/internal/models"
	"github.com/noah-isme/thesis-api/internal/service"
	"github.com/noah-isme/thesis-api/internal/utils"
)

// ThesisHandler provides HTTP endpoints for thesis administration.
type ThesisHandler struct {
	service service.ThesisService
	logger  zerolog.Logger
}

// NewThesisHandler constructs a handler instance.
func NewThesisHandler(service service.ThesisService, logger zerolog.Logger) *ThesisHandler {
	return &ThesisHandler{
		service: service,
		logger:  logger.With().Str("component", "thesis_handler").Logger(),
	}
}

// Register binds the thesis routes. Mutations are restricted to ministry
// and admin staff; report upload additionally allows the enrolled student's
// supervisors via the lecturer role.
func (h *ThesisHandler) Register(router fiber.Router) {
	staffOnly := middleware.RequireRole(models.RoleAdmin, models.RoleMinistry)

	router.Get("/theses", h.list)
	router.Post("/theses", staffOnly, h.create)
	router.Get("/theses/:code", h.get)
	router.Patch("/theses/:code", staffOnly, h.update)
	router.Delete("/theses/:code", staffOnly, h.delete)

	router.Post("/theses/:code/lecturers", staffOnly, h.addLecturer)
	router.Post("/theses/:code/students", staffOnly, h.addStudent)
	router.Post("/theses/:code/report",
		middleware.RequireRole(models.RoleAdmin, models.RoleMinistry, models.RoleLecturer, models.RoleStudent),
		h.attachReport)
}

func (h *ThesisHandler) list(c *fiber.Ctx) error {
	var filter dto.ThesisFilter
	if err := c.QueryParser(&filter); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid query")
	}

	theses, err := h.service.List(requestContext(c), filter)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "theses", theses)
}

func (h *ThesisHandler) get(c *fiber.Ctx) error {
	thesis, err := h.service.Get(requestContext(c), c.Params("code"))
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "thesis", thesis)
}

func (h *ThesisHandler) create(c *fiber.Ctx) error {
	var payload dto.ThesisCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	thesis, err := h.service.Create(requestContext(c), payload)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "thesis created", thesis)
}

func (h *ThesisHandler) update(c *fiber.Ctx) error {
	var payload dto.ThesisUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	thesis, err := h.service.Update(requestContext(c), c.Params("code"), payload)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "thesis updated", thesis)
}

func (h *ThesisHandler) delete(c *fiber.Ctx) error {
	if err := h.service.Delete(requestContext(c), c.Params("code")); err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "thesis deleted", nil)
}

func (h *ThesisHandler) addLecturer(c *fiber.Ctx) error {
	var payload dto.AddLecturerRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	thesis, err := h.service.AddLecturer(requestContext(c), c.Params("code"), payload)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "supervisor added", thesis)
}

func (h *ThesisHandler) addStudent(c *fiber.Ctx) error {
	var payload dto.AddStudentRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	thesis, err := h.service.AddStudent(requestContext(c), c.Params("code"), payload)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "student enrolled", thesis)
}

func (h *ThesisHandler) attachReport(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "report file missing")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "report file unreadable")
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "report file unreadable")
	}

	thesis, err := h.service.AttachReport(requestContext(c), c.Params("code"), fileHeader.Filename, content)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "report attached", thesis)
}
