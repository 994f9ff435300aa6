package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/thesis-api/internal/dto"
	"github.com/noah-isme/thesis-api/internal/repository"
	"github.com/noah-isme/thesis-api/internal/service"
	"github.com/noah-isme/thesis-api/internal/utils"
)

// DirectoryHandler serves the lecturer and student listings used when
// composing councils and theses.
type DirectoryHandler struct {
	service service.DirectoryService
	logger  zerolog.Logger
}

// NewDirectoryHandler constructs a handler instance.
func NewDirectoryHandler(service service.DirectoryService, logger zerolog.Logger) *DirectoryHandler {
	return &DirectoryHandler{
		service: service,
		logger:  logger.With().Str("component", "directory_handler").Logger(),
	}
}

// Register binds the directory routes.
func (h *DirectoryHandler) Register(router fiber.Router) {
	router.Get("/lecturers", h.listLecturers)
	router.Get("/lecturers/:id", h.getLecturer)
	router.Get("/students", h.listStudents)
	router.Get("/students/:id", h.getStudent)
}

func (h *DirectoryHandler) listLecturers(c *fiber.Ctx) error {
	filter := repository.LecturerFilter{
		Query:       c.Query("q"),
		FacultyCode: c.Query("faculty"),
	}

	lecturers, err := h.service.ListLecturers(requestContext(c), filter)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "lecturers", dto.NewLecturerResponseSlice(lecturers))
}

func (h *DirectoryHandler) getLecturer(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	lecturer, err := h.service.GetLecturer(requestContext(c), id)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "lecturer", dto.NewLecturerResponse(lecturer))
}

func (h *DirectoryHandler) listStudents(c *fiber.Ctx) error {
	filter := repository.StudentFilter{
		Query:     c.Query("q"),
		MajorCode: c.Query("major"),
	}

	students, err := h.service.ListStudents(requestContext(c), filter)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "students", dto.NewStudentResponseSlice(students))
}

func (h *DirectoryHandler) getStudent(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	student, err := h.service.GetStudent(requestContext(c), id)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "student", dto.NewStudentResponse(student))
}
