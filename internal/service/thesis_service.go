package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/noah-isme/thesis-api/internal/dto"
	"github.com/noah-isme/thesis-api/internal/models"
	"github.com/noah-isme/thesis-api/internal/repository"
)

// FileUploader stores a report artifact and returns its public URL.
type FileUploader interface {
	Upload(ctx context.Context, name string, reader io.Reader) (string, error)
}

// ThesisService exposes thesis lifecycle use-cases.
type ThesisService interface {
	List(ctx context.Context, filter dto.ThesisFilter) ([]dto.ThesisResponse, error)
	Get(ctx context.Context, code string) (dto.ThesisResponse, error)
	Create(ctx context.Context, payload dto.ThesisCreateRequest) (dto.ThesisResponse, error)
	Update(ctx context.Context, code string, payload dto.ThesisUpdateRequest) (dto.ThesisResponse, error)
	Delete(ctx context.Context, code string) error
	AddLecturer(ctx context.Context, code string, payload dto.AddLecturerRequest) (dto.ThesisResponse, error)
	AddStudent(ctx context.Context, code string, payload dto.AddStudentRequest) (dto.ThesisResponse, error)
	AttachReport(ctx context.Context, code, filename string, content []byte) (dto.ThesisResponse, error)
}

type thesisService struct {
	theses     repository.ThesisRepository
	lecturers  repository.LecturerRepository
	students   repository.StudentRepository
	aggregator ScoreAggregator
	uploader   FileUploader
	validator  *validator.Validate
	logger     zerolog.Logger
	tracer     trace.Tracer
}

// NewThesisService constructs a thesis service.
func NewThesisService(theses repository.ThesisRepository, lecturers repository.LecturerRepository, students repository.StudentRepository, aggregator ScoreAggregator, uploader FileUploader, validate *validator.Validate, logger zerolog.Logger) ThesisService {
	return &thesisService{
		theses:     theses,
		lecturers:  lecturers,
		students:   students,
		aggregator: aggregator,
		uploader:   uploader,
		validator:  validate,
		logger:     logger.With().Str("component", "thesis_service").Logger(),
		tracer:     otel.Tracer("github.com/noah-isme/thesis-api/internal/service/thesis"),
	}
}

func (s *thesisService) List(ctx context.Context, filter dto.ThesisFilter) ([]dto.ThesisResponse, error) {
	theses, err := s.theses.List(ctx, repository.ThesisFilter{
		Query:        filter.Query,
		CouncilID:    filter.CouncilID,
		MajorCode:    filter.MajorCode,
		SchoolYearID: filter.SchoolYearID,
	})
	if err != nil {
		return nil, err
	}
	return dto.NewThesisResponseSlice(theses), nil
}

func (s *thesisService) Get(ctx context.Context, code string) (dto.ThesisResponse, error) {
	thesis, err := s.loadThesis(ctx, code)
	if err != nil {
		return dto.ThesisResponse{}, err
	}
	return dto.NewThesisResponse(thesis), nil
}

func (s *thesisService) Create(ctx context.Context, payload dto.ThesisCreateRequest) (dto.ThesisResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ThesisResponse{}, err
	}

	if !payload.EndDate.After(payload.StartDate) {
		return dto.ThesisResponse{}, NewInvalidInput("end date must be after start date")
	}

	if _, err := s.theses.GetByCode(ctx, payload.Code); err == nil {
		return dto.ThesisResponse{}, NewConflict("thesis code already in use")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.ThesisResponse{}, err
	}

	thesis := models.Thesis{
		Code:         payload.Code,
		Name:         payload.Name,
		StartDate:    payload.StartDate,
		EndDate:      payload.EndDate,
		MajorCode:    payload.MajorCode,
		SchoolYearID: payload.SchoolYearID,
	}
	if err := s.theses.Create(ctx, &thesis); err != nil {
		return dto.ThesisResponse{}, err
	}

	s.logger.Info().Str("thesis_code", thesis.Code).Str("name", thesis.Name).Msg("thesis created")

	created, err := s.loadThesis(ctx, thesis.Code)
	if err != nil {
		return dto.ThesisResponse{}, err
	}

	return dto.NewThesisResponse(created), nil
}

func (s *thesisService) Update(ctx context.Context, code string, payload dto.ThesisUpdateRequest) (dto.ThesisResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ThesisResponse{}, err
	}

	thesis, err := s.loadThesis(ctx, code)
	if err != nil {
		return dto.ThesisResponse{}, err
	}

	if payload.Name != nil {
		thesis.Name = *payload.Name
	}
	if payload.StartDate != nil {
		thesis.StartDate = *payload.StartDate
	}
	if payload.EndDate != nil {
		thesis.EndDate = *payload.EndDate
	}

	if !thesis.EndDate.After(thesis.StartDate) {
		return dto.ThesisResponse{}, NewInvalidInput("end date must be after start date")
	}

	if err := s.theses.Update(ctx, &thesis); err != nil {
		return dto.ThesisResponse{}, err
	}

	// Every thesis save re-derives the aggregate pair from the score rows.
	if err := s.aggregator.Recompute(ctx, thesis.Code); err != nil {
		s.logger.Error().Err(err).Str("thesis_code", thesis.Code).Msg("aggregate recompute failed")
	}

	updated, err := s.loadThesis(ctx, thesis.Code)
	if err != nil {
		return dto.ThesisResponse{}, err
	}

	return dto.NewThesisResponse(updated), nil
}

func (s *thesisService) Delete(ctx context.Context, code string) error {
	if _, err := s.loadThesis(ctx, code); err != nil {
		return err
	}
	return s.theses.Delete(ctx, code)
}

// AddLecturer registers a supervising lecturer. A thesis has at most two
// supervisors, each from the faculty that owns the thesis's major.
func (s *thesisService) AddLecturer(ctx context.Context, code string, payload dto.AddLecturerRequest) (dto.ThesisResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ThesisResponse{}, err
	}

	thesis, err := s.loadThesis(ctx, code)
	if err != nil {
		return dto.ThesisResponse{}, err
	}

	lecturer, err := s.lecturers.GetByCode(ctx, payload.LecturerCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ThesisResponse{}, NewNotFound("lecturer not found")
		}
		return dto.ThesisResponse{}, err
	}

	if len(thesis.Lecturers) >= models.MaxThesisSupervisors {
		return dto.ThesisResponse{}, NewInvalidInput(
			fmt.Sprintf("thesis already has the maximum of %d supervisors", models.MaxThesisSupervisors))
	}

	for _, existing := range thesis.Lecturers {
		if existing.UserID == lecturer.UserID {
			return dto.ThesisResponse{}, NewConflict("lecturer already supervises this thesis")
		}
	}

	if lecturer.FacultyCode != thesis.Major.FacultyCode {
		return dto.ThesisResponse{}, NewInvalidInput("supervisor must belong to the faculty of the thesis's major")
	}

	if err := s.theses.AddLecturer(ctx, &thesis, lecturer); err != nil {
		return dto.ThesisResponse{}, err
	}

	s.logger.Info().
		Str("thesis_code", thesis.Code).
		Str("lecturer_code", lecturer.Code).
		Msg("supervisor added to thesis")

	updated, err := s.loadThesis(ctx, thesis.Code)
	if err != nil {
		return dto.ThesisResponse{}, err
	}

	return dto.NewThesisResponse(updated), nil
}

// AddStudent enrolls a student. The student must study the thesis's major
// and must not already be enrolled on another thesis.
func (s *thesisService) AddStudent(ctx context.Context, code string, payload dto.AddStudentRequest) (dto.ThesisResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ThesisResponse{}, err
	}

	thesis, err := s.loadThesis(ctx, code)
	if err != nil {
		return dto.ThesisResponse{}, err
	}

	student, err := s.students.GetByUserID(ctx, payload.StudentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ThesisResponse{}, NewNotFound("student not found")
		}
		return dto.ThesisResponse{}, err
	}

	if student.ThesisCode != nil {
		return dto.ThesisResponse{}, NewConflict("student is already enrolled on a thesis")
	}

	if student.MajorCode != thesis.MajorCode {
		return dto.ThesisResponse{}, NewInvalidInput("student's major does not match the thesis major")
	}

	student.ThesisCode = &thesis.Code
	if err := s.students.Update(ctx, &student); err != nil {
		return dto.ThesisResponse{}, err
	}

	s.logger.Info().
		Str("thesis_code", thesis.Code).
		Str("student_code", student.Code).
		Msg("student enrolled on thesis")

	updated, err := s.loadThesis(ctx, thesis.Code)
	if err != nil {
		return dto.ThesisResponse{}, err
	}

	return dto.NewThesisResponse(updated), nil
}

// AttachReport validates the uploaded artifact is a PDF, stores it and
// records the resulting URL on the thesis.
func (s *thesisService) AttachReport(ctx context.Context, code, filename string, content []byte) (dto.ThesisResponse, error) {
	spanCtx, span := s.tracer.Start(ctx, "thesis.attach_report", trace.WithAttributes(
		attribute.String("thesis.code", code),
		attribute.Int("report.size_bytes", len(content)),
	))
	defer span.End()

	thesis, err := s.loadThesis(spanCtx, code)
	if err != nil {
		return dto.ThesisResponse{}, err
	}

	if len(content) == 0 {
		return dto.ThesisResponse{}, NewInvalidInput("report file is empty")
	}

	detected := mimetype.Detect(content)
	if !detected.Is("application/pdf") {
		return dto.ThesisResponse{}, NewInvalidInput(
			fmt.Sprintf("report must be a PDF, got %s", detected.String()))
	}

	url, err := s.uploader.Upload(spanCtx, filename, bytes.NewReader(content))
	if err != nil {
		span.RecordError(err)
		return dto.ThesisResponse{}, err
	}

	thesis.ReportFile = url
	if err := s.theses.Update(spanCtx, &thesis); err != nil {
		span.RecordError(err)
		return dto.ThesisResponse{}, err
	}

	s.logger.Info().Str("thesis_code", thesis.Code).Str("report_url", url).Msg("report attached")

	return dto.NewThesisResponse(thesis), nil
}

func (s *thesisService) loadThesis(ctx context.Context, code string) (models.Thesis, error) {
	thesis, err := s.theses.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Thesis{}, NewNotFound("thesis not found")
		}
		return models.Thesis{}, err
	}
	return thesis, nil
}
