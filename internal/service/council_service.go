package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/noah-isme/thesis-api/internal/dto"
	"github.com/noah-isme/thesis-api/internal/models"
	"github.com/noah-isme/thesis-api/internal/observability"
	"github.com/noah-isme/thesis-api/internal/repository"
	"github.com/noah-isme/thesis-api/pkg/mailer"
)

// CouncilService manages grading councils, their seats, thesis assignment
// and the lock lifecycle.
type CouncilService interface {
	List(ctx context.Context, filter dto.CouncilFilter) ([]dto.CouncilResponse, error)
	Get(ctx context.Context, id uint) (dto.CouncilResponse, error)
	Create(ctx context.Context, payload dto.CouncilCreateRequest) (dto.CouncilResponse, error)
	Update(ctx context.Context, id uint, payload dto.CouncilUpdateRequest) (dto.CouncilResponse, error)
	Delete(ctx context.Context, id uint) error

	ListMembers(ctx context.Context, councilID uint) ([]dto.CouncilMemberResponse, error)
	AddMember(ctx context.Context, councilID uint, payload dto.CouncilMemberRequest) (dto.CouncilMemberResponse, error)
	UpdateMember(ctx context.Context, councilID, detailID uint, positionCode string) (dto.CouncilMemberResponse, error)
	RemoveMember(ctx context.Context, councilID, detailID uint) error

	AssignThesis(ctx context.Context, councilID uint, payload dto.AssignThesisRequest) (dto.ThesisResponse, error)
	ToggleLock(ctx context.Context, councilID uint) (dto.LockResponse, error)
}

type councilService struct {
	councils  repository.CouncilRepository
	theses    repository.ThesisRepository
	lecturers repository.LecturerRepository
	students  repository.StudentRepository
	mail      mailer.Mailer
	validator *validator.Validate
	logger    zerolog.Logger
	tracer    trace.Tracer
}

// NewCouncilService constructs a council service.
func NewCouncilService(councils repository.CouncilRepository, theses repository.ThesisRepository, lecturers repository.LecturerRepository, students repository.StudentRepository, mail mailer.Mailer, validate *validator.Validate, logger zerolog.Logger) CouncilService {
	return &councilService{
		councils:  councils,
		theses:    theses,
		lecturers: lecturers,
		students:  students,
		mail:      mail,
		validator: validate,
		logger:    logger.With().Str("component", "council_service").Logger(),
		tracer:    otel.Tracer("github.com/noah-isme/thesis-api/internal/service/council"),
	}
}

func (s *councilService) List(ctx context.Context, filter dto.CouncilFilter) ([]dto.CouncilResponse, error) {
	councils, err := s.councils.List(ctx, repository.CouncilFilter{
		Query:  filter.Query,
		IsLock: filter.IsLock,
	})
	if err != nil {
		return nil, err
	}
	return dto.NewCouncilResponseSlice(councils), nil
}

func (s *councilService) Get(ctx context.Context, id uint) (dto.CouncilResponse, error) {
	council, err := s.loadCouncil(ctx, id)
	if err != nil {
		return dto.CouncilResponse{}, err
	}
	return dto.NewCouncilResponse(council), nil
}

func (s *councilService) Create(ctx context.Context, payload dto.CouncilCreateRequest) (dto.CouncilResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CouncilResponse{}, err
	}

	council := models.Council{
		Name:        payload.Name,
		Description: payload.Description,
	}
	if err := s.councils.Create(ctx, &council); err != nil {
		return dto.CouncilResponse{}, err
	}

	s.logger.Info().Uint("council_id", council.ID).Str("name", council.Name).Msg("council created")

	return dto.NewCouncilResponse(council), nil
}

func (s *councilService) Update(ctx context.Context, id uint, payload dto.CouncilUpdateRequest) (dto.CouncilResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CouncilResponse{}, err
	}

	council, err := s.loadCouncil(ctx, id)
	if err != nil {
		return dto.CouncilResponse{}, err
	}

	if payload.Name != nil {
		council.Name = *payload.Name
	}
	if payload.Description != nil {
		council.Description = *payload.Description
	}

	if err := s.councils.Update(ctx, &council); err != nil {
		return dto.CouncilResponse{}, err
	}

	return dto.NewCouncilResponse(council), nil
}

func (s *councilService) Delete(ctx context.Context, id uint) error {
	if _, err := s.loadCouncil(ctx, id); err != nil {
		return err
	}
	return s.councils.Delete(ctx, id)
}

func (s *councilService) ListMembers(ctx context.Context, councilID uint) ([]dto.CouncilMemberResponse, error) {
	if _, err := s.loadCouncil(ctx, councilID); err != nil {
		return nil, err
	}

	details, err := s.councils.ListDetails(ctx, councilID)
	if err != nil {
		return nil, err
	}

	return dto.NewCouncilMemberResponseSlice(details), nil
}

// AddMember seats a lecturer on a council. A council holds at most five
// seats, a lecturer holds at most one of them, and chair, secretary and
// reviewer each exist at most once.
func (s *councilService) AddMember(ctx context.Context, councilID uint, payload dto.CouncilMemberRequest) (dto.CouncilMemberResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CouncilMemberResponse{}, err
	}

	if _, err := s.loadCouncil(ctx, councilID); err != nil {
		return dto.CouncilMemberResponse{}, err
	}

	lecturer, err := s.lecturers.GetByUserID(ctx, payload.LecturerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CouncilMemberResponse{}, NewNotFound("lecturer not found")
		}
		return dto.CouncilMemberResponse{}, err
	}

	position, err := s.councils.GetPositionByCode(ctx, payload.PositionCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CouncilMemberResponse{}, NewNotFound("position not found")
		}
		return dto.CouncilMemberResponse{}, err
	}

	details, err := s.councils.ListDetails(ctx, councilID)
	if err != nil {
		return dto.CouncilMemberResponse{}, err
	}

	if len(details) >= models.MaxCouncilMembers {
		return dto.CouncilMemberResponse{}, NewInvalidInput(
			fmt.Sprintf("council already has the maximum of %d members", models.MaxCouncilMembers))
	}

	for _, detail := range details {
		if detail.LecturerID == payload.LecturerID {
			return dto.CouncilMemberResponse{}, NewConflict("lecturer already sits on this council")
		}
		if detail.Position.Code == position.Code && position.Code != models.PositionMember {
			return dto.CouncilMemberResponse{}, NewConflict(
				fmt.Sprintf("council already has a %s", position.Name))
		}
	}

	detail := models.CouncilDetail{
		CouncilID:  councilID,
		LecturerID: payload.LecturerID,
		PositionID: position.ID,
	}
	if err := s.councils.CreateDetail(ctx, &detail); err != nil {
		return dto.CouncilMemberResponse{}, err
	}

	s.logger.Info().
		Uint("council_id", councilID).
		Uint("lecturer_id", payload.LecturerID).
		Str("position", position.Code).
		Msg("council member added")

	if position.Code == models.PositionReviewer {
		s.sendReviewerNotice(ctx, lecturer, councilID)
	}

	detail.Lecturer = lecturer
	detail.Position = position

	return dto.NewCouncilMemberResponseSlice([]models.CouncilDetail{detail})[0], nil
}

// UpdateMember moves a seat to a different position under the same
// uniqueness rules as AddMember.
func (s *councilService) UpdateMember(ctx context.Context, councilID, detailID uint, positionCode string) (dto.CouncilMemberResponse, error) {
	detail, err := s.councils.GetDetail(ctx, detailID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CouncilMemberResponse{}, NewNotFound("council member not found")
		}
		return dto.CouncilMemberResponse{}, err
	}
	if detail.CouncilID != councilID {
		return dto.CouncilMemberResponse{}, NewNotFound("council member not found")
	}

	position, err := s.councils.GetPositionByCode(ctx, positionCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CouncilMemberResponse{}, NewNotFound("position not found")
		}
		return dto.CouncilMemberResponse{}, err
	}

	if position.Code != models.PositionMember {
		details, err := s.councils.ListDetails(ctx, councilID)
		if err != nil {
			return dto.CouncilMemberResponse{}, err
		}
		for _, other := range details {
			if other.ID != detail.ID && other.Position.Code == position.Code {
				return dto.CouncilMemberResponse{}, NewConflict(
					fmt.Sprintf("council already has a %s", position.Name))
			}
		}
	}

	detail.PositionID = position.ID
	detail.Position = position
	if err := s.councils.UpdateDetail(ctx, &detail); err != nil {
		return dto.CouncilMemberResponse{}, err
	}

	s.logger.Info().
		Uint("council_id", councilID).
		Uint("detail_id", detailID).
		Str("position", position.Code).
		Msg("council member position changed")

	if position.Code == models.PositionReviewer {
		s.sendReviewerNotice(ctx, detail.Lecturer, councilID)
	}

	return dto.NewCouncilMemberResponseSlice([]models.CouncilDetail{detail})[0], nil
}

func (s *councilService) RemoveMember(ctx context.Context, councilID, detailID uint) error {
	detail, err := s.councils.GetDetail(ctx, detailID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFound("council member not found")
		}
		return err
	}

	if detail.CouncilID != councilID {
		return NewNotFound("council member not found")
	}

	return s.councils.DeleteDetail(ctx, detailID)
}

// AssignThesis puts a thesis on a council's docket. A council grades at
// most five theses, a thesis is graded by one council, and none of the
// thesis's supervisors may sit on the grading council.
func (s *councilService) AssignThesis(ctx context.Context, councilID uint, payload dto.AssignThesisRequest) (dto.ThesisResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ThesisResponse{}, err
	}

	spanCtx, span := s.tracer.Start(ctx, "council.assign_thesis", trace.WithAttributes(
		attribute.Int("council.id", int(councilID)),
		attribute.String("thesis.code", payload.ThesisCode),
	))
	defer span.End()

	if _, err := s.loadCouncil(spanCtx, councilID); err != nil {
		return dto.ThesisResponse{}, err
	}

	thesis, err := s.theses.GetByCode(spanCtx, payload.ThesisCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ThesisResponse{}, NewNotFound("thesis not found")
		}
		span.RecordError(err)
		return dto.ThesisResponse{}, err
	}

	if thesis.CouncilID != nil {
		return dto.ThesisResponse{}, NewConflict("thesis is already assigned to a council")
	}

	count, err := s.theses.CountByCouncil(spanCtx, councilID)
	if err != nil {
		span.RecordError(err)
		return dto.ThesisResponse{}, err
	}
	if count >= models.MaxCouncilTheses {
		return dto.ThesisResponse{}, NewInvalidInput(
			fmt.Sprintf("council already grades the maximum of %d theses", models.MaxCouncilTheses))
	}

	details, err := s.councils.ListDetails(spanCtx, councilID)
	if err != nil {
		span.RecordError(err)
		return dto.ThesisResponse{}, err
	}
	for _, detail := range details {
		for _, supervisor := range thesis.Lecturers {
			if detail.LecturerID == supervisor.UserID {
				return dto.ThesisResponse{}, NewInvalidInput(
					fmt.Sprintf("supervisor %s sits on this council and cannot grade their own thesis", supervisor.FullName))
			}
		}
	}

	thesis.CouncilID = &councilID
	if err := s.theses.Update(spanCtx, &thesis); err != nil {
		span.RecordError(err)
		return dto.ThesisResponse{}, err
	}

	s.logger.Info().
		Uint("council_id", councilID).
		Str("thesis_code", thesis.Code).
		Msg("thesis assigned to council")

	return dto.NewThesisResponse(thesis), nil
}

// ToggleLock flips the council lock. Locking freezes score mutation on the
// council's theses; on the unlocked-to-locked edge every enrolled student
// of a thesis supervised by a council member is emailed their result.
func (s *councilService) ToggleLock(ctx context.Context, councilID uint) (dto.LockResponse, error) {
	spanCtx, span := s.tracer.Start(ctx, "council.toggle_lock",
		trace.WithAttributes(attribute.Int("council.id", int(councilID))))
	defer span.End()

	council, err := s.loadCouncil(spanCtx, councilID)
	if err != nil {
		return dto.LockResponse{}, err
	}

	wasLocked := council.IsLock
	council.IsLock = !council.IsLock
	if err := s.councils.Update(spanCtx, &council); err != nil {
		span.RecordError(err)
		return dto.LockResponse{}, err
	}

	s.logger.Info().
		Uint("council_id", council.ID).
		Bool("is_lock", council.IsLock).
		Msg("council lock toggled")

	if !wasLocked && council.IsLock {
		s.notifyLockedScores(spanCtx, council)
	}

	return dto.LockResponse{ID: council.ID, IsLock: council.IsLock}, nil
}

// notifyLockedScores emails each student of every thesis supervised by a
// council member. The lock has already committed, so delivery failures are
// logged and never roll the lock back.
func (s *councilService) notifyLockedScores(ctx context.Context, council models.Council) {
	details, err := s.councils.ListDetails(ctx, council.ID)
	if err != nil {
		s.logger.Error().Err(err).Uint("council_id", council.ID).Msg("lock notification: listing members failed")
		return
	}

	seen := make(map[string]bool)
	for _, detail := range details {
		theses, err := s.theses.ListBySupervisor(ctx, detail.LecturerID)
		if err != nil {
			s.logger.Error().Err(err).Uint("lecturer_id", detail.LecturerID).Msg("lock notification: listing theses failed")
			continue
		}

		for _, thesis := range theses {
			if seen[thesis.Code] {
				continue
			}
			seen[thesis.Code] = true

			students, err := s.students.ListByThesis(ctx, thesis.Code)
			if err != nil {
				s.logger.Error().Err(err).Str("thesis_code", thesis.Code).Msg("lock notification: listing students failed")
				continue
			}

			for _, student := range students {
				message := mailer.Message{
					To:      student.User.Email,
					ToName:  student.FullName,
					Subject: fmt.Sprintf("Thesis result published: %s", thesis.Name),
					Body: fmt.Sprintf(
						"Dear %s,\n\nGrading for the thesis %q has been finalized. Your total score is %.2f.\n",
						student.FullName, thesis.Name, thesis.TotalScore),
				}
				if err := s.mail.Send(ctx, message); err != nil {
					s.logger.Error().Err(err).Str("to", student.User.Email).Msg("lock notification: send failed")
					continue
				}
				observability.LockNotifications().Inc()
			}
		}
	}
}

// sendReviewerNotice tells a lecturer they were appointed reviewer. Best
// effort only.
func (s *councilService) sendReviewerNotice(ctx context.Context, lecturer models.Lecturer, councilID uint) {
	message := mailer.Message{
		To:      lecturer.User.Email,
		ToName:  lecturer.FullName,
		Subject: "Reviewer appointment",
		Body: fmt.Sprintf(
			"Dear %s,\n\nYou have been appointed reviewer on council %d. Please prepare your assessment before the defense.\n",
			lecturer.FullName, councilID),
	}
	if err := s.mail.Send(ctx, message); err != nil {
		s.logger.Error().Err(err).Str("to", lecturer.User.Email).Msg("reviewer notice: send failed")
	}
}

func (s *councilService) loadCouncil(ctx context.Context, id uint) (models.Council, error) {
	council, err := s.councils.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Council{}, NewNotFound("council not found")
		}
		return models.Council{}, err
	}
	return council, nil
}
