package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/thesis-api/internal/models"
	"github.com/noah-isme/thesis-api/internal/repository"
)

// DirectoryService exposes read-only lecturer and student listings used by
// council and thesis administration screens.
type DirectoryService interface {
	ListLecturers(ctx context.Context, filter repository.LecturerFilter) ([]models.Lecturer, error)
	GetLecturer(ctx context.Context, userID uint) (models.Lecturer, error)
	ListStudents(ctx context.Context, filter repository.StudentFilter) ([]models.Student, error)
	GetStudent(ctx context.Context, userID uint) (models.Student, error)
}

type directoryService struct {
	lecturers repository.LecturerRepository
	students  repository.StudentRepository
	logger    zerolog.Logger
}

// NewDirectoryService constructs a directory service.
func NewDirectoryService(lecturers repository.LecturerRepository, students repository.StudentRepository, logger zerolog.Logger) DirectoryService {
	return &directoryService{
		lecturers: lecturers,
		students:  students,
		logger:    logger.With().Str("component", "directory_service").Logger(),
	}
}

func (s *directoryService) ListLecturers(ctx context.Context, filter repository.LecturerFilter) ([]models.Lecturer, error) {
	return s.lecturers.List(ctx, filter)
}

func (s *directoryService) GetLecturer(ctx context.Context, userID uint) (models.Lecturer, error) {
	lecturer, err := s.lecturers.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Lecturer{}, NewNotFound("lecturer not found")
		}
		return models.Lecturer{}, err
	}
	return lecturer, nil
}

func (s *directoryService) ListStudents(ctx context.Context, filter repository.StudentFilter) ([]models.Student, error) {
	return s.students.List(ctx, filter)
}

func (s *directoryService) GetStudent(ctx context.Context, userID uint) (models.Student, error) {
	student, err := s.students.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Student{}, NewNotFound("student not found")
		}
		return models.Student{}, err
	}
	return student, nil
}
