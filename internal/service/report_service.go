package service

import (
	"context"
	"errors"
	"sort"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/noah-isme/thesis-api/internal/dto"
	"github.com/noah-isme/thesis-api/internal/repository"
)

// ReportService assembles the printable score sheet for a thesis.
type ReportService interface {
	BuildScoreSheet(ctx context.Context, thesisCode string) (dto.ScoreSheetResponse, error)
}

type reportService struct {
	theses   repository.ThesisRepository
	criteria repository.CriteriaRepository
	scores   repository.ScoreRepository
	logger   zerolog.Logger
}

// NewReportService constructs a report service.
func NewReportService(theses repository.ThesisRepository, criteria repository.CriteriaRepository, scores repository.ScoreRepository, logger zerolog.Logger) ReportService {
	return &reportService{
		theses:   theses,
		criteria: criteria,
		scores:   scores,
		logger:   logger.With().Str("component", "report_service").Logger(),
	}
}

// BuildScoreSheet lists one row per evaluator holding their weighted total,
// alongside the thesis aggregate. Row totals use the same decimal rounding
// as the aggregate so the sheet and the stored total always agree.
func (s *reportService) BuildScoreSheet(ctx context.Context, thesisCode string) (dto.ScoreSheetResponse, error) {
	thesis, err := s.theses.GetByCode(ctx, thesisCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ScoreSheetResponse{}, NewNotFound("thesis not found")
		}
		return dto.ScoreSheetResponse{}, err
	}

	bindings, err := s.criteria.ListByThesis(ctx, thesisCode)
	if err != nil {
		return dto.ScoreSheetResponse{}, err
	}
	weights := make(map[uint]decimal.Decimal, len(bindings))
	for _, binding := range bindings {
		weights[binding.ID] = decimal.NewFromFloat(binding.Weight)
	}

	scores, err := s.scores.ListByThesis(ctx, thesisCode)
	if err != nil {
		return dto.ScoreSheetResponse{}, err
	}

	type evaluator struct {
		name     string
		position string
		total    decimal.Decimal
	}

	perSeat := make(map[uint]*evaluator)
	for _, score := range scores {
		weight, ok := weights[score.ThesisCriteriaID]
		if !ok {
			continue
		}

		seat, ok := perSeat[score.CouncilDetailID]
		if !ok {
			seat = &evaluator{
				name:     score.CouncilDetail.Lecturer.FullName,
				position: score.CouncilDetail.Position.Name,
			}
			perSeat[score.CouncilDetailID] = seat
		}
		seat.total = seat.total.Add(decimal.NewFromFloat(score.ScoreNumber).Mul(weight))
	}

	seatIDs := make([]uint, 0, len(perSeat))
	for id := range perSeat {
		seatIDs = append(seatIDs, id)
	}
	sort.Slice(seatIDs, func(i, j int) bool { return seatIDs[i] < seatIDs[j] })

	rows := make([]dto.ScoreSheetRow, 0, len(seatIDs))
	for _, id := range seatIDs {
		seat := perSeat[id]
		total, _ := seat.total.Round(2).Float64()
		rows = append(rows, dto.ScoreSheetRow{
			LecturerName:  seat.name,
			Position:      seat.position,
			WeightedTotal: total,
		})
	}

	supervisors := make([]dto.LecturerSummary, 0, len(thesis.Lecturers))
	for _, lecturer := range thesis.Lecturers {
		supervisors = append(supervisors, dto.LecturerSummary{
			UserID:   lecturer.UserID,
			Code:     lecturer.Code,
			FullName: lecturer.FullName,
		})
	}

	students := make([]dto.StudentSummary, 0, len(thesis.Students))
	for _, student := range thesis.Students {
		students = append(students, dto.StudentSummary{
			UserID:   student.UserID,
			Code:     student.Code,
			FullName: student.FullName,
		})
	}

	sheet := dto.ScoreSheetResponse{
		ThesisCode:  thesis.Code,
		ThesisName:  thesis.Name,
		MajorName:   thesis.Major.Name,
		Students:    students,
		Supervisors: supervisors,
		Rows:        rows,
		TotalScore:  thesis.TotalScore,
		Result:      thesis.Result,
	}
	if thesis.Council != nil {
		sheet.CouncilName = thesis.Council.Name
	}

	return sheet, nil
}
