package dto

import (
	"time"

	"github.com/noah-isme/thesis-api/internal/models"
)

// ThesisCreateRequest registers a new thesis.
type ThesisCreateRequest struct {
	Code         string    `json:"code" validate:"required,max=10"`
	Name         string    `json:"name" validate:"required,max=200"`
	StartDate    time.Time `json:"start_date" validate:"required"`
	EndDate      time.Time `json:"end_date" validate:"required"`
	MajorCode    string    `json:"major_code" validate:"required,max=10"`
	SchoolYearID uint      `json:"school_year_id" validate:"required,gt=0"`
}

// ThesisUpdateRequest patches thesis fields. Aggregate fields are not
// settable; they are recomputed after the update instead.
type ThesisUpdateRequest struct {
	Name      *string    `json:"name" validate:"omitempty,max=200"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

// ThesisFilter describes query string filters for listing theses.
type ThesisFilter struct {
	Query        string `query:"q"`
	CouncilID    *uint  `query:"council_id"`
	MajorCode    string `query:"major_code"`
	SchoolYearID *uint  `query:"school_year_id"`
}

// AddLecturerRequest attaches a supervising lecturer to a thesis.
type AddLecturerRequest struct {
	LecturerCode string `json:"lecturer_code" validate:"required,max=10"`
}

// AddStudentRequest enrolls a student on a thesis.
type AddStudentRequest struct {
	StudentID uint `json:"student_id" validate:"required,gt=0"`
}

// ThesisResponse is returned to API clients when viewing theses.
type ThesisResponse struct {
	Code         string             `json:"code"`
	Name         string             `json:"name"`
	StartDate    time.Time          `json:"start_date"`
	EndDate      time.Time          `json:"end_date"`
	ReportFile   string             `json:"report_file"`
	TotalScore   float64            `json:"total_score"`
	Result       bool               `json:"result"`
	MajorCode    string             `json:"major_code"`
	MajorName    string             `json:"major_name"`
	SchoolYearID uint               `json:"school_year_id"`
	CouncilID    *uint              `json:"council_id"`
	Lecturers    []LecturerSummary  `json:"lecturers"`
	Students     []StudentSummary   `json:"students"`
	Criteria     []CriteriaResponse `json:"criteria,omitempty"`
}

// LecturerSummary is the compact lecturer shape embedded in other responses.
type LecturerSummary struct {
	UserID   uint   `json:"user_id"`
	Code     string `json:"code"`
	FullName string `json:"full_name"`
}

// StudentSummary is the compact student shape embedded in other responses.
type StudentSummary struct {
	UserID   uint   `json:"user_id"`
	Code     string `json:"code"`
	FullName string `json:"full_name"`
}

// NewThesisResponse maps a thesis model to its response shape.
func NewThesisResponse(thesis models.Thesis) ThesisResponse {
	lecturers := make([]LecturerSummary, 0, len(thesis.Lecturers))
	for _, lecturer := range thesis.Lecturers {
		lecturers = append(lecturers, LecturerSummary{
			UserID:   lecturer.UserID,
			Code:     lecturer.Code,
			FullName: lecturer.FullName,
		})
	}

	students := make([]StudentSummary, 0, len(thesis.Students))
	for _, student := range thesis.Students {
		students = append(students, StudentSummary{
			UserID:   student.UserID,
			Code:     student.Code,
			FullName: student.FullName,
		})
	}

	return ThesisResponse{
		Code:         thesis.Code,
		Name:         thesis.Name,
		StartDate:    thesis.StartDate,
		EndDate:      thesis.EndDate,
		ReportFile:   thesis.ReportFile,
		TotalScore:   thesis.TotalScore,
		Result:       thesis.Result,
		MajorCode:    thesis.MajorCode,
		MajorName:    thesis.Major.Name,
		SchoolYearID: thesis.SchoolYearID,
		CouncilID:    thesis.CouncilID,
		Lecturers:    lecturers,
		Students:     students,
	}
}

// NewThesisResponseSlice maps thesis models to response shapes.
func NewThesisResponseSlice(theses []models.Thesis) []ThesisResponse {
	responses := make([]ThesisResponse, 0, len(theses))
	for _, thesis := range theses {
		responses = append(responses, NewThesisResponse(thesis))
	}
	return responses
}

// ScoreSheetRow is one evaluator's line on the score sheet.
type ScoreSheetRow struct {
	LecturerName  string  `json:"lecturer_name"`
	Position      string  `json:"position"`
	WeightedTotal float64 `json:"weighted_total"`
}

// ScoreSheetResponse is the printable grading report for one thesis.
type ScoreSheetResponse struct {
	ThesisCode  string            `json:"thesis_code"`
	ThesisName  string            `json:"thesis_name"`
	MajorName   string            `json:"major_name"`
	CouncilName string            `json:"council_name"`
	Students    []StudentSummary  `json:"students"`
	Supervisors []LecturerSummary `json:"supervisors"`
	Rows        []ScoreSheetRow   `json:"rows"`
	TotalScore  float64           `json:"total_score"`
	Result      bool              `json:"result"`
}
