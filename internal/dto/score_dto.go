package dto

import (
	"time"

	"github.com/noah-isme/thesis-api/internal/models"
)

// ScoreCreateRequest is the payload for grading one thesis criterion.
type ScoreCreateRequest struct {
	ThesisCriteriaID uint    `json:"thesis_criteria_id" validate:"required,gt=0"`
	ScoreNumber      float64 `json:"score_number" validate:"gte=0,lte=10"`
}

// ScoreUpdateRequest changes an existing score's mark.
type ScoreUpdateRequest struct {
	ScoreNumber float64 `json:"score_number" validate:"gte=0,lte=10"`
}

// ScoreResponse is returned to API clients when viewing scores.
type ScoreResponse struct {
	ID               uint      `json:"id"`
	ThesisCriteriaID uint      `json:"thesis_criteria_id"`
	CouncilDetailID  uint      `json:"council_detail_id"`
	ThesisCode       string    `json:"thesis_code"`
	CriteriaName     string    `json:"criteria_name"`
	LecturerName     string    `json:"lecturer_name"`
	ScoreNumber      float64   `json:"score_number"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NewScoreResponse maps a score model to its response shape.
func NewScoreResponse(score models.Score) ScoreResponse {
	return ScoreResponse{
		ID:               score.ID,
		ThesisCriteriaID: score.ThesisCriteriaID,
		CouncilDetailID:  score.CouncilDetailID,
		ThesisCode:       score.ThesisCriteria.ThesisCode,
		CriteriaName:     score.ThesisCriteria.Criteria.Name,
		LecturerName:     score.CouncilDetail.Lecturer.FullName,
		ScoreNumber:      score.ScoreNumber,
		UpdatedAt:        score.UpdatedAt,
	}
}

// LecturerScoreResponse lists one of the caller's own marks for a thesis
// together with the criterion being graded.
type LecturerScoreResponse struct {
	ID               uint    `json:"id"`
	ThesisCriteriaID uint    `json:"thesis_criteria_id"`
	CouncilDetailID  uint    `json:"council_detail_id"`
	ScoreNumber      float64 `json:"score_number"`
	CriteriaName     string  `json:"criteria_name"`
	EvaluationMethod string  `json:"evaluation_method"`
}

// NewLecturerScoreResponseSlice maps score models to the lecturer view.
func NewLecturerScoreResponseSlice(scores []models.Score) []LecturerScoreResponse {
	responses := make([]LecturerScoreResponse, 0, len(scores))
	for _, score := range scores {
		responses = append(responses, LecturerScoreResponse{
			ID:               score.ID,
			ThesisCriteriaID: score.ThesisCriteriaID,
			CouncilDetailID:  score.CouncilDetailID,
			ScoreNumber:      score.ScoreNumber,
			CriteriaName:     score.ThesisCriteria.Criteria.Name,
			EvaluationMethod: score.ThesisCriteria.Criteria.EvaluationMethod,
		})
	}
	return responses
}
