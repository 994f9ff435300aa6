package dto

import "github.com/noah-isme/thesis-api/internal/models"

// CriteriaCreateRequest registers a reusable evaluation criterion.
type CriteriaCreateRequest struct {
	Name             string `json:"name" validate:"required,max=150"`
	EvaluationMethod string `json:"evaluation_method" validate:"max=255"`
}

// AttachCriteriaRequest binds a criterion to a thesis with a weight.
type AttachCriteriaRequest struct {
	CriteriaID uint    `json:"criteria_id" validate:"required,gt=0"`
	Weight     float64 `json:"weight" validate:"gte=0,lte=1"`
}

// CriteriaResponse is returned to API clients when viewing criteria.
type CriteriaResponse struct {
	ID               uint   `json:"id"`
	Name             string `json:"name"`
	EvaluationMethod string `json:"evaluation_method"`
}

// NewCriteriaResponse maps a criteria model to its response shape.
func NewCriteriaResponse(criteria models.Criteria) CriteriaResponse {
	return CriteriaResponse{
		ID:               criteria.ID,
		Name:             criteria.Name,
		EvaluationMethod: criteria.EvaluationMethod,
	}
}

// NewCriteriaResponseSlice maps criteria models to response shapes.
func NewCriteriaResponseSlice(criteria []models.Criteria) []CriteriaResponse {
	responses := make([]CriteriaResponse, 0, len(criteria))
	for _, item := range criteria {
		responses = append(responses, NewCriteriaResponse(item))
	}
	return responses
}

// ThesisCriteriaResponse is a criterion as applied to one thesis.
type ThesisCriteriaResponse struct {
	ID               uint    `json:"id"`
	ThesisCode       string  `json:"thesis_code"`
	CriteriaID       uint    `json:"criteria_id"`
	CriteriaName     string  `json:"criteria_name"`
	EvaluationMethod string  `json:"evaluation_method"`
	Weight           float64 `json:"weight"`
}

// NewThesisCriteriaResponse maps a thesis-criteria binding to its response shape.
func NewThesisCriteriaResponse(binding models.ThesisCriteria) ThesisCriteriaResponse {
	return ThesisCriteriaResponse{
		ID:               binding.ID,
		ThesisCode:       binding.ThesisCode,
		CriteriaID:       binding.CriteriaID,
		CriteriaName:     binding.Criteria.Name,
		EvaluationMethod: binding.Criteria.EvaluationMethod,
		Weight:           binding.Weight,
	}
}

// NewThesisCriteriaResponseSlice maps thesis-criteria bindings to response shapes.
func NewThesisCriteriaResponseSlice(bindings []models.ThesisCriteria) []ThesisCriteriaResponse {
	responses := make([]ThesisCriteriaResponse, 0, len(bindings))
	for _, binding := range bindings {
		responses = append(responses, NewThesisCriteriaResponse(binding))
	}
	return responses
}
