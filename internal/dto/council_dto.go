package dto

import "github.com/noah-isme/thesis-api/internal/models"

// CouncilCreateRequest registers a new grading council.
type CouncilCreateRequest struct {
	Name        string `json:"name" validate:"required,max=50"`
	Description string `json:"description" validate:"max=50"`
}

// CouncilUpdateRequest patches council fields. The lock flag has its own
// endpoint and is not settable here.
type CouncilUpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=50"`
	Description *string `json:"description" validate:"omitempty,max=50"`
}

// CouncilFilter describes query string filters for listing councils.
type CouncilFilter struct {
	Query  string `query:"q"`
	IsLock *bool  `query:"is_lock"`
}

// CouncilMemberRequest adds a lecturer to a council or changes their seat.
type CouncilMemberRequest struct {
	LecturerID   uint   `json:"lecturer_id" validate:"required,gt=0"`
	PositionCode string `json:"position_code" validate:"required,oneof=chair secretary reviewer member"`
}

// AssignThesisRequest assigns a thesis to a council.
type AssignThesisRequest struct {
	ThesisCode string `json:"thesis_code" validate:"required,max=10"`
}

// CouncilResponse is returned to API clients when viewing councils.
type CouncilResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsLock      bool   `json:"is_lock"`
}

// NewCouncilResponse maps a council model to its response shape.
func NewCouncilResponse(council models.Council) CouncilResponse {
	return CouncilResponse{
		ID:          council.ID,
		Name:        council.Name,
		Description: council.Description,
		IsLock:      council.IsLock,
	}
}

// NewCouncilResponseSlice maps council models to response shapes.
func NewCouncilResponseSlice(councils []models.Council) []CouncilResponse {
	responses := make([]CouncilResponse, 0, len(councils))
	for _, council := range councils {
		responses = append(responses, NewCouncilResponse(council))
	}
	return responses
}

// CouncilMemberResponse is one seat on a council.
type CouncilMemberResponse struct {
	ID           uint   `json:"id"`
	LecturerID   uint   `json:"lecturer_id"`
	LecturerName string `json:"lecturer_name"`
	PositionCode string `json:"position_code"`
	PositionName string `json:"position_name"`
}

// NewCouncilMemberResponseSlice maps council seats to response shapes.
func NewCouncilMemberResponseSlice(details []models.CouncilDetail) []CouncilMemberResponse {
	responses := make([]CouncilMemberResponse, 0, len(details))
	for _, detail := range details {
		responses = append(responses, CouncilMemberResponse{
			ID:           detail.ID,
			LecturerID:   detail.LecturerID,
			LecturerName: detail.Lecturer.FullName,
			PositionCode: detail.Position.Code,
			PositionName: detail.Position.Name,
		})
	}
	return responses
}

// LockResponse reports the council lock state after a toggle.
type LockResponse struct {
	ID     uint `json:"id"`
	IsLock bool `json:"is_lock"`
}
