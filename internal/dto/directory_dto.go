package dto

import "github.com/noah-isme/thesis-api/internal/models"

// LecturerResponse is returned to API clients when browsing lecturers.
type LecturerResponse struct {
	UserID      uint   `json:"user_id"`
	Code        string `json:"code"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	FacultyCode string `json:"faculty_code"`
	FacultyName string `json:"faculty_name"`
}

// NewLecturerResponseSlice maps lecturer models to response shapes.
func NewLecturerResponseSlice(lecturers []models.Lecturer) []LecturerResponse {
	responses := make([]LecturerResponse, 0, len(lecturers))
	for _, lecturer := range lecturers {
		responses = append(responses, NewLecturerResponse(lecturer))
	}
	return responses
}

// NewLecturerResponse maps a lecturer model to its response shape.
func NewLecturerResponse(lecturer models.Lecturer) LecturerResponse {
	return LecturerResponse{
		UserID:      lecturer.UserID,
		Code:        lecturer.Code,
		FullName:    lecturer.FullName,
		Email:       lecturer.User.Email,
		FacultyCode: lecturer.FacultyCode,
		FacultyName: lecturer.Faculty.Name,
	}
}

// StudentResponse is returned to API clients when browsing students.
type StudentResponse struct {
	UserID     uint    `json:"user_id"`
	Code       string  `json:"code"`
	FullName   string  `json:"full_name"`
	Email      string  `json:"email"`
	GPA        float64 `json:"gpa"`
	MajorCode  string  `json:"major_code"`
	MajorName  string  `json:"major_name"`
	ThesisCode *string `json:"thesis_code"`
}

// NewStudentResponseSlice maps student models to response shapes.
func NewStudentResponseSlice(students []models.Student) []StudentResponse {
	responses := make([]StudentResponse, 0, len(students))
	for _, student := range students {
		responses = append(responses, NewStudentResponse(student))
	}
	return responses
}

// NewStudentResponse maps a student model to its response shape.
func NewStudentResponse(student models.Student) StudentResponse {
	return StudentResponse{
		UserID:     student.UserID,
		Code:       student.Code,
		FullName:   student.FullName,
		Email:      student.User.Email,
		GPA:        student.GPA,
		MajorCode:  student.MajorCode,
		MajorName:  student.Major.Name,
		ThesisCode: student.ThesisCode,
	}
}
