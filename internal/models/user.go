package models

import "time"

const (
	// RoleAdmin can manage every resource.
	RoleAdmin = "admin"
	// RoleMinistry manages academic records and statistics.
	RoleMinistry = "ministry"
	// RoleLecturer supervises and grades theses.
	RoleLecturer = "lecturer"
	// RoleStudent works on a thesis.
	RoleStudent = "student"
)

// User is an authenticated account. Role-specific data lives on the
// Lecturer/Student/Ministry profiles keyed by the user id.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Avatar    string    `gorm:"size:512" json:"avatar"`
	Phone     string    `gorm:"size:10" json:"phone"`
	Gender    string    `gorm:"size:10" json:"gender"`
	Role      string    `gorm:"size:16;not null" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Lecturer is the teaching-staff profile of a user.
type Lecturer struct {
	UserID      uint      `gorm:"primaryKey" json:"user_id"`
	Code        string    `gorm:"size:10;uniqueIndex;not null" json:"code"`
	FullName    string    `gorm:"size:50;not null" json:"full_name"`
	Birthday    time.Time `json:"birthday"`
	Address     string    `gorm:"size:100" json:"address"`
	FacultyCode string    `gorm:"size:10;not null" json:"faculty_code"`
	User        User      `gorm:"constraint:OnDelete:CASCADE" json:"user"`
	Faculty     Faculty   `gorm:"foreignKey:FacultyCode;references:Code" json:"faculty"`
}

// Student is the learner profile of a user. ThesisCode is nil until the
// student is enrolled on a thesis.
type Student struct {
	UserID     uint      `gorm:"primaryKey" json:"user_id"`
	Code       string    `gorm:"size:10;uniqueIndex;not null" json:"code"`
	FullName   string    `gorm:"size:50;not null" json:"full_name"`
	Birthday   time.Time `json:"birthday"`
	Address    string    `gorm:"size:100" json:"address"`
	GPA        float64   `json:"gpa"`
	MajorCode  string    `gorm:"size:10;not null" json:"major_code"`
	ThesisCode *string   `gorm:"size:10" json:"thesis_code"`
	User       User      `gorm:"constraint:OnDelete:CASCADE" json:"user"`
	Major      Major     `gorm:"foreignKey:MajorCode;references:Code" json:"major"`
	Thesis     *Thesis   `gorm:"foreignKey:ThesisCode;references:Code" json:"thesis,omitempty"`
}

// Ministry is the academic-affairs staff profile of a user.
type Ministry struct {
	UserID   uint      `gorm:"primaryKey" json:"user_id"`
	Code     string    `gorm:"size:10;uniqueIndex;not null" json:"code"`
	FullName string    `gorm:"size:50;not null" json:"full_name"`
	Birthday time.Time `json:"birthday"`
	Address  string    `gorm:"size:100" json:"address"`
	User     User      `gorm:"constraint:OnDelete:CASCADE" json:"user"`
}

// TableName keeps the irregular plural out of the schema.
func (Ministry) TableName() string { return "ministries" }
