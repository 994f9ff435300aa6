package models

import "time"

const (
	// PositionChair leads the council. At most one per council.
	PositionChair = "chair"
	// PositionSecretary records council proceedings. At most one per council.
	PositionSecretary = "secretary"
	// PositionReviewer critiques the thesis. At most one per council.
	PositionReviewer = "reviewer"
	// PositionMember is an ordinary grading seat.
	PositionMember = "member"
)

// Position is a seat type on a council. Uniqueness rules key off Code, not
// the display name.
type Position struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"size:16;uniqueIndex;not null" json:"code"`
	Name string `gorm:"size:15;not null" json:"name"`
}

// Council is a grading panel. Once IsLock flips to true no score on any of
// its theses may be created or changed.
type Council struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"size:50" json:"description"`
	IsLock      bool      `gorm:"not null;default:false" json:"is_lock"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MaxCouncilMembers caps how many seats a council may have.
const MaxCouncilMembers = 5

// MaxCouncilTheses caps how many theses one council grades.
const MaxCouncilTheses = 5

// CouncilDetail is a lecturer's seat on a council. A lecturer holds at most
// one seat per council.
type CouncilDetail struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	CouncilID  uint     `gorm:"not null;uniqueIndex:idx_council_lecturer" json:"council_id"`
	LecturerID uint     `gorm:"not null;uniqueIndex:idx_council_lecturer" json:"lecturer_id"`
	PositionID uint     `gorm:"not null" json:"position_id"`
	Council    Council  `gorm:"constraint:OnDelete:CASCADE" json:"council"`
	Lecturer   Lecturer `gorm:"foreignKey:LecturerID;references:UserID" json:"lecturer"`
	Position   Position `json:"position"`
}
