package models

import "time"

// Faculty groups majors and lecturers.
type Faculty struct {
	Code string `gorm:"primaryKey;size:10" json:"code"`
	Name string `gorm:"size:50;not null" json:"name"`
}

// TableName avoids the faculty/faculties pluralization pitfall.
func (Faculty) TableName() string { return "faculties" }

// Major is a field of study within a faculty.
type Major struct {
	Code        string  `gorm:"primaryKey;size:10" json:"code"`
	Name        string  `gorm:"size:50;not null" json:"name"`
	FacultyCode string  `gorm:"size:10;not null" json:"faculty_code"`
	Faculty     Faculty `gorm:"foreignKey:FacultyCode;references:Code" json:"faculty"`
}

// SchoolYear is the academic year a thesis is defended in.
type SchoolYear struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:15;not null" json:"name"`
	StartYear time.Time `json:"start_year"`
	EndYear   time.Time `json:"end_year"`
}
