package models

import "time"

// PassingScore is the aggregate total a thesis needs for a passing result.
const PassingScore = 5.00

// MaxThesisSupervisors caps the supervising lecturers per thesis.
const MaxThesisSupervisors = 2

// Thesis is the root entity for scoring. TotalScore and Result are
// denormalized aggregates owned by the score aggregator; they are always
// derivable from the current Score/ThesisCriteria rows and must never be
// written by anything else.
type Thesis struct {
	Code         string     `gorm:"primaryKey;size:10" json:"code"`
	Name         string     `gorm:"size:200;not null" json:"name"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      time.Time  `json:"end_date"`
	ReportFile   string     `gorm:"size:512" json:"report_file"`
	TotalScore   float64    `gorm:"not null;default:0" json:"total_score"`
	Result       bool       `gorm:"not null;default:false" json:"result"`
	MajorCode    string     `gorm:"size:10;not null" json:"major_code"`
	SchoolYearID uint       `gorm:"not null" json:"school_year_id"`
	CouncilID    *uint      `json:"council_id"`
	Major        Major      `gorm:"foreignKey:MajorCode;references:Code" json:"major"`
	SchoolYear   SchoolYear `json:"school_year"`
	Council      *Council   `json:"council,omitempty"`
	Lecturers    []Lecturer `gorm:"many2many:thesis_lecturers;joinForeignKey:ThesisCode;joinReferences:LecturerID" json:"lecturers"`
	Students     []Student  `gorm:"foreignKey:ThesisCode;references:Code" json:"students"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TableName pins the irregular plural.
func (Thesis) TableName() string { return "theses" }

// HasReport reports whether a report artifact has been attached.
func (t Thesis) HasReport() bool { return t.ReportFile != "" }

// Criteria is a reusable evaluation dimension, e.g. "research method".
type Criteria struct {
	ID               uint   `gorm:"primaryKey" json:"id"`
	Name             string `gorm:"size:150;not null" json:"name"`
	EvaluationMethod string `gorm:"size:255" json:"evaluation_method"`
}

// TableName keeps gorm from mangling the latin plural.
func (Criteria) TableName() string { return "criteria" }

// ThesisCriteria binds a criteria to one thesis with a weight in [0, 1].
// The weights of one thesis sum to at most 1.
type ThesisCriteria struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	ThesisCode string   `gorm:"size:10;not null;uniqueIndex:idx_thesis_criteria" json:"thesis_code"`
	CriteriaID uint     `gorm:"not null;uniqueIndex:idx_thesis_criteria" json:"criteria_id"`
	Weight     float64  `gorm:"not null" json:"weight"`
	Thesis     Thesis   `gorm:"foreignKey:ThesisCode;references:Code;constraint:OnDelete:CASCADE" json:"thesis"`
	Criteria   Criteria `gorm:"constraint:OnDelete:CASCADE" json:"criteria"`
}

// TableName pins the join table referenced by the score queries.
func (ThesisCriteria) TableName() string { return "thesis_criteria" }

// Score is one council member's mark (0-10) for one thesis criterion.
// A member scores a criterion at most once.
type Score struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	ThesisCriteriaID uint           `gorm:"not null;uniqueIndex:idx_criteria_evaluator" json:"thesis_criteria_id"`
	CouncilDetailID  uint           `gorm:"not null;uniqueIndex:idx_criteria_evaluator" json:"council_detail_id"`
	ScoreNumber      float64        `gorm:"not null" json:"score_number"`
	ThesisCriteria   ThesisCriteria `gorm:"constraint:OnDelete:CASCADE" json:"thesis_criteria"`
	CouncilDetail    CouncilDetail  `json:"council_detail"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}
