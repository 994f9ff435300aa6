package dto

// SchoolYearAverage is the mean aggregate score of theses in one school year.
type SchoolYearAverage struct {
	SchoolYearID uint    `json:"school_year_id"`
	Name         string  `json:"name"`
	StartYear    int     `json:"start_year"`
	EndYear      int     `json:"end_year"`
	AverageScore float64 `json:"average_score"`
}

// MajorThesisCount is the number of theses registered under one major.
type MajorThesisCount struct {
	MajorCode   string `json:"major_code"`
	MajorName   string `json:"major_name"`
	ThesisCount int64  `json:"thesis_count"`
}

// StatsResponse groups the ministry statistics payloads.
type StatsResponse struct {
	AverageScoreBySchoolYear []SchoolYearAverage `json:"avg_score_by_school_year"`
	ThesisCountByMajor       []MajorThesisCount  `json:"thesis_major_count"`
}
