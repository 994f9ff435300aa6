package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/thesis-api/internal/models"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func testValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Faculty{}, &models.Major{}, &models.SchoolYear{},
		&models.Lecturer{}, &models.Student{},
		&models.Position{}, &models.Council{}, &models.CouncilDetail{},
		&models.Thesis{}, &models.Criteria{}, &models.ThesisCriteria{}, &models.Score{},
		&models.Post{}, &models.Comment{}, &models.Like{},
	))

	return db
}

// scoringFixture is a fully wired grading scenario: a council with two
// evaluating seats, a thesis with two weighted criteria, one supervisor
// kept off the council and one enrolled student.
type scoringFixture struct {
	thesis         models.Thesis
	council        models.Council
	seatA, seatB   models.CouncilDetail
	evaluatorA     models.Lecturer
	evaluatorB     models.Lecturer
	supervisor     models.Lecturer
	student        models.Student
	bindingMethod  models.ThesisCriteria // weight 0.4
	bindingContent models.ThesisCriteria // weight 0.6
}

func createLecturer(t *testing.T, db *gorm.DB, id uint, code, facultyCode string) models.Lecturer {
	t.Helper()

	user := models.User{
		ID:       id,
		Username: fmt.Sprintf("lect-%d", id),
		Email:    fmt.Sprintf("lect-%d@uni.test", id),
		Password: "secret",
		Role:     models.RoleLecturer,
	}
	require.NoError(t, db.Create(&user).Error)

	lecturer := models.Lecturer{
		UserID:      id,
		Code:        code,
		FullName:    fmt.Sprintf("Lecturer %s", code),
		FacultyCode: facultyCode,
	}
	require.NoError(t, db.Create(&lecturer).Error)

	lecturer.User = user
	return lecturer
}

func createStudent(t *testing.T, db *gorm.DB, id uint, code, majorCode string, thesisCode *string) models.Student {
	t.Helper()

	user := models.User{
		ID:       id,
		Username: fmt.Sprintf("stud-%d", id),
		Email:    fmt.Sprintf("stud-%d@uni.test", id),
		Password: "secret",
		Role:     models.RoleStudent,
	}
	require.NoError(t, db.Create(&user).Error)

	student := models.Student{
		UserID:     id,
		Code:       code,
		FullName:   fmt.Sprintf("Student %s", code),
		GPA:        3.2,
		MajorCode:  majorCode,
		ThesisCode: thesisCode,
	}
	require.NoError(t, db.Create(&student).Error)

	student.User = user
	return student
}

func newScoringFixture(t *testing.T, db *gorm.DB) scoringFixture {
	t.Helper()

	require.NoError(t, db.Create(&models.Faculty{Code: "FIT", Name: "Information Technology"}).Error)
	require.NoError(t, db.Create(&models.Major{Code: "SE", Name: "Software Engineering", FacultyCode: "FIT"}).Error)
	require.NoError(t, db.Create(&models.SchoolYear{
		ID:        1,
		Name:      "2025-2026",
		StartYear: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		EndYear:   time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
	}).Error)

	chair := models.Position{Code: models.PositionChair, Name: "Chair"}
	member := models.Position{Code: models.PositionMember, Name: "Member"}
	secretary := models.Position{Code: models.PositionSecretary, Name: "Secretary"}
	reviewer := models.Position{Code: models.PositionReviewer, Name: "Reviewer"}
	for _, position := range []*models.Position{&chair, &member, &secretary, &reviewer} {
		require.NoError(t, db.Create(position).Error)
	}

	fixture := scoringFixture{}
	fixture.evaluatorA = createLecturer(t, db, 1, "L001", "FIT")
	fixture.evaluatorB = createLecturer(t, db, 2, "L002", "FIT")
	fixture.supervisor = createLecturer(t, db, 3, "L003", "FIT")

	fixture.council = models.Council{Name: "Council 1"}
	require.NoError(t, db.Create(&fixture.council).Error)

	fixture.seatA = models.CouncilDetail{CouncilID: fixture.council.ID, LecturerID: fixture.evaluatorA.UserID, PositionID: chair.ID}
	fixture.seatB = models.CouncilDetail{CouncilID: fixture.council.ID, LecturerID: fixture.evaluatorB.UserID, PositionID: member.ID}
	require.NoError(t, db.Create(&fixture.seatA).Error)
	require.NoError(t, db.Create(&fixture.seatB).Error)

	fixture.thesis = models.Thesis{
		Code:         "TH001",
		Name:         "Distributed Tracing in Microservices",
		StartDate:    time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC),
		MajorCode:    "SE",
		SchoolYearID: 1,
		CouncilID:    &fixture.council.ID,
		ReportFile:   "https://cdn.test/reports/th001.pdf",
	}
	require.NoError(t, db.Create(&fixture.thesis).Error)
	require.NoError(t, db.Model(&fixture.thesis).Association("Lecturers").Append(&fixture.supervisor))

	fixture.student = createStudent(t, db, 4, "S001", "SE", &fixture.thesis.Code)

	method := models.Criteria{Name: "Research Method", EvaluationMethod: "defense"}
	content := models.Criteria{Name: "Content Quality", EvaluationMethod: "report"}
	require.NoError(t, db.Create(&method).Error)
	require.NoError(t, db.Create(&content).Error)

	fixture.bindingMethod = models.ThesisCriteria{ThesisCode: fixture.thesis.Code, CriteriaID: method.ID, Weight: 0.4}
	fixture.bindingContent = models.ThesisCriteria{ThesisCode: fixture.thesis.Code, CriteriaID: content.ID, Weight: 0.6}
	require.NoError(t, db.Create(&fixture.bindingMethod).Error)
	require.NoError(t, db.Create(&fixture.bindingContent).Error)

	return fixture
}

func newThesisWithoutCriteria(t *testing.T, db *gorm.DB) string {
	t.Helper()

	thesis := models.Thesis{
		Code:         "TH099",
		Name:         "Fresh Thesis",
		StartDate:    time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC),
		MajorCode:    "SE",
		SchoolYearID: 1,
	}
	require.NoError(t, db.Create(&thesis).Error)

	return thesis.Code
}

func thesisAggregate(t *testing.T, db *gorm.DB, code string) (float64, bool) {
	t.Helper()

	var thesis models.Thesis
	require.NoError(t, db.First(&thesis, "code = ?", code).Error)
	return thesis.TotalScore, thesis.Result
}
