package repository

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/thesis-api/internal/models"
)

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

// gradingSeed is two theses on one council, each with its own criteria
// binding, so join queries can be checked for cross-thesis leakage.
type gradingSeed struct {
	council  models.Council
	seat     models.CouncilDetail
	lecturer models.Lecturer
	thesisA  models.Thesis
	thesisB  models.Thesis
	bindingA models.ThesisCriteria
	bindingB models.ThesisCriteria
}

func seedGrading(t *testing.T, db *gorm.DB) gradingSeed {
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
	require.NoError(t, db.Create(&chair).Error)

	user := models.User{ID: 1, Username: "lect-1", Email: "lect-1@uni.test", Password: "secret", Role: models.RoleLecturer}
	require.NoError(t, db.Create(&user).Error)
	lecturer := models.Lecturer{UserID: 1, Code: "L001", FullName: "Lecturer L001", FacultyCode: "FIT"}
	require.NoError(t, db.Create(&lecturer).Error)

	council := models.Council{Name: "Council 1"}
	require.NoError(t, db.Create(&council).Error)
	seat := models.CouncilDetail{CouncilID: council.ID, LecturerID: lecturer.UserID, PositionID: chair.ID}
	require.NoError(t, db.Create(&seat).Error)

	start := time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC)
	thesisA := models.Thesis{Code: "TH001", Name: "Thesis A", StartDate: start, EndDate: end, MajorCode: "SE", SchoolYearID: 1, CouncilID: &council.ID}
	thesisB := models.Thesis{Code: "TH002", Name: "Thesis B", StartDate: start, EndDate: end, MajorCode: "SE", SchoolYearID: 1, CouncilID: &council.ID}
	require.NoError(t, db.Create(&thesisA).Error)
	require.NoError(t, db.Create(&thesisB).Error)

	criteria := models.Criteria{Name: "Overall"}
	require.NoError(t, db.Create(&criteria).Error)

	bindingA := models.ThesisCriteria{ThesisCode: thesisA.Code, CriteriaID: criteria.ID, Weight: 1}
	bindingB := models.ThesisCriteria{ThesisCode: thesisB.Code, CriteriaID: criteria.ID, Weight: 1}
	require.NoError(t, db.Create(&bindingA).Error)
	require.NoError(t, db.Create(&bindingB).Error)

	return gradingSeed{
		council:  council,
		seat:     seat,
		lecturer: lecturer,
		thesisA:  thesisA,
		thesisB:  thesisB,
		bindingA: bindingA,
		bindingB: bindingB,
	}
}
