package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/thesis-api/internal/dto"
	"github.com/noah-isme/thesis-api/internal/models"
	"github.com/noah-isme/thesis-api/internal/repository"
	"github.com/noah-isme/thesis-api/pkg/mailer"
)

type recordingMailer struct {
	sent []mailer.Message
}

func (m *recordingMailer) Send(_ context.Context, msg mailer.Message) error {
	m.sent = append(m.sent, msg)
	return nil
}

func newCouncilService(db *gorm.DB, mail mailer.Mailer) CouncilService {
	return NewCouncilService(
		repository.NewCouncilRepository(db),
		repository.NewThesisRepository(db),
		repository.NewLecturerRepository(db),
		repository.NewStudentRepository(db),
		mail,
		testValidator(),
		testLogger(),
	)
}

func TestCouncilServiceAddMemberRules(t *testing.T) {
	db := setupTestDB(t)
	fixture := newScoringFixture(t, db)
	mail := &recordingMailer{}
	svc := newCouncilService(db, mail)

	council, err := svc.Create(context.Background(), dto.CouncilCreateRequest{Name: "Council 2"})
	require.NoError(t, err)

	_, err = svc.AddMember(context.Background(), council.ID, dto.CouncilMemberRequest{
		LecturerID:   fixture.evaluatorA.UserID,
		PositionCode: models.PositionChair,
	})
	require.NoError(t, err)

	t.Run("one seat per lecturer", func(t *testing.T) {
		_, err := svc.AddMember(context.Background(), council.ID, dto.CouncilMemberRequest{
			LecturerID:   fixture.evaluatorA.UserID,
			PositionCode: models.PositionMember,
		})
		require.True(t, IsConflict(err))
	})

	t.Run("single chair", func(t *testing.T) {
		_, err := svc.AddMember(context.Background(), council.ID, dto.CouncilMemberRequest{
			LecturerID:   fixture.evaluatorB.UserID,
			PositionCode: models.PositionChair,
		})
		require.True(t, IsConflict(err))
	})

	t.Run("reviewer appointment notifies lecturer", func(t *testing.T) {
		_, err := svc.AddMember(context.Background(), council.ID, dto.CouncilMemberRequest{
			LecturerID:   fixture.evaluatorB.UserID,
			PositionCode: models.PositionReviewer,
		})
		require.NoError(t, err)
		require.Len(t, mail.sent, 1)
		require.Equal(t, fixture.evaluatorB.User.Email, mail.sent[0].To)
	})

	t.Run("member cap", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			lecturer := createLecturer(t, db, uint(100+i), fmt.Sprintf("L1%02d", i), "FIT")
			_, err := svc.AddMember(context.Background(), council.ID, dto.CouncilMemberRequest{
				LecturerID:   lecturer.UserID,
				PositionCode: models.PositionMember,
			})
			require.NoError(t, err)
		}

		overflow := createLecturer(t, db, 200, "L200", "FIT")
		_, err := svc.AddMember(context.Background(), council.ID, dto.CouncilMemberRequest{
			LecturerID:   overflow.UserID,
			PositionCode: models.PositionMember,
		})
		require.True(t, IsInvalidInput(err))
	})

	t.Run("unknown lecturer", func(t *testing.T) {
		_, err := svc.AddMember(context.Background(), council.ID, dto.CouncilMemberRequest{
			LecturerID:   9999,
			PositionCode: models.PositionMember,
		})
		require.True(t, IsNotFound(err))
	})
}

func TestCouncilServiceAssignThesisRules(t *testing.T) {
	db := setupTestDB(t)
	fixture := newScoringFixture(t, db)
	svc := newCouncilService(db, &recordingMailer{})

	t.Run("already assigned", func(t *testing.T) {
		_, err := svc.AssignThesis(context.Background(), fixture.council.ID, dto.AssignThesisRequest{
			ThesisCode: fixture.thesis.Code,
		})
		require.True(t, IsConflict(err))
	})

	t.Run("supervisor on council", func(t *testing.T) {
		// Seat the thesis's supervisor on a new council, then try to give
		// that council the thesis.
		conflicted, err := svc.Create(context.Background(), dto.CouncilCreateRequest{Name: "Conflicted"})
		require.NoError(t, err)
		_, err = svc.AddMember(context.Background(), conflicted.ID, dto.CouncilMemberRequest{
			LecturerID:   fixture.supervisor.UserID,
			PositionCode: models.PositionMember,
		})
		require.NoError(t, err)

		code := newThesisWithoutCriteria(t, db)
		var thesis models.Thesis
		require.NoError(t, db.First(&thesis, "code = ?", code).Error)
		require.NoError(t, db.Model(&thesis).Association("Lecturers").Append(&fixture.supervisor))

		_, err = svc.AssignThesis(context.Background(), conflicted.ID, dto.AssignThesisRequest{ThesisCode: code})
		require.True(t, IsInvalidInput(err))
	})

	t.Run("assignment records council", func(t *testing.T) {
		free, err := svc.Create(context.Background(), dto.CouncilCreateRequest{Name: "Free"})
		require.NoError(t, err)

		code := "TH050"
		require.NoError(t, db.Create(&models.Thesis{
			Code:         code,
			Name:         "Free Thesis",
			StartDate:    fixture.thesis.StartDate,
			EndDate:      fixture.thesis.EndDate,
			MajorCode:    "SE",
			SchoolYearID: 1,
		}).Error)

		assigned, err := svc.AssignThesis(context.Background(), free.ID, dto.AssignThesisRequest{ThesisCode: code})
		require.NoError(t, err)
		require.NotNil(t, assigned.CouncilID)
		require.Equal(t, free.ID, *assigned.CouncilID)
	})
}

func TestCouncilServiceToggleLockNotifiesOnLockEdgeOnly(t *testing.T) {
	db := setupTestDB(t)
	fixture := newScoringFixture(t, db)
	mail := &recordingMailer{}
	svc := newCouncilService(db, mail)

	// Put the supervisor on their own council so their thesis's student is
	// notified when that council locks.
	council, err := svc.Create(context.Background(), dto.CouncilCreateRequest{Name: "Supervisors"})
	require.NoError(t, err)
	_, err = svc.AddMember(context.Background(), council.ID, dto.CouncilMemberRequest{
		LecturerID:   fixture.supervisor.UserID,
		PositionCode: models.PositionChair,
	})
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.Thesis{}).
		Where("code = ?", fixture.thesis.Code).
		Updates(map[string]interface{}{"total_score": 7.25, "result": true}).Error)

	lock, err := svc.ToggleLock(context.Background(), council.ID)
	require.NoError(t, err)
	require.True(t, lock.IsLock)
	require.Len(t, mail.sent, 1)
	require.Equal(t, fixture.student.User.Email, mail.sent[0].To)
	require.Contains(t, mail.sent[0].Body, "7.25")
	require.Contains(t, mail.sent[0].Body, fixture.thesis.Name)

	// Unlocking sends nothing.
	lock, err = svc.ToggleLock(context.Background(), council.ID)
	require.NoError(t, err)
	require.False(t, lock.IsLock)
	require.Len(t, mail.sent, 1)

	// A second lock edge notifies again.
	_, err = svc.ToggleLock(context.Background(), council.ID)
	require.NoError(t, err)
	require.Len(t, mail.sent, 2)
}

func TestCouncilServiceMemberLifecycle(t *testing.T) {
	db := setupTestDB(t)
	fixture := newScoringFixture(t, db)
	svc := newCouncilService(db, &recordingMailer{})

	members, err := svc.ListMembers(context.Background(), fixture.council.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)

	promoted, err := svc.UpdateMember(context.Background(), fixture.council.ID, fixture.seatB.ID, models.PositionSecretary)
	require.NoError(t, err)
	require.Equal(t, models.PositionSecretary, promoted.PositionCode)

	// The chair seat is taken by evaluator A.
	_, err = svc.UpdateMember(context.Background(), fixture.council.ID, fixture.seatB.ID, models.PositionChair)
	require.True(t, IsConflict(err))

	require.NoError(t, svc.RemoveMember(context.Background(), fixture.council.ID, fixture.seatB.ID))
	members, err = svc.ListMembers(context.Background(), fixture.council.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)

	err = svc.RemoveMember(context.Background(), fixture.council.ID, fixture.seatB.ID)
	require.True(t, IsNotFound(err))
}
