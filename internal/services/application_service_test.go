package services

import (
	"testing"

	"brandlink_backend/internal/models"
	"brandlink_backend/internal/repositories"
	"brandlink_backend/internal/services/dto"
	"brandlink_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newApplicationService(t *testing.T) (*ApplicationService, *gorm.DB) {
	db := newTestDB(t)
	svc := NewApplicationService(
		db,
		repositories.NewApplicationRepository(db),
		repositories.NewTargetRepository(db),
		repositories.NewNotificationRepository(db),
	)
	return svc, db
}

func seedContest(t *testing.T, db *gorm.DB, ownerID string) *models.Contest {
	t.Helper()
	contest := &models.Contest{OwnerID: ownerID, Title: "Summer campaign", Status: "open"}
	require.NoError(t, db.Create(contest).Error)
	return contest
}

func TestApplyCreatesApplicationAndBumpsCounter(t *testing.T) {
	svc, db := newApplicationService(t)
	owner := &models.User{Email: "brand@example.com", PasswordHash: "x", Role: models.UserRoleBrand}
	require.NoError(t, db.Create(owner).Error)
	contest := seedContest(t, db, owner.ID)

	application, err := svc.Apply("creator-1", &dto.ApplyRequest{
		TargetID:   contest.ID,
		TargetType: "contest",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusPending, application.Status)

	var reloaded models.Contest
	require.NoError(t, db.First(&reloaded, "id = ?", contest.ID).Error)
	assert.Equal(t, 1, reloaded.ApplicantCount)

	// owner got notified
	var notifications []models.Notification
	require.NoError(t, db.Where("user_id = ?", owner.ID).Find(&notifications).Error)
	assert.Len(t, notifications, 1)
}

func TestApplyTwiceIsConflict(t *testing.T) {
	svc, db := newApplicationService(t)
	contest := seedContest(t, db, "owner-1")

	req := &dto.ApplyRequest{TargetID: contest.ID, TargetType: "contest"}
	_, err := svc.Apply("creator-1", req)
	require.NoError(t, err)

	_, err = svc.Apply("creator-1", req)
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.HTTPCode)

	// the failed apply must not bump the counter
	var reloaded models.Contest
	require.NoError(t, db.First(&reloaded, "id = ?", contest.ID).Error)
	assert.Equal(t, 1, reloaded.ApplicantCount)
}

func TestApplyToMissingTarget(t *testing.T) {
	svc, _ := newApplicationService(t)

	_, err := svc.Apply("creator-1", &dto.ApplyRequest{
		TargetID:   "00000000-0000-0000-0000-000000000000",
		TargetType: "contest",
	})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.HTTPCode)
}

func TestCancelTwiceAndCounterFloor(t *testing.T) {
	svc, db := newApplicationService(t)
	contest := seedContest(t, db, "owner-1")

	_, err := svc.Apply("creator-1", &dto.ApplyRequest{TargetID: contest.ID, TargetType: "contest"})
	require.NoError(t, err)

	req := &dto.CancelApplicationRequest{TargetID: contest.ID, TargetType: "contest"}

	// first cancel succeeds
	id, err := svc.Cancel("creator-1", req)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	// second cancel is a 404
	_, err = svc.Cancel("creator-1", req)
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.HTTPCode)

	var reloaded models.Contest
	require.NoError(t, db.First(&reloaded, "id = ?", contest.ID).Error)
	assert.Equal(t, 0, reloaded.ApplicantCount)
	assert.GreaterOrEqual(t, reloaded.ApplicantCount, 0)
}

func TestCheckStatus(t *testing.T) {
	svc, db := newApplicationService(t)
	contest := seedContest(t, db, "owner-1")

	status, err := svc.CheckStatus("creator-1", contest.ID)
	require.NoError(t, err)
	assert.False(t, status.HasApplied)
	assert.Empty(t, status.ApplicationID)

	application, err := svc.Apply("creator-1", &dto.ApplyRequest{TargetID: contest.ID, TargetType: "contest"})
	require.NoError(t, err)

	status, err = svc.CheckStatus("creator-1", contest.ID)
	require.NoError(t, err)
	assert.True(t, status.HasApplied)
	assert.Equal(t, "pending", status.ApplicationStatus)
	assert.Equal(t, application.ID, status.ApplicationID)
}
