package services

import (
	"context"
	"strings"
	"testing"

	"brandlink_backend/internal/models"
	"brandlink_backend/internal/repositories"
	"brandlink_backend/internal/storage"
	"brandlink_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSubmissionService(t *testing.T) (*SubmissionService, *gorm.DB, *storage.MemoryStorage) {
	db := newTestDB(t)
	store := storage.NewMemoryStorage("")
	svc := NewSubmissionService(
		db,
		repositories.NewSubmissionRepository(db),
		repositories.NewTargetRepository(db),
		repositories.NewNotificationRepository(db),
		repositories.NewTaskRepository(db),
		store,
	)
	return svc, db, store
}

func seedSubmission(t *testing.T, db *gorm.DB, status models.SubmissionStatus) (*models.Submission, *models.Contest) {
	t.Helper()
	contest := &models.Contest{OwnerID: "brand-1", Title: "UGC push", Status: "open"}
	require.NoError(t, db.Create(contest).Error)

	submission := &models.Submission{
		UserID:     "creator-1",
		TargetID:   contest.ID,
		TargetType: models.TargetTypeContest,
		Status:     status,
	}
	require.NoError(t, db.Create(submission).Error)
	return submission, contest
}

func TestSubmitSparkCodeHappyPath(t *testing.T) {
	svc, db, _ := newSubmissionService(t)
	submission, _ := seedSubmission(t, db, models.SubmissionStatusSparkRequested)

	updated, err := svc.SubmitSparkCode(submission.ID, "ABC123")
	require.NoError(t, err)

	assert.Equal(t, models.SubmissionStatusSparkReceived, updated.Status)
	assert.Equal(t, "ABC123", updated.SparkCode)

	var history []models.SubmissionHistory
	require.NoError(t, db.Where("submission_id = ?", submission.ID).Find(&history).Error)
	require.Len(t, history, 1)
	assert.Equal(t, models.HistoryActionSparkCodeSubmitted, history[0].Action)
}

func TestSubmitSparkCodeRejectsWrongState(t *testing.T) {
	svc, db, _ := newSubmissionService(t)
	submission, _ := seedSubmission(t, db, models.SubmissionStatusPending)

	_, err := svc.SubmitSparkCode(submission.ID, "ABC123")
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.HTTPCode)

	// nothing was written
	var reloaded models.Submission
	require.NoError(t, db.First(&reloaded, "id = ?", submission.ID).Error)
	assert.Empty(t, reloaded.SparkCode)
	assert.Equal(t, models.SubmissionStatusPending, reloaded.Status)
}

func TestSubmitSparkCodeMissingSubmission(t *testing.T) {
	svc, _, _ := newSubmissionService(t)

	_, err := svc.SubmitSparkCode("00000000-0000-0000-0000-000000000000", "ABC123")
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.HTTPCode)
}

func TestSubmitTikTokLinkHappyPath(t *testing.T) {
	svc, db, _ := newSubmissionService(t)
	submission, _ := seedSubmission(t, db, models.SubmissionStatusTikTokLinkRequested)

	updated, err := svc.SubmitTikTokLink(submission.ID, "https://www.tiktok.com/@creator/video/1")
	require.NoError(t, err)

	assert.Equal(t, models.SubmissionStatusTikTokLinkReceived, updated.Status)
	assert.Equal(t, "https://www.tiktok.com/@creator/video/1", updated.TikTokLink)
}

func TestSubmitRevisionResetsStatusAndSwapsAsset(t *testing.T) {
	svc, db, store := newSubmissionService(t)
	submission, _ := seedSubmission(t, db, models.SubmissionStatusRevisionRequested)

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "submissions/old.mp4", strings.NewReader("old"), "video/mp4"))
	submission.StoragePath = "submissions/old.mp4"
	require.NoError(t, db.Save(submission).Error)

	updated, err := svc.SubmitRevision(ctx, submission.ID, strings.NewReader("new video"), "take2.mp4", "video/mp4")
	require.NoError(t, err)

	assert.Equal(t, models.SubmissionStatusPending, updated.Status)
	assert.Equal(t, 1, updated.RevisionsUsed)
	assert.NotEqual(t, "submissions/old.mp4", updated.StoragePath)
	assert.NotEmpty(t, updated.VideoURL)

	// exactly one revision_submitted history row
	var history []models.SubmissionHistory
	require.NoError(t, db.Where("submission_id = ? AND action = ?",
		submission.ID, models.HistoryActionRevisionSubmitted).Find(&history).Error)
	assert.Len(t, history, 1)

	// new asset exists, old one is gone
	exists, err := store.Exists(ctx, updated.StoragePath)
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = store.Exists(ctx, "submissions/old.mp4")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSubmitRevisionFailedDeleteSchedulesCleanup(t *testing.T) {
	svc, db, store := newSubmissionService(t)
	submission, _ := seedSubmission(t, db, models.SubmissionStatusRevisionRequested)

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "submissions/stuck.mp4", strings.NewReader("old"), "video/mp4"))
	submission.StoragePath = "submissions/stuck.mp4"
	require.NoError(t, db.Save(submission).Error)

	store.FailDelete = true
	updated, err := svc.SubmitRevision(ctx, submission.ID, strings.NewReader("new"), "take2.mp4", "video/mp4")
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionStatusPending, updated.Status)

	// the failed delete left a cleanup task behind
	var tasks []models.CleanupTask
	require.NoError(t, db.Find(&tasks).Error)
	require.Len(t, tasks, 1)
	assert.Equal(t, "submissions/stuck.mp4", tasks[0].ObjectPath)
	assert.Equal(t, models.TaskStatusPending, tasks[0].Status)
}

func TestSubmitRevisionUploadFailureLeavesRecordIntact(t *testing.T) {
	svc, db, store := newSubmissionService(t)
	submission, _ := seedSubmission(t, db, models.SubmissionStatusRevisionRequested)

	store.FailSave = true
	_, err := svc.SubmitRevision(context.Background(), submission.ID, strings.NewReader("new"), "take2.mp4", "video/mp4")
	require.Error(t, err)

	var reloaded models.Submission
	require.NoError(t, db.First(&reloaded, "id = ?", submission.ID).Error)
	assert.Equal(t, models.SubmissionStatusRevisionRequested, reloaded.Status)
	assert.Zero(t, reloaded.RevisionsUsed)
}

func TestUpdateStatusByOwner(t *testing.T) {
	svc, db, _ := newSubmissionService(t)
	submission, contest := seedSubmission(t, db, models.SubmissionStatusSparkVerified)

	updated, err := svc.UpdateStatus(submission.ID, models.SubmissionStatusApproved, contest.OwnerID, "great work")
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionStatusApproved, updated.Status)

	// submission owner was notified with the approval template
	var notifications []models.Notification
	require.NoError(t, db.Where("user_id = ?", submission.UserID).Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, "Submission approved", notifications[0].Title)
}

func TestUpdateStatusForbiddenForNonOwner(t *testing.T) {
	svc, db, _ := newSubmissionService(t)
	submission, _ := seedSubmission(t, db, models.SubmissionStatusSparkVerified)

	_, err := svc.UpdateStatus(submission.ID, models.SubmissionStatusApproved, "intruder", "")
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 403, appErr.HTTPCode)
}

func TestUpdateStatusRejectsIllegalTransition(t *testing.T) {
	svc, db, _ := newSubmissionService(t)
	submission, contest := seedSubmission(t, db, models.SubmissionStatusSparkRequested)

	_, err := svc.UpdateStatus(submission.ID, models.SubmissionStatusApproved, contest.OwnerID, "")
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.HTTPCode)
	assert.Equal(t, apperrors.CodeInvalidStatus, appErr.Code)
}
