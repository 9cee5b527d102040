package services

import (
	"encoding/json"
	"testing"
	"time"

	"brandlink_backend/internal/models"
	"brandlink_backend/internal/repositories"
	"brandlink_backend/internal/services/dto"
	"brandlink_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newNotificationService(t *testing.T) (*NotificationService, *gorm.DB, *stubMailer) {
	db := newTestDB(t)
	mailer := &stubMailer{}
	svc := NewNotificationService(
		db,
		repositories.NewNotificationRepository(db),
		repositories.NewTargetRepository(db),
		repositories.NewUserRepository(db),
		mailer,
	)
	return svc, db, mailer
}

func TestCreateNotification(t *testing.T) {
	svc, db, mailer := newNotificationService(t)

	user := &models.User{Email: "creator@example.com", PasswordHash: "x", Role: models.UserRoleCreator}
	require.NoError(t, db.Create(user).Error)

	notification, err := svc.Create(&dto.CreateNotificationRequest{
		UserID:  user.ID,
		Type:    repositories.NotificationTypeOrderApproved,
		Title:   "Order approved",
		Message: "Your order is moving",
	})
	require.NoError(t, err)
	assert.False(t, notification.IsRead)
	assert.NotZero(t, notification.CreatedAt)

	// mirrored to email
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "creator@example.com", mailer.sent[0])
}

func TestCreateNotificationRejectsUnknownType(t *testing.T) {
	svc, _, _ := newNotificationService(t)

	_, err := svc.Create(&dto.CreateNotificationRequest{
		UserID: "user-1",
		Type:   "carrier_pigeon",
		Title:  "hi",
	})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.HTTPCode)
}

func TestMarkReadOwnership(t *testing.T) {
	svc, db, _ := newNotificationService(t)

	notification := &models.Notification{UserID: "user-1", Type: repositories.NotificationTypeOrderApproved, Title: "t"}
	require.NoError(t, db.Create(notification).Error)

	// stranger gets 403
	err := svc.MarkRead(notification.ID, "user-2")
	require.Error(t, err)
	appErr, _ := apperrors.AsAppError(err)
	assert.Equal(t, 403, appErr.HTTPCode)

	// owner succeeds
	require.NoError(t, svc.MarkRead(notification.ID, "user-1"))

	var reloaded models.Notification
	require.NoError(t, db.First(&reloaded, "id = ?", notification.ID).Error)
	assert.True(t, reloaded.IsRead)
	require.NotNil(t, reloaded.ReadAt)
	assert.WithinDuration(t, time.Now(), *reloaded.ReadAt, time.Minute)

	// missing notification is 404
	err = svc.MarkRead("00000000-0000-0000-0000-000000000000", "user-1")
	appErr, _ = apperrors.AsAppError(err)
	assert.Equal(t, 404, appErr.HTTPCode)
}

func TestMarkAllRead(t *testing.T) {
	svc, db, _ := newNotificationService(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&models.Notification{
			UserID: "user-1", Type: repositories.NotificationTypeOrderApproved, Title: "t",
		}).Error)
	}
	// another user's unread must not be touched
	require.NoError(t, db.Create(&models.Notification{
		UserID: "user-2", Type: repositories.NotificationTypeOrderApproved, Title: "t",
	}).Error)

	result, err := svc.MarkAllRead("user-1")
	require.NoError(t, err)
	assert.EqualValues(t, 3, result.Updated)
	assert.EqualValues(t, 0, result.RemainingUnread)

	// every marked row carries the read timestamp
	var marked []models.Notification
	require.NoError(t, db.Where("user_id = ?", "user-1").Find(&marked).Error)
	for _, n := range marked {
		require.NotNil(t, n.ReadAt)
	}

	count, err := svc.UnreadCount("user-2")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestListPagination(t *testing.T) {
	svc, db, _ := newNotificationService(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, db.Create(&models.Notification{
			UserID: "user-1", Type: repositories.NotificationTypeOrderApproved, Title: "t",
		}).Error)
	}

	page, total, err := svc.List("user-1", false, 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, page, 2)

	page, _, err = svc.List("user-1", false, 3, 2)
	require.NoError(t, err)
	assert.Len(t, page, 1)
}

func TestRespondToInvitationAccepted(t *testing.T) {
	svc, db, _ := newNotificationService(t)

	project := &models.Project{OwnerID: "brand-1", Title: "Spring launch", Status: "open"}
	require.NoError(t, db.Create(project).Error)

	invitation := &models.Notification{
		UserID: "creator-1",
		Type:   repositories.NotificationTypeProjectInvitation,
		Title:  "You are invited",
	}
	require.NoError(t, db.Create(invitation).Error)

	err := svc.RespondToInvitation("creator-1", &dto.InvitationResponseRequest{
		NotificationID: invitation.ID,
		ProjectID:      project.ID,
		Response:       "accepted",
		CreatorName:    "Dana",
	})
	require.NoError(t, err)

	// 1. notification is read and responded
	var reloaded models.Notification
	require.NoError(t, db.First(&reloaded, "id = ?", invitation.ID).Error)
	assert.True(t, reloaded.IsRead)
	assert.True(t, reloaded.Responded)

	// 2. invitation status recorded on the project
	var reloadedProject models.Project
	require.NoError(t, db.First(&reloadedProject, "id = ?", project.ID).Error)
	entry, ok := reloadedProject.Invitations["creator-1"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "accepted", entry["status"])

	// 3. creator appears in participants
	var participants []string
	require.NoError(t, json.Unmarshal(reloadedProject.Participants, &participants))
	assert.Contains(t, participants, "creator-1")

	// 4. owner got the reciprocal notification
	var ownerNotifications []models.Notification
	require.NoError(t, db.Where("user_id = ?", "brand-1").Find(&ownerNotifications).Error)
	require.Len(t, ownerNotifications, 1)
	assert.Contains(t, ownerNotifications[0].Message, "Dana")
	assert.Contains(t, ownerNotifications[0].Message, "accepted")
}

func TestRespondToInvitationDeclinedSkipsParticipants(t *testing.T) {
	svc, db, _ := newNotificationService(t)

	project := &models.Project{OwnerID: "brand-1", Title: "Spring launch", Status: "open"}
	require.NoError(t, db.Create(project).Error)

	invitation := &models.Notification{
		UserID: "creator-1",
		Type:   repositories.NotificationTypeProjectInvitation,
		Title:  "You are invited",
	}
	require.NoError(t, db.Create(invitation).Error)

	err := svc.RespondToInvitation("creator-1", &dto.InvitationResponseRequest{
		NotificationID: invitation.ID,
		ProjectID:      project.ID,
		Response:       "declined",
		CreatorName:    "Dana",
	})
	require.NoError(t, err)

	var reloadedProject models.Project
	require.NoError(t, db.First(&reloadedProject, "id = ?", project.ID).Error)
	assert.Empty(t, reloadedProject.Participants)
}

func TestRespondToInvitationTwiceIsConflict(t *testing.T) {
	svc, db, _ := newNotificationService(t)

	project := &models.Project{OwnerID: "brand-1", Title: "Spring launch", Status: "open"}
	require.NoError(t, db.Create(project).Error)
	invitation := &models.Notification{
		UserID: "creator-1",
		Type:   repositories.NotificationTypeProjectInvitation,
		Title:  "You are invited",
	}
	require.NoError(t, db.Create(invitation).Error)

	req := &dto.InvitationResponseRequest{
		NotificationID: invitation.ID,
		ProjectID:      project.ID,
		Response:       "accepted",
		CreatorName:    "Dana",
	}
	require.NoError(t, svc.RespondToInvitation("creator-1", req))

	err := svc.RespondToInvitation("creator-1", req)
	require.Error(t, err)
	appErr, _ := apperrors.AsAppError(err)
	assert.Equal(t, 409, appErr.HTTPCode)
}

func TestRespondToInvitationMissingProjectRollsBack(t *testing.T) {
	svc, db, _ := newNotificationService(t)

	invitation := &models.Notification{
		UserID: "creator-1",
		Type:   repositories.NotificationTypeProjectInvitation,
		Title:  "You are invited",
	}
	require.NoError(t, db.Create(invitation).Error)

	err := svc.RespondToInvitation("creator-1", &dto.InvitationResponseRequest{
		NotificationID: invitation.ID,
		ProjectID:      "00000000-0000-0000-0000-000000000000",
		Response:       "accepted",
		CreatorName:    "Dana",
	})
	require.Error(t, err)

	// notification untouched
	var reloaded models.Notification
	require.NoError(t, db.First(&reloaded, "id = ?", invitation.ID).Error)
	assert.False(t, reloaded.IsRead)
	assert.False(t, reloaded.Responded)
}
