package repositories

import (
	"errors"
	"time"

	"brandlink_backend/internal/models"

	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

// Notification type constants
const (
	NotificationTypeNewApplication      = "new_application"
	NotificationTypeApplicationApproved = "application_approved"
	NotificationTypeSubmissionStatus    = "submission_status"
	NotificationTypeOrderApproved       = "order_approved"
	NotificationTypeOrderCompleted      = "order_completed"
	NotificationTypeProjectInvitation   = "project_invitation"
	NotificationTypeInvitationResponse  = "invitation_response"
	NotificationTypePaymentReceived     = "payment_received"
)

type NotificationRepository interface {
	Create(notification *models.Notification) error
	FindByID(id string) (*models.Notification, error)
	FindByUser(userID string, unreadOnly bool, limit, offset int) ([]models.Notification, int64, error)
	MarkAsRead(id string) error
	MarkAllAsRead(userID string) (int64, error)
	MarkResponded(id string) error
	UnreadCount(userID string) (int64, error)
	WithTx(tx *gorm.DB) NotificationRepository
}

type NotificationRepositoryImpl struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &NotificationRepositoryImpl{db: db}
}

func (r *NotificationRepositoryImpl) WithTx(tx *gorm.DB) NotificationRepository {
	return &NotificationRepositoryImpl{db: tx}
}

func (r *NotificationRepositoryImpl) Create(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

func (r *NotificationRepositoryImpl) FindByID(id string) (*models.Notification, error) {
	var notification models.Notification
	err := r.db.First(&notification, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return &notification, nil
}

func (r *NotificationRepositoryImpl) FindByUser(userID string, unreadOnly bool, limit, offset int) ([]models.Notification, int64, error) {
	query := r.db.Model(&models.Notification{}).Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notifications []models.Notification
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&notifications).Error
	return notifications, total, err
}

func (r *NotificationRepositoryImpl) MarkAsRead(id string) error {
	result := r.db.Model(&models.Notification{}).Where("id = ?", id).Updates(map[string]interface{}{
		"is_read": true,
		"read_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// MarkAllAsRead returns the number of rows updated so callers can report both
// the updated count and the remaining unread count.
func (r *NotificationRepositoryImpl) MarkAllAsRead(userID string) (int64, error) {
	result := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

func (r *NotificationRepositoryImpl) MarkResponded(id string) error {
	result := r.db.Model(&models.Notification{}).Where("id = ?", id).Update("responded", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepositoryImpl) UnreadCount(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}
