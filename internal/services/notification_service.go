package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"brandlink_backend/internal/email"
	"brandlink_backend/internal/logger"
	"brandlink_backend/internal/models"
	"brandlink_backend/internal/repositories"
	"brandlink_backend/internal/services/dto"

	"brandlink_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var validNotificationTypes = map[string]bool{
	repositories.NotificationTypeNewApplication:      true,
	repositories.NotificationTypeApplicationApproved: true,
	repositories.NotificationTypeSubmissionStatus:    true,
	repositories.NotificationTypeOrderApproved:       true,
	repositories.NotificationTypeOrderCompleted:      true,
	repositories.NotificationTypeProjectInvitation:   true,
	repositories.NotificationTypeInvitationResponse:  true,
	repositories.NotificationTypePaymentReceived:     true,
}

type NotificationService struct {
	db               *gorm.DB
	notificationRepo repositories.NotificationRepository
	targetRepo       repositories.TargetRepository
	userRepo         repositories.UserRepository
	mailer           email.Provider
}

func NewNotificationService(
	db *gorm.DB,
	notificationRepo repositories.NotificationRepository,
	targetRepo repositories.TargetRepository,
	userRepo repositories.UserRepository,
	mailer email.Provider,
) *NotificationService {
	return &NotificationService{
		db:               db,
		notificationRepo: notificationRepo,
		targetRepo:       targetRepo,
		userRepo:         userRepo,
		mailer:           mailer,
	}
}

// Create stores a new unread notification after validating its type, then
// mirrors it to email best-effort.
func (s *NotificationService) Create(req *dto.CreateNotificationRequest) (*models.Notification, error) {
	if !validNotificationTypes[req.Type] {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("invalid notification type: %s", req.Type))
	}

	notification := &models.Notification{
		UserID:  req.UserID,
		Type:    req.Type,
		Title:   req.Title,
		Message: req.Message,
		Data:    datatypes.JSONMap(req.Data),
	}

	if err := s.notificationRepo.Create(notification); err != nil {
		return nil, err
	}

	s.emailMirror(notification)
	return notification, nil
}

// emailMirror forwards a notification to the recipient's inbox. Delivery is
// best-effort; failures are logged and never surfaced to callers.
func (s *NotificationService) emailMirror(notification *models.Notification) {
	if s.mailer == nil || s.userRepo == nil {
		return
	}

	user, err := s.userRepo.FindByID(notification.UserID)
	if err != nil || user.Email == "" {
		return
	}

	body := fmt.Sprintf("<p>%s</p>", notification.Message)
	if err := s.mailer.Send(user.Email, notification.Title, body); err != nil {
		logger.Warn("failed to mirror notification to email",
			"user_id", notification.UserID, "error", err)
	}
}

// MarkRead flips a single notification, enforcing ownership.
func (s *NotificationService) MarkRead(notificationID, actorID string) error {
	notification, err := s.notificationRepo.FindByID(notificationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.NewNotFoundError("notification", "notification not found")
		}
		return err
	}

	if notification.UserID != actorID {
		return apperrors.NewForbiddenError("notification belongs to another user")
	}

	return s.notificationRepo.MarkAsRead(notificationID)
}

// MarkAllRead flips every unread notification for the user and reports how
// many were touched and how many remain (zero unless new ones raced in).
func (s *NotificationService) MarkAllRead(userID string) (*dto.MarkAllReadResponse, error) {
	updated, err := s.notificationRepo.MarkAllAsRead(userID)
	if err != nil {
		return nil, err
	}

	remaining, err := s.notificationRepo.UnreadCount(userID)
	if err != nil {
		return nil, err
	}

	return &dto.MarkAllReadResponse{Updated: updated, RemainingUnread: remaining}, nil
}

// UnreadCount returns the user's unread badge counter.
func (s *NotificationService) UnreadCount(userID string) (int64, error) {
	return s.notificationRepo.UnreadCount(userID)
}

// List pages through the user's inbox, newest first.
func (s *NotificationService) List(userID string, unreadOnly bool, page, pageSize int) ([]models.Notification, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.notificationRepo.FindByUser(userID, unreadOnly, pageSize, (page-1)*pageSize)
}

// RespondToInvitation processes an accept/decline on a project invitation.
// All four effects (notification read+responded, invitation status, accepted
// participant, owner notification) commit together or not at all.
func (s *NotificationService) RespondToInvitation(userID string, req *dto.InvitationResponseRequest) error {
	response := models.InvitationResponse(req.Response)
	if !response.IsValid() {
		return apperrors.NewBadRequestError("response must be accepted or declined")
	}

	notification, err := s.notificationRepo.FindByID(req.NotificationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.NewNotFoundError("notification", "notification not found")
		}
		return err
	}
	if notification.UserID != userID {
		return apperrors.NewForbiddenError("invitation belongs to another user")
	}
	if notification.Responded {
		return apperrors.NewConflictError("notification", "invitation has already been answered")
	}

	project, err := s.targetRepo.FindProjectByID(req.ProjectID)
	if err != nil {
		if errors.Is(err, repositories.ErrProjectNotFound) {
			return apperrors.NewNotFoundError("notification", "project not found")
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		notificationRepo := s.notificationRepo.WithTx(tx)
		targetRepo := s.targetRepo.WithTx(tx)

		if err := notificationRepo.MarkAsRead(notification.ID); err != nil {
			return err
		}
		if err := notificationRepo.MarkResponded(notification.ID); err != nil {
			return err
		}

		if project.Invitations == nil {
			project.Invitations = datatypes.JSONMap{}
		}
		project.Invitations[userID] = map[string]interface{}{
			"status": string(response),
		}

		if response == models.InvitationAccepted {
			participants, err := decodeParticipants(project.Participants)
			if err != nil {
				return err
			}
			if !contains(participants, userID) {
				participants = append(participants, userID)
			}
			encoded, err := json.Marshal(participants)
			if err != nil {
				return err
			}
			project.Participants = datatypes.JSON(encoded)
		}

		if err := targetRepo.UpdateProject(project); err != nil {
			return err
		}

		verb := "declined"
		if response == models.InvitationAccepted {
			verb = "accepted"
		}
		return notificationRepo.Create(&models.Notification{
			UserID:  project.OwnerID,
			Type:    repositories.NotificationTypeInvitationResponse,
			Title:   "Invitation response",
			Message: fmt.Sprintf("%s %s your project invitation", req.CreatorName, verb),
			Data: datatypes.JSONMap{
				"project_id": project.ID,
				"creator_id": userID,
				"response":   string(response),
			},
		})
	})
}

func decodeParticipants(raw datatypes.JSON) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var participants []string
	if err := json.Unmarshal(raw, &participants); err != nil {
		return nil, fmt.Errorf("decode participants: %w", err)
	}
	return participants, nil
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
