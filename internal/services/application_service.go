package services

import (
	"errors"
	"fmt"

	"brandlink_backend/internal/models"
	"brandlink_backend/internal/repositories"
	"brandlink_backend/internal/services/dto"

	"brandlink_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ApplicationService struct {
	db               *gorm.DB
	applicationRepo  repositories.ApplicationRepository
	targetRepo       repositories.TargetRepository
	notificationRepo repositories.NotificationRepository
}

func NewApplicationService(
	db *gorm.DB,
	applicationRepo repositories.ApplicationRepository,
	targetRepo repositories.TargetRepository,
	notificationRepo repositories.NotificationRepository,
) *ApplicationService {
	return &ApplicationService{
		db:               db,
		applicationRepo:  applicationRepo,
		targetRepo:       targetRepo,
		notificationRepo: notificationRepo,
	}
}

// Apply creates a pending application, bumps the target's applicant counter
// and notifies the target owner. The unique index on (user_id, target_id)
// turns a concurrent double-apply into a conflict instead of a second row.
func (s *ApplicationService) Apply(userID string, req *dto.ApplyRequest) (*models.Application, error) {
	targetType := models.TargetType(req.TargetType)
	if !targetType.IsValid() {
		return nil, apperrors.NewBadRequestError("unknown target type")
	}

	ownerID, err := s.targetRepo.OwnerOf(targetType, req.TargetID)
	if err != nil {
		if errors.Is(err, repositories.ErrContestNotFound) || errors.Is(err, repositories.ErrProjectNotFound) {
			return nil, apperrors.NewNotFoundError("application", "target not found")
		}
		return nil, err
	}

	application := &models.Application{
		UserID:     userID,
		TargetID:   req.TargetID,
		TargetType: targetType,
		Status:     models.ApplicationStatusPending,
		Message:    req.Message,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.applicationRepo.WithTx(tx).Create(application); err != nil {
			return err
		}
		return s.targetRepo.WithTx(tx).IncrementApplicantCount(targetType, req.TargetID)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateApplication) {
			return nil, apperrors.NewConflictError("application", "you have already applied to this target")
		}
		return nil, err
	}

	notification := &models.Notification{
		UserID:  ownerID,
		Type:    repositories.NotificationTypeNewApplication,
		Title:   "New application",
		Message: "A creator applied to your listing",
		Data: datatypes.JSONMap{
			"application_id": application.ID,
			"target_id":      req.TargetID,
			"target_type":    req.TargetType,
		},
	}
	if err := s.notificationRepo.Create(notification); err != nil {
		// The application itself succeeded; a lost notification is not
		// worth failing the request over.
		return application, nil
	}

	return application, nil
}

// Cancel removes the user's application and decrements the target counter in
// one transaction. The counter is floor-clamped at zero in the repository.
func (s *ApplicationService) Cancel(userID string, req *dto.CancelApplicationRequest) (string, error) {
	application, err := s.applicationRepo.FindByUserAndTarget(userID, req.TargetID)
	if err != nil {
		if errors.Is(err, repositories.ErrApplicationNotFound) {
			return "", apperrors.NewNotFoundError("application", "application not found")
		}
		return "", err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.applicationRepo.WithTx(tx).Delete(application.ID); err != nil {
			return err
		}
		return s.targetRepo.WithTx(tx).DecrementApplicantCount(application.TargetType, application.TargetID)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrApplicationNotFound) {
			return "", apperrors.NewNotFoundError("application", "application not found")
		}
		return "", fmt.Errorf("cancel application: %w", err)
	}

	return application.ID, nil
}

// CheckStatus is a pure read and never modifies state.
func (s *ApplicationService) CheckStatus(userID, targetID string) (*dto.ApplicationStatusResponse, error) {
	application, err := s.applicationRepo.FindByUserAndTarget(userID, targetID)
	if err != nil {
		if errors.Is(err, repositories.ErrApplicationNotFound) {
			return &dto.ApplicationStatusResponse{HasApplied: false}, nil
		}
		return nil, err
	}

	return &dto.ApplicationStatusResponse{
		HasApplied:        true,
		ApplicationStatus: string(application.Status),
		ApplicationID:     application.ID,
	}, nil
}
