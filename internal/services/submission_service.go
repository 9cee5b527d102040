package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"brandlink_backend/internal/logger"
	"brandlink_backend/internal/models"
	"brandlink_backend/internal/repositories"
	"brandlink_backend/internal/storage"

	"brandlink_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SubmissionService struct {
	db               *gorm.DB
	submissionRepo   repositories.SubmissionRepository
	targetRepo       repositories.TargetRepository
	notificationRepo repositories.NotificationRepository
	taskRepo         repositories.TaskRepository
	store            storage.Storage
}

func NewSubmissionService(
	db *gorm.DB,
	submissionRepo repositories.SubmissionRepository,
	targetRepo repositories.TargetRepository,
	notificationRepo repositories.NotificationRepository,
	taskRepo repositories.TaskRepository,
	store storage.Storage,
) *SubmissionService {
	return &SubmissionService{
		db:               db,
		submissionRepo:   submissionRepo,
		targetRepo:       targetRepo,
		notificationRepo: notificationRepo,
		taskRepo:         taskRepo,
		store:            store,
	}
}

// SubmitSparkCode records the spark ad code on a submission awaiting one.
// The code is stored verbatim; format validation belongs to the ad platform.
func (s *SubmissionService) SubmitSparkCode(submissionID, code string) (*models.Submission, error) {
	submission, err := s.submissionRepo.FindByID(submissionID)
	if err != nil {
		if errors.Is(err, repositories.ErrSubmissionNotFound) {
			return nil, apperrors.NewNotFoundError("submission", "submission not found")
		}
		return nil, err
	}

	if submission.Status != models.SubmissionStatusSparkRequested {
		return nil, apperrors.NewInvalidStatusError("submission",
			fmt.Sprintf("spark code can only be submitted while spark_requested, current status is %s", submission.Status))
	}

	from := submission.Status
	submission.SparkCode = code
	submission.Status = models.SubmissionStatusSparkReceived

	err = s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.submissionRepo.WithTx(tx)
		if err := repo.Update(submission); err != nil {
			return err
		}
		return repo.AppendHistory(&models.SubmissionHistory{
			SubmissionID: submission.ID,
			Action:       models.HistoryActionSparkCodeSubmitted,
			FromStatus:   from,
			ToStatus:     submission.Status,
			ActorID:      submission.UserID,
		})
	})
	if err != nil {
		return nil, err
	}

	return submission, nil
}

// SubmitTikTokLink is the TikTok counterpart of SubmitSparkCode.
func (s *SubmissionService) SubmitTikTokLink(submissionID, link string) (*models.Submission, error) {
	submission, err := s.submissionRepo.FindByID(submissionID)
	if err != nil {
		if errors.Is(err, repositories.ErrSubmissionNotFound) {
			return nil, apperrors.NewNotFoundError("submission", "submission not found")
		}
		return nil, err
	}

	if submission.Status != models.SubmissionStatusTikTokLinkRequested {
		return nil, apperrors.NewInvalidStatusError("submission",
			fmt.Sprintf("tiktok link can only be submitted while tiktok_link_requested, current status is %s", submission.Status))
	}

	from := submission.Status
	submission.TikTokLink = link
	submission.Status = models.SubmissionStatusTikTokLinkReceived

	err = s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.submissionRepo.WithTx(tx)
		if err := repo.Update(submission); err != nil {
			return err
		}
		return repo.AppendHistory(&models.SubmissionHistory{
			SubmissionID: submission.ID,
			Action:       models.HistoryActionTikTokLinkSubmitted,
			FromStatus:   from,
			ToStatus:     submission.Status,
			ActorID:      submission.UserID,
		})
	})
	if err != nil {
		return nil, err
	}

	return submission, nil
}

// SubmitRevision replaces the submission's asset. The new file is uploaded
// first so a storage failure leaves the old record intact; the old asset is
// deleted best-effort afterwards, falling back to a cleanup task when the
// delete fails.
func (s *SubmissionService) SubmitRevision(ctx context.Context, submissionID string, file io.Reader, filename, contentType string) (*models.Submission, error) {
	submission, err := s.submissionRepo.FindByID(submissionID)
	if err != nil {
		if errors.Is(err, repositories.ErrSubmissionNotFound) {
			return nil, apperrors.NewNotFoundError("submission", "submission not found")
		}
		return nil, err
	}

	if submission.Status != models.SubmissionStatusRevisionRequested {
		return nil, apperrors.NewInvalidStatusError("submission",
			fmt.Sprintf("revision can only be submitted while revision_requested, current status is %s", submission.Status))
	}

	newPath := fmt.Sprintf("submissions/%s/%s%s", submission.ID, uuid.NewString(), filepath.Ext(filename))
	if err := s.store.Save(ctx, newPath, file, contentType); err != nil {
		return nil, apperrors.NewUpstreamError("submission", "failed to upload revision", err)
	}

	newURL, err := s.store.GetURL(ctx, newPath)
	if err != nil {
		return nil, apperrors.NewUpstreamError("submission", "failed to resolve asset URL", err)
	}

	oldPath := submission.StoragePath
	from := submission.Status
	submission.VideoURL = newURL
	submission.StoragePath = newPath
	submission.Status = models.SubmissionStatusPending
	submission.RevisionsUsed++

	err = s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.submissionRepo.WithTx(tx)
		if err := repo.Update(submission); err != nil {
			return err
		}
		return repo.AppendHistory(&models.SubmissionHistory{
			SubmissionID: submission.ID,
			Action:       models.HistoryActionRevisionSubmitted,
			FromStatus:   from,
			ToStatus:     submission.Status,
			ActorID:      submission.UserID,
		})
	})
	if err != nil {
		return nil, err
	}

	if oldPath != "" {
		if err := s.store.Delete(ctx, oldPath); err != nil {
			logger.CtxWarn(ctx, "failed to delete replaced submission asset, scheduling cleanup",
				"path", oldPath, "error", err)
			task := &models.CleanupTask{ObjectPath: oldPath, Status: models.TaskStatusPending}
			if err := s.taskRepo.EnqueueCleanup(task); err != nil {
				logger.CtxError(ctx, "failed to enqueue cleanup task", "path", oldPath, "error", err)
			}
		}
	}

	return submission, nil
}

// UpdateStatus applies a reviewer decision. Only the owner of the
// submission's target may review, and the move must be legal per the
// transition table.
func (s *SubmissionService) UpdateStatus(submissionID string, newStatus models.SubmissionStatus, actorID, comment string) (*models.Submission, error) {
	if !newStatus.IsValid() {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("unknown status %q", newStatus))
	}

	submission, err := s.submissionRepo.FindByID(submissionID)
	if err != nil {
		if errors.Is(err, repositories.ErrSubmissionNotFound) {
			return nil, apperrors.NewNotFoundError("submission", "submission not found")
		}
		return nil, err
	}

	ownerID, err := s.targetRepo.OwnerOf(submission.TargetType, submission.TargetID)
	if err != nil {
		return nil, err
	}
	if ownerID != actorID {
		return nil, apperrors.NewForbiddenError("only the target owner can review submissions")
	}

	if !submission.Status.CanTransition(newStatus) {
		return nil, apperrors.NewInvalidStatusError("submission",
			fmt.Sprintf("cannot move submission from %s to %s", submission.Status, newStatus))
	}

	from := submission.Status
	submission.Status = newStatus
	submission.Comment = comment

	err = s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.submissionRepo.WithTx(tx)
		if err := repo.Update(submission); err != nil {
			return err
		}
		if err := repo.AppendHistory(&models.SubmissionHistory{
			SubmissionID: submission.ID,
			Action:       models.HistoryActionStatusChanged,
			FromStatus:   from,
			ToStatus:     newStatus,
			ActorID:      actorID,
			Comment:      comment,
		}); err != nil {
			return err
		}

		return s.notificationRepo.WithTx(tx).Create(&models.Notification{
			UserID:  submission.UserID,
			Type:    repositories.NotificationTypeSubmissionStatus,
			Title:   statusNotificationTitle(newStatus),
			Message: statusNotificationMessage(newStatus, comment),
			Data: datatypes.JSONMap{
				"submission_id": submission.ID,
				"status":        string(newStatus),
			},
		})
	})
	if err != nil {
		return nil, err
	}

	return submission, nil
}

// History returns the audit trail for a submission.
func (s *SubmissionService) History(submissionID string) ([]models.SubmissionHistory, error) {
	if _, err := s.submissionRepo.FindByID(submissionID); err != nil {
		if errors.Is(err, repositories.ErrSubmissionNotFound) {
			return nil, apperrors.NewNotFoundError("submission", "submission not found")
		}
		return nil, err
	}
	return s.submissionRepo.History(submissionID)
}

func statusNotificationTitle(status models.SubmissionStatus) string {
	switch status {
	case models.SubmissionStatusApproved:
		return "Submission approved"
	case models.SubmissionStatusRejected:
		return "Submission rejected"
	default:
		return "Submission status updated"
	}
}

func statusNotificationMessage(status models.SubmissionStatus, comment string) string {
	switch status {
	case models.SubmissionStatusApproved:
		return "Your submission has been approved"
	case models.SubmissionStatusRejected:
		if comment != "" {
			return fmt.Sprintf("Your submission was rejected: %s", comment)
		}
		return "Your submission was rejected"
	case models.SubmissionStatusRevisionRequested:
		if comment != "" {
			return fmt.Sprintf("A revision was requested: %s", comment)
		}
		return "A revision was requested on your submission"
	default:
		return fmt.Sprintf("Your submission status changed to %s", status)
	}
}
