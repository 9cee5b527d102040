package repositories

import (
	"errors"

	"brandlink_backend/internal/models"

	"gorm.io/gorm"
)

var ErrSubmissionNotFound = errors.New("submission not found")

// SubmissionRepository tracks the lifecycle of submissions created by the
// intake surface; this service never inserts submission rows itself.
type SubmissionRepository interface {
	FindByID(id string) (*models.Submission, error)
	Update(submission *models.Submission) error
	AppendHistory(entry *models.SubmissionHistory) error
	History(submissionID string) ([]models.SubmissionHistory, error)
	WithTx(tx *gorm.DB) SubmissionRepository
}

type SubmissionRepositoryImpl struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &SubmissionRepositoryImpl{db: db}
}

func (r *SubmissionRepositoryImpl) WithTx(tx *gorm.DB) SubmissionRepository {
	return &SubmissionRepositoryImpl{db: tx}
}

func (r *SubmissionRepositoryImpl) FindByID(id string) (*models.Submission, error) {
	var submission models.Submission
	err := r.db.First(&submission, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}
	return &submission, nil
}

func (r *SubmissionRepositoryImpl) Update(submission *models.Submission) error {
	return r.db.Save(submission).Error
}

func (r *SubmissionRepositoryImpl) AppendHistory(entry *models.SubmissionHistory) error {
	return r.db.Create(entry).Error
}

func (r *SubmissionRepositoryImpl) History(submissionID string) ([]models.SubmissionHistory, error) {
	var entries []models.SubmissionHistory
	err := r.db.Where("submission_id = ?", submissionID).Order("created_at ASC").Find(&entries).Error
	return entries, err
}
