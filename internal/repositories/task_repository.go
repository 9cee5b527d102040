package repositories

import (
	"time"

	"brandlink_backend/internal/models"

	"gorm.io/gorm"
)

// TaskRepository backs the durable background queues. Payout and cleanup
// tasks live in separate tables but share the pending/completed/failed
// lifecycle.
type TaskRepository interface {
	EnqueuePayout(task *models.PayoutTask) error
	DuePayouts(now time.Time, limit int) ([]models.PayoutTask, error)
	UpdatePayout(task *models.PayoutTask) error

	EnqueueCleanup(task *models.CleanupTask) error
	PendingCleanups(limit int) ([]models.CleanupTask, error)
	UpdateCleanup(task *models.CleanupTask) error
	WithTx(tx *gorm.DB) TaskRepository
}

type TaskRepositoryImpl struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

func (r *TaskRepositoryImpl) WithTx(tx *gorm.DB) TaskRepository {
	return &TaskRepositoryImpl{db: tx}
}

func (r *TaskRepositoryImpl) EnqueuePayout(task *models.PayoutTask) error {
	return r.db.Create(task).Error
}

func (r *TaskRepositoryImpl) DuePayouts(now time.Time, limit int) ([]models.PayoutTask, error) {
	var tasks []models.PayoutTask
	err := r.db.Where("status = ? AND run_at <= ?", models.TaskStatusPending, now).
		Order("run_at ASC").Limit(limit).Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepositoryImpl) UpdatePayout(task *models.PayoutTask) error {
	return r.db.Save(task).Error
}

func (r *TaskRepositoryImpl) EnqueueCleanup(task *models.CleanupTask) error {
	return r.db.Create(task).Error
}

func (r *TaskRepositoryImpl) PendingCleanups(limit int) ([]models.CleanupTask, error) {
	var tasks []models.CleanupTask
	err := r.db.Where("status = ?", models.TaskStatusPending).
		Order("created_at ASC").Limit(limit).Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepositoryImpl) UpdateCleanup(task *models.CleanupTask) error {
	return r.db.Save(task).Error
}
