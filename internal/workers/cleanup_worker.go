package workers

import (
	"context"
	"time"

	"brandlink_backend/internal/logger"
	"brandlink_backend/internal/models"
	"brandlink_backend/internal/repositories"
	"brandlink_backend/internal/storage"
)

const (
	cleanupBatchSize   = 100
	cleanupMaxAttempts = 10
)

// CleanupWorker reconciles storage with the database by deleting objects
// that an inline delete missed.
type CleanupWorker struct {
	taskRepo repositories.TaskRepository
	store    storage.Storage
	interval time.Duration
}

func NewCleanupWorker(taskRepo repositories.TaskRepository, store storage.Storage, interval time.Duration) *CleanupWorker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &CleanupWorker{
		taskRepo: taskRepo,
		store:    store,
		interval: interval,
	}
}

// Start runs the sweep loop until the context is canceled.
func (w *CleanupWorker) Start(ctx context.Context) {
	logger.Info("cleanup worker started", "interval", w.interval.String())
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("cleanup worker stopped")
			return
		case <-ticker.C:
			w.Sweep(ctx)
		}
	}
}

// Sweep processes the pending cleanup backlog once.
func (w *CleanupWorker) Sweep(ctx context.Context) {
	tasks, err := w.taskRepo.PendingCleanups(cleanupBatchSize)
	if err != nil {
		logger.WorkerLog("cleanup", "claim pending tasks", err)
		return
	}

	for i := range tasks {
		task := &tasks[i]
		task.Attempts++

		if err := w.store.Delete(ctx, task.ObjectPath); err != nil {
			task.LastError = err.Error()
			if task.Attempts >= cleanupMaxAttempts {
				task.Status = models.TaskStatusFailed
				logger.Error("cleanup task exhausted its attempts",
					"path", task.ObjectPath, "error", err)
			}
		} else {
			task.Status = models.TaskStatusCompleted
			task.LastError = ""
		}

		if err := w.taskRepo.UpdateCleanup(task); err != nil {
			logger.WorkerLog("cleanup", "persist task state", err)
		}
	}
}
