package workers

import (
	"context"
	"time"

	"brandlink_backend/internal/logger"
	"brandlink_backend/internal/models"
	"brandlink_backend/internal/repositories"
)

const (
	payoutBatchSize   = 50
	payoutMaxAttempts = 5
	payoutBackoffUnit = 30 * time.Second
)

// PayoutReleaser is the slice of the payment service the worker needs.
type PayoutReleaser interface {
	ReleasePayout(paymentIntentID string) error
}

// PayoutWorker drains the durable payout queue. Each tick claims the due
// pending tasks and attempts each one once; failures are rescheduled with a
// linear backoff until the attempt budget runs out.
type PayoutWorker struct {
	taskRepo repositories.TaskRepository
	releaser PayoutReleaser
	interval time.Duration
}

func NewPayoutWorker(taskRepo repositories.TaskRepository, releaser PayoutReleaser, interval time.Duration) *PayoutWorker {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &PayoutWorker{
		taskRepo: taskRepo,
		releaser: releaser,
		interval: interval,
	}
}

// Start runs the worker loop until the context is canceled.
func (w *PayoutWorker) Start(ctx context.Context) {
	logger.Info("payout worker started", "interval", w.interval.String())
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("payout worker stopped")
			return
		case <-ticker.C:
			w.ProcessDue(time.Now())
		}
	}
}

// ProcessDue attempts every pending task whose run_at has passed. Exported
// so a tick can be driven directly.
func (w *PayoutWorker) ProcessDue(now time.Time) {
	tasks, err := w.taskRepo.DuePayouts(now, payoutBatchSize)
	if err != nil {
		logger.WorkerLog("payout", "claim due tasks", err)
		return
	}

	for i := range tasks {
		w.processTask(&tasks[i], now)
	}
}

func (w *PayoutWorker) processTask(task *models.PayoutTask, now time.Time) {
	task.Attempts++

	if err := w.releaser.ReleasePayout(task.PaymentIntentID); err != nil {
		task.LastError = err.Error()
		if task.Attempts >= payoutMaxAttempts {
			task.Status = models.TaskStatusFailed
			logger.Error("payout task exhausted its attempts",
				"order_id", task.OrderID,
				"payment_intent_id", task.PaymentIntentID,
				"attempts", task.Attempts,
				"error", err)
		} else {
			task.RunAt = now.Add(payoutBackoffUnit * time.Duration(task.Attempts))
			logger.Warn("payout attempt failed, rescheduled",
				"order_id", task.OrderID,
				"attempt", task.Attempts,
				"next_run", task.RunAt,
				"error", err)
		}
	} else {
		task.Status = models.TaskStatusCompleted
		task.LastError = ""
		logger.Info("payout released",
			"order_id", task.OrderID,
			"payment_intent_id", task.PaymentIntentID)
	}

	if err := w.taskRepo.UpdatePayout(task); err != nil {
		logger.WorkerLog("payout", "persist task state", err)
	}
}
