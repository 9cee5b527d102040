package models

import "time"

// PayoutTask is a durable queue entry for releasing creator funds after an
// order completes. The worker retries with backoff until the attempt budget
// runs out.
type PayoutTask struct {
	BaseModel
	OrderID         string     `gorm:"type:uuid;index;not null" json:"order_id"`
	PaymentIntentID string     `json:"payment_intent_id"`
	Status          TaskStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	RunAt           time.Time  `gorm:"index" json:"run_at"`
	Attempts        int        `gorm:"default:0" json:"attempts"`
	LastError       string     `json:"last_error,omitempty"`
}

func (PayoutTask) TableName() string {
	return "payout_tasks"
}

// CleanupTask records a stored object that could not be deleted inline, so a
// background sweep can reconcile storage with the database later.
type CleanupTask struct {
	BaseModel
	ObjectPath string     `gorm:"not null" json:"object_path"`
	Status     TaskStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Attempts   int        `gorm:"default:0" json:"attempts"`
	LastError  string     `json:"last_error,omitempty"`
}

func (CleanupTask) TableName() string {
	return "cleanup_tasks"
}
