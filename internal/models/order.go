package models

import "time"

// Order tracks a paid engagement between a brand user and a creator. The
// PaymentIntentID links the order to the captured funds that the payout
// worker releases on completion.
type Order struct {
	BaseModel
	UserID          string      `gorm:"type:uuid;index;not null" json:"user_id"`
	CreatorID       string      `gorm:"type:uuid;index;not null" json:"creator_id"`
	TargetID        string      `gorm:"type:uuid;index" json:"target_id"`
	TargetType      TargetType  `gorm:"type:varchar(20)" json:"target_type"`
	Status          OrderStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Amount          float64     `json:"amount"`
	Currency        string      `gorm:"type:varchar(3);default:'usd'" json:"currency"`
	PaymentIntentID string      `json:"payment_intent_id,omitempty"`
	ApprovedAt      *time.Time  `json:"approved_at,omitempty"`
	CompletedAt     *time.Time  `json:"completed_at,omitempty"`
	CompletedBy     string      `json:"completed_by,omitempty"`
	CompletionNotes string      `json:"completion_notes,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// Milestone types
const (
	MilestoneTypeOrderApproved  = "order_approved"
	MilestoneTypeOrderCompleted = "order_completed"
)

// Milestone is an audit checkpoint within an order.
type Milestone struct {
	BaseModel
	OrderID string `gorm:"type:uuid;index;not null" json:"order_id"`
	Type    string `gorm:"type:varchar(40);not null" json:"type"`
	Status  string `gorm:"type:varchar(20);default:'completed'" json:"status"`
	Notes   string `json:"notes,omitempty"`
}

func (Milestone) TableName() string {
	return "milestones"
}
