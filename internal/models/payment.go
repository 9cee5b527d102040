package models

// PaymentRecord mirrors the provider-side state of a payment intent so the
// rest of the system never has to call out to the provider for reads.
type PaymentRecord struct {
	BaseModel
	PaymentIntentID string     `gorm:"uniqueIndex;not null" json:"payment_intent_id"`
	TargetID        string     `gorm:"type:uuid;index" json:"target_id"`
	TargetType      TargetType `gorm:"type:varchar(20)" json:"target_type"`
	UserID          string     `gorm:"type:uuid;index" json:"user_id"`
	Amount          int64      `json:"amount"`
	Currency        string     `gorm:"type:varchar(3);default:'usd'" json:"currency"`
	Status          string     `gorm:"type:varchar(30);not null" json:"status"`
}

func (PaymentRecord) TableName() string {
	return "payment_records"
}
