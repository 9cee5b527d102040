package models

import (
	"time"

	"gorm.io/datatypes"
)

// Notification is a per-user inbox entry. Responded marks invitation
// notifications that the recipient already accepted or declined, so the
// client can disable the action buttons. ReadAt records when the recipient
// first read it.
type Notification struct {
	BaseModel
	UserID    string            `gorm:"type:uuid;index;not null" json:"user_id"`
	Type      string            `gorm:"type:varchar(50);not null" json:"type"`
	Title     string            `gorm:"not null" json:"title"`
	Message   string            `json:"message"`
	IsRead    bool              `gorm:"default:false;index" json:"is_read"`
	ReadAt    *time.Time        `json:"read_at,omitempty"`
	Responded bool              `gorm:"default:false" json:"responded"`
	Data      datatypes.JSONMap `json:"data,omitempty"`
}

func (Notification) TableName() string {
	return "notifications"
}
