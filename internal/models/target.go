package models

import (
	"time"

	"gorm.io/datatypes"
)

// Contest is a brand-run campaign that creators apply to. ApplicantCount is
// denormalized and maintained by the application service; it never goes
// negative.
type Contest struct {
	BaseModel
	OwnerID        string     `gorm:"type:uuid;index;not null" json:"owner_id"`
	Title          string     `gorm:"not null" json:"title"`
	Description    string     `json:"description"`
	Budget         float64    `json:"budget"`
	Status         string     `gorm:"type:varchar(20);default:'open'" json:"status"`
	ApplicantCount int        `gorm:"default:0" json:"applicant_count"`
	PaymentStatus  string     `gorm:"type:varchar(20);default:'unpaid'" json:"payment_status"`
	Deadline       *time.Time `json:"deadline,omitempty"`
}

func (Contest) TableName() string {
	return "contests"
}

// Project is a direct-hire engagement. Invitations maps creator IDs to their
// response state; Participants holds the accepted creator IDs as a JSON array.
type Project struct {
	BaseModel
	OwnerID        string            `gorm:"type:uuid;index;not null" json:"owner_id"`
	Title          string            `gorm:"not null" json:"title"`
	Description    string            `json:"description"`
	Budget         float64           `json:"budget"`
	Status         string            `gorm:"type:varchar(20);default:'open'" json:"status"`
	ApplicantCount int               `gorm:"default:0" json:"applicant_count"`
	Invitations    datatypes.JSONMap `json:"invitations,omitempty"`
	Participants   datatypes.JSON    `json:"participants,omitempty"`
}

func (Project) TableName() string {
	return "projects"
}
