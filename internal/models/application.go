package models

// Application records a creator applying to a contest or project. The unique
// index on (user_id, target_id) makes double-application a database-level
// conflict rather than a read-then-write race.
type Application struct {
	BaseModel
	UserID     string            `gorm:"type:uuid;not null;uniqueIndex:idx_applications_user_target" json:"user_id"`
	TargetID   string            `gorm:"type:uuid;not null;uniqueIndex:idx_applications_user_target" json:"target_id"`
	TargetType TargetType        `gorm:"type:varchar(20);not null" json:"target_type"`
	Status     ApplicationStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Message    string            `json:"message"`
}

func (Application) TableName() string {
	return "applications"
}
