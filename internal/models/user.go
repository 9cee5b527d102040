package models

type User struct {
	BaseModel
	Email        string   `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"not null" json:"-"`
	Role         UserRole `gorm:"type:varchar(20);not null;default:'creator'" json:"role"`
	DisplayName  string   `json:"display_name"`
	AvatarURL    string   `json:"avatar_url"`
}

func (User) TableName() string {
	return "users"
}
