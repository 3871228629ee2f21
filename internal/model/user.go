package model

import (
	"time"
)

// User 身份提供方同步过来的用户，ID 即 token 中的 sub
type User struct {
	ID        string  `gorm:"primaryKey;type:varchar(36)"`
	Email     string  `gorm:"type:varchar(255);uniqueIndex:idx_email"`
	Name      *string `gorm:"type:varchar(100)"`
	Role      string  `gorm:"type:varchar(20);not null;default:'USER';index:idx_role"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string {
	return "users"
}
