package model

import "time"

type UserRole string

const (
	Editor     UserRole = "editor"
	SuperAdmin UserRole = "superadmin"
)

// swagger:model User
type User struct {
	UUIDBase
	Username     string     `gorm:"size:100;uniqueIndex;not null" json:"username"`
	PasswordHash string     `gorm:"size:100;not null" json:"-"`
	DisplayName  string     `gorm:"size:100" json:"display_name"`
	Email        string     `gorm:"size:100" json:"email"`
	Role         UserRole   `gorm:"size:20;default:'editor'" json:"role"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// UserSession records every issued bearer token so tokens can be revoked
// before their JWT expiry.
type UserSession struct {
	UUIDBase
	UserID    string    `gorm:"index;size:36;not null" json:"user_id"`
	Token     string    `gorm:"size:512;uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time `gorm:"index" json:"expires_at"`
}

func (UserSession) TableName() string {
	return "user_sessions"
}
