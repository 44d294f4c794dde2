package models

import (
	"errors"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"
)

// Role представляет роль пользователя
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// IsValid проверяет, что роль входит в список известных ролей
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

// User представляет учетную запись
type User struct {
	ID             uint      `gorm:"primaryKey;autoIncrement"`
	Username       string    `gorm:"column:username;uniqueIndex;not null;size:50"`
	Email          string    `gorm:"column:email;uniqueIndex;not null;size:100"`
	Password       string    `gorm:"column:password;not null;size:100"`
	ActivationLink string    `gorm:"column:activation_link;uniqueIndex;not null;size:64"`
	IsActivated    bool      `gorm:"column:is_activated;not null;default:false"`
	Role           Role      `gorm:"column:role;type:varchar(20);not null;default:'USER'"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate хук для валидации перед созданием
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.Role == "" {
		u.Role = RoleUser
	}
	if !u.Role.IsValid() {
		return errors.New("unknown role " + string(u.Role))
	}
	// длины в символах, как у VARCHAR в PostgreSQL
	if n := utf8.RuneCountInString(u.Username); n == 0 || n > 50 {
		return errors.New("username must be between 1 and 50 characters")
	}
	if n := utf8.RuneCountInString(u.Email); n < 3 || n > 100 {
		return errors.New("email must be between 3 and 100 characters")
	}
	if u.ActivationLink == "" {
		return errors.New("activation link is required")
	}
	return nil
}
