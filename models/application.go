package models

import (
	"time"
)

// Application представляет заявку на активацию визитки
type Application struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	UserID      uint      `gorm:"column:user_id;uniqueIndex;not null"`
	FullName    string    `gorm:"column:full_name;not null;size:100"`
	PhoneNumber *string   `gorm:"column:phone_number;size:32"`
	HTML        string    `gorm:"column:html;type:text"`
	CSS         string    `gorm:"column:css;type:text"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

// TableName возвращает имя таблицы для модели Application
func (Application) TableName() string {
	return "applications"
}

