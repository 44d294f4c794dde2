package models

import (
	"time"
)

// BusinessCard представляет визитку пользователя (HTML + CSS)
type BusinessCard struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	UserID      uint      `gorm:"column:user_id;uniqueIndex;not null"`
	HTML        string    `gorm:"column:html;type:text"`
	CSS         string    `gorm:"column:css;type:text"`
	IsActivated bool      `gorm:"column:is_activated;not null;default:false"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

// TableName возвращает имя таблицы для модели BusinessCard
func (BusinessCard) TableName() string {
	return "business_cards"
}

// OwnedBy проверяет, принадлежит ли визитка пользователю
func (c *BusinessCard) OwnedBy(userID uint) bool {
	return c.UserID == userID
}
