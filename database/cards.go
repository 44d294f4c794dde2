package database

import (
	"context"

	"fastcard/models"
)

// Методы для работы с визитками

func (d *Database) SaveCard(ctx context.Context, card *models.BusinessCard) error {
	return translate(d.DB.WithContext(ctx).Save(card).Error)
}

func (d *Database) GetCardByID(ctx context.Context, id uint) (*models.BusinessCard, error) {
	var card models.BusinessCard
	if err := d.DB.WithContext(ctx).First(&card, id).Error; err != nil {
		return nil, translate(err)
	}
	return &card, nil
}

func (d *Database) GetCardByUserID(ctx context.Context, userID uint) (*models.BusinessCard, error) {
	var card models.BusinessCard
	if err := d.DB.WithContext(ctx).Where("user_id = ?", userID).First(&card).Error; err != nil {
		return nil, translate(err)
	}
	return &card, nil
}

// ListActivatedCards возвращает все активированные визитки
func (d *Database) ListActivatedCards(ctx context.Context) ([]models.BusinessCard, error) {
	var cards []models.BusinessCard
	err := d.DB.WithContext(ctx).
		Where("is_activated = ?", true).
		Order("id").
		Find(&cards).Error
	if err != nil {
		return nil, translate(err)
	}
	return cards, nil
}

// DeleteCard удаляет визитку по ID
func (d *Database) DeleteCard(ctx context.Context, id uint) error {
	result := d.DB.WithContext(ctx).Delete(&models.BusinessCard{}, id)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
