package database

import (
	"context"
	"errors"

	"fastcard/models"

	"gorm.io/gorm"
)

// Методы для работы с заявками

func (d *Database) GetApplicationByID(ctx context.Context, id uint) (*models.Application, error) {
	var application models.Application
	if err := d.DB.WithContext(ctx).First(&application, id).Error; err != nil {
		return nil, translate(err)
	}
	return &application, nil
}

func (d *Database) GetApplicationByUserID(ctx context.Context, userID uint) (*models.Application, error) {
	var application models.Application
	if err := d.DB.WithContext(ctx).Where("user_id = ?", userID).First(&application).Error; err != nil {
		return nil, translate(err)
	}
	return &application, nil
}

func (d *Database) ListApplications(ctx context.Context) ([]models.Application, error) {
	var applications []models.Application
	if err := d.DB.WithContext(ctx).Order("id").Find(&applications).Error; err != nil {
		return nil, translate(err)
	}
	return applications, nil
}

func (d *Database) DeleteApplication(ctx context.Context, id uint) error {
	result := d.DB.WithContext(ctx).Delete(&models.Application{}, id)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateApplicationWithCard в одной транзакции сохраняет заявку и черновик визитки.
// Если визитка пользователя уже есть, ее содержимое заменяется, а активация снимается.
func (d *Database) CreateApplicationWithCard(ctx context.Context, application *models.Application) (*models.BusinessCard, error) {
	var card models.BusinessCard

	err := d.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(application).Error; err != nil {
			return err
		}

		err := tx.Where("user_id = ?", application.UserID).First(&card).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			card = models.BusinessCard{
				UserID: application.UserID,
				HTML:   application.HTML,
				CSS:    application.CSS,
			}
			return tx.Create(&card).Error
		case err != nil:
			return err
		}

		card.HTML = application.HTML
		card.CSS = application.CSS
		card.IsActivated = false
		return tx.Model(&card).Updates(map[string]interface{}{
			"html":         card.HTML,
			"css":          card.CSS,
			"is_activated": false,
		}).Error
	})
	if err != nil {
		return nil, translate(err)
	}

	return &card, nil
}
