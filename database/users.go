package database

import (
	"context"

	"fastcard/models"
)

// CreateUser сохраняет нового пользователя
func (d *Database) CreateUser(ctx context.Context, user *models.User) error {
	return translate(d.DB.WithContext(ctx).Create(user).Error)
}

// SaveUser обновляет все поля пользователя
func (d *Database) SaveUser(ctx context.Context, user *models.User) error {
	return translate(d.DB.WithContext(ctx).Save(user).Error)
}

func (d *Database) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := d.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (d *Database) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return d.findUser(ctx, "username = ?", username)
}

func (d *Database) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return d.findUser(ctx, "email = ?", email)
}

func (d *Database) GetUserByActivationLink(ctx context.Context, link string) (*models.User, error) {
	return d.findUser(ctx, "activation_link = ?", link)
}

// ListUsers возвращает всех пользователей по возрастанию ID
func (d *Database) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := d.DB.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, translate(err)
	}
	return users, nil
}

// MarkUserActivated переводит пользователя в активированное состояние.
// Возвращает false, если пользователь уже был активирован.
func (d *Database) MarkUserActivated(ctx context.Context, id uint) (bool, error) {
	result := d.DB.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND is_activated = ?", id, false).
		Update("is_activated", true)
	if result.Error != nil {
		return false, translate(result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (d *Database) findUser(ctx context.Context, query string, arg interface{}) (*models.User, error) {
	var user models.User
	if err := d.DB.WithContext(ctx).Where(query, arg).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}
