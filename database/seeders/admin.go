package seeders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fastcard/database"
	"fastcard/models"
	"fastcard/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PasswordHasher хеширует пароль администратора
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// AdminAccount данные администратора для начального заполнения
type AdminAccount struct {
	Username string
	Email    string
	Password string
}

// ErrAdminUsernameTaken username администратора занят учетной записью с другим email
var ErrAdminUsernameTaken = errors.New("username администратора занят другой учетной записью")

// SeedAdmin создает активированного администратора, если его еще нет.
// Существующая учетная запись с тем же username и email получает роль ADMIN,
// активацию и пароль из конфигурации; с другим email запуск прерывается.
func SeedAdmin(ctx context.Context, db *database.Database, hasher PasswordHasher, admin AdminAccount) error {
	email := strings.ToLower(strings.TrimSpace(admin.Email))

	existing, err := db.GetUserByUsername(ctx, admin.Username)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		return fmt.Errorf("ошибка поиска администратора: %w", err)
	}
	if err == nil && existing.Email != email {
		return fmt.Errorf("%w: '%s'", ErrAdminUsernameTaken, admin.Username)
	}

	hash, err := hasher.Hash(admin.Password)
	if err != nil {
		return fmt.Errorf("не удалось захешировать пароль администратора: %w", err)
	}

	if existing != nil {
		existing.Password = hash
		existing.Role = models.RoleAdmin
		existing.IsActivated = true
		if err := db.SaveUser(ctx, existing); err != nil {
			return fmt.Errorf("не удалось обновить администратора: %w", err)
		}
		utils.Log.Info("Администратор обновлен", zap.String("username", admin.Username))
		return nil
	}

	user := &models.User{
		Username:       admin.Username,
		Email:          email,
		Password:       hash,
		ActivationLink: uuid.NewString(),
		IsActivated:    true,
		Role:           models.RoleAdmin,
	}
	if err := db.CreateUser(ctx, user); err != nil {
		return fmt.Errorf("не удалось создать администратора: %w", err)
	}

	utils.Log.Info("Администратор создан", zap.String("username", admin.Username), zap.Uint("id", user.ID))
	return nil
}
