package services

import (
	"golang.org/x/crypto/bcrypt"
)

const (
	// MinPasswordLength минимальная длина пароля, проверяется до хеширования
	MinPasswordLength = 8
	// MaxPasswordLength bcrypt учитывает только первые 72 байта
	MaxPasswordLength = 72
)

// PasswordHasher хеширует и проверяет пароли через bcrypt
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher создает хешер с заданной стоимостью
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash возвращает bcrypt-хеш пароля
func (h *PasswordHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify сравнивает пароль с хешем
func (h *PasswordHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
