package services

import (
	"fmt"
	"strconv"
	"time"

	"fastcard/models"

	"github.com/golang-jwt/jwt/v5"
)

// Claims данные пользователя внутри токена. Значения актуальны на момент выдачи
type Claims struct {
	ID          uint        `json:"id"`
	Email       string      `json:"email"`
	Username    string      `json:"username"`
	IsActivated bool        `json:"isActivated"`
	Role        models.Role `json:"role"`
	jwt.RegisteredClaims
}

// ClaimsFor собирает claims из учетной записи
func ClaimsFor(user *models.User) Claims {
	return Claims{
		ID:          user.ID,
		Email:       user.Email,
		Username:    user.Username,
		IsActivated: user.IsActivated,
		Role:        user.Role,
	}
}

// CanManage реализует правило "владелец или администратор"
func (c *Claims) CanManage(ownerID uint) bool {
	return c.ID == ownerID || c.Role == models.RoleAdmin
}

// TokenService выдает и проверяет JWT (HS256)
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService создает сервис токенов
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue подписывает claims, срок действия отсчитывается от момента выдачи
func (s *TokenService) Issue(claims Claims) (string, error) {
	now := s.now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(claims.ID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("не удалось подписать токен: %w", err)
	}
	return signed, nil
}

// IssueFor выдает токен для учетной записи
func (s *TokenService) IssueFor(user *models.User) (string, error) {
	return s.Issue(ClaimsFor(user))
}

// Verify проверяет подпись и срок действия токена.
// Текущее состояние учетной записи не сверяется.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(_ *jwt.Token) (any, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, &Error{Kind: KindUnauthorized, Message: ErrInvalidToken.Message, Err: err}
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
