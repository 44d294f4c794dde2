package services

import (
	"context"
	"errors"

	"fastcard/database"
	"fastcard/models"
	"fastcard/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ActivationMailer доставляет ссылку активации пользователю
type ActivationMailer interface {
	SendActivationMail(ctx context.Context, to, link string) error
}

// ActivationWorkflow управляет переходом PENDING -> ACTIVATED.
// Переход выполняется ровно один раз и необратим.
type ActivationWorkflow struct {
	db      *database.Database
	mailer  ActivationMailer
	linkURL func(link string) string
}

// NewActivationWorkflow создает workflow активации; linkURL строит публичную ссылку из токена
func NewActivationWorkflow(db *database.Database, mailer ActivationMailer, linkURL func(string) string) *ActivationWorkflow {
	return &ActivationWorkflow{
		db:      db,
		mailer:  mailer,
		linkURL: linkURL,
	}
}

// NewLink генерирует глобально уникальный токен активации
func (w *ActivationWorkflow) NewLink() string {
	return uuid.NewString()
}

// Dispatch отправляет ссылку активации на email пользователя
func (w *ActivationWorkflow) Dispatch(ctx context.Context, user *models.User) error {
	if err := w.mailer.SendActivationMail(ctx, user.Email, w.linkURL(user.ActivationLink)); err != nil {
		return err
	}
	utils.LogDebug("Письмо активации отправлено: user_id=%d", user.ID)
	return nil
}

// Redeem активирует учетную запись по токену
func (w *ActivationWorkflow) Redeem(ctx context.Context, link string) (*models.User, error) {
	if link == "" {
		return nil, ErrActivationLinkNotFound
	}

	user, err := w.db.GetUserByActivationLink(ctx, link)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrActivationLinkNotFound
	}
	if err != nil {
		return nil, internalError("activation.lookup", err)
	}
	if user.IsActivated {
		return nil, ErrAlreadyActivated
	}

	changed, err := w.db.MarkUserActivated(ctx, user.ID)
	if err != nil {
		return nil, internalError("activation.mark", err)
	}
	if !changed {
		// параллельный запрос успел активировать раньше
		return nil, ErrAlreadyActivated
	}

	user.IsActivated = true
	utils.Log.Info("account activated", zap.Uint("user_id", user.ID))
	return user, nil
}
