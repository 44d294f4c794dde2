package services

import (
	"context"
	"errors"
	"strings"

	"fastcard/database"
	"fastcard/utils"

	"go.uber.org/zap"
)

// ActivateCardRequest запрос администратора на активацию визитки
type ActivateCardRequest struct {
	Username string `json:"username"`
}

// UpdateCardRequest новое содержимое визитки
type UpdateCardRequest struct {
	Content CardContent `json:"content"`
}

// CardService предоставляет методы для работы с визитками
type CardService struct {
	db      *database.Database
	cardURL func(id uint) string
}

// NewCardService создает новый экземпляр CardService; cardURL строит публичную ссылку для карты сайта
func NewCardService(db *database.Database, cardURL func(uint) string) *CardService {
	return &CardService{db: db, cardURL: cardURL}
}

// GetByID возвращает визитку. Неактивированные визитки не видны никому, включая владельца
func (s *CardService) GetByID(ctx context.Context, id uint) (*CardView, error) {
	card, err := s.db.GetCardByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrCardNotFound
	}
	if err != nil {
		return nil, internalError("card.get", err)
	}
	if !card.IsActivated {
		return nil, ErrCardNotActivated
	}
	return newCardView(card), nil
}

// Activate активирует визитку пользователя с указанным username.
// Вызывается только администратором, владение не проверяется.
func (s *CardService) Activate(ctx context.Context, req ActivateCardRequest) (view *CardView, err error) {
	defer func() {
		utils.GetMetrics().RecordOperation(utils.OpCardActivate, err)
	}()

	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, NewBadRequest("Username is required")
	}

	user, err := s.db.GetUserByUsername(ctx, username)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, internalError("card.activate.user", err)
	}

	card, err := s.db.GetCardByUserID(ctx, user.ID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, &Error{Kind: KindNotFound, Message: "Business card does not exist"}
	}
	if err != nil {
		return nil, internalError("card.activate.card", err)
	}

	card.IsActivated = true
	if err := s.db.SaveCard(ctx, card); err != nil {
		return nil, internalError("card.activate.save", err)
	}

	utils.Log.Info("Business card activated", zap.Uint("card_id", card.ID), zap.String("username", username))
	return newCardView(card), nil
}

// Update заменяет содержимое визитки запрашивающего пользователя
func (s *CardService) Update(ctx context.Context, requester *Claims, req UpdateCardRequest) (*CardView, error) {
	card, err := s.db.GetCardByUserID(ctx, requester.ID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrCardNotFound
	}
	if err != nil {
		return nil, internalError("card.update.get", err)
	}
	if !card.OwnedBy(requester.ID) {
		return nil, ErrPermissionDenied
	}

	card.HTML = req.Content.HTML
	card.CSS = req.Content.CSS
	if err := s.db.SaveCard(ctx, card); err != nil {
		return nil, internalError("card.update.save", err)
	}

	utils.Log.Info("Business card updated", zap.Uint("card_id", card.ID))
	return newCardView(card), nil
}

// Delete удаляет визитку владельцем или администратором
func (s *CardService) Delete(ctx context.Context, requester *Claims, id uint) (err error) {
	defer func() {
		utils.GetMetrics().RecordOperation(utils.OpCardDelete, err)
	}()

	card, err := s.db.GetCardByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return ErrCardNotFound
	}
	if err != nil {
		return internalError("card.delete.get", err)
	}
	if !requester.CanManage(card.UserID) {
		return ErrPermissionDenied
	}

	if err := s.db.DeleteCard(ctx, card.ID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrCardNotFound
		}
		return internalError("card.delete", err)
	}

	utils.Log.Info("Business card deleted", zap.Uint("card_id", id), zap.Uint("by", requester.ID))
	return nil
}

// Sitemap возвращает XML карту сайта со всеми активированными визитками
func (s *CardService) Sitemap(ctx context.Context) ([]byte, error) {
	cards, err := s.db.ListActivatedCards(ctx)
	if err != nil {
		return nil, internalError("card.sitemap", err)
	}

	entries := make([]SitemapEntry, 0, len(cards))
	for _, card := range cards {
		entries = append(entries, SitemapEntry{
			Location:     s.cardURL(card.ID),
			LastModified: card.UpdatedAt,
		})
	}

	data, err := BuildSitemap(entries)
	if err != nil {
		return nil, internalError("card.sitemap.build", err)
	}
	return data, nil
}
