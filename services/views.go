package services

import (
	"time"

	"fastcard/models"
)

// AccountView публичное представление учетной записи (без хеша пароля)
type AccountView struct {
	ID           uint        `json:"id"`
	Email        string      `json:"email"`
	Username     string      `json:"username"`
	IsActivated  bool        `json:"isActivated"`
	Role         models.Role `json:"role"`
	CreatedAt    time.Time   `json:"created_at"`
	BusinessCard *CardView   `json:"business_card"`
}

// CardContent содержимое визитки
type CardContent struct {
	HTML string `json:"html"`
	CSS  string `json:"css"`
}

// CardView публичное представление визитки
type CardView struct {
	ID          uint        `json:"id"`
	UserID      uint        `json:"user_id"`
	Content     CardContent `json:"content"`
	IsActivated bool        `json:"isActivated"`
}

// ApplicationView публичное представление заявки, HTML/CSS не возвращаются
type ApplicationView struct {
	ID          uint    `json:"id"`
	UserID      uint    `json:"user_id"`
	FullName    string  `json:"full_name"`
	PhoneNumber *string `json:"phone_number"`
}

func newAccountView(user *models.User, card *models.BusinessCard) *AccountView {
	view := &AccountView{
		ID:          user.ID,
		Email:       user.Email,
		Username:    user.Username,
		IsActivated: user.IsActivated,
		Role:        user.Role,
		CreatedAt:   user.CreatedAt,
	}
	if card != nil {
		view.BusinessCard = newCardView(card)
	}
	return view
}

func newCardView(card *models.BusinessCard) *CardView {
	return &CardView{
		ID:     card.ID,
		UserID: card.UserID,
		Content: CardContent{
			HTML: card.HTML,
			CSS:  card.CSS,
		},
		IsActivated: card.IsActivated,
	}
}

func newApplicationView(application *models.Application) *ApplicationView {
	return &ApplicationView{
		ID:          application.ID,
		UserID:      application.UserID,
		FullName:    application.FullName,
		PhoneNumber: application.PhoneNumber,
	}
}
