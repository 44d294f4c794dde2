package controllers

import (
	"net/http"

	"fastcard/middleware"
	"fastcard/services"

	"github.com/gin-gonic/gin"
)

// CardController обрабатывает запросы к визиткам
type CardController struct {
	cards *services.CardService
}

// NewCardController создает новый экземпляр CardController
func NewCardController(cards *services.CardService) *CardController {
	return &CardController{cards: cards}
}

// GetCard публичный просмотр активированной визитки
func (cc *CardController) GetCard(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	view, err := cc.cards.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// ActivateCard активирует визитку пользователя по username
func (cc *CardController) ActivateCard(c *gin.Context) {
	var req services.ActivateCardRequest
	if !bindJSON(c, &req) {
		return
	}

	view, err := cc.cards.Activate(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// UpdateCard заменяет содержимое собственной визитки
func (cc *CardController) UpdateCard(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		respondError(c, services.ErrInvalidToken)
		return
	}

	var req services.UpdateCardRequest
	if !bindJSON(c, &req) {
		return
	}

	view, err := cc.cards.Update(c.Request.Context(), claims, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// DeleteCard удаляет визитку
func (cc *CardController) DeleteCard(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		respondError(c, services.ErrInvalidToken)
		return
	}

	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := cc.cards.Delete(c.Request.Context(), claims, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Sitemap отдает sitemap.xml с активированными визитками
func (cc *CardController) Sitemap(c *gin.Context) {
	data, err := cc.cards.Sitemap(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/xml; charset=utf-8", data)
}
