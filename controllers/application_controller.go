package controllers

import (
	"net/http"

	"fastcard/middleware"
	"fastcard/services"

	"github.com/gin-gonic/gin"
)

// ApplicationController обрабатывает заявки на визитки
type ApplicationController struct {
	applications *services.ApplicationService
}

// NewApplicationController создает новый экземпляр ApplicationController
func NewApplicationController(applications *services.ApplicationService) *ApplicationController {
	return &ApplicationController{applications: applications}
}

// CreateApplication подает заявку от имени текущего пользователя
func (ac *ApplicationController) CreateApplication(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		respondError(c, services.ErrInvalidToken)
		return
	}

	var req services.CreateApplicationRequest
	if !bindJSON(c, &req) {
		return
	}

	view, err := ac.applications.Create(c.Request.Context(), claims, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// DeleteApplication удаляет заявку владельцем или администратором
func (ac *ApplicationController) DeleteApplication(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		respondError(c, services.ErrInvalidToken)
		return
	}

	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := ac.applications.Delete(c.Request.Context(), claims, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetApplications список заявок для администратора
func (ac *ApplicationController) GetApplications(c *gin.Context) {
	views, err := ac.applications.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, views)
}
