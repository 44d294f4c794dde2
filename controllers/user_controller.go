package controllers

import (
	"net/http"

	"fastcard/middleware"
	"fastcard/services"

	"github.com/gin-gonic/gin"
)

// UserController обрабатывает регистрацию, вход и активацию учетных записей
type UserController struct {
	users *services.UserService
}

// NewUserController создает новый экземпляр UserController
func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

type checkAuthRequest struct {
	Token string `json:"token"`
}

// Registration создает учетную запись
func (uc *UserController) Registration(c *gin.Context) {
	var req services.RegistrationRequest
	if !bindJSON(c, &req) {
		return
	}

	view, err := uc.users.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// Login выдает токен по email и паролю
func (uc *UserController) Login(c *gin.Context) {
	var req services.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := uc.users.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Activate погашает ссылку активации из письма
func (uc *UserController) Activate(c *gin.Context) {
	view, err := uc.users.Activate(c.Request.Context(), c.Param("link"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// Auth перевыпускает токен для прошедшего проверку пользователя
func (uc *UserController) Auth(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		respondError(c, services.ErrInvalidToken)
		return
	}

	resp, err := uc.users.Refresh(claims)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CheckAuth проверяет токен из тела запроса
func (uc *UserController) CheckAuth(c *gin.Context) {
	var req checkAuthRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := uc.users.CheckToken(req.Token); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "GOOD"})
}

// GetUser возвращает учетную запись по ID
func (uc *UserController) GetUser(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	view, err := uc.users.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// GetUsers возвращает все учетные записи
func (uc *UserController) GetUsers(c *gin.Context) {
	views, err := uc.users.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, views)
}
