package controllers

import (
	"fastcard/database"
	"fastcard/middleware"
	"fastcard/models"
	"fastcard/services"

	"github.com/gin-gonic/gin"
)

// Dependencies собранные сервисы приложения
type Dependencies struct {
	DB           *database.Database
	Tokens       *services.TokenService
	Users        *services.UserService
	Cards        *services.CardService
	Applications *services.ApplicationService
}

// NewRouter создает gin.Engine со всеми маршрутами API под префиксом apiPrefix
func NewRouter(apiPrefix string, deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.CORSMiddleware())

	users := NewUserController(deps.Users)
	cards := NewCardController(deps.Cards)
	applications := NewApplicationController(deps.Applications)
	system := NewSystemController(deps.DB)

	auth := middleware.Auth(deps.Tokens)
	admin := middleware.RequireRole(models.RoleAdmin)

	api := router.Group(apiPrefix)
	{
		// Учетные записи
		user := api.Group("/user")
		user.POST("/registration", users.Registration)
		user.POST("/login", users.Login)
		user.GET("/activate/:link", users.Activate)
		user.GET("/auth", auth, users.Auth)
		user.POST("/checkAuth", users.CheckAuth)
		user.GET("/:id", auth, admin, users.GetUser)
		user.GET("", auth, admin, users.GetUsers)

		// Заявки; право на удаление проверяет сервис
		application := api.Group("/application")
		application.POST("", auth, applications.CreateApplication)
		application.GET("", auth, admin, applications.GetApplications)
		application.DELETE("/:id", auth, applications.DeleteApplication)

		// Визитки
		card := api.Group("/business-cards")
		card.GET("/:id", cards.GetCard)
		card.POST("/activate", auth, admin, cards.ActivateCard)
		card.PUT("", auth, cards.UpdateCard)
		card.DELETE("/:id", auth, cards.DeleteCard)

		api.GET("/metrics", auth, admin, system.Metrics)
	}

	router.GET("/sitemap.xml", cards.Sitemap)
	router.GET("/healthz", system.Health)

	return router
}
