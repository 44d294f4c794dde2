package controllers

import (
	"context"
	"net/http"
	"time"

	"fastcard/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger проверяет доступность хранилища
type Pinger interface {
	Ping(ctx context.Context) error
}

// SystemController служебные маршруты
type SystemController struct {
	db Pinger
}

// NewSystemController создает новый экземпляр SystemController
func NewSystemController(db Pinger) *SystemController {
	return &SystemController{db: db}
}

// Health проверяет соединение с базой данных
func (sc *SystemController) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := sc.db.Ping(ctx); err != nil {
		utils.Log.Error("health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Metrics отдает снимок метрик процесса
func (sc *SystemController) Metrics(c *gin.Context) {
	c.JSON(http.StatusOK, utils.GetMetrics().GetMetricsSnapshot())
}
