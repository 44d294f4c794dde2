package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"fastcard/services"
	"fastcard/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// statusFor сопоставляет вид ошибки сервиса с HTTP-статусом
func statusFor(kind services.ErrorKind) int {
	switch kind {
	case services.KindBadRequest:
		return http.StatusBadRequest
	case services.KindUnauthorized:
		return http.StatusUnauthorized
	case services.KindForbidden:
		return http.StatusForbidden
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError отправляет клиенту безопасное сообщение об ошибке
func respondError(c *gin.Context, err error) {
	kind := services.KindOf(err)
	status := statusFor(kind)

	message := "Internal server error"
	var serviceErr *services.Error
	if errors.As(err, &serviceErr) && kind != services.KindInternal {
		message = serviceErr.Message
	}
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	} else {
		utils.Log.Debug("request rejected",
			zap.Stringer("kind", kind),
			zap.String("path", c.Request.URL.Path),
			zap.String("message", message),
		)
	}

	c.AbortWithStatusJSON(status, gin.H{"message": message})
}

// bindJSON разбирает тело запроса и отвечает 400 при ошибке
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return false
	}
	return true
}

// paramID разбирает числовой параметр :id
func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return 0, false
	}
	return uint(id), true
}
