package middleware

import (
	"net/http"
	"strings"

	"fastcard/models"
	"fastcard/services"

	"github.com/gin-gonic/gin"
)

// claimsKey ключ, под которым проверенные claims лежат в gin.Context
const claimsKey = "claims"

// TokenVerifier проверяет подпись и срок действия токена
type TokenVerifier interface {
	Verify(token string) (*services.Claims, error)
}

// Auth проверяет Bearer токен и пропускает только активированные учетные записи
func Auth(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Unauthorized",
			})
			return
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Unauthorized",
			})
			return
		}

		// Подписанный токен неактивированной учетной записи не проходит
		if !claims.IsActivated {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"message": services.ErrAccountNotActivated.Message,
			})
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireRole пропускает запрос только при точном совпадении роли.
// Должен стоять после Auth.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := CurrentClaims(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Unauthorized",
			})
			return
		}

		if claims.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"message": services.ErrNoAccess.Message,
			})
			return
		}

		c.Next()
	}
}

// CurrentClaims возвращает claims, сохраненные Auth
func CurrentClaims(c *gin.Context) (*services.Claims, bool) {
	value, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := value.(*services.Claims)
	return claims, ok
}

// BearerToken извлекает токен из заголовка Authorization
func BearerToken(header string) string {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
