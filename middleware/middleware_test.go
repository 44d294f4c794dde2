package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fastcard/models"
	"fastcard/services"
	"fastcard/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(tokens *services.TokenService, role models.Role) *gin.Engine {
	router := gin.New()
	router.Use(Recovery())

	handler := func(c *gin.Context) {
		claims, ok := CurrentClaims(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"username": claims.Username})
	}

	router.GET("/private", Auth(tokens), handler)
	router.GET("/admin", Auth(tokens), RequireRole(role), handler)
	router.GET("/panic", func(c *gin.Context) { panic("boom") })
	return router
}

func issue(t *testing.T, tokens *services.TokenService, role models.Role, activated bool) string {
	t.Helper()
	token, err := tokens.IssueFor(&models.User{ID: 1, Username: "alice", Role: role, IsActivated: activated})
	require.NoError(t, err)
	return token
}

func do(router http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthGate(t *testing.T) {
	tokens := services.NewTokenService("secret", time.Hour)
	router := newRouter(tokens, models.RoleAdmin)

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{name: "без токена", token: "", status: http.StatusUnauthorized},
		{name: "поддельный токен", token: "bad.token.value", status: http.StatusUnauthorized},
		{name: "неактивированная учетная запись", token: issue(t, tokens, models.RoleUser, false), status: http.StatusForbidden},
		{name: "активированная учетная запись", token: issue(t, tokens, models.RoleUser, true), status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(router, "/private", tt.token)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestAuthRejectsForeignSecret(t *testing.T) {
	router := newRouter(services.NewTokenService("secret", time.Hour), models.RoleAdmin)
	token := issue(t, services.NewTokenService("other", time.Hour), models.RoleAdmin, true)

	rec := do(router, "/private", token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	tokens := services.NewTokenService("secret", time.Hour)
	router := newRouter(tokens, models.RoleAdmin)

	rec := do(router, "/admin", issue(t, tokens, models.RoleUser, true))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"message":"No access"}`, rec.Body.String())

	rec = do(router, "/admin", issue(t, tokens, models.RoleAdmin, true))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"username":"alice"}`, rec.Body.String())

	// неактивированный администратор останавливается на первом фильтре
	rec = do(router, "/admin", issue(t, tokens, models.RoleAdmin, false))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleIsExactMatch(t *testing.T) {
	tokens := services.NewTokenService("secret", time.Hour)
	router := newRouter(tokens, models.RoleUser)

	rec := do(router, "/admin", issue(t, tokens, models.RoleAdmin, true))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleWithoutAuth(t *testing.T) {
	router := gin.New()
	router.GET("/", RequireRole(models.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := do(router, "/", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", BearerToken("Bearer abc"))
	assert.Equal(t, "abc", BearerToken("bearer  abc "))
	assert.Equal(t, "", BearerToken("abc"))
	assert.Equal(t, "", BearerToken("Basic abc"))
	assert.Equal(t, "", BearerToken(""))
}

func TestRecovery(t *testing.T) {
	router := newRouter(services.NewTokenService("secret", time.Hour), models.RoleAdmin)

	rec := do(router, "/panic", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Internal server error"}`, rec.Body.String())
}

func TestLoggerRecordsRequests(t *testing.T) {
	metrics := utils.GetMetrics()
	before := metrics.GetMetricsSnapshot()["total_requests"].(int64)

	router := gin.New()
	router.Use(Logger(), CORSMiddleware())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := do(router, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	after := metrics.GetMetricsSnapshot()["total_requests"].(int64)
	assert.Equal(t, before+1, after)
}

func TestCORSPreflight(t *testing.T) {
	router := gin.New()
	router.Use(CORSMiddleware())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
