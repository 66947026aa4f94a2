package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScopeTestRouter(jwtToken string) (*gin.Engine, *httptest.ResponseRecorder, *http.Request) {
	router := gin.New()
	router.Use(JWTAuthMiddleware(newTestJWTService()))
	router.Use(OperationScopeMiddleware())

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if jwtToken != "" {
		req.Header.Set("Authorization", "Bearer "+jwtToken)
	}
	return router, httptest.NewRecorder(), req
}

func TestOperationScopeMiddleware_BuildsScopeFromClaims(t *testing.T) {
	jwtService := newTestJWTService()
	token, input := newTestToken(t, jwtService)

	router, rec, req := newScopeTestRouter(token)
	router.GET("/test", func(c *gin.Context) {
		scope, ok := GetOperationScope(c)
		require.True(t, ok)
		assert.Equal(t, input.TenantID, scope.TenantID)
		require.NotNil(t, scope.UserID)
		assert.Equal(t, input.UserID, *scope.UserID)
		assert.Equal(t, uuid.Nil, scope.CemeteryID)
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOperationScopeMiddleware_CemeteryHeader(t *testing.T) {
	jwtService := newTestJWTService()
	token, _ := newTestToken(t, jwtService)
	cemeteryID := uuid.New()

	router, rec, req := newScopeTestRouter(token)
	router.GET("/test", func(c *gin.Context) {
		scope, ok := GetOperationScope(c)
		require.True(t, ok)
		assert.Equal(t, cemeteryID, scope.CemeteryID)
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	req.Header.Set(CemeteryHeaderKey, cemeteryID.String())

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOperationScopeMiddleware_InvalidCemeteryHeader(t *testing.T) {
	jwtService := newTestJWTService()
	token, _ := newTestToken(t, jwtService)

	router, rec, req := newScopeTestRouter(token)
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	req.Header.Set(CemeteryHeaderKey, "not-a-uuid")

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid cemetery ID format")
}

func TestOperationScopeMiddleware_SkipPaths(t *testing.T) {
	router := gin.New()
	router.Use(OperationScopeMiddlewareWithConfig(DefaultScopeConfig()))
	router.POST("/api/v1/tenants", func(c *gin.Context) {
		_, ok := GetOperationScope(c)
		assert.False(t, ok)
		c.JSON(http.StatusCreated, gin.H{"status": "created"})
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/tenants", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestOperationScopeMiddleware_MissingTenant(t *testing.T) {
	router := gin.New()
	router.Use(OperationScopeMiddleware())
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Tenant identification required")
}
