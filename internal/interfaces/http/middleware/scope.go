package middleware

import (
	"net/http"

	"github.com/camposanto/backend/internal/domain/shared"
	"github.com/camposanto/backend/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Operation scope context keys
const (
	OperationScopeKey = "operation_scope"
	CemeteryHeaderKey = "X-Cemetery-ID"
)

// ScopeMiddlewareConfig holds configuration for the operation scope middleware
type ScopeMiddlewareConfig struct {
	// SkipPaths are paths that don't require an operation scope
	SkipPaths []string
	// Logger for middleware logging
	Logger *zap.Logger
}

// DefaultScopeConfig returns default scope middleware configuration
func DefaultScopeConfig() ScopeMiddlewareConfig {
	return ScopeMiddlewareConfig{
		SkipPaths: []string{
			"/health",
			"/healthz",
			"/api/v1/health",
			"/api/v1/tenants",
		},
	}
}

// OperationScopeMiddleware builds the tenant-scoped operation context for a
// request. The tenant and operator come from the JWT claims set by the auth
// middleware; the working cemetery, when a request targets one, comes from
// the X-Cemetery-ID header.
func OperationScopeMiddleware() gin.HandlerFunc {
	return OperationScopeMiddlewareWithConfig(DefaultScopeConfig())
}

// OperationScopeMiddlewareWithConfig returns scope middleware with custom config
func OperationScopeMiddlewareWithConfig(cfg ScopeMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if skipPath(cfg.SkipPaths, c.Request.URL.Path) {
			c.Next()
			return
		}

		tenantID, err := uuid.Parse(GetJWTTenantID(c))
		if err != nil || tenantID == uuid.Nil {
			respondUnauthorized(c, "Tenant identification required")
			return
		}

		scope := shared.NewOperationContext(tenantID)

		if userID, err := uuid.Parse(GetJWTUserID(c)); err == nil && userID != uuid.Nil {
			scope = scope.WithUser(userID)
		}

		if header := c.GetHeader(CemeteryHeaderKey); header != "" {
			cemeteryID, err := uuid.Parse(header)
			if err != nil {
				respondBadRequest(c, "Invalid cemetery ID format")
				return
			}
			scope = scope.WithCemetery(cemeteryID)
		}

		c.Set(OperationScopeKey, scope)

		// Propagate tenant into the request context so service-layer logs carry it
		ctx := c.Request.Context()
		log := cfg.Logger
		if log == nil {
			log = logger.FromContext(ctx)
		}
		ctx, _ = logger.WithTenantID(ctx, log, tenantID.String())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func respondUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": message,
		},
	})
}

func respondBadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "BAD_REQUEST",
			"message": message,
		},
	})
}

// GetOperationScope retrieves the operation context from gin.Context
func GetOperationScope(c *gin.Context) (shared.OperationContext, bool) {
	if value, exists := c.Get(OperationScopeKey); exists {
		if scope, ok := value.(shared.OperationContext); ok {
			return scope, true
		}
	}
	return shared.OperationContext{}, false
}
