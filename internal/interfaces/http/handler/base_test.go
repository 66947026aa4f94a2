package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/camposanto/backend/internal/domain/shared"
	"github.com/camposanto/backend/internal/interfaces/http/dto"
	"github.com/camposanto/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// withScope injects an operation scope the way the scope middleware would,
// so handler tests skip token plumbing.
func withScope(scope shared.OperationContext) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.OperationScopeKey, scope)
		c.Next()
	}
}

func TestGetRequestID(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(*gin.Context)
		expectedID string
	}{
		{
			name: "from context string",
			setup: func(c *gin.Context) {
				c.Set("request_id", "ctx-request-id")
			},
			expectedID: "ctx-request-id",
		},
		{
			name: "from header when context empty",
			setup: func(c *gin.Context) {
				c.Request.Header.Set("X-Request-ID", "header-request-id")
			},
			expectedID: "header-request-id",
		},
		{
			name:       "empty when not set",
			setup:      func(c *gin.Context) {},
			expectedID: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", "/", nil)
			tt.setup(c)

			id := getRequestID(c)
			assert.Equal(t, tt.expectedID, id)
		})
	}
}

func TestBaseHandlerSuccess(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	h.Success(c, map[string]string{"key": "value"})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestBaseHandlerSuccessWithMeta(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	h.SuccessWithMeta(c, []string{"item1", "item2"}, 100, 1, 10)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Meta)
	assert.Equal(t, int64(100), resp.Meta.Total)
}

func TestBaseHandlerHandleError(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode int
		expectedBody string
	}{
		{
			name:         "not found",
			err:          shared.ErrNotFound,
			expectedCode: http.StatusNotFound,
			expectedBody: "NOT_FOUND",
		},
		{
			name:         "invalid state",
			err:          shared.NewDomainError("INVALID_STATE", "plot is at capacity"),
			expectedCode: http.StatusUnprocessableEntity,
			expectedBody: "INVALID_STATE",
		},
		{
			name:         "immutable record",
			err:          shared.ErrImmutableRecord,
			expectedCode: http.StatusConflict,
			expectedBody: "IMMUTABLE_RECORD",
		},
		{
			name:         "validation",
			err:          shared.NewValidationError("name", "name cannot be empty"),
			expectedCode: http.StatusBadRequest,
			expectedBody: "VALIDATION",
		},
		{
			name:         "opaque for unknown errors",
			err:          assert.AnError,
			expectedCode: http.StatusInternalServerError,
			expectedBody: "An unexpected error occurred",
		},
	}

	h := &BaseHandler{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", "/", nil)

			h.HandleError(c, tt.err)

			assert.Equal(t, tt.expectedCode, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
		})
	}
}

func TestOperationScopeRequired(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)

	_, ok := h.operationScope(c)

	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListFilterBinding(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/?page=3&page_size=5&search=silva", nil)

	filter, ok := h.listFilter(c)

	require.True(t, ok)
	assert.Equal(t, 3, filter.Page)
	assert.Equal(t, 5, filter.PageSize)
	assert.Equal(t, "silva", filter.Search)
}

func TestWithScopeHelper(t *testing.T) {
	tenantID := uuid.New()

	router := gin.New()
	router.Use(withScope(shared.NewOperationContext(tenantID)))
	router.GET("/test", func(c *gin.Context) {
		scope, ok := middleware.GetOperationScope(c)
		require.True(t, ok)
		assert.Equal(t, tenantID, scope.TenantID)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
