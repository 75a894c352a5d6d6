package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-catalog/backend/internal/logging"
	"github.com/pageza/recipe-catalog/backend/internal/model"
	"github.com/pageza/recipe-catalog/backend/internal/types"
)

type mockValidator struct {
	mock.Mock
}

func (m *mockValidator) ValidateToken(token string) (*types.TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TokenClaims), args.Error(1)
}

type mockUsers struct {
	mock.Mock
}

func (m *mockUsers) GetUserByID(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	userID := uuid.New()
	validator := new(mockValidator)
	validator.On("ValidateToken", "good").Return(&types.TokenClaims{UserID: userID, Username: "cook"}, nil)
	validator.On("ValidateToken", "bad").Return(nil, errors.New("expired"))

	router := gin.New()
	router.GET("/me", AuthMiddleware(validator), func(c *gin.Context) {
		id, ok := UserID(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"user_id": id, "username": c.GetString(ContextUsername)})
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"invalid token", "Bearer bad", http.StatusUnauthorized},
		{"valid token", "Bearer good", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := serve(router, req)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Contains(t, w.Body.String(), userID.String())
			} else {
				assert.Contains(t, w.Body.String(), `"error"`)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	adminID, cookID, goneID := uuid.New(), uuid.New(), uuid.New()
	users := new(mockUsers)
	users.On("GetUserByID", mock.Anything, adminID).Return(&model.User{ID: adminID, IsAdmin: true}, nil)
	users.On("GetUserByID", mock.Anything, cookID).Return(&model.User{ID: cookID}, nil)
	users.On("GetUserByID", mock.Anything, goneID).Return(nil, errors.New("user not found"))

	newRouter := func(id *uuid.UUID) *gin.Engine {
		router := gin.New()
		router.Use(func(c *gin.Context) {
			if id != nil {
				c.Set(ContextUserID, *id)
			}
		})
		router.POST("/admin", RequireAdmin(users), func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})
		return router
	}

	assert.Equal(t, http.StatusNoContent, serve(newRouter(&adminID), httptest.NewRequest(http.MethodPost, "/admin", nil)).Code)
	assert.Equal(t, http.StatusForbidden, serve(newRouter(&cookID), httptest.NewRequest(http.MethodPost, "/admin", nil)).Code)
	assert.Equal(t, http.StatusForbidden, serve(newRouter(&goneID), httptest.NewRequest(http.MethodPost, "/admin", nil)).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(newRouter(nil), httptest.NewRequest(http.MethodPost, "/admin", nil)).Code)
}

func TestCORS(t *testing.T) {
	router := gin.New()
	router.Use(CORS())
	router.GET("/recipes", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/recipes", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := serve(router, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/recipes", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	w = serve(router, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRecovery(t *testing.T) {
	router := gin.New()
	router.Use(Recovery())
	router.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := serve(router, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, w.Body.String())
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logging.Init(logging.Config{Level: "info", Format: "json", Output: &buf})
	t.Cleanup(func() { logging.Init(logging.Config{}) })

	router := gin.New()
	router.Use(RequestLogger())
	router.GET("/recipes/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	serve(router, httptest.NewRequest(http.MethodGet, "/recipes/abc", nil))

	out := buf.String()
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, `"route":"/recipes/:id"`)
	assert.Contains(t, out, `"status":404`)
}
