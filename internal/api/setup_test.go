package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/recipe-catalog/backend/internal/middleware"
	"github.com/pageza/recipe-catalog/backend/internal/model"
	"github.com/pageza/recipe-catalog/backend/internal/service"
	"github.com/pageza/recipe-catalog/backend/internal/testhelpers"
)

type testAPI struct {
	router *gin.Engine
	db     *gorm.DB
	auth   *service.AuthService
}

func setupTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupSQLite(t)
	auth := service.NewAuthService(db, "test-secret")
	recipes := service.NewRecipeService(db, service.RecommendSettings{}, nil, nil)

	router := gin.New()
	router.Use(middleware.Recovery())
	RegisterRoutes(router, Dependencies{DB: db, Auth: auth, Recipes: recipes})

	return &testAPI{router: router, db: db, auth: auth}
}

// tokenFor creates a user and returns a bearer token for it.
func (a *testAPI) tokenFor(t *testing.T, username string, admin bool) (*model.User, string) {
	t.Helper()
	user := testhelpers.CreateUser(t, a.db, username, admin)
	token, err := a.auth.TokenFor(user)
	require.NoError(t, err)
	return user, token
}

func (a *testAPI) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

