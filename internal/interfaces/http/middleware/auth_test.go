package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cubemart/backend/internal/infrastructure/auth"
	"github.com/cubemart/backend/internal/infrastructure/config"
)

func newAuthTestService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:          "test-secret-key-at-least-32-chars",
		Issuer:          "test-issuer",
		TokenExpiration: 15 * time.Minute,
	})
}

func newAuthTestRouter(svc *auth.JWTService, adminOnly bool) *gin.Engine {
	router := gin.New()
	handlers := []gin.HandlerFunc{RequireAuth(svc, zap.NewNop())}
	if adminOnly {
		handlers = append(handlers, RequireAdmin())
	}
	handlers = append(handlers, func(c *gin.Context) {
		c.String(http.StatusOK, GetAuthUserID(c))
	})
	router.GET("/protected", handlers...)
	return router
}

func issueTestToken(t *testing.T, svc *auth.JWTService, role string) (string, uuid.UUID) {
	t.Helper()
	userID := uuid.New()
	issued, err := svc.IssueToken(auth.IssueTokenInput{
		UserID: userID,
		Email:  "user@example.com",
		Role:   role,
	})
	require.NoError(t, err)
	return issued.Token, userID
}

func TestRequireAuth(t *testing.T) {
	svc := newAuthTestService()
	router := newAuthTestRouter(svc, false)

	t.Run("valid token passes", func(t *testing.T) {
		token, userID := issueTestToken(t, svc, "customer")

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, userID.String(), w.Body.String())
	})

	t.Run("missing header returns 401", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "UNAUTHORIZED", body["code"])
	})

	t.Run("malformed header returns 401", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set(AuthHeaderKey, "Basic dXNlcjpwYXNz")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token returns 401", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+"not-a-jwt")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token returns 401 with expiry message", func(t *testing.T) {
		expiredSvc := auth.NewJWTService(config.JWTConfig{
			Secret:          "test-secret-key-at-least-32-chars",
			Issuer:          "test-issuer",
			TokenExpiration: -1 * time.Minute,
		})
		token, _ := issueTestToken(t, expiredSvc, "customer")

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Token has expired", body["error"])
	})
}

func TestRequireAdmin(t *testing.T) {
	svc := newAuthTestService()
	router := newAuthTestRouter(svc, true)

	t.Run("admin token passes", func(t *testing.T) {
		token, _ := issueTestToken(t, svc, auth.RoleAdmin)

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("non-admin token returns 403", func(t *testing.T) {
		token, _ := issueTestToken(t, svc, "customer")

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "FORBIDDEN", body["code"])
	})
}

func TestGetAuthClaims_Empty(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, GetAuthClaims(c))
	assert.Empty(t, GetAuthUserID(c))
}
