package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/actor"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
)

const secret = "test-secret"

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestLogger(nil), middleware.AuthMiddleware(secret))
	r.GET("/me", func(c *gin.Context) {
		a, _ := middleware.ActorFrom(c)
		c.JSON(http.StatusOK, gin.H{"id": a.ID.String(), "role": a.Role})
	})
	r.GET("/admin", middleware.RequireRole(actor.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func do(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter()
	user := actor.Actor{ID: uuid.New(), Role: actor.RoleUser}

	token, err := middleware.IssueToken(secret, user, time.Hour)
	require.NoError(t, err)

	w := do(r, "/me", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), user.ID.String())
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))

	assert.Equal(t, http.StatusUnauthorized, do(r, "/me", "").Code)

	forged, err := middleware.IssueToken("other-secret", user, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, do(r, "/me", forged).Code)

	expired, err := middleware.IssueToken(secret, user, -time.Minute)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, do(r, "/me", expired).Code)

	badRole, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": "owner",
	}).SignedString([]byte(secret))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, do(r, "/me", badRole).Code)
}

func TestRequireRole(t *testing.T) {
	r := newRouter()

	userToken, err := middleware.IssueToken(secret, actor.Actor{ID: uuid.New(), Role: actor.RoleUser}, time.Hour)
	require.NoError(t, err)
	adminToken, err := middleware.IssueToken(secret, actor.Actor{ID: uuid.New(), Role: actor.RoleAdmin}, time.Hour)
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, do(r, "/admin", userToken).Code)
	assert.Equal(t, http.StatusNoContent, do(r, "/admin", adminToken).Code)
}
