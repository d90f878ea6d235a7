package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	token, err := m.GenerateAccessToken("u1", "joan@example.com", RoleAdmin)
	require.NoError(t, err)

	claims, err := m.ParseAndValidate(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, RoleAdmin, claims.Role)

	_, err = NewJWTManager("other", time.Hour).ParseAndValidate(token)
	assert.Error(t, err, "wrong secret")
}

func TestJWTExpired(t *testing.T) {
	m := NewJWTManager("secret", time.Minute)
	m.now = func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }
	token, err := m.GenerateAccessToken("u1", "a@b.c", RoleBarber)
	require.NoError(t, err)

	m.now = func() time.Time { return time.Date(2026, 1, 1, 0, 5, 0, 0, time.UTC) }
	_, err = m.ParseAndValidate(token)
	assert.Error(t, err)
}

func TestPasswordHasher(t *testing.T) {
	h := NewBcryptPasswordHasher(bcrypt.MinCost)
	hash, err := h.Hash("hunter22")
	require.NoError(t, err)
	assert.NoError(t, h.Compare(hash, "hunter22"))
	assert.Error(t, h.Compare(hash, "hunter23"))

	assert.Equal(t, bcrypt.DefaultCost, NewBcryptPasswordHasher(0).cost)
}

func newRouter(m *JWTManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/staff", AuthRequired(m), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": GetUserID(c), "role": GetUserRole(c)})
	})
	r.PUT("/settings", AuthRequired(m), RequireRole(RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func do(r http.Handler, method, path, header string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequired(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	r := newRouter(m)
	token, _ := m.GenerateAccessToken("u1", "a@b.c", RoleBarber)

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/staff", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/staff", "Token "+token).Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/staff", "Bearer nope").Code)

	w := do(r, http.MethodGet, "/staff", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"u1","role":"barber"}`, w.Body.String())
}

func TestRequireRole(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	r := newRouter(m)

	barber, _ := m.GenerateAccessToken("u1", "a@b.c", RoleBarber)
	admin, _ := m.GenerateAccessToken("u2", "d@e.f", RoleAdmin)

	assert.Equal(t, http.StatusForbidden, do(r, http.MethodPut, "/settings", "Bearer "+barber).Code)
	assert.Equal(t, http.StatusNoContent, do(r, http.MethodPut, "/settings", "Bearer "+admin).Code)
}
