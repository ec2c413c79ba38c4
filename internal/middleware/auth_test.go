package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newGuardedRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	auth := NewAuthMiddleware(AuthConfig{Secret: testSecret})
	r := gin.New()
	r.GET("/staff", auth.RequireStaff(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"staff_id": c.GetInt64("staffID")})
	})
	return r
}

func signToken(t *testing.T, secret string, method jwt.SigningMethod) string {
	t.Helper()
	token := jwt.NewWithClaims(method, StaffClaims{
		StaffID: 7,
		Email:   "staff@clinic.local",
		Role:    "staff",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestRequireStaff(t *testing.T) {
	r := newGuardedRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/staff", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, jwt.SigningMethodHS256))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"staff_id":7`)
}

func TestRequireStaffRejectsMissingHeader(t *testing.T) {
	r := newGuardedRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/staff", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireStaffRejectsBadToken(t *testing.T) {
	r := newGuardedRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/staff", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "wrong-secret", jwt.SigningMethodHS256))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireStaffRejectsMalformedHeader(t *testing.T) {
	r := newGuardedRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/staff", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
