package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-wellness-engine/internal/core/services"
)

// stubValidator accepts the tokens it knows about.
type stubValidator map[string]string

func (s stubValidator) ValidateToken(token string) (string, error) {
	if userID, ok := s[token]; ok {
		return userID, nil
	}
	return "", errors.New("unknown token")
}

func newAuthRouter(validator TokenValidator) *gin.Engine {
	router := gin.New()
	router.Use(AuthMiddleware(validator))
	router.GET("/scores", func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok {
			c.String(http.StatusInternalServerError, "no user in context")
			return
		}
		c.String(http.StatusOK, userID)
	})
	return router
}

func serveWithHeader(router *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/scores", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := newAuthRouter(stubValidator{"good-token": "user-7", "blank-user": ""})

	tests := []struct {
		name     string
		header   string
		wantCode int
		wantBody string
	}{
		{"Success: Known token resolves the user", "Bearer good-token", http.StatusOK, "user-7"},
		{"Success: Scheme is case insensitive", "bearer good-token", http.StatusOK, "user-7"},
		{"Fail: Missing header", "", http.StatusUnauthorized, "authorization header required"},
		{"Fail: Scheme only", "Bearer", http.StatusUnauthorized, "invalid authorization header format"},
		{"Fail: Wrong scheme", "Token good-token", http.StatusUnauthorized, "invalid authorization header format"},
		{"Fail: Extra fields", "Bearer good-token extra", http.StatusUnauthorized, "invalid authorization header format"},
		{"Fail: Unknown token", "Bearer forged", http.StatusUnauthorized, "invalid or expired token"},
		{"Edge Case: Token for an empty user id", "Bearer blank-user", http.StatusInternalServerError, "no user in context"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serveWithHeader(router, tt.header)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestAuthMiddleware_JWT(t *testing.T) {
	gin.SetMode(gin.TestMode)

	const secret = "middleware-secret"
	tokens := services.NewTokenService(secret, "kanso-auth", time.Hour)
	router := newAuthRouter(tokens)

	t.Run("Success: Signed token", func(t *testing.T) {
		token, err := tokens.GenerateToken("user-jwt")
		require.NoError(t, err)

		w := serveWithHeader(router, "Bearer "+token)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "user-jwt", w.Body.String())
	})

	t.Run("Security: Token signed with another secret", func(t *testing.T) {
		forged, err := services.NewTokenService("other-secret", "kanso-auth", time.Hour).GenerateToken("user-jwt")
		require.NoError(t, err)

		w := serveWithHeader(router, "Bearer "+forged)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Security: Token from another issuer", func(t *testing.T) {
		foreign, err := services.NewTokenService(secret, "someone-else", time.Hour).GenerateToken("user-jwt")
		require.NoError(t, err)

		w := serveWithHeader(router, "Bearer "+foreign)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Fail: Expired token", func(t *testing.T) {
		expired, err := services.NewTokenService(secret, "kanso-auth", -time.Second).GenerateToken("user-jwt")
		require.NoError(t, err)

		w := serveWithHeader(router, "Bearer "+expired)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
