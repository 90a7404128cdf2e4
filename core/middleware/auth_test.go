package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"slack-meet-bot/core/config"
	"slack-meet-bot/core/constants"
	"slack-meet-bot/core/utils"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jwtSecret = "0123456789abcdef0123456789abcdef"

func protectedEcho(secret string) (*echo.Echo, *string) {
	e := echo.New()
	mw := NewMiddleware(&config.Config{Auth: config.AuthConfig{JWTSecret: secret}})

	var subject string
	e.GET("/private", func(c echo.Context) error {
		if claims, ok := c.Get(constants.ContextTokenData).(*utils.TokenClaims); ok {
			subject = claims.Subject
		}
		return c.NoContent(http.StatusOK)
	}, mw.AuthMiddleware(constants.ScopeMeetingsRead))
	return e, &subject
}

func TestAuthMiddleware(t *testing.T) {
	readToken, err := utils.GenerateToken(jwtSecret, "dashboard", []string{constants.ScopeMeetingsRead}, time.Hour)
	require.NoError(t, err)
	noScopeToken, err := utils.GenerateToken(jwtSecret, "dashboard", nil, time.Hour)
	require.NoError(t, err)
	foreignToken, err := utils.GenerateToken("ffffffffffffffffffffffffffffffff", "dashboard", []string{constants.ScopeMeetingsRead}, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name        string
		header      string
		wantStatus  int
		wantSubject string
	}{
		{"no header", "", http.StatusUnauthorized, ""},
		{"not bearer", "Basic dXNlcjpwYXNz", http.StatusUnauthorized, ""},
		{"empty bearer", "Bearer ", http.StatusUnauthorized, ""},
		{"foreign signature", "Bearer " + foreignToken, http.StatusUnauthorized, ""},
		{"missing scope", "Bearer " + noScopeToken, http.StatusForbidden, ""},
		{"valid", "Bearer " + readToken, http.StatusOK, "dashboard"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, subject := protectedEcho(jwtSecret)

			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantSubject, *subject)
		})
	}
}

func TestAuthMiddleware_NoSecretConfigured(t *testing.T) {
	e, subject := protectedEcho("")

	token, err := utils.GenerateToken("", "dashboard", []string{constants.ScopeMeetingsRead}, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, *subject)
}
