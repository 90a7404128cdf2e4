package middleware

import (
	"net/http"
	"strings"

	"slack-meet-bot/core/config"
	"slack-meet-bot/core/constants"
	"slack-meet-bot/core/controller"
	"slack-meet-bot/core/errors"
	"slack-meet-bot/core/logger"
	"slack-meet-bot/core/utils"

	"github.com/labstack/echo/v4"
)

type Middleware struct {
	jwtSecret string
}

func NewMiddleware(cfg *config.Config) *Middleware {
	return &Middleware{jwtSecret: cfg.Auth.JWTSecret}
}

// AuthMiddleware requires a valid bearer token carrying scope and stores its
// claims under constants.ContextTokenData.
func (m *Middleware) AuthMiddleware(scope string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m.jwtSecret == "" {
				return controller.NewErrorResponse(http.StatusUnauthorized, errors.ErrUnauthorized, "API authentication is not configured")
			}

			header := c.Request().Header.Get(echo.HeaderAuthorization)
			tokenStr, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(tokenStr) == "" {
				return controller.NewErrorResponse(http.StatusUnauthorized, errors.ErrUnauthorized, "Missing bearer token")
			}

			claims, err := utils.ParseToken(m.jwtSecret, strings.TrimSpace(tokenStr))
			if err != nil {
				logger.Warn("AuthMiddleware:ParseToken:Rejected", "path", c.Request().URL.Path, "error", err)
				return controller.NewErrorResponse(http.StatusUnauthorized, errors.ErrUnauthorized, "Invalid or expired token")
			}
			if scope != "" && !claims.HasScope(scope) {
				return controller.NewErrorResponse(http.StatusForbidden, errors.ErrForbidden, "Token lacks scope "+scope)
			}

			c.Set(constants.ContextTokenData, claims)
			return next(c)
		}
	}
}
