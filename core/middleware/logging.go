package middleware

import (
	"time"

	"slack-meet-bot/core/constants"
	"slack-meet-bot/core/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestLogger writes one structured line per request and sets X-Request-ID.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			reqID := c.Request().Header.Get(echo.HeaderXRequestID)
			if reqID == "" {
				reqID = uuid.NewString()
			}
			c.Set(constants.ContextRequestID, reqID)
			c.Response().Header().Set(echo.HeaderXRequestID, reqID)

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			logger.Info("http_request",
				"rid", reqID,
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
				"latency_ms", time.Since(start).Milliseconds(),
				"client_ip", c.RealIP(),
			)
			return nil
		}
	}
}
