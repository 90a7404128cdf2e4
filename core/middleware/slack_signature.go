package middleware

import (
	"bytes"
	"io"
	"net/http"

	"slack-meet-bot/core/controller"
	"slack-meet-bot/core/errors"
	"slack-meet-bot/core/logger"

	"github.com/labstack/echo/v4"
	"github.com/slack-go/slack"
)

const maxSlackBodyBytes = 1 << 20

// VerifySlackSignature rejects requests that are not signed with the app's
// signing secret. The body is restored so handlers can parse it again.
func VerifySlackSignature(signingSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			body, err := io.ReadAll(io.LimitReader(req.Body, maxSlackBodyBytes))
			if err != nil {
				return controller.NewErrorResponse(http.StatusBadRequest, errors.ErrInvalidRequestData, "Failed to read request body")
			}
			req.Body = io.NopCloser(bytes.NewReader(body))

			verifier, err := slack.NewSecretsVerifier(req.Header, signingSecret)
			if err == nil {
				if _, err = verifier.Write(body); err == nil {
					err = verifier.Ensure()
				}
			}
			if err != nil {
				logger.Warn("SlackSignature:Verify:Rejected", "path", req.URL.Path, "error", err)
				return controller.NewErrorResponse(http.StatusUnauthorized, errors.ErrInvalidSignature, "Invalid request signature")
			}

			return next(c)
		}
	}
}
