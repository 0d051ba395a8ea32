package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/coinpass/be-content-platform/pkg/logger"
)

const (
	headerSessionToken = "X-Session-Token"
	headerCSRFToken    = "X-CSRF-Token"
)

// SessionValidator is the slice of auth.SessionStore the write guard needs.
type SessionValidator interface {
	ValidateSession(ctx context.Context, userID int64, token string) bool
	ValidateCSRF(ctx context.Context, userID int64, token string) bool
	Resync(ctx context.Context, userID int64) (sessionToken, csrfToken string, err error)
}

// WriteGuard protects mutating admin routes. It runs after JWT, which has
// already proven the primary token. A missing or stale secondary session is
// treated as drift: the guard reissues both tokens in the response headers
// and rejects the request, so the client retries with the fresh pair. The
// CSRF check itself is unconditional; no write goes through without a token
// that matches the stored one.
func WriteGuard(sessions SessionValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, ok := c.Get("user_id").(int64)
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Missing or invalid token"})
			}

			ctx := c.Request().Context()
			log := logger.Get().WithComponent("middleware")

			sessionToken := c.Request().Header.Get(headerSessionToken)
			if !sessions.ValidateSession(ctx, userID, sessionToken) {
				sessionTok, csrfTok, err := sessions.Resync(ctx, userID)
				if err != nil {
					log.Error("Failed to resync secondary session", err, logger.UserID(userID))
					return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Session expired. Please login again."})
				}
				log.Warn("Secondary session drift detected, reissued", logger.UserID(userID))
				c.Response().Header().Set(headerSessionToken, sessionTok)
				c.Response().Header().Set(headerCSRFToken, csrfTok)
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Session reissued. Retry with the new tokens."})
			}

			csrfToken := c.Request().Header.Get(headerCSRFToken)
			if !sessions.ValidateCSRF(ctx, userID, csrfToken) {
				log.Warn("CSRF token mismatch on write request",
					logger.UserID(userID),
					logger.Path(c.Request().URL.Path))
				return c.JSON(http.StatusForbidden, map[string]string{"error": "Invalid CSRF token"})
			}

			return next(c)
		}
	}
}
