package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/zeid-hub/WhimsyB/internal/blocklist"
	"github.com/zeid-hub/WhimsyB/pkg/jwtutil"
	"github.com/zeid-hub/WhimsyB/pkg/logger"
)

// TokenRefresh re-issues the session token when its remaining lifetime is
// inside the refresh window. The cookie is written from a Response.Before
// hook, immediately before the handler's first write commits the headers.
// Malformed, expired, and revoked tokens are skipped silently; the next
// authenticated call will surface the error.
func TokenRefresh(tokens *jwtutil.JWT, revoked *blocklist.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Before(func() {
				tokenString := ExtractToken(c)
				if tokenString == "" {
					return
				}

				claims, err := tokens.Validate(tokenString)
				if err != nil || !tokens.ShouldRefresh(claims) {
					return
				}

				// A revoked token must not come back to life as a fresh jti.
				if isRevoked, err := revoked.IsRevoked(claims.ID); err != nil || isRevoked {
					return
				}

				fresh, err := tokens.Generate(claims.Username, claims.UserID)
				if err != nil {
					logger.FromContext(c).Error("Failed to refresh token", zap.Error(err))
					return
				}

				SetTokenCookie(c, fresh, time.Now().Add(tokens.Expiration()))
			})

			return next(c)
		}
	}
}

// SetTokenCookie attaches the session token to the outgoing response
func SetTokenCookie(c echo.Context, token string, expires time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     TokenCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
