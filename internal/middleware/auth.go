package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/zeid-hub/WhimsyB/internal/blocklist"
	"github.com/zeid-hub/WhimsyB/pkg/jwtutil"
	"github.com/zeid-hub/WhimsyB/pkg/logger"
	"github.com/zeid-hub/WhimsyB/prometheus"
)

// TokenCookieName is the cookie carrying the session token. The refresh
// middleware writes it; auth accepts it as a fallback to the header.
const TokenCookieName = "access_token"

// Context keys set by Auth for downstream handlers
const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
	ContextClaims   = "token_claims"
)

// ExtractToken pulls the bearer token from the Authorization header or,
// failing that, the session cookie. Returns "" when neither is present.
func ExtractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
		return ""
	}
	if cookie, err := c.Cookie(TokenCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// Auth validates the session token and rejects revoked jtis. On success the
// caller's identity is stored in the echo context.
func Auth(tokens *jwtutil.JWT, revoked *blocklist.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)

			tokenString := ExtractToken(c)
			if tokenString == "" {
				log.Error("Missing authorization token")
				prometheus.RecordAuthError("missing_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
			}

			claims, err := tokens.Validate(tokenString)
			if err != nil {
				log.Error("Invalid JWT token", zap.Error(err))
				prometheus.RecordAuthError("invalid_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
			}

			isRevoked, err := revoked.IsRevoked(claims.ID)
			if err != nil {
				log.Error("Failed to check token blocklist", zap.Error(err))
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "authentication failed"})
			}
			if isRevoked {
				log.Warn("Revoked token rejected", zap.String("jti", claims.ID))
				prometheus.RecordAuthError("revoked_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "token has been revoked"})
			}

			c.Set(ContextUserID, claims.UserID)
			c.Set(ContextUsername, claims.Username)
			c.Set(ContextClaims, claims)

			return next(c)
		}
	}
}
