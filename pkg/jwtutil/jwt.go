package jwtutil

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/zeid-hub/WhimsyB/pkg/config"
)

// UserClaims represents the JWT claims for a signed-in user. The jti in
// RegisteredClaims.ID is the revocation key.
type UserClaims struct {
	Username string `json:"username"`
	UserID   uint   `json:"user_id"`
	jwt.RegisteredClaims
}

// JWT issues and verifies session tokens
type JWT struct {
	signingKey    []byte
	expiration    time.Duration
	refreshWindow time.Duration
}

// New creates a JWT utility from configuration
func New(cfg *config.JWTConfig) *JWT {
	return &JWT{
		signingKey:    []byte(cfg.SigningKey),
		expiration:    time.Duration(cfg.ExpirationHours) * time.Hour,
		refreshWindow: time.Duration(cfg.RefreshWindowMinutes) * time.Minute,
	}
}

// Generate creates a signed token for the given identity with a fresh jti
func (j *JWT) Generate(username string, userID uint) (string, error) {
	now := time.Now()
	claims := UserClaims{
		Username: username,
		UserID:   userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.signingKey)
}

// Validate parses the token and returns its claims
func (j *JWT) Validate(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&UserClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return j.signingKey, nil
		},
	)

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*UserClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

// Expiration returns the configured token lifetime
func (j *JWT) Expiration() time.Duration {
	return j.expiration
}

// ShouldRefresh reports whether the token's remaining lifetime is inside
// the sliding-refresh window
func (j *JWT) ShouldRefresh(claims *UserClaims) bool {
	if claims.ExpiresAt == nil {
		return false
	}
	return time.Until(claims.ExpiresAt.Time) < j.refreshWindow
}
