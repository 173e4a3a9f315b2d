package jwtutil

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeid-hub/WhimsyB/pkg/config"
)

func newTestJWT() *JWT {
	return New(&config.JWTConfig{
		SigningKey:           "test-signing-key",
		ExpirationHours:      1,
		RefreshWindowMinutes: 30,
	})
}

func TestGenerateAndValidate(t *testing.T) {
	tokens := newTestJWT()

	signed, err := tokens.Generate("alice", 7)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := tokens.Validate(signed)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.EqualValues(t, 7, claims.UserID)
	assert.NotEmpty(t, claims.ID)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestGenerateAssignsUniqueJTI(t *testing.T) {
	tokens := newTestJWT()

	first, err := tokens.Generate("alice", 7)
	require.NoError(t, err)
	second, err := tokens.Generate("alice", 7)
	require.NoError(t, err)

	firstClaims, err := tokens.Validate(first)
	require.NoError(t, err)
	secondClaims, err := tokens.Validate(second)
	require.NoError(t, err)

	assert.NotEqual(t, firstClaims.ID, secondClaims.ID)
}

func TestValidateRejectsWrongKey(t *testing.T) {
	tokens := newTestJWT()
	other := New(&config.JWTConfig{
		SigningKey:           "a-different-key",
		ExpirationHours:      1,
		RefreshWindowMinutes: 30,
	})

	signed, err := other.Generate("alice", 7)
	require.NoError(t, err)

	_, err = tokens.Validate(signed)
	assert.Error(t, err)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	tokens := newTestJWT()

	claims := UserClaims{
		Username: "alice",
		UserID:   7,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "expired-jti",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tokens.signingKey)
	require.NoError(t, err)

	_, err = tokens.Validate(signed)
	assert.Error(t, err)
}

func TestValidateRejectsUnsignedToken(t *testing.T) {
	tokens := newTestJWT()

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = tokens.Validate(signed)
	assert.Error(t, err)
}

func TestShouldRefresh(t *testing.T) {
	tokens := newTestJWT()

	inside := &UserClaims{RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(10 * time.Minute)),
	}}
	assert.True(t, tokens.ShouldRefresh(inside))

	outside := &UserClaims{RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(50 * time.Minute)),
	}}
	assert.False(t, tokens.ShouldRefresh(outside))

	noExpiry := &UserClaims{}
	assert.False(t, tokens.ShouldRefresh(noExpiry))
}
