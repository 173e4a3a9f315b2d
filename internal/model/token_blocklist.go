package model

import "time"

// TokenBlocklist records a revoked token identifier. ExpiresAt is the
// original token expiry; rows past it are pruned since the signature check
// rejects the token anyway.
type TokenBlocklist struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	JTI       string    `json:"jti" gorm:"type:varchar(64);index;not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
}
