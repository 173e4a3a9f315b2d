package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User represents a storefront account. The password hash is write-only:
// it never appears in JSON and has no read accessor.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"type:varchar(80);uniqueIndex"`
	Email        string    `json:"email" gorm:"type:varchar(120);uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;type:varchar(255)"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SetPassword hashes the plaintext with bcrypt and stores the result
func (u *User) SetPassword(plaintext string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashed)
	return nil
}

// Authenticate reports whether the plaintext matches the stored hash
func (u *User) Authenticate(plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plaintext)) == nil
}
