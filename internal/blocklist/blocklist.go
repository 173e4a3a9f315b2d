package blocklist

import (
	"time"

	"gorm.io/gorm"

	"github.com/zeid-hub/WhimsyB/internal/model"
)

// Store tracks revoked token identifiers. A jti stays revoked for the
// whole life of its token; rows are pruned once the token would have
// expired on its own.
type Store struct {
	db *gorm.DB
}

// New creates a blocklist store backed by the given database handle
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Revoke records the jti and prunes entries whose tokens have expired.
// Duplicate jtis are tolerated; IsRevoked only checks existence.
func (s *Store) Revoke(jti string, expiresAt time.Time) error {
	entry := model.TokenBlocklist{
		JTI:       jti,
		ExpiresAt: expiresAt,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return err
	}

	// Opportunistic prune keeps the table bounded without a sweeper task.
	return s.db.Where("expires_at < ?", time.Now()).
		Delete(&model.TokenBlocklist{}).Error
}

// IsRevoked reports whether the jti has been revoked
func (s *Store) IsRevoked(jti string) (bool, error) {
	var count int64
	err := s.db.Model(&model.TokenBlocklist{}).
		Where("jti = ?", jti).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
