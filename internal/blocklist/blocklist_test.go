package blocklist

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/zeid-hub/WhimsyB/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.TokenBlocklist{}))
	return New(db)
}

func TestRevokeAndIsRevoked(t *testing.T) {
	store := newTestStore(t)

	revoked, err := store.IsRevoked("unknown-jti")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke("jti-1", time.Now().Add(time.Hour)))

	revoked, err = store.IsRevoked("jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestRevokePrunesOnlyExpiredEntries(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Revoke("expired-jti", time.Now().Add(-time.Minute)))
	require.NoError(t, store.Revoke("live-jti", time.Now().Add(time.Hour)))

	// The second Revoke pruned the already-expired entry.
	revoked, err := store.IsRevoked("expired-jti")
	require.NoError(t, err)
	assert.False(t, revoked)

	revoked, err = store.IsRevoked("live-jti")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestRevokeToleratesDuplicateJTI(t *testing.T) {
	store := newTestStore(t)

	expiry := time.Now().Add(time.Hour)
	require.NoError(t, store.Revoke("jti-dup", expiry))
	require.NoError(t, store.Revoke("jti-dup", expiry))

	revoked, err := store.IsRevoked("jti-dup")
	require.NoError(t, err)
	assert.True(t, revoked)
}
