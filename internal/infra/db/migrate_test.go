package db

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func migrated(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()
	db, err := Open(ctx, DefaultConfig(DriverSQLite, ":memory:"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(ctx, db, DriverSQLite))
	return db
}

func TestMigrate_SQLite(t *testing.T) {
	db := migrated(t)

	version, err := Version(context.Background(), db, DriverSQLite)
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)

	for _, table := range []string{
		"languages_i18n", "links", "posts", "pages", "homepages", "user_bios",
		"posts_content_i18n", "pages_content_i18n", "homepages_content_i18n", "user_bios_content_i18n",
	} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		assert.NoError(t, err, table)
	}

	// running again is a no-op
	require.NoError(t, Migrate(context.Background(), db, DriverSQLite))
}

func TestMigrate_ConstraintsHold(t *testing.T) {
	db := migrated(t)
	now := time.Now().UTC()
	lang, link, post := uuid.New(), uuid.New(), uuid.New()

	_, err := db.Exec(`INSERT INTO languages_i18n VALUES (?, 'English', 'en', 'fa', 'mdi', ?, ?)`, lang, now, now)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO languages_i18n VALUES (?, 'English', 'en', 'fa', 'mdi', ?, ?)`, uuid.New(), now, now)
	assert.ErrorContains(t, err, "UNIQUE")

	_, err = db.Exec(`INSERT INTO links VALUES (?, 'Blog', 'https://example.com', 'internal', ?, ?)`, link, now, now)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO posts VALUES (?, ?, NULL, 1, 0, ?, ?)`, post, link, now, now)
	require.NoError(t, err)

	insertContent := `INSERT INTO posts_content_i18n (id, post_id, language_id, title, content, created_at, updated_at) VALUES (?, ?, ?, 'Welcome', 'body', ?, ?)`
	_, err = db.Exec(insertContent, uuid.New(), post, lang, now, now)
	require.NoError(t, err)
	_, err = db.Exec(insertContent, uuid.New(), post, lang, now, now)
	assert.ErrorContains(t, err, "UNIQUE", "one record per language")
	_, err = db.Exec(insertContent, uuid.New(), post, uuid.New(), now, now)
	assert.ErrorContains(t, err, "FOREIGN KEY", "unknown language")

	_, err = db.Exec(`DELETE FROM languages_i18n WHERE id = ?`, lang)
	assert.ErrorContains(t, err, "FOREIGN KEY", "language still used")
	_, err = db.Exec(`DELETE FROM links WHERE id = ?`, link)
	assert.ErrorContains(t, err, "FOREIGN KEY", "link still used")

	var created time.Time
	require.NoError(t, db.QueryRow(`SELECT created_at FROM posts WHERE id = ?`, post).Scan(&created))
	assert.True(t, created.Equal(now.Truncate(time.Nanosecond)))
}

func TestRollback_SQLite(t *testing.T) {
	db := migrated(t)
	ctx := context.Background()

	require.NoError(t, Rollback(ctx, db, DriverSQLite))

	version, err := Version(ctx, db, DriverSQLite)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
}

func TestMigrate_UnknownDriver(t *testing.T) {
	assert.Error(t, Migrate(context.Background(), nil, "oracle"))
}
