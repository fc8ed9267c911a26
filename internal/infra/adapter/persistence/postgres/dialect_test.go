package postgres_test

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lingua-cms/internal/domain/entity"
	"lingua-cms/internal/infra/adapter/persistence/postgres"
	"lingua-cms/internal/infra/adapter/persistence/sqlstore"
	"lingua-cms/internal/repository"
)

/* ──────────────────────────────── ヘルパ ──────────────────────────────── */

var ts = time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)

func newStore(t *testing.T) (*sqlstore.Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return postgres.New(db), mock
}

func languageRows(langs ...*entity.Language) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "name", "abbreviation", "font_awesome_icon", "mdi_icon", "created_at", "updated_at",
	})
	for _, l := range langs {
		rows.AddRow(l.ID.String(), l.Name, l.Abbreviation, l.FontAwesomeIcon, l.MdiIcon, l.CreatedAt, l.UpdatedAt)
	}
	return rows
}

/* ──────────────────────────────── 1. Languages ──────────────────────────────── */

func TestLanguageRepo_Get(t *testing.T) {
	store, mock := newStore(t)
	want := &entity.Language{
		ID: uuid.New(), Name: "English", Abbreviation: "en",
		FontAwesomeIcon: "fa-flag", MdiIcon: "mdi-flag", CreatedAt: ts, UpdatedAt: ts,
	}

	mock.ExpectQuery(regexp.QuoteMeta(`FROM languages_i18n WHERE id = $1`)).
		WithArgs(want.ID).
		WillReturnRows(languageRows(want))

	got, err := store.Languages().Get(context.Background(), want.ID)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLanguageRepo_Get_NotFound(t *testing.T) {
	store, mock := newStore(t)
	mock.ExpectQuery(`FROM languages_i18n`).WillReturnRows(languageRows())

	got, err := store.Languages().Get(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestLanguageRepo_Create_Duplicate(t *testing.T) {
	store, mock := newStore(t)
	l := &entity.Language{ID: uuid.New(), Name: "English", Abbreviation: "en", CreatedAt: ts, UpdatedAt: ts}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO languages_i18n`)).
		WithArgs(l.ID, "English", "en", "", "", ts, ts).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_languages_abbreviation"})

	err := store.Languages().Create(context.Background(), l)
	assert.ErrorIs(t, err, repository.ErrDuplicate)
	assert.Contains(t, err.Error(), "uq_languages_abbreviation")
}

func TestLanguageRepo_Delete_Referenced(t *testing.T) {
	store, mock := newStore(t)
	id := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM languages_i18n WHERE id = $1`)).
		WithArgs(id).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	err := store.Languages().Delete(context.Background(), id)
	assert.ErrorIs(t, err, repository.ErrReferenced)
}

/* ──────────────────────────────── 2. Aggregates ──────────────────────────────── */

func TestPostRepo_List_JoinsLink(t *testing.T) {
	store, mock := newStore(t)
	postID, linkID := uuid.New(), uuid.New()
	thumb := "cover.png"

	mock.ExpectQuery(regexp.QuoteMeta(`FROM posts x JOIN links l ON l.id = x.link_id ORDER BY x.created_at, x.id`)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "created_at", "updated_at", "thumbnail", "comments_enabled", "published",
			"l_id", "l_name", "l_url", "l_scope", "l_created_at", "l_updated_at",
		}).AddRow(
			postID.String(), ts, ts, thumb, false, true,
			linkID.String(), "Blog", "https://example.com/blog", "internal", ts, ts,
		))

	got, err := store.Repositories().Posts.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)

	p := got[0]
	assert.Equal(t, postID, p.ID)
	assert.Equal(t, &thumb, p.Thumbnail)
	assert.False(t, p.CommentsEnabled)
	assert.True(t, p.Published)
	require.NotNil(t, p.Link())
	assert.Equal(t, linkID, p.LinkID())
	assert.Equal(t, entity.LinkScopeInternal, p.Link().Scope)
	assert.Empty(t, p.Contents())
}

func TestPostRepo_Update(t *testing.T) {
	store, mock := newStore(t)
	p := entity.NewPost()
	p.AssignID(uuid.New())
	p.SetLink(&entity.Link{ID: uuid.New()})
	p.Touch(ts)

	mock.ExpectExec(regexp.QuoteMeta(
		`UPDATE posts SET link_id = $1, thumbnail = $2, comments_enabled = $3, published = $4, updated_at = $5 WHERE id = $6`)).
		WithArgs(p.LinkID(), nil, true, false, ts, p.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Repositories().Posts.Update(context.Background(), p))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserBioRepo_Get_NotFound(t *testing.T) {
	store, mock := newStore(t)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM user_bios x WHERE x.id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	got, found, err := store.Repositories().UserBios.Get(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, got)
}

/* ──────────────────────────────── 3. Contents ──────────────────────────────── */

func TestContentRepo_Exists(t *testing.T) {
	store, mock := newStore(t)
	owner, lang := uuid.New(), uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT EXISTS (SELECT 1 FROM pages_content_i18n WHERE page_id = $1 AND language_id = $2)`)).
		WithArgs(owner, lang).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := store.Repositories().PageContents.Exists(context.Background(), owner, lang)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestContentRepo_Create_Duplicate(t *testing.T) {
	store, mock := newStore(t)
	c := &entity.Content{ID: uuid.New(), OwnerID: uuid.New(), LanguageID: uuid.New(), Title: "t", Body: "b"}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO posts_content_i18n (id, post_id, language_id`)).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_posts_content_language"})

	err := store.Repositories().PostContents.Create(context.Background(), c)
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

/* ──────────────────────────────── 4. Transactions ──────────────────────────────── */

func TestStore_InTx_Commit(t *testing.T) {
	store, mock := newStore(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM links`).WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.InTx(context.Background(), func(ctx context.Context) error {
		// nested calls join the outer transaction
		return store.InTx(ctx, func(ctx context.Context) error {
			return store.Links().Delete(ctx, id)
		})
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_InTx_RollbackOnError(t *testing.T) {
	store, mock := newStore(t)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := store.InTx(context.Background(), func(context.Context) error { return boom })
	assert.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_InTx_RollbackOnPanic(t *testing.T) {
	store, mock := newStore(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.Panics(t, func() {
		_ = store.InTx(context.Background(), func(context.Context) error { panic("bad") })
	})
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_InTx_BeginFails(t *testing.T) {
	store, mock := newStore(t)
	mock.ExpectBegin().WillReturnError(driver.ErrBadConn)

	called := false
	err := store.InTx(context.Background(), func(context.Context) error { called = true; return nil })
	assert.Error(t, err)
	assert.False(t, called)
}

/* ──────────────────────────────── 5. Classify ──────────────────────────────── */

func TestClassify(t *testing.T) {
	other := errors.New("connection reset")
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"unique", &pgconn.PgError{Code: "23505"}, repository.ErrDuplicate},
		{"foreign key", &pgconn.PgError{Code: "23503"}, repository.ErrReferenced},
		{"not null", &pgconn.PgError{Code: "23502"}, nil},
		{"not a pg error", other, other},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := postgres.Classify(tt.in)
			if tt.want == nil {
				assert.Same(t, tt.in, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}
