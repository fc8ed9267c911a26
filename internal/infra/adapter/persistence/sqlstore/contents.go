package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"lingua-cms/internal/domain/entity"
	"lingua-cms/internal/repository"
)

// ContentRepo stores the content records of one aggregate kind.
// Every kind has its own table with the owner in a kind-specific column.
type ContentRepo struct {
	s           *Store
	table       string
	ownerColumn string
	columns     string
}

// Contents returns the content repository for table, keyed by ownerColumn.
func (s *Store) Contents(table, ownerColumn string) repository.ContentRepository {
	return &ContentRepo{
		s:           s,
		table:       table,
		ownerColumn: ownerColumn,
		columns: "id, " + ownerColumn +
			", language_id, title, content, short_description, keywords, created_at, updated_at",
	}
}

func scanContent(row interface{ Scan(...any) error }) (*entity.Content, error) {
	var c entity.Content
	err := row.Scan(&c.ID, &c.OwnerID, &c.LanguageID, &c.Title, &c.Body,
		&c.ShortDescription, &c.Keywords, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ContentRepo) selectFrom() string {
	return "SELECT " + r.columns + " FROM " + r.table
}

func (r *ContentRepo) Get(ctx context.Context, ownerID, languageID uuid.UUID) (*entity.Content, error) {
	query := r.selectFrom() + " WHERE " + r.ownerColumn + " = ? AND language_id = ?"
	c, err := scanContent(r.s.queryRow(ctx, query, ownerID, languageID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return c, nil
}

func (r *ContentRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Content, error) {
	return r.list(ctx, r.selectFrom()+" WHERE "+r.ownerColumn+" = ? ORDER BY language_id", ownerID)
}

func (r *ContentRepo) ListAll(ctx context.Context) ([]*entity.Content, error) {
	return r.list(ctx, r.selectFrom()+" ORDER BY "+r.ownerColumn+", language_id")
}

func (r *ContentRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Content, error) {
	rows, err := r.s.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]*entity.Content, 0, 4)
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, fmt.Errorf("List: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return out, nil
}

func (r *ContentRepo) Exists(ctx context.Context, ownerID, languageID uuid.UUID) (bool, error) {
	var exists bool
	query := "SELECT EXISTS (SELECT 1 FROM " + r.table + " WHERE " + r.ownerColumn + " = ? AND language_id = ?)"
	if err := r.s.queryRow(ctx, query, ownerID, languageID).Scan(&exists); err != nil {
		return false, fmt.Errorf("Exists: %w", err)
	}
	return exists, nil
}

func (r *ContentRepo) Create(ctx context.Context, c *entity.Content) error {
	query := "INSERT INTO " + r.table + " (" + r.columns + ") VALUES (" + placeholders(9) + ")"
	_, err := r.s.exec(ctx, query,
		c.ID, c.OwnerID, c.LanguageID, c.Title, c.Body,
		nullable(c.ShortDescription), nullable(c.Keywords), c.CreatedAt.UTC(), c.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

// Update rewrites the localized fields. Owner and language never change.
func (r *ContentRepo) Update(ctx context.Context, c *entity.Content) error {
	query := "UPDATE " + r.table +
		" SET title = ?, content = ?, short_description = ?, keywords = ?, updated_at = ? WHERE id = ?"
	_, err := r.s.exec(ctx, query,
		c.Title, c.Body, nullable(c.ShortDescription), nullable(c.Keywords), c.UpdatedAt.UTC(), c.ID)
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	return nil
}

func (r *ContentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.s.exec(ctx, "DELETE FROM "+r.table+" WHERE id = ?", id); err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	return nil
}

func (r *ContentRepo) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error {
	if _, err := r.s.exec(ctx, "DELETE FROM "+r.table+" WHERE "+r.ownerColumn+" = ?", ownerID); err != nil {
		return fmt.Errorf("DeleteByOwner: %w", err)
	}
	return nil
}
