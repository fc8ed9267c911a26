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

const linkColumns = `id, name, url, scope, created_at, updated_at`

// LinkRepo stores links.
type LinkRepo struct{ s *Store }

// Links returns the link repository.
func (s *Store) Links() repository.LinkRepository {
	return &LinkRepo{s: s}
}

func scanLink(row interface{ Scan(...any) error }) (*entity.Link, error) {
	var l entity.Link
	if err := row.Scan(&l.ID, &l.Name, &l.URL, &l.Scope, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LinkRepo) Get(ctx context.Context, id uuid.UUID) (*entity.Link, error) {
	l, err := scanLink(r.s.queryRow(ctx, `SELECT `+linkColumns+` FROM links WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return l, nil
}

func (r *LinkRepo) List(ctx context.Context) ([]*entity.Link, error) {
	rows, err := r.s.query(ctx, `SELECT `+linkColumns+` FROM links ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]*entity.Link, 0, 16)
	for rows.Next() {
		l, err := scanLink(rows)
		if err != nil {
			return nil, fmt.Errorf("List: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return out, nil
}

func (r *LinkRepo) Create(ctx context.Context, l *entity.Link) error {
	_, err := r.s.exec(ctx,
		`INSERT INTO links (`+linkColumns+`) VALUES (`+placeholders(6)+`)`,
		l.ID, l.Name, l.URL, string(l.Scope), l.CreatedAt.UTC(), l.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (r *LinkRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.s.exec(ctx, `DELETE FROM links WHERE id = ?`, id); err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	return nil
}
