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

const languageColumns = `id, name, abbreviation, font_awesome_icon, mdi_icon, created_at, updated_at`

// LanguageRepo stores the language registry in languages_i18n.
type LanguageRepo struct{ s *Store }

// Languages returns the language repository.
func (s *Store) Languages() repository.LanguageRepository {
	return &LanguageRepo{s: s}
}

func scanLanguage(row interface{ Scan(...any) error }) (*entity.Language, error) {
	var l entity.Language
	if err := row.Scan(&l.ID, &l.Name, &l.Abbreviation, &l.FontAwesomeIcon, &l.MdiIcon, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LanguageRepo) Get(ctx context.Context, id uuid.UUID) (*entity.Language, error) {
	l, err := scanLanguage(r.s.queryRow(ctx, `SELECT `+languageColumns+` FROM languages_i18n WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return l, nil
}

func (r *LanguageRepo) GetByAbbreviation(ctx context.Context, abbreviation string) (*entity.Language, error) {
	l, err := scanLanguage(r.s.queryRow(ctx, `SELECT `+languageColumns+` FROM languages_i18n WHERE abbreviation = ?`, abbreviation))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetByAbbreviation: %w", err)
	}
	return l, nil
}

func (r *LanguageRepo) ExistsByAbbreviation(ctx context.Context, abbreviation string) (bool, error) {
	var exists bool
	err := r.s.queryRow(ctx, `SELECT EXISTS (SELECT 1 FROM languages_i18n WHERE abbreviation = ?)`, abbreviation).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("ExistsByAbbreviation: %w", err)
	}
	return exists, nil
}

func (r *LanguageRepo) List(ctx context.Context) ([]*entity.Language, error) {
	rows, err := r.s.query(ctx, `SELECT `+languageColumns+` FROM languages_i18n ORDER BY abbreviation`)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]*entity.Language, 0, 8)
	for rows.Next() {
		l, err := scanLanguage(rows)
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

func (r *LanguageRepo) Create(ctx context.Context, l *entity.Language) error {
	_, err := r.s.exec(ctx,
		`INSERT INTO languages_i18n (`+languageColumns+`) VALUES (`+placeholders(7)+`)`,
		l.ID, l.Name, l.Abbreviation, l.FontAwesomeIcon, l.MdiIcon, l.CreatedAt.UTC(), l.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (r *LanguageRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.s.exec(ctx, `DELETE FROM languages_i18n WHERE id = ?`, id); err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	return nil
}
