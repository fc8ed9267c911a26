package repository

import (
	"context"

	"github.com/google/uuid"

	"lingua-cms/internal/domain/entity"
)

// LanguageRepository persists the language registry.
// Get and GetByAbbreviation return (nil, nil) when nothing matches.
type LanguageRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*entity.Language, error)
	GetByAbbreviation(ctx context.Context, abbreviation string) (*entity.Language, error)
	ExistsByAbbreviation(ctx context.Context, abbreviation string) (bool, error)
	List(ctx context.Context) ([]*entity.Language, error)
	Create(ctx context.Context, language *entity.Language) error
	// Delete returns ErrReferenced when content still uses the language.
	Delete(ctx context.Context, id uuid.UUID) error
}
