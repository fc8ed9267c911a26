package repository

import (
	"context"

	"github.com/google/uuid"

	"lingua-cms/internal/domain/entity"
)

// AggregateRepository persists one kind of localized aggregate.
// Get and List return the aggregate rows only; content records are loaded and written
// through ContentRepository.
type AggregateRepository[A entity.Aggregate] interface {
	// Get reports found=false when no row has the id.
	Get(ctx context.Context, id uuid.UUID) (agg A, found bool, err error)
	List(ctx context.Context) ([]A, error)
	// Create inserts the aggregate row. A uniqueness clash is reported as ErrDuplicate.
	Create(ctx context.Context, agg A) error
	Update(ctx context.Context, agg A) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ContentRepository persists the content records of one aggregate kind.
type ContentRepository interface {
	// Get returns (nil, nil) when the owner has no record for the language.
	Get(ctx context.Context, ownerID, languageID uuid.UUID) (*entity.Content, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Content, error)
	// ListAll returns every record of the kind, used to assemble FindAll in one query.
	ListAll(ctx context.Context) ([]*entity.Content, error)
	Exists(ctx context.Context, ownerID, languageID uuid.UUID) (bool, error)
	// Create returns ErrDuplicate when the (owner, language) pair is taken.
	Create(ctx context.Context, content *entity.Content) error
	Update(ctx context.Context, content *entity.Content) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error
}
