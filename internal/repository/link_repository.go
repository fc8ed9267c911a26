package repository

import (
	"context"

	"github.com/google/uuid"

	"lingua-cms/internal/domain/entity"
)

// LinkRepository persists links. Get returns (nil, nil) when the link does not exist.
type LinkRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*entity.Link, error)
	List(ctx context.Context) ([]*entity.Link, error)
	Create(ctx context.Context, link *entity.Link) error
	// Delete returns ErrReferenced when an aggregate still points at the link.
	Delete(ctx context.Context, id uuid.UUID) error
}
