// Package homepage provides the homepage use cases.
package homepage

import (
	"context"

	"github.com/google/uuid"

	"lingua-cms/internal/domain/entity"
	"lingua-cms/internal/repository"
	"lingua-cms/internal/usecase/link"
	"lingua-cms/internal/usecase/localized"
)

// Input represents the fields of a create or update request.
type Input struct {
	LinkID    uuid.UUID
	Thumbnail *string
}

// Service adds homepage create and update to the shared content operations.
type Service struct {
	*localized.Service[*entity.Homepage]
	Links repository.LinkRepository
}

// Create stores a new homepage pointing at an existing link.
func (s *Service) Create(ctx context.Context, in Input) (*entity.Homepage, error) {
	return s.CreateWith(ctx, func(ctx context.Context) (*entity.Homepage, error) {
		h := &entity.Homepage{}
		if err := s.apply(ctx, h, in); err != nil {
			return nil, err
		}
		return h, nil
	})
}

// Update replaces the fields of an existing homepage.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in Input) (*entity.Homepage, error) {
	return s.UpdateWith(ctx, id, func(ctx context.Context, h *entity.Homepage) error {
		return s.apply(ctx, h, in)
	})
}

func (s *Service) apply(ctx context.Context, h *entity.Homepage, in Input) error {
	l, err := link.Require(ctx, s.Links, in.LinkID)
	if err != nil {
		return err
	}
	h.SetLink(l)
	h.Thumbnail = in.Thumbnail
	return h.Validate()
}
