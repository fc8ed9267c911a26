// Package post provides the blog post use cases.
package post

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
	LinkID          uuid.UUID
	Thumbnail       *string
	CommentsEnabled bool
	Published       bool
}

// Service adds the post-specific operations to the shared content operations.
type Service struct {
	*localized.Service[*entity.Post]
	Links repository.LinkRepository
}

// Create stores a new post pointing at an existing link.
func (s *Service) Create(ctx context.Context, in Input) (*entity.Post, error) {
	return s.CreateWith(ctx, func(ctx context.Context) (*entity.Post, error) {
		p := entity.NewPost()
		if err := s.apply(ctx, p, in); err != nil {
			return nil, err
		}
		return p, nil
	})
}

// Update replaces the fields of an existing post.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in Input) (*entity.Post, error) {
	return s.UpdateWith(ctx, id, func(ctx context.Context, p *entity.Post) error {
		return s.apply(ctx, p, in)
	})
}

// UpdatePublished flips the publication flag only.
func (s *Service) UpdatePublished(ctx context.Context, id uuid.UUID, published bool) error {
	return s.SetPublished(ctx, id, published)
}

func (s *Service) apply(ctx context.Context, p *entity.Post, in Input) error {
	l, err := link.Require(ctx, s.Links, in.LinkID)
	if err != nil {
		return err
	}
	p.SetLink(l)
	p.Thumbnail = in.Thumbnail
	p.CommentsEnabled = in.CommentsEnabled
	p.Published = in.Published
	return p.Validate()
}
