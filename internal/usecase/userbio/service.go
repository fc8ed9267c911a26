// Package userbio provides the user biography use cases.
package userbio

import (
	"context"

	"github.com/google/uuid"

	"lingua-cms/internal/domain/entity"
	"lingua-cms/internal/usecase/localized"
)

// Input represents the fields of a create or update request.
type Input struct {
	UserID string
}

// Service adds bio create and update to the shared content operations.
// A user has at most one bio; the store rejects a second one with a Conflict.
type Service struct {
	*localized.Service[*entity.UserBio]
}

// Create stores a new bio for a user.
func (s *Service) Create(ctx context.Context, in Input) (*entity.UserBio, error) {
	return s.CreateWith(ctx, func(ctx context.Context) (*entity.UserBio, error) {
		b := &entity.UserBio{UserID: in.UserID}
		if err := b.Validate(); err != nil {
			return nil, err
		}
		return b, nil
	})
}

// Update reassigns the bio to another user.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in Input) (*entity.UserBio, error) {
	return s.UpdateWith(ctx, id, func(ctx context.Context, b *entity.UserBio) error {
		b.UserID = in.UserID
		return b.Validate()
	})
}
