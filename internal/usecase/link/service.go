// Package link manages the links that posts, pages and the homepage point at.
package link

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"lingua-cms/internal/domain/entity"
	"lingua-cms/internal/repository"
	"lingua-cms/internal/service/authz"
	"lingua-cms/internal/usecase/operation"
)

// CreateInput represents the input parameters for creating a link.
type CreateInput struct {
	Name  string
	URL   string
	Scope entity.LinkScope
}

// Service provides link use cases.
type Service struct {
	Repo repository.LinkRepository
	Tx   repository.TxRunner
	Gate authz.Authorizer
	Now  func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *Service) run(ctx context.Context, action authz.Action, fn func(ctx context.Context) error) error {
	return operation.Run(ctx, s.Gate, s.Tx, authz.Operation{Resource: authz.ResourceLink, Action: action}, fn)
}

// FindAll lists every link.
func (s *Service) FindAll(ctx context.Context) ([]*entity.Link, error) {
	var out []*entity.Link
	err := s.run(ctx, authz.ActionFindAll, func(ctx context.Context) error {
		links, err := s.Repo.List(ctx)
		if err != nil {
			return fmt.Errorf("list links: %w", err)
		}
		out = links
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FindByID returns one link or a NotFound error.
func (s *Service) FindByID(ctx context.Context, id uuid.UUID) (*entity.Link, error) {
	var out *entity.Link
	err := s.run(ctx, authz.ActionFindByID, func(ctx context.Context) error {
		l, err := Require(ctx, s.Repo, id)
		if err != nil {
			return err
		}
		out = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Create validates and stores a link.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Link, error) {
	l := &entity.Link{Name: in.Name, URL: in.URL, Scope: in.Scope}

	err := s.run(ctx, authz.ActionCreate, func(ctx context.Context) error {
		if err := l.Validate(); err != nil {
			return err
		}
		now := s.now()
		l.ID = uuid.New()
		l.CreatedAt = now
		l.UpdatedAt = now
		if err := s.Repo.Create(ctx, l); err != nil {
			return fmt.Errorf("create link: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return l, nil
}

// Delete removes a link. It fails with a Conflict while an aggregate still points at it.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.run(ctx, authz.ActionDelete, func(ctx context.Context) error {
		if _, err := Require(ctx, s.Repo, id); err != nil {
			return err
		}
		if err := s.Repo.Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrReferenced) {
				return entity.Conflict("Link %s is still referenced", id)
			}
			return fmt.Errorf("delete link: %w", err)
		}
		return nil
	})
}

// Require loads a link inside the caller's transaction.
// It returns a NotFound error when the id is unknown.
func Require(ctx context.Context, repo repository.LinkRepository, id uuid.UUID) (*entity.Link, error) {
	if id == uuid.Nil {
		return nil, &entity.ValidationError{Field: "linkId", Message: "is required"}
	}
	l, err := repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get link: %w", err)
	}
	if l == nil {
		return nil, entity.NotFound("Link not found with id: %s", id)
	}
	return l, nil
}
