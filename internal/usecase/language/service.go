// Package language implements the language registry: the set of languages content
// can be written in.
package language

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

// CreateInput represents the input parameters for registering a language.
type CreateInput struct {
	Name            string
	Abbreviation    string
	FontAwesomeIcon string
	MdiIcon         string
}

// Service provides the language registry use cases.
type Service struct {
	Repo repository.LanguageRepository
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
	return operation.Run(ctx, s.Gate, s.Tx, authz.Operation{Resource: authz.ResourceLanguage, Action: action}, fn)
}

// FindAll lists every registered language ordered by abbreviation.
func (s *Service) FindAll(ctx context.Context) ([]*entity.Language, error) {
	var out []*entity.Language
	err := s.run(ctx, authz.ActionFindAll, func(ctx context.Context) error {
		langs, err := s.Repo.List(ctx)
		if err != nil {
			return fmt.Errorf("list languages: %w", err)
		}
		out = langs
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FindByID returns one language or a NotFound error.
func (s *Service) FindByID(ctx context.Context, id uuid.UUID) (*entity.Language, error) {
	var out *entity.Language
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

// Create registers a language. The abbreviation is stored lower-cased and must be unique.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Language, error) {
	l := &entity.Language{
		Name:            in.Name,
		Abbreviation:    in.Abbreviation,
		FontAwesomeIcon: in.FontAwesomeIcon,
		MdiIcon:         in.MdiIcon,
	}

	err := s.run(ctx, authz.ActionCreate, func(ctx context.Context) error {
		if err := l.Validate(); err != nil {
			return err
		}

		exists, err := s.Repo.ExistsByAbbreviation(ctx, l.Abbreviation)
		if err != nil {
			return fmt.Errorf("check abbreviation: %w", err)
		}
		if exists {
			return duplicateAbbreviation(l.Abbreviation)
		}

		now := s.now()
		l.ID = uuid.New()
		l.CreatedAt = now
		l.UpdatedAt = now
		if err := s.Repo.Create(ctx, l); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return duplicateAbbreviation(l.Abbreviation)
			}
			return fmt.Errorf("create language: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return l, nil
}

// Delete removes a language. It fails with a Conflict while content still uses it.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.run(ctx, authz.ActionDelete, func(ctx context.Context) error {
		if _, err := Require(ctx, s.Repo, id); err != nil {
			return err
		}
		if err := s.Repo.Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrReferenced) {
				return entity.Conflict("Language %s is still referenced by content", id)
			}
			return fmt.Errorf("delete language: %w", err)
		}
		return nil
	})
}

// Require loads a language inside the caller's transaction.
// It returns a NotFound error when the id is unknown.
func Require(ctx context.Context, repo repository.LanguageRepository, id uuid.UUID) (*entity.Language, error) {
	l, err := repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get language: %w", err)
	}
	if l == nil {
		return nil, NotFound(id)
	}
	return l, nil
}

// NotFound is the error for an unknown language id.
func NotFound(id uuid.UUID) error {
	return entity.NotFound("Language not found with id: %s", id)
}

func duplicateAbbreviation(abbr string) error {
	return entity.Conflict("Language already exists with abbreviation: %s", abbr)
}
