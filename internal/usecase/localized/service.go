package localized

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	xlanguage "golang.org/x/text/language"

	"lingua-cms/internal/domain/entity"
	"lingua-cms/internal/observability/metrics"
	"lingua-cms/internal/repository"
	"lingua-cms/internal/service/authz"
	"lingua-cms/internal/usecase/language"
	"lingua-cms/internal/usecase/operation"
)

// ContentInput is the localized part of a create or update request.
// LanguageID is ignored on update; the language comes from the path.
type ContentInput struct {
	LanguageID       uuid.UUID
	Title            string
	Body             string
	ShortDescription *string
	Keywords         *string
}

// Service implements the operations shared by every localized aggregate kind.
// Every operation is authorized by Gate before any store access and runs in one transaction.
type Service[A entity.Aggregate] struct {
	Kind       entity.Kind
	Aggregates repository.AggregateRepository[A]
	Contents   repository.ContentRepository
	Languages  repository.LanguageRepository
	Tx         repository.TxRunner
	Gate       authz.Authorizer
	Now        func() time.Time
}

func (s *Service[A]) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *Service[A]) run(ctx context.Context, action authz.Action, fn func(ctx context.Context) error) error {
	return operation.Run(ctx, s.Gate, s.Tx, authz.Operation{Resource: s.Kind.Resource, Action: action}, fn)
}

// find returns the aggregate row without its content.
func (s *Service[A]) find(ctx context.Context, id uuid.UUID) (A, error) {
	agg, found, err := s.Aggregates.Get(ctx, id)
	if err != nil {
		var zero A
		return zero, fmt.Errorf("get %s: %w", s.Kind.Resource, err)
	}
	if !found {
		var zero A
		return zero, aggregateNotFound(s.Kind, id)
	}
	return agg, nil
}

// load returns the aggregate with its content attached.
func (s *Service[A]) load(ctx context.Context, id uuid.UUID) (A, error) {
	agg, err := s.find(ctx, id)
	if err != nil {
		return agg, err
	}
	contents, err := s.Contents.ListByOwner(ctx, id)
	if err != nil {
		return agg, fmt.Errorf("list %s content: %w", s.Kind.Resource, err)
	}
	for _, c := range contents {
		agg.AddContent(c)
	}
	return agg, nil
}

// FindAll returns every aggregate of the kind with its content.
func (s *Service[A]) FindAll(ctx context.Context) ([]A, error) {
	var out []A
	err := s.run(ctx, authz.ActionFindAll, func(ctx context.Context) error {
		aggs, err := s.Aggregates.List(ctx)
		if err != nil {
			return fmt.Errorf("list %s: %w", s.Kind.Resource, err)
		}
		contents, err := s.Contents.ListAll(ctx)
		if err != nil {
			return fmt.Errorf("list %s content: %w", s.Kind.Resource, err)
		}

		byOwner := make(map[uuid.UUID][]*entity.Content, len(aggs))
		for _, c := range contents {
			byOwner[c.OwnerID] = append(byOwner[c.OwnerID], c)
		}
		for _, agg := range aggs {
			for _, c := range byOwner[agg.AggregateID()] {
				agg.AddContent(c)
			}
		}
		out = aggs
		return nil
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []A{}
	}
	return out, nil
}

// FindByID returns the aggregate with its content, or a NotFound error.
func (s *Service[A]) FindByID(ctx context.Context, id uuid.UUID) (A, error) {
	var out A
	err := s.run(ctx, authz.ActionFindByID, func(ctx context.Context) error {
		agg, err := s.load(ctx, id)
		if err != nil {
			return err
		}
		out = agg
		return nil
	})
	return out, err
}

// CreateWith runs build inside the create transaction and persists the result with a
// fresh id and timestamps. build resolves references (links) and validates the fields.
func (s *Service[A]) CreateWith(ctx context.Context, build func(ctx context.Context) (A, error)) (A, error) {
	var out A
	err := s.run(ctx, authz.ActionCreate, func(ctx context.Context) error {
		agg, err := build(ctx)
		if err != nil {
			return err
		}
		agg.AssignID(uuid.New())
		agg.Touch(s.now())

		if err := s.Aggregates.Create(ctx, agg); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return entity.Conflict("%s already exists", s.Kind.Name)
			}
			return fmt.Errorf("create %s: %w", s.Kind.Resource, err)
		}
		out = agg
		return nil
	})
	return out, err
}

// UpdateWith loads the aggregate, lets apply change it and stores the result.
// The update timestamp is refreshed even when apply changes nothing.
func (s *Service[A]) UpdateWith(ctx context.Context, id uuid.UUID, apply func(ctx context.Context, agg A) error) (A, error) {
	var out A
	err := s.run(ctx, authz.ActionUpdate, func(ctx context.Context) error {
		agg, err := s.load(ctx, id)
		if err != nil {
			return err
		}
		if err := apply(ctx, agg); err != nil {
			return err
		}
		agg.Touch(s.now())

		if err := s.Aggregates.Update(ctx, agg); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return entity.Conflict("%s already exists", s.Kind.Name)
			}
			return fmt.Errorf("update %s: %w", s.Kind.Resource, err)
		}
		out = agg
		return nil
	})
	return out, err
}

// SetPublished flips the publication flag. The aggregate type must implement entity.Publishable.
func (s *Service[A]) SetPublished(ctx context.Context, id uuid.UUID, published bool) error {
	return s.run(ctx, authz.ActionUpdatePublished, func(ctx context.Context) error {
		agg, err := s.find(ctx, id)
		if err != nil {
			return err
		}
		p, ok := any(agg).(entity.Publishable)
		if !ok {
			return fmt.Errorf("%s has no publication flag", s.Kind.Name)
		}
		p.SetPublished(published)
		agg.Touch(s.now())

		if err := s.Aggregates.Update(ctx, agg); err != nil {
			return fmt.Errorf("update %s: %w", s.Kind.Resource, err)
		}
		return nil
	})
}

// Delete removes all content of the aggregate and then the aggregate, atomically.
func (s *Service[A]) Delete(ctx context.Context, id uuid.UUID) error {
	return s.run(ctx, authz.ActionDelete, func(ctx context.Context) error {
		if _, err := s.find(ctx, id); err != nil {
			return err
		}
		if err := s.Contents.DeleteByOwner(ctx, id); err != nil {
			return fmt.Errorf("delete %s content: %w", s.Kind.Resource, err)
		}
		if err := s.Aggregates.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete %s: %w", s.Kind.Resource, err)
		}
		return nil
	})
}

// FindAllContent returns the content of one aggregate, possibly empty.
func (s *Service[A]) FindAllContent(ctx context.Context, id uuid.UUID) ([]entity.Content, error) {
	var out []entity.Content
	err := s.run(ctx, authz.ActionFindAllContent, func(ctx context.Context) error {
		agg, err := s.load(ctx, id)
		if err != nil {
			return err
		}
		out = agg.Contents()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FindContent returns the content of the aggregate in one language.
func (s *Service[A]) FindContent(ctx context.Context, id, languageID uuid.UUID) (entity.Content, error) {
	var out entity.Content
	err := s.run(ctx, authz.ActionFindContent, func(ctx context.Context) error {
		c, err := s.requireContent(ctx, id, languageID)
		if err != nil {
			return err
		}
		out = c.Clone()
		return nil
	})
	return out, err
}

// FindPreferredContent picks the content whose language best matches an Accept-Language
// header. Without a usable header the first available language wins.
func (s *Service[A]) FindPreferredContent(ctx context.Context, id uuid.UUID, acceptLanguage string) (entity.Content, error) {
	var out entity.Content
	err := s.run(ctx, authz.ActionFindPreferredContent, func(ctx context.Context) error {
		agg, err := s.load(ctx, id)
		if err != nil {
			return err
		}
		contents := agg.Contents()
		if len(contents) == 0 {
			return noContent(s.Kind, id)
		}

		langs, err := s.Languages.List(ctx)
		if err != nil {
			return fmt.Errorf("list languages: %w", err)
		}
		tags := make(map[uuid.UUID]xlanguage.Tag, len(langs))
		for _, l := range langs {
			tags[l.ID] = l.Tag()
		}

		supported := make([]xlanguage.Tag, len(contents))
		for i, c := range contents {
			supported[i] = tags[c.LanguageID]
		}
		out = contents[bestMatch(supported, acceptLanguage)]
		return nil
	})
	return out, err
}

func bestMatch(supported []xlanguage.Tag, acceptLanguage string) int {
	desired, _, err := xlanguage.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(desired) == 0 {
		return 0
	}
	_, idx, conf := xlanguage.NewMatcher(supported).Match(desired...)
	if conf == xlanguage.No {
		return 0
	}
	return idx
}

// CreateContent adds the content for one language. A second record for the same
// language is a Conflict, whether caught by the pre-check or by the store constraint.
func (s *Service[A]) CreateContent(ctx context.Context, id uuid.UUID, in ContentInput) (entity.Content, error) {
	var out entity.Content
	err := s.run(ctx, authz.ActionCreateContent, func(ctx context.Context) error {
		now := s.now()
		c := &entity.Content{
			ID:               uuid.New(),
			LanguageID:       in.LanguageID,
			Title:            in.Title,
			Body:             in.Body,
			ShortDescription: in.ShortDescription,
			Keywords:         in.Keywords,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if err := c.Validate(); err != nil {
			return err
		}

		agg, err := s.find(ctx, id)
		if err != nil {
			return err
		}
		lang, err := language.Require(ctx, s.Languages, in.LanguageID)
		if err != nil {
			return err
		}

		exists, err := s.Contents.Exists(ctx, id, lang.ID)
		if err != nil {
			return fmt.Errorf("check %s content: %w", s.Kind.Resource, err)
		}
		if exists {
			metrics.RecordContentConflict(s.Kind.Resource, "precheck")
			return contentExists(s.Kind, id, lang.Abbreviation)
		}

		agg.AddContent(c)
		if err := s.Contents.Create(ctx, c); err != nil {
			switch {
			case errors.Is(err, repository.ErrDuplicate):
				metrics.RecordContentConflict(s.Kind.Resource, "constraint")
				return contentExists(s.Kind, id, lang.Abbreviation)
			case errors.Is(err, repository.ErrReferenced):
				return &danglingReference{language: language.NotFound(lang.ID)}
			}
			return fmt.Errorf("create %s content: %w", s.Kind.Resource, err)
		}
		out = c.Clone()
		return nil
	})
	var dangling *danglingReference
	if errors.As(err, &dangling) {
		return out, s.resolveDangling(ctx, id, dangling)
	}
	return out, err
}

// UpdateContent replaces the localized fields of an existing record.
// Id, owner, language and creation time never change.
func (s *Service[A]) UpdateContent(ctx context.Context, id, languageID uuid.UUID, in ContentInput) (entity.Content, error) {
	var out entity.Content
	err := s.run(ctx, authz.ActionUpdateContent, func(ctx context.Context) error {
		draft := entity.Content{
			LanguageID:       languageID,
			Title:            in.Title,
			Body:             in.Body,
			ShortDescription: in.ShortDescription,
			Keywords:         in.Keywords,
		}
		if err := draft.Validate(); err != nil {
			return err
		}

		c, err := s.requireContent(ctx, id, languageID)
		if err != nil {
			return err
		}
		c.Title = draft.Title
		c.Body = draft.Body
		c.ShortDescription = draft.ShortDescription
		c.Keywords = draft.Keywords
		if now := s.now(); now.After(c.UpdatedAt) {
			c.UpdatedAt = now
		}

		if err := s.Contents.Update(ctx, c); err != nil {
			return fmt.Errorf("update %s content: %w", s.Kind.Resource, err)
		}
		out = c.Clone()
		return nil
	})
	return out, err
}

// DeleteContent detaches and deletes the content of one language.
func (s *Service[A]) DeleteContent(ctx context.Context, id, languageID uuid.UUID) error {
	return s.run(ctx, authz.ActionDeleteContent, func(ctx context.Context) error {
		agg, err := s.load(ctx, id)
		if err != nil {
			return err
		}
		if _, err := language.Require(ctx, s.Languages, languageID); err != nil {
			return err
		}
		c, err := s.Contents.Get(ctx, id, languageID)
		if err != nil {
			return fmt.Errorf("get %s content: %w", s.Kind.Resource, err)
		}
		if c == nil {
			return contentNotFound(s.Kind, id, languageID)
		}

		agg.RemoveContent(c)
		if err := s.Contents.Delete(ctx, c.ID); err != nil {
			return fmt.Errorf("delete %s content: %w", s.Kind.Resource, err)
		}
		return nil
	})
}

// requireContent applies the lookup chain shared by the single-content operations:
// aggregate, then language, then the (aggregate, language) record.
func (s *Service[A]) requireContent(ctx context.Context, id, languageID uuid.UUID) (*entity.Content, error) {
	if _, err := s.find(ctx, id); err != nil {
		return nil, err
	}
	if _, err := language.Require(ctx, s.Languages, languageID); err != nil {
		return nil, err
	}
	c, err := s.Contents.Get(ctx, id, languageID)
	if err != nil {
		return nil, fmt.Errorf("get %s content: %w", s.Kind.Resource, err)
	}
	if c == nil {
		return nil, contentNotFound(s.Kind, id, languageID)
	}
	return c, nil
}
