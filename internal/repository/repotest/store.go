// Package repotest provides in-memory repositories for usecase tests.
//
// Stored values are copied on the way in and out so a test observes the same isolation a
// SQL store gives: mutating a loaded aggregate changes nothing until it is written back.
package repotest

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"lingua-cms/internal/domain/entity"
	"lingua-cms/internal/repository"
)

// Tx runs fn directly and counts the transactions.
type Tx struct {
	mu    sync.Mutex
	calls int
}

func (t *Tx) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	t.calls++
	t.mu.Unlock()
	return fn(ctx)
}

// Calls returns how many transactions were opened.
func (t *Tx) Calls() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.calls
}

// Languages is an in-memory LanguageRepository.
type Languages struct {
	mu   sync.Mutex
	byID map[uuid.UUID]entity.Language
	// InUse reports whether content references a language; Delete fails with ErrReferenced when true.
	InUse func(id uuid.UUID) bool
}

func NewLanguages(langs ...*entity.Language) *Languages {
	r := &Languages{byID: map[uuid.UUID]entity.Language{}}
	for _, l := range langs {
		r.byID[l.ID] = *l
	}
	return r
}

func (r *Languages) Get(_ context.Context, id uuid.UUID) (*entity.Language, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (r *Languages) GetByAbbreviation(_ context.Context, abbr string) (*entity.Language, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.byID {
		if l.Abbreviation == abbr {
			return &l, nil
		}
	}
	return nil, nil
}

func (r *Languages) ExistsByAbbreviation(ctx context.Context, abbr string) (bool, error) {
	l, err := r.GetByAbbreviation(ctx, abbr)
	return l != nil, err
}

func (r *Languages) List(_ context.Context) ([]*entity.Language, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Language, 0, len(r.byID))
	for _, l := range r.byID {
		l := l
		out = append(out, &l)
	}
	slices.SortFunc(out, func(a, b *entity.Language) int { return strings.Compare(a.Abbreviation, b.Abbreviation) })
	return out, nil
}

func (r *Languages) Create(_ context.Context, l *entity.Language) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Abbreviation == l.Abbreviation {
			return repository.ErrDuplicate
		}
	}
	r.byID[l.ID] = *l
	return nil
}

func (r *Languages) Delete(_ context.Context, id uuid.UUID) error {
	if r.InUse != nil && r.InUse(id) {
		return repository.ErrReferenced
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}

// Links is an in-memory LinkRepository.
type Links struct {
	mu   sync.Mutex
	byID map[uuid.UUID]entity.Link
	// InUse reports whether an aggregate references a link.
	InUse func(id uuid.UUID) bool
}

func NewLinks(links ...*entity.Link) *Links {
	r := &Links{byID: map[uuid.UUID]entity.Link{}}
	for _, l := range links {
		r.byID[l.ID] = *l
	}
	return r
}

func (r *Links) Get(_ context.Context, id uuid.UUID) (*entity.Link, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (r *Links) List(_ context.Context) ([]*entity.Link, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Link, 0, len(r.byID))
	for _, l := range r.byID {
		l := l
		out = append(out, &l)
	}
	slices.SortFunc(out, func(a, b *entity.Link) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}

func (r *Links) Create(_ context.Context, l *entity.Link) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[l.ID] = *l
	return nil
}

func (r *Links) Delete(_ context.Context, id uuid.UUID) error {
	if r.InUse != nil && r.InUse(id) {
		return repository.ErrReferenced
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}

// Contents is an in-memory ContentRepository enforcing one record per (owner, language).
type Contents struct {
	mu   sync.Mutex
	byID map[uuid.UUID]entity.Content
}

func NewContents() *Contents {
	return &Contents{byID: map[uuid.UUID]entity.Content{}}
}

func (r *Contents) Get(_ context.Context, ownerID, languageID uuid.UUID) (*entity.Content, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.byID {
		if c.OwnerID == ownerID && c.LanguageID == languageID {
			cp := c.Clone()
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *Contents) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*entity.Content, error) {
	return r.filter(func(c entity.Content) bool { return c.OwnerID == ownerID }), nil
}

func (r *Contents) ListAll(_ context.Context) ([]*entity.Content, error) {
	return r.filter(func(entity.Content) bool { return true }), nil
}

func (r *Contents) filter(keep func(entity.Content) bool) []*entity.Content {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.Content{}
	for _, c := range r.byID {
		if keep(c) {
			cp := c.Clone()
			out = append(out, &cp)
		}
	}
	return out
}

func (r *Contents) Exists(ctx context.Context, ownerID, languageID uuid.UUID) (bool, error) {
	c, err := r.Get(ctx, ownerID, languageID)
	return c != nil, err
}

func (r *Contents) Create(_ context.Context, c *entity.Content) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.OwnerID == c.OwnerID && existing.LanguageID == c.LanguageID {
			return repository.ErrDuplicate
		}
	}
	r.byID[c.ID] = c.Clone()
	return nil
}

func (r *Contents) Update(_ context.Context, c *entity.Content) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[c.ID]; ok {
		r.byID[c.ID] = c.Clone()
	}
	return nil
}

func (r *Contents) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}

func (r *Contents) DeleteByOwner(_ context.Context, ownerID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, c := range r.byID {
		if c.OwnerID == ownerID {
			delete(r.byID, id)
		}
	}
	return nil
}

// Len returns the number of stored records.
func (r *Contents) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

// UsesLanguage reports whether any record references the language.
func (r *Contents) UsesLanguage(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.byID {
		if c.LanguageID == id {
			return true
		}
	}
	return false
}
