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

// Aggregates is an in-memory AggregateRepository. Clone must return a copy without content,
// which is what a row-level store returns.
type Aggregates[A entity.Aggregate] struct {
	mu    sync.Mutex
	byID  map[uuid.UUID]A
	Clone func(A) A
	// Unique, when set, extracts a key that must be unique across aggregates.
	Unique func(A) string
}

func NewAggregates[A entity.Aggregate](clone func(A) A) *Aggregates[A] {
	return &Aggregates[A]{byID: map[uuid.UUID]A{}, Clone: clone}
}

func (r *Aggregates[A]) Get(_ context.Context, id uuid.UUID) (A, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	agg, ok := r.byID[id]
	if !ok {
		var zero A
		return zero, false, nil
	}
	return r.Clone(agg), true, nil
}

func (r *Aggregates[A]) List(_ context.Context) ([]A, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]A, 0, len(r.byID))
	for _, agg := range r.byID {
		out = append(out, r.Clone(agg))
	}
	slices.SortFunc(out, func(a, b A) int { return strings.Compare(a.AggregateID().String(), b.AggregateID().String()) })
	return out, nil
}

func (r *Aggregates[A]) Create(_ context.Context, agg A) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.checkUnique(agg); err != nil {
		return err
	}
	r.byID[agg.AggregateID()] = r.Clone(agg)
	return nil
}

func (r *Aggregates[A]) Update(_ context.Context, agg A) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.checkUnique(agg); err != nil {
		return err
	}
	if _, ok := r.byID[agg.AggregateID()]; ok {
		r.byID[agg.AggregateID()] = r.Clone(agg)
	}
	return nil
}

func (r *Aggregates[A]) checkUnique(agg A) error {
	if r.Unique == nil {
		return nil
	}
	key := r.Unique(agg)
	for id, existing := range r.byID {
		if id != agg.AggregateID() && r.Unique(existing) == key {
			return repository.ErrDuplicate
		}
	}
	return nil
}

func (r *Aggregates[A]) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}

// Len returns the number of stored aggregates.
func (r *Aggregates[A]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

// ClonePost copies the row fields of a post.
func ClonePost(p *entity.Post) *entity.Post {
	cp := &entity.Post{Thumbnail: cloneString(p.Thumbnail), CommentsEnabled: p.CommentsEnabled, Published: p.Published}
	copyRow(&cp.Localized, &p.Localized)
	cp.SetLink(p.Link())
	return cp
}

// ClonePage copies the row fields of a page.
func ClonePage(p *entity.Page) *entity.Page {
	cp := &entity.Page{Thumbnail: cloneString(p.Thumbnail), CommentsEnabled: p.CommentsEnabled, Published: p.Published}
	copyRow(&cp.Localized, &p.Localized)
	cp.SetLink(p.Link())
	return cp
}

// CloneHomepage copies the row fields of a homepage.
func CloneHomepage(h *entity.Homepage) *entity.Homepage {
	cp := &entity.Homepage{Thumbnail: cloneString(h.Thumbnail)}
	copyRow(&cp.Localized, &h.Localized)
	cp.SetLink(h.Link())
	return cp
}

// CloneUserBio copies the row fields of a bio.
func CloneUserBio(b *entity.UserBio) *entity.UserBio {
	cp := &entity.UserBio{UserID: b.UserID}
	copyRow(&cp.Localized, &b.Localized)
	return cp
}

func copyRow(dst, src *entity.Localized) {
	dst.ID = src.ID
	dst.CreatedAt = src.CreatedAt
	dst.UpdatedAt = src.UpdatedAt
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
