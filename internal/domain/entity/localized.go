package entity

import (
	"bytes"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Aggregate is the capability set shared by every localized aggregate.
// *Post, *Page, *Homepage and *UserBio satisfy it through the embedded Localized.
type Aggregate interface {
	AggregateID() uuid.UUID
	AssignID(id uuid.UUID)
	AddContent(c *Content)
	RemoveContent(c *Content)
	Contents() []Content
	HasContent(languageID uuid.UUID) bool
	Touch(now time.Time)
}

// Publishable is implemented by aggregates with a publication flag.
type Publishable interface {
	Aggregate
	SetPublished(published bool)
}

// Localized owns the per-language content of an aggregate.
// Content is keyed by language id, so one record per language is a property of the map.
type Localized struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time

	contents map[uuid.UUID]*Content
}

// AggregateID returns the aggregate id (uuid.Nil while transient).
func (l *Localized) AggregateID() uuid.UUID {
	return l.ID
}

// AssignID sets the id and re-points every owned content record at it.
func (l *Localized) AssignID(id uuid.UUID) {
	l.ID = id
	for _, c := range l.contents {
		c.OwnerID = id
	}
}

// AddContent attaches c and sets its back-reference. A nil c is ignored.
// Duplicate languages are not checked here; the service does that before calling.
func (l *Localized) AddContent(c *Content) {
	if c == nil {
		return
	}
	if l.contents == nil {
		l.contents = make(map[uuid.UUID]*Content)
	}
	c.OwnerID = l.ID
	l.contents[c.LanguageID] = c
}

// RemoveContent detaches c and clears its back-reference. A nil c is ignored.
func (l *Localized) RemoveContent(c *Content) {
	if c == nil {
		return
	}
	if cur, ok := l.contents[c.LanguageID]; ok && (cur == c || cur.ID == c.ID) {
		delete(l.contents, c.LanguageID)
	}
	c.OwnerID = uuid.Nil
}

// Contents returns a snapshot of the owned content ordered by language id.
// The result is never nil and shares no memory with the aggregate.
func (l *Localized) Contents() []Content {
	out := make([]Content, 0, len(l.contents))
	for _, c := range l.contents {
		out = append(out, c.Clone())
	}
	slices.SortFunc(out, func(a, b Content) int {
		return bytes.Compare(a.LanguageID[:], b.LanguageID[:])
	})
	return out
}

// HasContent reports whether a record exists for the language.
func (l *Localized) HasContent(languageID uuid.UUID) bool {
	_, ok := l.contents[languageID]
	return ok
}

// ContentFor returns a copy of the record for the language.
func (l *Localized) ContentFor(languageID uuid.UUID) (Content, bool) {
	c, ok := l.contents[languageID]
	if !ok {
		return Content{}, false
	}
	return c.Clone(), true
}

// Touch stamps creation on first call and keeps UpdatedAt monotonic.
func (l *Localized) Touch(now time.Time) {
	now = now.UTC()
	if l.CreatedAt.IsZero() {
		l.CreatedAt = now
	}
	if now.After(l.UpdatedAt) {
		l.UpdatedAt = now
	}
}

// sameIdentity implements id-only equality. Transient instances equal only themselves.
func sameIdentity(a, b *Localized) bool {
	if a == b {
		return true
	}
	if a.ID == uuid.Nil || b.ID == uuid.Nil {
		return false
	}
	return a.ID == b.ID
}

// LinkRef holds the link association of an aggregate.
// Reads and writes go through copies so callers never share the stored value.
type LinkRef struct {
	link *Link
}

// Link returns a copy of the associated link, or nil.
func (r *LinkRef) Link() *Link {
	return r.link.Copy()
}

// SetLink stores a copy of l.
func (r *LinkRef) SetLink(l *Link) {
	r.link = l.Copy()
}

// LinkID returns the associated link id, or uuid.Nil.
func (r *LinkRef) LinkID() uuid.UUID {
	if r.link == nil {
		return uuid.Nil
	}
	return r.link.ID
}

func (r *LinkRef) validateLink() error {
	if r.LinkID() == uuid.Nil {
		return &ValidationError{Field: "linkId", Message: "is required"}
	}
	return nil
}
