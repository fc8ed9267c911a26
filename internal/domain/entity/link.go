package entity

import (
	"time"

	"github.com/google/uuid"
)

// LinkScope tells whether a link targets a page of this site or an external resource.
type LinkScope string

const (
	LinkScopeInternal LinkScope = "internal"
	LinkScopeExternal LinkScope = "external"
)

// Link is a navigation target referenced by posts, pages and the homepage.
type Link struct {
	ID        uuid.UUID
	Name      string
	URL       string
	Scope     LinkScope
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the link fields.
func (l *Link) Validate() error {
	if err := RequireText("name", l.Name, 255); err != nil {
		return err
	}
	if err := ValidateURL("url", l.URL); err != nil {
		return err
	}
	switch l.Scope {
	case LinkScopeInternal, LinkScopeExternal:
		return nil
	case "":
		return &ValidationError{Field: "scope", Message: "is required"}
	default:
		return &ValidationError{Field: "scope", Message: "must be internal or external"}
	}
}

// Copy returns a detached copy, or nil for a nil link.
func (l *Link) Copy() *Link {
	if l == nil {
		return nil
	}
	cp := *l
	return &cp
}
