package entity

import (
	"time"

	"github.com/google/uuid"
)

// Content is the localized body of an aggregate in exactly one language.
// OwnerID is a non-owning back-reference to the aggregate, used for lookups only.
type Content struct {
	ID               uuid.UUID
	OwnerID          uuid.UUID
	LanguageID       uuid.UUID
	Title            string
	Body             string
	ShortDescription *string
	Keywords         *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Validate checks the localized fields. Owner and language are checked by the service.
func (c *Content) Validate() error {
	if c.LanguageID == uuid.Nil {
		return &ValidationError{Field: "languageId", Message: "is required"}
	}
	if err := RequireText("title", c.Title, 255); err != nil {
		return err
	}
	if err := RequireText("content", c.Body, 0); err != nil {
		return err
	}
	if err := OptionalMaxLength("shortDescription", c.ShortDescription, 1024); err != nil {
		return err
	}
	return OptionalMaxLength("keywords", c.Keywords, 1024)
}

// Clone returns a deep copy that shares no memory with c.
func (c Content) Clone() Content {
	c.ShortDescription = cloneString(c.ShortDescription)
	c.Keywords = cloneString(c.Keywords)
	return c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
