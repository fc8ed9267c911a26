package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"
)

// Language is one entry of the language registry.
// Abbreviation is a BCP 47 tag such as "en" or "de-AT" and is unique across the registry.
type Language struct {
	ID              uuid.UUID
	Name            string
	Abbreviation    string
	FontAwesomeIcon string
	MdiIcon         string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Validate checks the required fields and normalizes the abbreviation to lower case.
func (l *Language) Validate() error {
	if err := RequireText("name", l.Name, 255); err != nil {
		return err
	}
	if err := RequireText("abbreviation", l.Abbreviation, 35); err != nil {
		return err
	}
	l.Abbreviation = NormalizeAbbreviation(l.Abbreviation)
	if _, err := language.Parse(l.Abbreviation); err != nil {
		return &ValidationError{Field: "abbreviation", Message: "must be a valid BCP 47 language tag"}
	}

	if err := RequireText("fontAwesomeIcon", l.FontAwesomeIcon, 255); err != nil {
		return err
	}
	return RequireText("mdiIcon", l.MdiIcon, 255)
}

// Tag returns the parsed language tag, or language.Und when the abbreviation does not parse.
func (l Language) Tag() language.Tag {
	tag, err := language.Parse(l.Abbreviation)
	if err != nil {
		return language.Und
	}
	return tag
}

// NormalizeAbbreviation is the canonical stored form of an abbreviation.
func NormalizeAbbreviation(abbr string) string {
	return strings.ToLower(strings.TrimSpace(abbr))
}
