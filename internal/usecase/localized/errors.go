// Package localized implements the operations shared by every aggregate that owns
// per-language content: lookup, deletion with its content, and the content lifecycle
// keyed by (aggregate, language).
package localized

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"lingua-cms/internal/domain/entity"
)

func aggregateNotFound(kind entity.Kind, id uuid.UUID) error {
	return entity.NotFound("%s not found with id: %s", kind.Name, id)
}

func contentNotFound(kind entity.Kind, id, languageID uuid.UUID) error {
	return entity.NotFound("Content not found for %s %s and language %s", kind.Resource, id, languageID)
}

func contentExists(kind entity.Kind, id uuid.UUID, abbreviation string) error {
	return entity.Conflict("Content already exists for %s %s and language %s", kind.Resource, id, abbreviation)
}

func noContent(kind entity.Kind, id uuid.UUID) error {
	return entity.NotFound("No content available for %s %s", kind.Resource, id)
}

// danglingReference is a content insert rejected by a foreign key after both the owner
// and the language were seen in the same transaction. One of them was deleted meanwhile.
// It unwraps to the language NotFound until the owner has been re-checked.
type danglingReference struct {
	language error
}

func (e *danglingReference) Error() string { return e.language.Error() }

func (e *danglingReference) Unwrap() error { return e.language }

// resolveDangling names the row that went missing. It runs after the failed
// transaction ended, since Postgres refuses further statements inside it.
func (s *Service[A]) resolveDangling(ctx context.Context, id uuid.UUID, ref *danglingReference) error {
	if _, err := s.find(ctx, id); errors.Is(err, entity.ErrNotFound) {
		return err
	}
	return ref.language
}
