package pathutil

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
)

// ErrInvalidID is returned when a path id is not a UUID.
var ErrInvalidID = errors.New("invalid id")

// UUIDParam parses the named path wildcard of r as a UUID.
// The nil UUID is rejected as well.
//
//	// mux.Handle("GET /posts/{id}", h)
//	id, err := pathutil.UUIDParam(r, "id")
func UUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, ErrInvalidID
	}
	return id, nil
}
