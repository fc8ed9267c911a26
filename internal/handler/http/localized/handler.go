// Package localized serves the HTTP routes shared by every localized aggregate kind.
// Each kind package supplies its request decoding and response shape; routing, content
// operations and error mapping live here.
package localized

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"

	"lingua-cms/internal/domain/entity"
	"lingua-cms/internal/handler/http/pathutil"
	"lingua-cms/internal/handler/http/respond"
	"lingua-cms/internal/usecase/localized"
)

// Service is what the routes need from a kind's usecase service.
// *post.Service, *page.Service, *homepage.Service and *userbio.Service satisfy it.
type Service[A entity.Aggregate, In any] interface {
	FindAll(ctx context.Context) ([]A, error)
	FindByID(ctx context.Context, id uuid.UUID) (A, error)
	Create(ctx context.Context, in In) (A, error)
	Update(ctx context.Context, id uuid.UUID, in In) (A, error)
	Delete(ctx context.Context, id uuid.UUID) error

	FindAllContent(ctx context.Context, id uuid.UUID) ([]entity.Content, error)
	FindContent(ctx context.Context, id, languageID uuid.UUID) (entity.Content, error)
	FindPreferredContent(ctx context.Context, id uuid.UUID, acceptLanguage string) (entity.Content, error)
	CreateContent(ctx context.Context, id uuid.UUID, in localized.ContentInput) (entity.Content, error)
	UpdateContent(ctx context.Context, id, languageID uuid.UUID, in localized.ContentInput) (entity.Content, error)
	DeleteContent(ctx context.Context, id, languageID uuid.UUID) error
}

// Publisher is implemented by kinds with a publication flag.
type Publisher interface {
	UpdatePublished(ctx context.Context, id uuid.UUID, published bool) error
}

// Resource implements the handlers of one kind under Path, e.g. "/posts".
// Kind packages mount its methods on their own documented routes.
type Resource[A entity.Aggregate, In any] struct {
	Path    string
	Service Service[A, In]
	// Decode turns the request body into the usecase input.
	Decode func(body io.Reader) (In, error)
	// Encode builds the response DTO; contents are already mapped.
	Encode  func(agg A, contents []ContentDTO) any
	Content ContentMapper
	// Publisher backs SetPublished; nil for kinds without a publication flag.
	Publisher Publisher
}

func (r *Resource[A, In]) dto(agg A) any {
	return r.Encode(agg, r.Content.DTOs(agg.Contents()))
}

func (r *Resource[A, In]) List(w http.ResponseWriter, req *http.Request) {
	list, err := r.Service.FindAll(req.Context())
	if err != nil {
		respond.Err(w, err)
		return
	}
	out := make([]any, 0, len(list))
	for _, agg := range list {
		out = append(out, r.dto(agg))
	}
	respond.JSON(w, http.StatusOK, out)
}

func (r *Resource[A, In]) Get(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(w, req, "id")
	if !ok {
		return
	}
	agg, err := r.Service.FindByID(req.Context(), id)
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, r.dto(agg))
}

func (r *Resource[A, In]) Create(w http.ResponseWriter, req *http.Request) {
	in, err := r.Decode(req.Body)
	if err != nil {
		respond.Err(w, err)
		return
	}
	agg, err := r.Service.Create(req.Context(), in)
	if err != nil {
		respond.Err(w, err)
		return
	}
	w.Header().Set("Location", r.Path+"/"+agg.AggregateID().String())
	respond.JSON(w, http.StatusCreated, r.dto(agg))
}

func (r *Resource[A, In]) Update(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(w, req, "id")
	if !ok {
		return
	}
	in, err := r.Decode(req.Body)
	if err != nil {
		respond.Err(w, err)
		return
	}
	agg, err := r.Service.Update(req.Context(), id, in)
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, r.dto(agg))
}

func (r *Resource[A, In]) Delete(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(w, req, "id")
	if !ok {
		return
	}
	if err := r.Service.Delete(req.Context(), id); err != nil {
		respond.Err(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetPublished must only be mounted when Publisher is set.
func (r *Resource[A, In]) SetPublished(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(w, req, "id")
	if !ok {
		return
	}
	var body PublishedRequest
	if err := DecodeJSON(req.Body, &body); err != nil {
		respond.Err(w, err)
		return
	}
	published, err := RequiredBool("published", body.Published)
	if err != nil {
		respond.Err(w, err)
		return
	}
	if err := r.Publisher.UpdatePublished(req.Context(), id, published); err != nil {
		respond.Err(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (r *Resource[A, In]) ListContent(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(w, req, "id")
	if !ok {
		return
	}
	contents, err := r.Service.FindAllContent(req.Context(), id)
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, r.Content.DTOs(contents))
}

func (r *Resource[A, In]) GetContent(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(w, req, "id")
	if !ok {
		return
	}
	languageID, ok := pathID(w, req, "languageId")
	if !ok {
		return
	}
	c, err := r.Service.FindContent(req.Context(), id, languageID)
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, r.Content.DTO(c))
}

func (r *Resource[A, In]) GetPreferredContent(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(w, req, "id")
	if !ok {
		return
	}
	c, err := r.Service.FindPreferredContent(req.Context(), id, req.Header.Get("Accept-Language"))
	if err != nil {
		respond.Err(w, err)
		return
	}
	w.Header().Set("Vary", "Accept-Language")
	respond.JSON(w, http.StatusOK, r.Content.DTO(c))
}

func (r *Resource[A, In]) CreateContent(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(w, req, "id")
	if !ok {
		return
	}
	var body ContentRequest
	if err := DecodeJSON(req.Body, &body); err != nil {
		respond.Err(w, err)
		return
	}
	c, err := r.Service.CreateContent(req.Context(), id, body.input())
	if err != nil {
		respond.Err(w, err)
		return
	}
	w.Header().Set("Location", r.Path+"/"+id.String()+"/content/"+c.LanguageID.String())
	respond.JSON(w, http.StatusCreated, r.Content.DTO(c))
}

// UpdateContent takes the language from the path; a languageId in the body is ignored.
func (r *Resource[A, In]) UpdateContent(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(w, req, "id")
	if !ok {
		return
	}
	languageID, ok := pathID(w, req, "languageId")
	if !ok {
		return
	}
	var body ContentRequest
	if err := DecodeJSON(req.Body, &body); err != nil {
		respond.Err(w, err)
		return
	}
	c, err := r.Service.UpdateContent(req.Context(), id, languageID, body.input())
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, r.Content.DTO(c))
}

func (r *Resource[A, In]) DeleteContent(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(w, req, "id")
	if !ok {
		return
	}
	languageID, ok := pathID(w, req, "languageId")
	if !ok {
		return
	}
	if err := r.Service.DeleteContent(req.Context(), id, languageID); err != nil {
		respond.Err(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// pathID parses a UUID wildcard and answers 400 when it is malformed.
func pathID(w http.ResponseWriter, req *http.Request, name string) (uuid.UUID, bool) {
	id, err := pathutil.UUIDParam(req, name)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, &entity.ValidationError{Field: name, Message: "must be a UUID"})
		return uuid.Nil, false
	}
	return id, true
}

// DecodeJSON reads one JSON value from body into v.
// Malformed JSON and oversized bodies are reported as invalid input.
func DecodeJSON(body io.Reader, v any) error {
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return &entity.ValidationError{Field: "body", Message: "is too large"}
		}
		return invalidBody(err)
	}
	return nil
}
