package localized

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"lingua-cms/internal/domain/entity"
	"lingua-cms/internal/infra/render"
	"lingua-cms/internal/usecase/localized"
)

// ContentDTO is the wire form of one content record.
// The owner id is serialized under the kind-specific key, e.g. "postId".
type ContentDTO struct {
	ID               uuid.UUID `json:"id"`
	OwnerID          uuid.UUID `json:"-"`
	LanguageID       uuid.UUID `json:"languageId"`
	Title            string    `json:"title"`
	Content          string    `json:"content"`
	ContentHTML      string    `json:"contentHtml"`
	ShortDescription *string   `json:"shortDescription"`
	Keywords         *string   `json:"keywords"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`

	ownerKey string
}

// MarshalJSON writes the owner key as the first member.
func (c ContentDTO) MarshalJSON() ([]byte, error) {
	type plain ContentDTO
	body, err := json.Marshal(plain(c))
	if err != nil {
		return nil, err
	}
	if c.ownerKey == "" {
		return body, nil
	}
	owner, err := json.Marshal(c.OwnerID)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(body)+len(c.ownerKey)+len(owner)+8)
	out = append(out, `{"`...)
	out = append(out, c.ownerKey...)
	out = append(out, `":`...)
	out = append(out, owner...)
	out = append(out, ',')
	return append(out, body[1:]...), nil
}

// ContentRequest is the body of create and update content requests.
type ContentRequest struct {
	LanguageID       uuid.UUID `json:"languageId"`
	Title            string    `json:"title"`
	Content          string    `json:"content"`
	ShortDescription *string   `json:"shortDescription"`
	Keywords         *string   `json:"keywords"`
}

// PublishedRequest is the body of PATCH {kind}/{id}/published.
type PublishedRequest struct {
	Published *bool `json:"published"`
}

func (r ContentRequest) input() localized.ContentInput {
	return localized.ContentInput{
		LanguageID:       r.LanguageID,
		Title:            r.Title,
		Body:             r.Content,
		ShortDescription: r.ShortDescription,
		Keywords:         r.Keywords,
	}
}

// ContentMapper converts content records to DTOs for one kind.
type ContentMapper struct {
	OwnerKey string
	Renderer *render.Renderer
	Logger   *slog.Logger
}

// DTO maps one record. A body that fails to render yields an empty contentHtml.
func (m ContentMapper) DTO(c entity.Content) ContentDTO {
	dto := ContentDTO{
		ID:               c.ID,
		OwnerID:          c.OwnerID,
		LanguageID:       c.LanguageID,
		Title:            c.Title,
		Content:          c.Body,
		ShortDescription: c.ShortDescription,
		Keywords:         c.Keywords,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
		ownerKey:         m.OwnerKey,
	}
	if m.Renderer != nil {
		html, err := m.Renderer.HTML(c.Body)
		if err != nil {
			m.logger().Warn("content body not rendered",
				slog.String("content_id", c.ID.String()),
				slog.Any("error", err))
		}
		dto.ContentHTML = html
	}
	return dto
}

// DTOs maps a slice and never returns nil.
func (m ContentMapper) DTOs(cs []entity.Content) []ContentDTO {
	out := make([]ContentDTO, 0, len(cs))
	for _, c := range cs {
		out = append(out, m.DTO(c))
	}
	return out
}

func (m ContentMapper) logger() *slog.Logger {
	if m.Logger != nil {
		return m.Logger
	}
	return slog.Default()
}

// RequiredBool reports a missing boolean field as a validation error.
func RequiredBool(field string, v *bool) (bool, error) {
	if v == nil {
		return false, &entity.ValidationError{Field: field, Message: "is required"}
	}
	return *v, nil
}

func invalidBody(err error) error {
	return fmt.Errorf("%w: malformed JSON body: %v", entity.ErrInvalidInput, err)
}
