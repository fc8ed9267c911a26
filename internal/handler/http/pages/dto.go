package pages

import (
	"io"
	"time"

	"github.com/google/uuid"

	"lingua-cms/internal/domain/entity"
	"lingua-cms/internal/handler/http/localized"
	pageUC "lingua-cms/internal/usecase/page"
)

// DTO is the response body of a page.
type DTO struct {
	ID              uuid.UUID              `json:"id"`
	LinkID          uuid.UUID              `json:"linkId"`
	Thumbnail       *string                `json:"thumbnail"`
	CommentsEnabled bool                   `json:"commentsEnabled"`
	Published       bool                   `json:"published"`
	Contents        []localized.ContentDTO `json:"contents"`
	CreatedAt       time.Time              `json:"createdAt"`
	UpdatedAt       time.Time              `json:"updatedAt"`
}

// Request is the body of create and update requests.
type Request struct {
	LinkID          uuid.UUID `json:"linkId"`
	Thumbnail       *string   `json:"thumbnail"`
	CommentsEnabled *bool     `json:"commentsEnabled"`
	Published       *bool     `json:"published"`
}

func decode(body io.Reader) (pageUC.Input, error) {
	var req Request
	if err := localized.DecodeJSON(body, &req); err != nil {
		return pageUC.Input{}, err
	}
	comments, err := localized.RequiredBool("commentsEnabled", req.CommentsEnabled)
	if err != nil {
		return pageUC.Input{}, err
	}
	published, err := localized.RequiredBool("published", req.Published)
	if err != nil {
		return pageUC.Input{}, err
	}
	return pageUC.Input{
		LinkID:          req.LinkID,
		Thumbnail:       req.Thumbnail,
		CommentsEnabled: comments,
		Published:       published,
	}, nil
}

func encode(p *entity.Page, contents []localized.ContentDTO) any {
	return DTO{
		ID:              p.ID,
		LinkID:          p.LinkID(),
		Thumbnail:       p.Thumbnail,
		CommentsEnabled: p.CommentsEnabled,
		Published:       p.Published,
		Contents:        contents,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// Service is the set of page operations the routes call; *pageUC.Service implements it.
type Service interface {
	localized.Service[*entity.Page, pageUC.Input]
	localized.Publisher
}
