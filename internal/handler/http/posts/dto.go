package posts

import (
	"io"
	"time"

	"github.com/google/uuid"

	"lingua-cms/internal/domain/entity"
	"lingua-cms/internal/handler/http/localized"
	postUC "lingua-cms/internal/usecase/post"
)

// DTO is the response body of a post.
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

func decode(body io.Reader) (postUC.Input, error) {
	var req Request
	if err := localized.DecodeJSON(body, &req); err != nil {
		return postUC.Input{}, err
	}
	comments, err := localized.RequiredBool("commentsEnabled", req.CommentsEnabled)
	if err != nil {
		return postUC.Input{}, err
	}
	published, err := localized.RequiredBool("published", req.Published)
	if err != nil {
		return postUC.Input{}, err
	}
	return postUC.Input{
		LinkID:          req.LinkID,
		Thumbnail:       req.Thumbnail,
		CommentsEnabled: comments,
		Published:       published,
	}, nil
}

func encode(p *entity.Post, contents []localized.ContentDTO) any {
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

// Service is the set of post operations the routes call; *postUC.Service implements it.
type Service interface {
	localized.Service[*entity.Post, postUC.Input]
	localized.Publisher
}
