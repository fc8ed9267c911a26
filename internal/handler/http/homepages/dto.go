package homepages

import (
	"io"
	"time"

	"github.com/google/uuid"

	"lingua-cms/internal/domain/entity"
	"lingua-cms/internal/handler/http/localized"
	homepageUC "lingua-cms/internal/usecase/homepage"
)

type DTO struct {
	ID        uuid.UUID              `json:"id"`
	LinkID    uuid.UUID              `json:"linkId"`
	Thumbnail *string                `json:"thumbnail"`
	Contents  []localized.ContentDTO `json:"contents"`
	CreatedAt time.Time              `json:"createdAt"`
	UpdatedAt time.Time              `json:"updatedAt"`
}

type Request struct {
	LinkID    uuid.UUID `json:"linkId"`
	Thumbnail *string   `json:"thumbnail"`
}

func decode(body io.Reader) (homepageUC.Input, error) {
	var req Request
	if err := localized.DecodeJSON(body, &req); err != nil {
		return homepageUC.Input{}, err
	}
	return homepageUC.Input{LinkID: req.LinkID, Thumbnail: req.Thumbnail}, nil
}

func encode(h *entity.Homepage, contents []localized.ContentDTO) any {
	return DTO{
		ID:        h.ID,
		LinkID:    h.LinkID(),
		Thumbnail: h.Thumbnail,
		Contents:  contents,
		CreatedAt: h.CreatedAt,
		UpdatedAt: h.UpdatedAt,
	}
}
