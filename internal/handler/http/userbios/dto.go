package userbios

import (
	"io"
	"time"

	"github.com/google/uuid"

	"lingua-cms/internal/domain/entity"
	"lingua-cms/internal/handler/http/localized"
	userbioUC "lingua-cms/internal/usecase/userbio"
)

type DTO struct {
	ID        uuid.UUID              `json:"id"`
	UserID    string                 `json:"userId"`
	Contents  []localized.ContentDTO `json:"contents"`
	CreatedAt time.Time              `json:"createdAt"`
	UpdatedAt time.Time              `json:"updatedAt"`
}

type Request struct {
	UserID string `json:"userId"`
}

func decode(body io.Reader) (userbioUC.Input, error) {
	var req Request
	if err := localized.DecodeJSON(body, &req); err != nil {
		return userbioUC.Input{}, err
	}
	return userbioUC.Input{UserID: req.UserID}, nil
}

func encode(b *entity.UserBio, contents []localized.ContentDTO) any {
	return DTO{
		ID:        b.ID,
		UserID:    b.UserID,
		Contents:  contents,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
