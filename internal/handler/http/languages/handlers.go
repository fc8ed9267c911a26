// Package languages exposes the language registry over HTTP.
package languages

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"lingua-cms/internal/domain/entity"
	"lingua-cms/internal/handler/http/localized"
	"lingua-cms/internal/handler/http/pathutil"
	"lingua-cms/internal/handler/http/respond"
	langUC "lingua-cms/internal/usecase/language"
)

// Service is satisfied by *langUC.Service.
type Service interface {
	FindAll(ctx context.Context) ([]*entity.Language, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Language, error)
	Create(ctx context.Context, in langUC.CreateInput) (*entity.Language, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type DTO struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Abbreviation    string    `json:"abbreviation"`
	FontAwesomeIcon string    `json:"fontAwesomeIcon"`
	MdiIcon         string    `json:"mdiIcon"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Request is the body of POST /languages.
type Request struct {
	Name            string `json:"name"`
	Abbreviation    string `json:"abbreviation"`
	FontAwesomeIcon string `json:"fontAwesomeIcon"`
	MdiIcon         string `json:"mdiIcon"`
}

func toDTO(l *entity.Language) DTO {
	return DTO{
		ID:              l.ID,
		Name:            l.Name,
		Abbreviation:    l.Abbreviation,
		FontAwesomeIcon: l.FontAwesomeIcon,
		MdiIcon:         l.MdiIcon,
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
}

// Register mounts /languages on mux.
func Register(mux *http.ServeMux, svc Service) {
	mux.Handle("GET /languages", ListHandler{svc})
	mux.Handle("POST /languages", CreateHandler{svc})
	mux.Handle("GET /languages/{id}", GetHandler{svc})
	mux.Handle("DELETE /languages/{id}", DeleteHandler{svc})
}

type ListHandler struct{ Svc Service }

// ServeHTTP 言語一覧取得
// @Summary      言語一覧取得
// @Description  登録済みの言語をすべて返します
// @Tags         languages
// @Security     BearerAuth
// @Produce      json
// @Success      200 {array} languages.DTO
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden - missing permission"
// @Failure      500 {object} respond.ErrorBody "Server error"
// @Router       /languages [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	list, err := h.Svc.FindAll(r.Context())
	if err != nil {
		respond.Err(w, err)
		return
	}
	out := make([]DTO, 0, len(list))
	for _, l := range list {
		out = append(out, toDTO(l))
	}
	respond.JSON(w, http.StatusOK, out)
}

type GetHandler struct{ Svc Service }

// ServeHTTP 言語取得
// @Summary      言語取得
// @Description  IDで言語を取得します
// @Tags         languages
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "言語ID"
// @Success      200 {object} languages.DTO
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid input"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden - missing permission"
// @Failure      404 {object} respond.ErrorBody "Not found"
// @Router       /languages/{id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.UUIDParam(r, "id")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, &entity.ValidationError{Field: "id", Message: "must be a UUID"})
		return
	}
	l, err := h.Svc.FindByID(r.Context(), id)
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(l))
}

type CreateHandler struct{ Svc Service }

// ServeHTTP 言語作成
// @Summary      言語作成
// @Description  新しい言語を登録します
// @Tags         languages
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        language body languages.Request true "登録する言語"
// @Success      201 {object} languages.DTO
// @Header       201 {string} Location "作成したリソースのパス"
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid input"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden - missing permission"
// @Failure      409 {object} respond.ErrorBody "Conflict - duplicate or still referenced"
// @Router       /languages [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := localized.DecodeJSON(r.Body, &req); err != nil {
		respond.Err(w, err)
		return
	}
	l, err := h.Svc.Create(r.Context(), langUC.CreateInput{
		Name:            req.Name,
		Abbreviation:    req.Abbreviation,
		FontAwesomeIcon: req.FontAwesomeIcon,
		MdiIcon:         req.MdiIcon,
	})
	if err != nil {
		respond.Err(w, err)
		return
	}
	w.Header().Set("Location", "/languages/"+l.ID.String())
	respond.JSON(w, http.StatusCreated, toDTO(l))
}

// DeleteHandler answers 409 while content in the language still exists.
type DeleteHandler struct{ Svc Service }

// ServeHTTP 言語削除
// @Summary      言語削除
// @Description  言語を削除します。コンテンツが残っている間は 409 を返します
// @Tags         languages
// @Security     BearerAuth
// @Param        id path string true "言語ID"
// @Success      204 "No Content"
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid input"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden - missing permission"
// @Failure      404 {object} respond.ErrorBody "Not found"
// @Failure      409 {object} respond.ErrorBody "Conflict - duplicate or still referenced"
// @Router       /languages/{id} [delete]
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.UUIDParam(r, "id")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, &entity.ValidationError{Field: "id", Message: "must be a UUID"})
		return
	}
	if err := h.Svc.Delete(r.Context(), id); err != nil {
		respond.Err(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
