// Package links exposes links over HTTP.
package links

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"lingua-cms/internal/domain/entity"
	"lingua-cms/internal/handler/http/localized"
	"lingua-cms/internal/handler/http/pathutil"
	"lingua-cms/internal/handler/http/respond"
	linkUC "lingua-cms/internal/usecase/link"
)

type Service interface {
	FindAll(ctx context.Context) ([]*entity.Link, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Link, error)
	Create(ctx context.Context, in linkUC.CreateInput) (*entity.Link, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type DTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	Scope     string    `json:"scope"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Request is the body of POST /links. Scope is "internal" or "external".
type Request struct {
	Name  string `json:"name"`
	URL   string `json:"url"`
	Scope string `json:"scope"`
}

func toDTO(l *entity.Link) DTO {
	return DTO{
		ID:        l.ID,
		Name:      l.Name,
		URL:       l.URL,
		Scope:     string(l.Scope),
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

// Register mounts /links on mux.
func Register(mux *http.ServeMux, svc Service) {
	mux.Handle("GET /links", ListHandler{svc})
	mux.Handle("POST /links", CreateHandler{svc})
	mux.Handle("GET /links/{id}", GetHandler{svc})
	mux.Handle("DELETE /links/{id}", DeleteHandler{svc})
}

type ListHandler struct{ Svc Service }

// ServeHTTP リンク一覧取得
// @Summary      リンク一覧取得
// @Description  登録済みのリンクをすべて返します
// @Tags         links
// @Security     BearerAuth
// @Produce      json
// @Success      200 {array} links.DTO
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden - missing permission"
// @Failure      500 {object} respond.ErrorBody "Server error"
// @Router       /links [get]
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

// ServeHTTP リンク取得
// @Summary      リンク取得
// @Description  IDでリンクを取得します
// @Tags         links
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "リンクID"
// @Success      200 {object} links.DTO
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid input"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden - missing permission"
// @Failure      404 {object} respond.ErrorBody "Not found"
// @Router       /links/{id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := linkID(w, r)
	if !ok {
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

// ServeHTTP リンク作成
// @Summary      リンク作成
// @Description  新しいリンクを登録します
// @Tags         links
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        link body links.Request true "登録するリンク"
// @Success      201 {object} links.DTO
// @Header       201 {string} Location "作成したリソースのパス"
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid input"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden - missing permission"
// @Router       /links [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := localized.DecodeJSON(r.Body, &req); err != nil {
		respond.Err(w, err)
		return
	}
	l, err := h.Svc.Create(r.Context(), linkUC.CreateInput{
		Name:  req.Name,
		URL:   req.URL,
		Scope: entity.LinkScope(req.Scope),
	})
	if err != nil {
		respond.Err(w, err)
		return
	}
	w.Header().Set("Location", "/links/"+l.ID.String())
	respond.JSON(w, http.StatusCreated, toDTO(l))
}

type DeleteHandler struct{ Svc Service }

// ServeHTTP リンク削除
// @Summary      リンク削除
// @Description  リンクを削除します。参照されている間は 409 を返します
// @Tags         links
// @Security     BearerAuth
// @Param        id path string true "リンクID"
// @Success      204 "No Content"
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid input"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden - missing permission"
// @Failure      404 {object} respond.ErrorBody "Not found"
// @Failure      409 {object} respond.ErrorBody "Conflict - duplicate or still referenced"
// @Router       /links/{id} [delete]
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := linkID(w, r)
	if !ok {
		return
	}
	if err := h.Svc.Delete(r.Context(), id); err != nil {
		respond.Err(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func linkID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := pathutil.UUIDParam(r, "id")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, &entity.ValidationError{Field: "id", Message: "must be a UUID"})
		return uuid.Nil, false
	}
	return id, true
}
