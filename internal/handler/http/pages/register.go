// Package pages exposes static pages and their per-language content over HTTP.
package pages

import (
	"net/http"

	"lingua-cms/internal/domain/entity"
	"lingua-cms/internal/handler/http/localized"
	"lingua-cms/internal/infra/render"
	pageUC "lingua-cms/internal/usecase/page"
)

// Register mounts /pages on mux.
func Register(mux *http.ServeMux, svc Service, renderer *render.Renderer) {
	h := handler{res: &localized.Resource[*entity.Page, pageUC.Input]{
		Path:      "/pages",
		Service:   svc,
		Decode:    decode,
		Encode:    encode,
		Content:   localized.ContentMapper{OwnerKey: "pageId", Renderer: renderer},
		Publisher: svc,
	}}

	mux.HandleFunc("GET /pages", h.list)
	mux.HandleFunc("POST /pages", h.create)
	mux.HandleFunc("GET /pages/{id}", h.get)
	mux.HandleFunc("PUT /pages/{id}", h.update)
	mux.HandleFunc("DELETE /pages/{id}", h.delete)
	mux.HandleFunc("PATCH /pages/{id}/published", h.setPublished)
	mux.HandleFunc("GET /pages/{id}/content", h.listContent)
	mux.HandleFunc("POST /pages/{id}/content", h.createContent)
	mux.HandleFunc("GET /pages/{id}/content/preferred", h.preferredContent)
	mux.HandleFunc("GET /pages/{id}/content/{languageId}", h.getContent)
	mux.HandleFunc("PUT /pages/{id}/content/{languageId}", h.updateContent)
	mux.HandleFunc("DELETE /pages/{id}/content/{languageId}", h.deleteContent)
}

type handler struct {
	res *localized.Resource[*entity.Page, pageUC.Input]
}

// list 固定ページ一覧取得
// @Summary      固定ページ一覧取得
// @Description  すべての固定ページを言語別コンテンツ付きで返します
// @Tags         pages
// @Security     BearerAuth
// @Produce      json
// @Success      200 {array} pages.DTO
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden - missing permission"
// @Failure      500 {object} respond.ErrorBody "Server error"
// @Router       /pages [get]
func (h handler) list(w http.ResponseWriter, r *http.Request) { h.res.List(w, r) }

// create 固定ページ作成
// @Summary      固定ページ作成
// @Description  新しい固定ページを作成します
// @Tags         pages
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        page body pages.Request true "作成する固定ページ"
// @Success      201 {object} pages.DTO
// @Header       201 {string} Location "作成したリソースのパス"
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid input"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden - missing permission"
// @Failure      404 {object} respond.ErrorBody "Not found"
// @Failure      409 {object} respond.ErrorBody "Conflict - duplicate or still referenced"
// @Router       /pages [post]
func (h handler) create(w http.ResponseWriter, r *http.Request) { h.res.Create(w, r) }

// get 固定ページ取得
// @Summary      固定ページ取得
// @Description  IDで固定ページを取得します
// @Tags         pages
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "固定ページID"
// @Success      200 {object} pages.DTO
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid input"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden - missing permission"
// @Failure      404 {object} respond.ErrorBody "Not found"
// @Router       /pages/{id} [get]
func (h handler) get(w http.ResponseWriter, r *http.Request) { h.res.Get(w, r) }

// update 固定ページ更新
// @Summary      固定ページ更新
// @Description  既存の固定ページを更新します
// @Tags         pages
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path string true "固定ページID"
// @Param        page body pages.Request true "更新する固定ページ"
// @Success      200 {object} pages.DTO
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid input"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden - missing permission"
// @Failure      404 {object} respond.ErrorBody "Not found"
// @Failure      409 {object} respond.ErrorBody "Conflict - duplicate or still referenced"
// @Router       /pages/{id} [put]
func (h handler) update(w http.ResponseWriter, r *http.Request) { h.res.Update(w, r) }

// delete 固定ページ削除
// @Summary      固定ページ削除
// @Description  固定ページとその全言語のコンテンツを削除します
// @Tags         pages
// @Security     BearerAuth
// @Param        id path string true "固定ページID"
// @Success      204 "No Content"
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid input"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden - missing permission"
// @Failure      404 {object} respond.ErrorBody "Not found"
// @Router       /pages/{id} [delete]
func (h handler) delete(w http.ResponseWriter, r *http.Request) { h.res.Delete(w, r) }

// setPublished 固定ページ公開状態変更
// @Summary      固定ページ公開状態変更
// @Description  固定ページの公開フラグだけを切り替えます
// @Tags         pages
// @Security     BearerAuth
// @Accept       json
// @Param        id path string true "固定ページID"
// @Param        published body localized.PublishedRequest true "公開フラグ"
// @Success      204 "No Content"
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid input"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden - missing permission"
// @Failure      404 {object} respond.ErrorBody "Not found"
// @Router       /pages/{id}/published [patch]
func (h handler) setPublished(w http.ResponseWriter, r *http.Request) { h.res.SetPublished(w, r) }

// listContent 固定ページコンテンツ一覧
// @Summary      固定ページコンテンツ一覧
// @Description  固定ページの全言語のコンテンツを返します
// @Tags         pages
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "固定ページID"
// @Success      200 {array} localized.ContentDTO
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid input"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden - missing permission"
// @Failure      404 {object} respond.ErrorBody "Not found"
// @Router       /pages/{id}/content [get]
func (h handler) listContent(w http.ResponseWriter, r *http.Request) { h.res.ListContent(w, r) }

// createContent 固定ページコンテンツ作成
// @Summary      固定ページコンテンツ作成
// @Description  1言語分のコンテンツを追加します。言語ごとに1件までです
// @Tags         pages
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path string true "固定ページID"
// @Param        content body localized.ContentRequest true "追加するコンテンツ"
// @Success      201 {object} localized.ContentDTO
// @Header       201 {string} Location "作成したリソースのパス"
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid input"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden - missing permission"
// @Failure      404 {object} respond.ErrorBody "Not found"
// @Failure      409 {object} respond.ErrorBody "Conflict - duplicate or still referenced"
// @Router       /pages/{id}/content [post]
func (h handler) createContent(w http.ResponseWriter, r *http.Request) { h.res.CreateContent(w, r) }

// preferredContent 固定ページ優先言語コンテンツ取得
// @Summary      固定ページ優先言語コンテンツ取得
// @Description  Accept-Language に最も合う言語のコンテンツを返します。合う言語がなければ最初のコンテンツを返します
// @Tags         pages
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "固定ページID"
// @Param        Accept-Language header string false "希望する言語 (RFC 9110)"
// @Success      200 {object} localized.ContentDTO
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid input"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden - missing permission"
// @Failure      404 {object} respond.ErrorBody "Not found"
// @Router       /pages/{id}/content/preferred [get]
func (h handler) preferredContent(w http.ResponseWriter, r *http.Request) { h.res.GetPreferredContent(w, r) }

// getContent 固定ページコンテンツ取得
// @Summary      固定ページコンテンツ取得
// @Description  指定した言語のコンテンツを返します
// @Tags         pages
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "固定ページID"
// @Param        languageId path string true "言語ID"
// @Success      200 {object} localized.ContentDTO
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid input"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden - missing permission"
// @Failure      404 {object} respond.ErrorBody "Not found"
// @Router       /pages/{id}/content/{languageId} [get]
func (h handler) getContent(w http.ResponseWriter, r *http.Request) { h.res.GetContent(w, r) }

// updateContent 固定ページコンテンツ更新
// @Summary      固定ページコンテンツ更新
// @Description  指定した言語のコンテンツを更新します。本文の languageId は無視されます
// @Tags         pages
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path string true "固定ページID"
// @Param        languageId path string true "言語ID"
// @Param        content body localized.ContentRequest true "更新するコンテンツ"
// @Success      200 {object} localized.ContentDTO
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid input"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden - missing permission"
// @Failure      404 {object} respond.ErrorBody "Not found"
// @Router       /pages/{id}/content/{languageId} [put]
func (h handler) updateContent(w http.ResponseWriter, r *http.Request) { h.res.UpdateContent(w, r) }

// deleteContent 固定ページコンテンツ削除
// @Summary      固定ページコンテンツ削除
// @Description  指定した言語のコンテンツを削除します
// @Tags         pages
// @Security     BearerAuth
// @Param        id path string true "固定ページID"
// @Param        languageId path string true "言語ID"
// @Success      204 "No Content"
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid input"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden - missing permission"
// @Failure      404 {object} respond.ErrorBody "Not found"
// @Router       /pages/{id}/content/{languageId} [delete]
func (h handler) deleteContent(w http.ResponseWriter, r *http.Request) { h.res.DeleteContent(w, r) }
