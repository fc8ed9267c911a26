// Package homepages exposes homepages over HTTP.
package homepages

import (
	"net/http"

	"lingua-cms/internal/domain/entity"
	"lingua-cms/internal/handler/http/localized"
	"lingua-cms/internal/infra/render"
	homepageUC "lingua-cms/internal/usecase/homepage"
)

// Register mounts /homepages on mux. Homepages have no publication flag.
func Register(mux *http.ServeMux, svc localized.Service[*entity.Homepage, homepageUC.Input], renderer *render.Renderer) {
	h := handler{res: &localized.Resource[*entity.Homepage, homepageUC.Input]{
		Path:    "/homepages",
		Service: svc,
		Decode:  decode,
		Encode:  encode,
		Content: localized.ContentMapper{OwnerKey: "homepageId", Renderer: renderer},
	}}

	mux.HandleFunc("GET /homepages", h.list)
	mux.HandleFunc("POST /homepages", h.create)
	mux.HandleFunc("GET /homepages/{id}", h.get)
	mux.HandleFunc("PUT /homepages/{id}", h.update)
	mux.HandleFunc("DELETE /homepages/{id}", h.delete)
	mux.HandleFunc("GET /homepages/{id}/content", h.listContent)
	mux.HandleFunc("POST /homepages/{id}/content", h.createContent)
	mux.HandleFunc("GET /homepages/{id}/content/preferred", h.preferredContent)
	mux.HandleFunc("GET /homepages/{id}/content/{languageId}", h.getContent)
	mux.HandleFunc("PUT /homepages/{id}/content/{languageId}", h.updateContent)
	mux.HandleFunc("DELETE /homepages/{id}/content/{languageId}", h.deleteContent)
}

type handler struct {
	res *localized.Resource[*entity.Homepage, homepageUC.Input]
}

// list ホームページ一覧取得
// @Summary      ホームページ一覧取得
// @Description  すべてのホームページを言語別コンテンツ付きで返します
// @Tags         homepages
// @Security     BearerAuth
// @Produce      json
// @Success      200 {array} homepages.DTO
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden - missing permission"
// @Failure      500 {object} respond.ErrorBody "Server error"
// @Router       /homepages [get]
func (h handler) list(w http.ResponseWriter, r *http.Request) { h.res.List(w, r) }

// create ホームページ作成
// @Summary      ホームページ作成
// @Description  新しいホームページを作成します
// @Tags         homepages
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        homepage body homepages.Request true "作成するホームページ"
// @Success      201 {object} homepages.DTO
// @Header       201 {string} Location "作成したリソースのパス"
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid input"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden - missing permission"
// @Failure      404 {object} respond.ErrorBody "Not found"
// @Failure      409 {object} respond.ErrorBody "Conflict - duplicate or still referenced"
// @Router       /homepages [post]
func (h handler) create(w http.ResponseWriter, r *http.Request) { h.res.Create(w, r) }

// get ホームページ取得
// @Summary      ホームページ取得
// @Description  IDでホームページを取得します
// @Tags         homepages
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "ホームページID"
// @Success      200 {object} homepages.DTO
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid input"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden - missing permission"
// @Failure      404 {object} respond.ErrorBody "Not found"
// @Router       /homepages/{id} [get]
func (h handler) get(w http.ResponseWriter, r *http.Request) { h.res.Get(w, r) }

// update ホームページ更新
// @Summary      ホームページ更新
// @Description  既存のホームページを更新します
// @Tags         homepages
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path string true "ホームページID"
// @Param        homepage body homepages.Request true "更新するホームページ"
// @Success      200 {object} homepages.DTO
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid input"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden - missing permission"
// @Failure      404 {object} respond.ErrorBody "Not found"
// @Failure      409 {object} respond.ErrorBody "Conflict - duplicate or still referenced"
// @Router       /homepages/{id} [put]
func (h handler) update(w http.ResponseWriter, r *http.Request) { h.res.Update(w, r) }

// delete ホームページ削除
// @Summary      ホームページ削除
// @Description  ホームページとその全言語のコンテンツを削除します
// @Tags         homepages
// @Security     BearerAuth
// @Param        id path string true "ホームページID"
// @Success      204 "No Content"
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid input"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden - missing permission"
// @Failure      404 {object} respond.ErrorBody "Not found"
// @Router       /homepages/{id} [delete]
func (h handler) delete(w http.ResponseWriter, r *http.Request) { h.res.Delete(w, r) }

// listContent ホームページコンテンツ一覧
// @Summary      ホームページコンテンツ一覧
// @Description  ホームページの全言語のコンテンツを返します
// @Tags         homepages
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "ホームページID"
// @Success      200 {array} localized.ContentDTO
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid input"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden - missing permission"
// @Failure      404 {object} respond.ErrorBody "Not found"
// @Router       /homepages/{id}/content [get]
func (h handler) listContent(w http.ResponseWriter, r *http.Request) { h.res.ListContent(w, r) }

// createContent ホームページコンテンツ作成
// @Summary      ホームページコンテンツ作成
// @Description  1言語分のコンテンツを追加します。言語ごとに1件までです
// @Tags         homepages
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path string true "ホームページID"
// @Param        content body localized.ContentRequest true "追加するコンテンツ"
// @Success      201 {object} localized.ContentDTO
// @Header       201 {string} Location "作成したリソースのパス"
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid input"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden - missing permission"
// @Failure      404 {object} respond.ErrorBody "Not found"
// @Failure      409 {object} respond.ErrorBody "Conflict - duplicate or still referenced"
// @Router       /homepages/{id}/content [post]
func (h handler) createContent(w http.ResponseWriter, r *http.Request) { h.res.CreateContent(w, r) }

// preferredContent ホームページ優先言語コンテンツ取得
// @Summary      ホームページ優先言語コンテンツ取得
// @Description  Accept-Language に最も合う言語のコンテンツを返します。合う言語がなければ最初のコンテンツを返します
// @Tags         homepages
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "ホームページID"
// @Param        Accept-Language header string false "希望する言語 (RFC 9110)"
// @Success      200 {object} localized.ContentDTO
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid input"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden - missing permission"
// @Failure      404 {object} respond.ErrorBody "Not found"
// @Router       /homepages/{id}/content/preferred [get]
func (h handler) preferredContent(w http.ResponseWriter, r *http.Request) { h.res.GetPreferredContent(w, r) }

// getContent ホームページコンテンツ取得
// @Summary      ホームページコンテンツ取得
// @Description  指定した言語のコンテンツを返します
// @Tags         homepages
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "ホームページID"
// @Param        languageId path string true "言語ID"
// @Success      200 {object} localized.ContentDTO
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid input"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden - missing permission"
// @Failure      404 {object} respond.ErrorBody "Not found"
// @Router       /homepages/{id}/content/{languageId} [get]
func (h handler) getContent(w http.ResponseWriter, r *http.Request) { h.res.GetContent(w, r) }

// updateContent ホームページコンテンツ更新
// @Summary      ホームページコンテンツ更新
// @Description  指定した言語のコンテンツを更新します。本文の languageId は無視されます
// @Tags         homepages
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path string true "ホームページID"
// @Param        languageId path string true "言語ID"
// @Param        content body localized.ContentRequest true "更新するコンテンツ"
// @Success      200 {object} localized.ContentDTO
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid input"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden - missing permission"
// @Failure      404 {object} respond.ErrorBody "Not found"
// @Router       /homepages/{id}/content/{languageId} [put]
func (h handler) updateContent(w http.ResponseWriter, r *http.Request) { h.res.UpdateContent(w, r) }

// deleteContent ホームページコンテンツ削除
// @Summary      ホームページコンテンツ削除
// @Description  指定した言語のコンテンツを削除します
// @Tags         homepages
// @Security     BearerAuth
// @Param        id path string true "ホームページID"
// @Param        languageId path string true "言語ID"
// @Success      204 "No Content"
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid input"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden - missing permission"
// @Failure      404 {object} respond.ErrorBody "Not found"
// @Router       /homepages/{id}/content/{languageId} [delete]
func (h handler) deleteContent(w http.ResponseWriter, r *http.Request) { h.res.DeleteContent(w, r) }
