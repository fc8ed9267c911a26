// Package posts exposes blog posts and their per-language content over HTTP.
package posts

import (
	"net/http"

	"lingua-cms/internal/domain/entity"
	"lingua-cms/internal/handler/http/localized"
	"lingua-cms/internal/infra/render"
	postUC "lingua-cms/internal/usecase/post"
)

// Register mounts /posts on mux.
func Register(mux *http.ServeMux, svc Service, renderer *render.Renderer) {
	h := handler{res: &localized.Resource[*entity.Post, postUC.Input]{
		Path:      "/posts",
		Service:   svc,
		Decode:    decode,
		Encode:    encode,
		Content:   localized.ContentMapper{OwnerKey: "postId", Renderer: renderer},
		Publisher: svc,
	}}

	mux.HandleFunc("GET /posts", h.list)
	mux.HandleFunc("POST /posts", h.create)
	mux.HandleFunc("GET /posts/{id}", h.get)
	mux.HandleFunc("PUT /posts/{id}", h.update)
	mux.HandleFunc("DELETE /posts/{id}", h.delete)
	mux.HandleFunc("PATCH /posts/{id}/published", h.setPublished)
	mux.HandleFunc("GET /posts/{id}/content", h.listContent)
	mux.HandleFunc("POST /posts/{id}/content", h.createContent)
	mux.HandleFunc("GET /posts/{id}/content/preferred", h.preferredContent)
	mux.HandleFunc("GET /posts/{id}/content/{languageId}", h.getContent)
	mux.HandleFunc("PUT /posts/{id}/content/{languageId}", h.updateContent)
	mux.HandleFunc("DELETE /posts/{id}/content/{languageId}", h.deleteContent)
}

type handler struct {
	res *localized.Resource[*entity.Post, postUC.Input]
}

// list 投稿一覧取得
// @Summary      投稿一覧取得
// @Description  すべての投稿を言語別コンテンツ付きで返します
// @Tags         posts
// @Security     BearerAuth
// @Produce      json
// @Success      200 {array} posts.DTO
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden - missing permission"
// @Failure      500 {object} respond.ErrorBody "Server error"
// @Router       /posts [get]
func (h handler) list(w http.ResponseWriter, r *http.Request) { h.res.List(w, r) }

// create 投稿作成
// @Summary      投稿作成
// @Description  新しい投稿を作成します
// @Tags         posts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        post body posts.Request true "作成する投稿"
// @Success      201 {object} posts.DTO
// @Header       201 {string} Location "作成したリソースのパス"
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid input"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden - missing permission"
// @Failure      404 {object} respond.ErrorBody "Not found"
// @Failure      409 {object} respond.ErrorBody "Conflict - duplicate or still referenced"
// @Router       /posts [post]
func (h handler) create(w http.ResponseWriter, r *http.Request) { h.res.Create(w, r) }

// get 投稿取得
// @Summary      投稿取得
// @Description  IDで投稿を取得します
// @Tags         posts
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "投稿ID"
// @Success      200 {object} posts.DTO
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid input"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden - missing permission"
// @Failure      404 {object} respond.ErrorBody "Not found"
// @Router       /posts/{id} [get]
func (h handler) get(w http.ResponseWriter, r *http.Request) { h.res.Get(w, r) }

// update 投稿更新
// @Summary      投稿更新
// @Description  既存の投稿を更新します
// @Tags         posts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path string true "投稿ID"
// @Param        post body posts.Request true "更新する投稿"
// @Success      200 {object} posts.DTO
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid input"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden - missing permission"
// @Failure      404 {object} respond.ErrorBody "Not found"
// @Failure      409 {object} respond.ErrorBody "Conflict - duplicate or still referenced"
// @Router       /posts/{id} [put]
func (h handler) update(w http.ResponseWriter, r *http.Request) { h.res.Update(w, r) }

// delete 投稿削除
// @Summary      投稿削除
// @Description  投稿とその全言語のコンテンツを削除します
// @Tags         posts
// @Security     BearerAuth
// @Param        id path string true "投稿ID"
// @Success      204 "No Content"
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid input"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden - missing permission"
// @Failure      404 {object} respond.ErrorBody "Not found"
// @Router       /posts/{id} [delete]
func (h handler) delete(w http.ResponseWriter, r *http.Request) { h.res.Delete(w, r) }

// setPublished 投稿公開状態変更
// @Summary      投稿公開状態変更
// @Description  投稿の公開フラグだけを切り替えます
// @Tags         posts
// @Security     BearerAuth
// @Accept       json
// @Param        id path string true "投稿ID"
// @Param        published body localized.PublishedRequest true "公開フラグ"
// @Success      204 "No Content"
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid input"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden - missing permission"
// @Failure      404 {object} respond.ErrorBody "Not found"
// @Router       /posts/{id}/published [patch]
func (h handler) setPublished(w http.ResponseWriter, r *http.Request) { h.res.SetPublished(w, r) }

// listContent 投稿コンテンツ一覧
// @Summary      投稿コンテンツ一覧
// @Description  投稿の全言語のコンテンツを返します
// @Tags         posts
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "投稿ID"
// @Success      200 {array} localized.ContentDTO
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid input"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden - missing permission"
// @Failure      404 {object} respond.ErrorBody "Not found"
// @Router       /posts/{id}/content [get]
func (h handler) listContent(w http.ResponseWriter, r *http.Request) { h.res.ListContent(w, r) }

// createContent 投稿コンテンツ作成
// @Summary      投稿コンテンツ作成
// @Description  1言語分のコンテンツを追加します。言語ごとに1件までです
// @Tags         posts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path string true "投稿ID"
// @Param        content body localized.ContentRequest true "追加するコンテンツ"
// @Success      201 {object} localized.ContentDTO
// @Header       201 {string} Location "作成したリソースのパス"
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid input"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden - missing permission"
// @Failure      404 {object} respond.ErrorBody "Not found"
// @Failure      409 {object} respond.ErrorBody "Conflict - duplicate or still referenced"
// @Router       /posts/{id}/content [post]
func (h handler) createContent(w http.ResponseWriter, r *http.Request) { h.res.CreateContent(w, r) }

// preferredContent 投稿優先言語コンテンツ取得
// @Summary      投稿優先言語コンテンツ取得
// @Description  Accept-Language に最も合う言語のコンテンツを返します。合う言語がなければ最初のコンテンツを返します
// @Tags         posts
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "投稿ID"
// @Param        Accept-Language header string false "希望する言語 (RFC 9110)"
// @Success      200 {object} localized.ContentDTO
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid input"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden - missing permission"
// @Failure      404 {object} respond.ErrorBody "Not found"
// @Router       /posts/{id}/content/preferred [get]
func (h handler) preferredContent(w http.ResponseWriter, r *http.Request) { h.res.GetPreferredContent(w, r) }

// getContent 投稿コンテンツ取得
// @Summary      投稿コンテンツ取得
// @Description  指定した言語のコンテンツを返します
// @Tags         posts
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "投稿ID"
// @Param        languageId path string true "言語ID"
// @Success      200 {object} localized.ContentDTO
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid input"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden - missing permission"
// @Failure      404 {object} respond.ErrorBody "Not found"
// @Router       /posts/{id}/content/{languageId} [get]
func (h handler) getContent(w http.ResponseWriter, r *http.Request) { h.res.GetContent(w, r) }

// updateContent 投稿コンテンツ更新
// @Summary      投稿コンテンツ更新
// @Description  指定した言語のコンテンツを更新します。本文の languageId は無視されます
// @Tags         posts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path string true "投稿ID"
// @Param        languageId path string true "言語ID"
// @Param        content body localized.ContentRequest true "更新するコンテンツ"
// @Success      200 {object} localized.ContentDTO
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid input"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden - missing permission"
// @Failure      404 {object} respond.ErrorBody "Not found"
// @Router       /posts/{id}/content/{languageId} [put]
func (h handler) updateContent(w http.ResponseWriter, r *http.Request) { h.res.UpdateContent(w, r) }

// deleteContent 投稿コンテンツ削除
// @Summary      投稿コンテンツ削除
// @Description  指定した言語のコンテンツを削除します
// @Tags         posts
// @Security     BearerAuth
// @Param        id path string true "投稿ID"
// @Param        languageId path string true "言語ID"
// @Success      204 "No Content"
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid input"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden - missing permission"
// @Failure      404 {object} respond.ErrorBody "Not found"
// @Router       /posts/{id}/content/{languageId} [delete]
func (h handler) deleteContent(w http.ResponseWriter, r *http.Request) { h.res.DeleteContent(w, r) }
