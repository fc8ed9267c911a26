// Package userbios exposes user biographies over HTTP under /user-bios.
package userbios

import (
	"net/http"

	"lingua-cms/internal/domain/entity"
	"lingua-cms/internal/handler/http/localized"
	"lingua-cms/internal/infra/render"
	userbioUC "lingua-cms/internal/usecase/userbio"
)

// Register mounts /user-bios on mux.
func Register(mux *http.ServeMux, svc localized.Service[*entity.UserBio, userbioUC.Input], renderer *render.Renderer) {
	h := handler{res: &localized.Resource[*entity.UserBio, userbioUC.Input]{
		Path:    "/user-bios",
		Service: svc,
		Decode:  decode,
		Encode:  encode,
		Content: localized.ContentMapper{OwnerKey: "userBioId", Renderer: renderer},
	}}

	mux.HandleFunc("GET /user-bios", h.list)
	mux.HandleFunc("POST /user-bios", h.create)
	mux.HandleFunc("GET /user-bios/{id}", h.get)
	mux.HandleFunc("PUT /user-bios/{id}", h.update)
	mux.HandleFunc("DELETE /user-bios/{id}", h.delete)
	mux.HandleFunc("GET /user-bios/{id}/content", h.listContent)
	mux.HandleFunc("POST /user-bios/{id}/content", h.createContent)
	mux.HandleFunc("GET /user-bios/{id}/content/preferred", h.preferredContent)
	mux.HandleFunc("GET /user-bios/{id}/content/{languageId}", h.getContent)
	mux.HandleFunc("PUT /user-bios/{id}/content/{languageId}", h.updateContent)
	mux.HandleFunc("DELETE /user-bios/{id}/content/{languageId}", h.deleteContent)
}

type handler struct {
	res *localized.Resource[*entity.UserBio, userbioUC.Input]
}

// list ユーザー紹介一覧取得
// @Summary      ユーザー紹介一覧取得
// @Description  すべてのユーザー紹介を言語別コンテンツ付きで返します
// @Tags         userbios
// @Security     BearerAuth
// @Produce      json
// @Success      200 {array} userbios.DTO
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden - missing permission"
// @Failure      500 {object} respond.ErrorBody "Server error"
// @Router       /user-bios [get]
func (h handler) list(w http.ResponseWriter, r *http.Request) { h.res.List(w, r) }

// create ユーザー紹介作成
// @Summary      ユーザー紹介作成
// @Description  新しいユーザー紹介を作成します
// @Tags         userbios
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        userBio body userbios.Request true "作成するユーザー紹介"
// @Success      201 {object} userbios.DTO
// @Header       201 {string} Location "作成したリソースのパス"
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid input"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden - missing permission"
// @Failure      404 {object} respond.ErrorBody "Not found"
// @Failure      409 {object} respond.ErrorBody "Conflict - duplicate or still referenced"
// @Router       /user-bios [post]
func (h handler) create(w http.ResponseWriter, r *http.Request) { h.res.Create(w, r) }

// get ユーザー紹介取得
// @Summary      ユーザー紹介取得
// @Description  IDでユーザー紹介を取得します
// @Tags         userbios
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "ユーザー紹介ID"
// @Success      200 {object} userbios.DTO
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid input"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden - missing permission"
// @Failure      404 {object} respond.ErrorBody "Not found"
// @Router       /user-bios/{id} [get]
func (h handler) get(w http.ResponseWriter, r *http.Request) { h.res.Get(w, r) }

// update ユーザー紹介更新
// @Summary      ユーザー紹介更新
// @Description  既存のユーザー紹介を更新します
// @Tags         userbios
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path string true "ユーザー紹介ID"
// @Param        userBio body userbios.Request true "更新するユーザー紹介"
// @Success      200 {object} userbios.DTO
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid input"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden - missing permission"
// @Failure      404 {object} respond.ErrorBody "Not found"
// @Failure      409 {object} respond.ErrorBody "Conflict - duplicate or still referenced"
// @Router       /user-bios/{id} [put]
func (h handler) update(w http.ResponseWriter, r *http.Request) { h.res.Update(w, r) }

// delete ユーザー紹介削除
// @Summary      ユーザー紹介削除
// @Description  ユーザー紹介とその全言語のコンテンツを削除します
// @Tags         userbios
// @Security     BearerAuth
// @Param        id path string true "ユーザー紹介ID"
// @Success      204 "No Content"
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid input"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden - missing permission"
// @Failure      404 {object} respond.ErrorBody "Not found"
// @Router       /user-bios/{id} [delete]
func (h handler) delete(w http.ResponseWriter, r *http.Request) { h.res.Delete(w, r) }

// listContent ユーザー紹介コンテンツ一覧
// @Summary      ユーザー紹介コンテンツ一覧
// @Description  ユーザー紹介の全言語のコンテンツを返します
// @Tags         userbios
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "ユーザー紹介ID"
// @Success      200 {array} localized.ContentDTO
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid input"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden - missing permission"
// @Failure      404 {object} respond.ErrorBody "Not found"
// @Router       /user-bios/{id}/content [get]
func (h handler) listContent(w http.ResponseWriter, r *http.Request) { h.res.ListContent(w, r) }

// createContent ユーザー紹介コンテンツ作成
// @Summary      ユーザー紹介コンテンツ作成
// @Description  1言語分のコンテンツを追加します。言語ごとに1件までです
// @Tags         userbios
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path string true "ユーザー紹介ID"
// @Param        content body localized.ContentRequest true "追加するコンテンツ"
// @Success      201 {object} localized.ContentDTO
// @Header       201 {string} Location "作成したリソースのパス"
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid input"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden - missing permission"
// @Failure      404 {object} respond.ErrorBody "Not found"
// @Failure      409 {object} respond.ErrorBody "Conflict - duplicate or still referenced"
// @Router       /user-bios/{id}/content [post]
func (h handler) createContent(w http.ResponseWriter, r *http.Request) { h.res.CreateContent(w, r) }

// preferredContent ユーザー紹介優先言語コンテンツ取得
// @Summary      ユーザー紹介優先言語コンテンツ取得
// @Description  Accept-Language に最も合う言語のコンテンツを返します。合う言語がなければ最初のコンテンツを返します
// @Tags         userbios
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "ユーザー紹介ID"
// @Param        Accept-Language header string false "希望する言語 (RFC 9110)"
// @Success      200 {object} localized.ContentDTO
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid input"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden - missing permission"
// @Failure      404 {object} respond.ErrorBody "Not found"
// @Router       /user-bios/{id}/content/preferred [get]
func (h handler) preferredContent(w http.ResponseWriter, r *http.Request) { h.res.GetPreferredContent(w, r) }

// getContent ユーザー紹介コンテンツ取得
// @Summary      ユーザー紹介コンテンツ取得
// @Description  指定した言語のコンテンツを返します
// @Tags         userbios
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "ユーザー紹介ID"
// @Param        languageId path string true "言語ID"
// @Success      200 {object} localized.ContentDTO
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid input"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden - missing permission"
// @Failure      404 {object} respond.ErrorBody "Not found"
// @Router       /user-bios/{id}/content/{languageId} [get]
func (h handler) getContent(w http.ResponseWriter, r *http.Request) { h.res.GetContent(w, r) }

// updateContent ユーザー紹介コンテンツ更新
// @Summary      ユーザー紹介コンテンツ更新
// @Description  指定した言語のコンテンツを更新します。本文の languageId は無視されます
// @Tags         userbios
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path string true "ユーザー紹介ID"
// @Param        languageId path string true "言語ID"
// @Param        content body localized.ContentRequest true "更新するコンテンツ"
// @Success      200 {object} localized.ContentDTO
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid input"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden - missing permission"
// @Failure      404 {object} respond.ErrorBody "Not found"
// @Router       /user-bios/{id}/content/{languageId} [put]
func (h handler) updateContent(w http.ResponseWriter, r *http.Request) { h.res.UpdateContent(w, r) }

// deleteContent ユーザー紹介コンテンツ削除
// @Summary      ユーザー紹介コンテンツ削除
// @Description  指定した言語のコンテンツを削除します
// @Tags         userbios
// @Security     BearerAuth
// @Param        id path string true "ユーザー紹介ID"
// @Param        languageId path string true "言語ID"
// @Success      204 "No Content"
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid input"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden - missing permission"
// @Failure      404 {object} respond.ErrorBody "Not found"
// @Router       /user-bios/{id}/content/{languageId} [delete]
func (h handler) deleteContent(w http.ResponseWriter, r *http.Request) { h.res.DeleteContent(w, r) }
