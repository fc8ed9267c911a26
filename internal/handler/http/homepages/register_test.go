package homepages_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lingua-cms/internal/domain/entity"
	"lingua-cms/internal/handler/http/homepages"
	"lingua-cms/internal/infra/render"
	"lingua-cms/internal/repository/repotest"
	"lingua-cms/internal/service/authz"
	homepageUC "lingua-cms/internal/usecase/homepage"
	"lingua-cms/internal/usecase/localized"
)

func TestHomepage_CreateUpdateDelete(t *testing.T) {
	link := &entity.Link{ID: uuid.New(), Name: "Home", URL: "https://example.com", Scope: entity.LinkScopeInternal}
	svc := &homepageUC.Service{
		Service: &localized.Service[*entity.Homepage]{
			Kind:       entity.KindHomepage,
			Aggregates: repotest.NewAggregates(repotest.CloneHomepage),
			Contents:   repotest.NewContents(),
			Languages:  repotest.NewLanguages(),
			Tx:         &repotest.Tx{},
			Gate:       authz.NewGate(nil, nil),
		},
		Links: repotest.NewLinks(link),
	}
	mux := http.NewServeMux()
	homepages.Register(mux, svc, render.NewRenderer())

	send := func(role, method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req = req.WithContext(authz.WithPrincipal(req.Context(), authz.Principal{Subject: "s", Roles: []string{role}}))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		return rec
	}

	rec := send(authz.RoleEditor, http.MethodPost, "/homepages", `{"linkId":"`+link.ID.String()+`"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var home homepages.DTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &home))
	assert.Equal(t, link.ID, home.LinkID)
	assert.Nil(t, home.Thumbnail)

	path := "/homepages/" + home.ID.String()
	rec = send(authz.RoleEditor, http.MethodPut, path, `{"linkId":"`+link.ID.String()+`","thumbnail":"https://cdn.example.com/h.png"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &home))
	require.NotNil(t, home.Thumbnail)
	assert.Equal(t, "https://cdn.example.com/h.png", *home.Thumbnail)

	rec = send(authz.RoleModerator, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = send(authz.RoleEditor, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = send(authz.RoleUser, http.MethodGet, path+"/content", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
