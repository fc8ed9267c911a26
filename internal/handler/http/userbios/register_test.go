package userbios_test

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
	"lingua-cms/internal/handler/http/userbios"
	"lingua-cms/internal/repository/repotest"
	"lingua-cms/internal/service/authz"
	"lingua-cms/internal/usecase/localized"
	userbioUC "lingua-cms/internal/usecase/userbio"
)

func newServer(langs ...*entity.Language) http.Handler {
	svc := &userbioUC.Service{
		Service: &localized.Service[*entity.UserBio]{
			Kind:       entity.KindUserBio,
			Aggregates: repotest.NewAggregates(repotest.CloneUserBio),
			Contents:   repotest.NewContents(),
			Languages:  repotest.NewLanguages(langs...),
			Tx:         &repotest.Tx{},
			Gate:       authz.NewGate(nil, nil),
		},
	}
	mux := http.NewServeMux()
	userbios.Register(mux, svc, nil)
	return mux
}

func send(srv http.Handler, role, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req = req.WithContext(authz.WithPrincipal(req.Context(), authz.Principal{Subject: "s", Roles: []string{role}}))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestUserBio_RoutesAndContent(t *testing.T) {
	en := &entity.Language{ID: uuid.New(), Name: "English", Abbreviation: "en"}
	srv := newServer(en)

	rec := send(srv, authz.RoleAdmin, http.MethodPost, "/user-bios", `{"userId":"auth0|42"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var bio userbios.DTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bio))
	assert.Equal(t, "auth0|42", bio.UserID)
	assert.Equal(t, "/user-bios/"+bio.ID.String(), rec.Header().Get("Location"))

	rec = send(srv, authz.RoleAdmin, http.MethodPost, "/user-bios/"+bio.ID.String()+"/content",
		`{"languageId":"`+en.ID.String()+`","title":"About me","content":"I write Go."}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var content map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &content))
	assert.Equal(t, bio.ID.String(), content["userBioId"])
	assert.Equal(t, "", content["contentHtml"], "no renderer configured")
}

func TestUserBio_Validation(t *testing.T) {
	srv := newServer()

	rec := send(srv, authz.RoleAdmin, http.MethodPost, "/user-bios", `{"userId":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = send(srv, authz.RoleAdmin, http.MethodPatch, "/user-bios/"+uuid.NewString()+"/published", `{"published":true}`)
	assert.Equal(t, http.StatusNotFound, rec.Code, "bios have no publication flag")
}
