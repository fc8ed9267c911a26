package link_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lingua-cms/internal/domain/entity"
	"lingua-cms/internal/repository/repotest"
	"lingua-cms/internal/service/authz"
	linkUC "lingua-cms/internal/usecase/link"
)

func admin() context.Context {
	return authz.WithPrincipal(context.Background(), authz.Principal{Subject: "auth0|a", Roles: []string{authz.RoleAdmin}})
}

func newService(repo *repotest.Links) *linkUC.Service {
	return &linkUC.Service{Repo: repo, Tx: &repotest.Tx{}, Gate: authz.NewGate(nil, nil)}
}

func TestCreateAndFind(t *testing.T) {
	svc := newService(repotest.NewLinks())

	created, err := svc.Create(admin(), linkUC.CreateInput{Name: "Docs", URL: "https://example.com/docs", Scope: entity.LinkScopeExternal})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := svc.FindByID(admin(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	all, err := svc.FindAll(admin())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCreate_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		in    linkUC.CreateInput
		field string
	}{
		{"no name", linkUC.CreateInput{URL: "https://example.com", Scope: entity.LinkScopeInternal}, "name"},
		{"bad url", linkUC.CreateInput{Name: "x", URL: "mailto:me@example.com", Scope: entity.LinkScopeInternal}, "url"},
		{"no scope", linkUC.CreateInput{Name: "x", URL: "https://example.com"}, "scope"},
		{"unknown scope", linkUC.CreateInput{Name: "x", URL: "https://example.com", Scope: "sideways"}, "scope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newService(repotest.NewLinks()).Create(admin(), tt.in)
			var vErr *entity.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestDelete_Referenced(t *testing.T) {
	l := &entity.Link{ID: uuid.New(), Name: "Blog"}
	repo := repotest.NewLinks(l)
	repo.InUse = func(id uuid.UUID) bool { return id == l.ID }
	svc := newService(repo)

	err := svc.Delete(admin(), l.ID)

	assert.ErrorIs(t, err, entity.ErrConflict)
	assert.ErrorIs(t, svc.Delete(admin(), uuid.New()), entity.ErrNotFound)
}

func TestRequire(t *testing.T) {
	l := &entity.Link{ID: uuid.New(), Name: "Blog"}
	repo := repotest.NewLinks(l)
	ctx := context.Background()

	got, err := linkUC.Require(ctx, repo, l.ID)
	require.NoError(t, err)
	assert.Equal(t, "Blog", got.Name)

	_, err = linkUC.Require(ctx, repo, uuid.Nil)
	assert.ErrorIs(t, err, entity.ErrValidationFailed)

	missing := uuid.New()
	_, err = linkUC.Require(ctx, repo, missing)
	assert.EqualError(t, err, "Link not found with id: "+missing.String())
}

func TestDelete_ForbiddenForModerator(t *testing.T) {
	l := &entity.Link{ID: uuid.New(), Name: "Blog"}
	repo := repotest.NewLinks(l)
	ctx := authz.WithPrincipal(context.Background(), authz.Principal{Subject: "auth0|m", Roles: []string{authz.RoleModerator}})

	err := newService(repo).Delete(ctx, l.ID)

	assert.ErrorIs(t, err, entity.ErrForbidden)
	got, _ := repo.Get(context.Background(), l.ID)
	assert.NotNil(t, got)
}
