package page_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lingua-cms/internal/domain/entity"
	"lingua-cms/internal/repository/repotest"
	"lingua-cms/internal/service/authz"
	"lingua-cms/internal/usecase/localized"
	pageUC "lingua-cms/internal/usecase/page"
)

func as(role string) context.Context {
	return authz.WithPrincipal(context.Background(), authz.Principal{Subject: "auth0|pg", Roles: []string{role}})
}

func newService(links ...*entity.Link) (*pageUC.Service, *repotest.Aggregates[*entity.Page]) {
	pages := repotest.NewAggregates(repotest.ClonePage)
	return &pageUC.Service{
		Service: &localized.Service[*entity.Page]{
			Kind:       entity.KindPage,
			Aggregates: pages,
			Contents:   repotest.NewContents(),
			Languages:  repotest.NewLanguages(),
			Tx:         &repotest.Tx{},
			Gate:       authz.NewGate(nil, nil),
		},
		Links: repotest.NewLinks(links...),
	}, pages
}

/* ──── 1. Create ──── */

func TestCreate(t *testing.T) {
	about := &entity.Link{ID: uuid.New(), Name: "About", URL: "https://example.com/about", Scope: entity.LinkScopeInternal}
	svc, pages := newService(about)

	p, err := svc.Create(as(authz.RoleEditor), pageUC.Input{LinkID: about.ID, Published: true})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.Equal(t, about.ID, p.LinkID())
	assert.True(t, p.Published)
	assert.False(t, p.CommentsEnabled)
	assert.Empty(t, p.Contents())
	assert.Equal(t, 1, pages.Len())
}

func TestCreate_Rejected(t *testing.T) {
	about := &entity.Link{ID: uuid.New(), Name: "About"}
	long := strings.Repeat("x", entity.MaxThumbnailLength+1)

	tests := []struct {
		name    string
		role    string
		in      pageUC.Input
		wantErr error
	}{
		{"reader cannot create", authz.RoleUser, pageUC.Input{LinkID: about.ID}, entity.ErrForbidden},
		{"missing link", authz.RoleAdmin, pageUC.Input{}, entity.ErrValidationFailed},
		{"unknown link", authz.RoleAdmin, pageUC.Input{LinkID: uuid.New()}, entity.ErrNotFound},
		{"thumbnail too long", authz.RoleAdmin, pageUC.Input{LinkID: about.ID, Thumbnail: &long}, entity.ErrValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, pages := newService(about)
			_, err := svc.Create(as(tt.role), tt.in)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, pages.Len())
		})
	}
}

/* ──── 2. Update ──── */

func TestUpdate_IdenticalInputIsIdempotent(t *testing.T) {
	about := &entity.Link{ID: uuid.New(), Name: "About"}
	svc, _ := newService(about)
	thumb := "https://cdn.example.com/about.png"
	in := pageUC.Input{LinkID: about.ID, Thumbnail: &thumb, CommentsEnabled: true}

	created, err := svc.Create(as(authz.RoleAdmin), in)
	require.NoError(t, err)

	updated, err := svc.Update(as(authz.RoleAdmin), created.ID, in)
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.LinkID(), updated.LinkID())
	assert.Equal(t, *created.Thumbnail, *updated.Thumbnail)
	assert.Equal(t, created.CommentsEnabled, updated.CommentsEnabled)
	assert.Equal(t, created.Published, updated.Published)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestUpdate_NotFound(t *testing.T) {
	about := &entity.Link{ID: uuid.New(), Name: "About"}
	svc, _ := newService(about)
	id := uuid.New()

	_, err := svc.Update(as(authz.RoleAdmin), id, pageUC.Input{LinkID: about.ID})
	assert.ErrorIs(t, err, entity.ErrNotFound)
	assert.Contains(t, err.Error(), "Page not found with id: "+id.String())
}

/* ──── 3. UpdatePublished ──── */

func TestUpdatePublished(t *testing.T) {
	about := &entity.Link{ID: uuid.New(), Name: "About"}
	svc, _ := newService(about)
	p, err := svc.Create(as(authz.RoleAdmin), pageUC.Input{LinkID: about.ID, Published: true})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.UpdatePublished(as(authz.RoleUser), p.ID, false), entity.ErrForbidden)
	require.NoError(t, svc.UpdatePublished(as(authz.RoleEditor), p.ID, false))

	got, err := svc.FindByID(as(authz.RoleUser), p.ID)
	require.NoError(t, err)
	assert.False(t, got.Published)
}
