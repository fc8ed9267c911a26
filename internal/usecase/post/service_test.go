package post_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lingua-cms/internal/domain/entity"
	"lingua-cms/internal/repository/repotest"
	"lingua-cms/internal/service/authz"
	"lingua-cms/internal/usecase/localized"
	postUC "lingua-cms/internal/usecase/post"
)

func as(role string) context.Context {
	return authz.WithPrincipal(context.Background(), authz.Principal{Subject: "auth0|p", Roles: []string{role}})
}

func newService(links ...*entity.Link) (*postUC.Service, *repotest.Aggregates[*entity.Post]) {
	posts := repotest.NewAggregates(repotest.ClonePost)
	return &postUC.Service{
		Service: &localized.Service[*entity.Post]{
			Kind:       entity.KindPost,
			Aggregates: posts,
			Contents:   repotest.NewContents(),
			Languages:  repotest.NewLanguages(),
			Tx:         &repotest.Tx{},
			Gate:       authz.NewGate(nil, nil),
		},
		Links: repotest.NewLinks(links...),
	}, posts
}

func TestCreate(t *testing.T) {
	l1 := &entity.Link{ID: uuid.New(), Name: "L1"}
	svc, posts := newService(l1)
	thumb := "https://cdn.example.com/a.png"

	p, err := svc.Create(as(authz.RoleEditor), postUC.Input{LinkID: l1.ID, Thumbnail: &thumb, CommentsEnabled: true})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.Equal(t, l1.ID, p.LinkID())
	assert.Equal(t, "L1", p.Link().Name)
	assert.True(t, p.CommentsEnabled)
	assert.False(t, p.Published)
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)
	assert.Equal(t, 1, posts.Len())
}

func TestCreate_LinkErrors(t *testing.T) {
	svc, posts := newService()

	_, err := svc.Create(as(authz.RoleAdmin), postUC.Input{})
	assert.ErrorIs(t, err, entity.ErrValidationFailed)

	_, err = svc.Create(as(authz.RoleAdmin), postUC.Input{LinkID: uuid.New()})
	assert.ErrorIs(t, err, entity.ErrNotFound)
	assert.Contains(t, err.Error(), "Link not found")

	assert.Zero(t, posts.Len())
}

func TestUpdate_ChangesLink(t *testing.T) {
	l1 := &entity.Link{ID: uuid.New(), Name: "L1"}
	l2 := &entity.Link{ID: uuid.New(), Name: "L2"}
	svc, _ := newService(l1, l2)
	p, err := svc.Create(as(authz.RoleAdmin), postUC.Input{LinkID: l1.ID})
	require.NoError(t, err)

	updated, err := svc.Update(as(authz.RoleAdmin), p.ID, postUC.Input{LinkID: l2.ID, Published: true})
	require.NoError(t, err)

	assert.Equal(t, l2.ID, updated.LinkID())
	assert.True(t, updated.Published)
	assert.False(t, updated.CommentsEnabled)

	got, err := svc.FindByID(as(authz.RoleUser), p.ID)
	require.NoError(t, err)
	assert.Equal(t, l2.ID, got.LinkID())
}

func TestUpdatePublished(t *testing.T) {
	l1 := &entity.Link{ID: uuid.New(), Name: "L1"}
	svc, _ := newService(l1)
	p, err := svc.Create(as(authz.RoleAdmin), postUC.Input{LinkID: l1.ID})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.UpdatePublished(as(authz.RoleUser), p.ID, true), entity.ErrForbidden)
	require.NoError(t, svc.UpdatePublished(as(authz.RoleModerator), p.ID, true))

	got, err := svc.FindByID(as(authz.RoleUser), p.ID)
	require.NoError(t, err)
	assert.True(t, got.Published)
	assert.Equal(t, l1.ID, got.LinkID())
}
