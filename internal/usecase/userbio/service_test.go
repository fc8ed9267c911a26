package userbio_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lingua-cms/internal/domain/entity"
	"lingua-cms/internal/repository/repotest"
	"lingua-cms/internal/service/authz"
	"lingua-cms/internal/usecase/localized"
	bioUC "lingua-cms/internal/usecase/userbio"
)

func TestCreate_OneBioPerUser(t *testing.T) {
	bios := repotest.NewAggregates(repotest.CloneUserBio)
	bios.Unique = func(b *entity.UserBio) string { return b.UserID }
	svc := &bioUC.Service{Service: &localized.Service[*entity.UserBio]{
		Kind:       entity.KindUserBio,
		Aggregates: bios,
		Contents:   repotest.NewContents(),
		Languages:  repotest.NewLanguages(),
		Tx:         &repotest.Tx{},
		Gate:       authz.NewGate(nil, nil),
	}}
	ctx := authz.WithPrincipal(context.Background(), authz.Principal{Subject: "auth0|e", Roles: []string{authz.RoleEditor}})

	b, err := svc.Create(ctx, bioUC.Input{UserID: "auth0|42"})
	require.NoError(t, err)
	assert.Equal(t, "auth0|42", b.UserID)

	_, err = svc.Create(ctx, bioUC.Input{UserID: "auth0|42"})
	assert.ErrorIs(t, err, entity.ErrConflict)
	assert.EqualError(t, err, "UserBio already exists")

	_, err = svc.Create(ctx, bioUC.Input{UserID: " "})
	assert.ErrorIs(t, err, entity.ErrValidationFailed)

	other, err := svc.Create(ctx, bioUC.Input{UserID: "auth0|43"})
	require.NoError(t, err)
	_, err = svc.Update(ctx, other.ID, bioUC.Input{UserID: "auth0|42"})
	assert.ErrorIs(t, err, entity.ErrConflict)
	assert.Equal(t, 2, bios.Len())
}
