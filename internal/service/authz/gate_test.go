package authz

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lingua-cms/internal/domain/entity"
)

func ctxAs(roles ...string) context.Context {
	return WithPrincipal(context.Background(), Principal{Subject: "auth0|1", Roles: roles})
}

func TestGate_Authorize_DefaultGrants(t *testing.T) {
	gate := NewGate(nil, nil)

	tests := []struct {
		name    string
		roles   []string
		op      Operation
		wantErr error
	}{
		{"admin writes posts", []string{RoleAdmin}, Operation{ResourcePost, ActionCreateContent}, nil},
		{"admin deletes languages", []string{RoleAdmin}, Operation{ResourceLanguage, ActionDelete}, nil},
		{"user reads posts", []string{RoleUser}, Operation{ResourcePost, ActionFindAll}, nil},
		{"user reads preferred content", []string{RoleUser}, Operation{ResourcePage, ActionFindPreferredContent}, nil},
		{"user cannot create content", []string{RoleUser}, Operation{ResourcePost, ActionCreateContent}, entity.ErrForbidden},
		{"user cannot publish", []string{RoleUser}, Operation{ResourcePost, ActionUpdatePublished}, entity.ErrForbidden},
		{"editor writes homepage", []string{RoleEditor}, Operation{ResourceHomepage, ActionUpdate}, nil},
		{"editor publishes pages", []string{RoleEditor}, Operation{ResourcePage, ActionUpdatePublished}, nil},
		{"moderator publishes posts", []string{RoleModerator}, Operation{ResourcePost, ActionUpdatePublished}, nil},
		{"moderator cannot write", []string{RoleModerator}, Operation{ResourcePost, ActionUpdate}, entity.ErrForbidden},
		{"unknown role", []string{"GUEST"}, Operation{ResourcePost, ActionFindAll}, entity.ErrForbidden},
		{"no roles", nil, Operation{ResourcePost, ActionFindAll}, entity.ErrForbidden},
		{"any role grants", []string{"GUEST", RoleUser}, Operation{ResourceLink, ActionFindByID}, nil},
		{"unknown operation fails closed", []string{RoleAdmin}, Operation{ResourceHomepage, ActionUpdatePublished}, entity.ErrForbidden},
		{"unknown resource fails closed", []string{RoleAdmin}, Operation{"comment", ActionDelete}, entity.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := gate.Authorize(ctxAs(tt.roles...), tt.op)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestGate_Authorize_NoPrincipal(t *testing.T) {
	gate := NewGate(nil, nil)

	err := gate.Authorize(context.Background(), Operation{ResourcePost, ActionFindAll})
	require.Error(t, err)
	assert.True(t, errors.Is(err, entity.ErrUnauthenticated))

	err = gate.Authorize(WithPrincipal(context.Background(), Principal{Roles: []string{RoleAdmin}}), Operation{ResourcePost, ActionFindAll})
	assert.True(t, errors.Is(err, entity.ErrUnauthenticated), "a principal without subject is not authenticated")
}

func TestGate_Authorize_CustomGrants(t *testing.T) {
	gate := NewGate(Grants{"TRANSLATOR": {"post:*", "language:read"}}, nil)

	assert.NoError(t, gate.Authorize(ctxAs("TRANSLATOR"), Operation{ResourcePost, ActionUpdatePublished}))
	assert.NoError(t, gate.Authorize(ctxAs("TRANSLATOR"), Operation{ResourceLanguage, ActionFindAll}))
	assert.ErrorIs(t, gate.Authorize(ctxAs("TRANSLATOR"), Operation{ResourcePage, ActionFindAll}), entity.ErrForbidden)
	assert.ErrorIs(t, gate.Authorize(ctxAs(RoleAdmin), Operation{ResourcePage, ActionFindAll}), entity.ErrForbidden,
		"custom grants replace the defaults")
}

func TestGate_Authorize_CountsForbidden(t *testing.T) {
	forbiddenAttempts.Reset()
	gate := NewGate(nil, nil)

	_ = gate.Authorize(ctxAs(RoleUser), Operation{ResourcePost, ActionDelete})
	_ = gate.Authorize(ctxAs(RoleUser), Operation{ResourcePost, ActionDelete})
	_ = gate.Authorize(ctxAs(RoleUser), Operation{ResourcePost, ActionFindAll})

	assert.Equal(t, 2.0, testutil.ToFloat64(forbiddenAttempts.WithLabelValues(RoleUser, ResourcePost)))
}

func TestMatchPermission(t *testing.T) {
	tests := []struct {
		pattern string
		perm    Permission
		want    bool
	}{
		{"*", "post:write", true},
		{"post:*", "post:publish", true},
		{"post:*", "page:read", false},
		{"*:read", "userbio:read", true},
		{"*:read", "userbio:write", false},
		{"post:publish", "post:publish", true},
		{"post:publish", "page:publish", false},
		{"post", "post:read", false},
		{"", "post:read", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+" "+string(tt.perm), func(t *testing.T) {
			assert.Equal(t, tt.want, matchPermission(tt.pattern, tt.perm))
		})
	}
}

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()

	perm, ok := p.Required(Operation{ResourceUserBio, ActionUpdateContent})
	require.True(t, ok)
	assert.Equal(t, Permission("userbio:write"), perm)

	perm, ok = p.Required(Operation{ResourcePage, ActionUpdatePublished})
	require.True(t, ok)
	assert.Equal(t, Permission("page:publish"), perm)

	_, ok = p.Required(Operation{ResourceLanguage, ActionUpdate})
	assert.False(t, ok, "languages are immutable")

	for op, perm := range p {
		assert.Contains(t, string(perm), op.Resource+":", op.String())
	}
}

func TestGrants_Merge(t *testing.T) {
	merged := DefaultGrants().Merge(Grants{RoleUser: {"*:read", "post:write"}, "AUDITOR": {"*:read"}})

	assert.Equal(t, []string{"*"}, merged[RoleAdmin])
	assert.Equal(t, []string{"*:read", "post:write"}, merged[RoleUser])
	assert.Contains(t, merged, "AUDITOR")
}
