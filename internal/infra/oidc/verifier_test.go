package oidc

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lingua-cms/internal/domain/entity"
)

const (
	testIssuer   = "https://id.example.com/realms/cms"
	testAudience = "lingua-cms"
)

type provider struct {
	rsaKey  *rsa.PrivateKey
	ecKey   *ecdsa.PrivateKey
	srv     *httptest.Server
	fetches atomic.Int32
}

func newProvider(t *testing.T) *provider {
	t.Helper()
	rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	ecKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	p := &provider{rsaKey: rsaKey, ecKey: ecKey}
	p.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p.fetches.Add(1)
		enc := base64.RawURLEncoding
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"keys": []map[string]string{
			{"kty": "RSA", "kid": "rsa-1", "use": "sig", "n": enc.EncodeToString(rsaKey.N.Bytes()), "e": enc.EncodeToString(big.NewInt(int64(rsaKey.E)).Bytes())},
			{"kty": "EC", "kid": "ec-1", "crv": "P-256", "x": enc.EncodeToString(ecKey.X.Bytes()), "y": enc.EncodeToString(ecKey.Y.Bytes())},
			{"kty": "oct", "kid": "hmac", "k": "c2VjcmV0"},
		}})
	}))
	t.Cleanup(p.srv.Close)
	return p
}

func (p *provider) verifier(t *testing.T) *Verifier {
	t.Helper()
	v, err := NewVerifier(Config{
		Issuer:     testIssuer,
		Audience:   testAudience,
		JWKSURI:    p.srv.URL,
		RolesClaim: "realm_access.roles",
		Leeway:     time.Minute,
	}, nil)
	require.NoError(t, err)
	return v
}

func validClaims() jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"sub":          "auth0|42",
		"iss":          testIssuer,
		"aud":          []string{testAudience, "account"},
		"exp":          now.Add(time.Hour).Unix(),
		"iat":          now.Add(-time.Minute).Unix(),
		"realm_access": map[string]any{"roles": []string{"EDITOR", "USER"}},
	}
}

func (p *provider) sign(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	tok.Header["kid"] = "rsa-1"
	s, err := tok.SignedString(p.rsaKey)
	require.NoError(t, err)
	return s
}

func TestVerify_Valid(t *testing.T) {
	p := newProvider(t)
	v := p.verifier(t)

	got, err := v.Verify(context.Background(), p.sign(t, validClaims()))
	require.NoError(t, err)
	assert.Equal(t, "auth0|42", got.Subject)
	assert.Equal(t, []string{"EDITOR", "USER"}, got.Roles)
}

func TestVerify_ES256(t *testing.T) {
	p := newProvider(t)
	tok := jwt.NewWithClaims(jwt.SigningMethodES256, validClaims())
	tok.Header["kid"] = "ec-1"
	raw, err := tok.SignedString(p.ecKey)
	require.NoError(t, err)

	_, err = p.verifier(t).Verify(context.Background(), raw)
	assert.NoError(t, err)
}

func TestVerify_Rejects(t *testing.T) {
	p := newProvider(t)
	other, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token func() string
	}{
		{"empty", func() string { return "" }},
		{"garbage", func() string { return "not.a.jwt" }},
		{"missing aud", func() string {
			c := validClaims()
			delete(c, "aud")
			return p.sign(t, c)
		}},
		{"missing iat", func() string {
			c := validClaims()
			delete(c, "iat")
			return p.sign(t, c)
		}},
		{"missing exp", func() string {
			c := validClaims()
			delete(c, "exp")
			return p.sign(t, c)
		}},
		{"missing sub", func() string {
			c := validClaims()
			delete(c, "sub")
			return p.sign(t, c)
		}},
		{"expired", func() string {
			c := validClaims()
			c["exp"] = time.Now().Add(-time.Hour).Unix()
			return p.sign(t, c)
		}},
		{"issued in the future", func() string {
			c := validClaims()
			c["iat"] = time.Now().Add(time.Hour).Unix()
			return p.sign(t, c)
		}},
		{"wrong issuer", func() string {
			c := validClaims()
			c["iss"] = "https://evil.example.com"
			return p.sign(t, c)
		}},
		{"wrong audience", func() string {
			c := validClaims()
			c["aud"] = "someone-else"
			return p.sign(t, c)
		}},
		{"foreign signature", func() string {
			tok := jwt.NewWithClaims(jwt.SigningMethodRS256, validClaims())
			tok.Header["kid"] = "rsa-1"
			s, _ := tok.SignedString(other)
			return s
		}},
		{"hmac", func() string {
			tok := jwt.NewWithClaims(jwt.SigningMethodHS256, validClaims())
			tok.Header["kid"] = "hmac"
			s, _ := tok.SignedString([]byte("secret"))
			return s
		}},
		{"no kid", func() string {
			s, _ := jwt.NewWithClaims(jwt.SigningMethodRS256, validClaims()).SignedString(p.rsaKey)
			return s
		}},
		{"unknown kid", func() string {
			tok := jwt.NewWithClaims(jwt.SigningMethodRS256, validClaims())
			tok.Header["kid"] = "rotated-away"
			s, _ := tok.SignedString(p.rsaKey)
			return s
		}},
	}

	v := p.verifier(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Verify(context.Background(), tt.token())
			assert.ErrorIs(t, err, entity.ErrUnauthenticated)
			assert.EqualError(t, err, "invalid bearer token")
		})
	}
}

func TestVerify_KeySetIsCached(t *testing.T) {
	p := newProvider(t)
	v := p.verifier(t)
	raw := p.sign(t, validClaims())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := v.Verify(context.Background(), raw)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), p.fetches.Load())
	before := p.fetches.Load()
	_, err := v.Verify(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, before, p.fetches.Load())
}

func TestVerify_RefreshesStaleKeySet(t *testing.T) {
	p := newProvider(t)
	v := p.verifier(t)
	clock := time.Now()
	v.keys.now = func() time.Time { return clock }
	raw := p.sign(t, validClaims())

	_, err := v.Verify(context.Background(), raw)
	require.NoError(t, err)
	require.Equal(t, int32(1), p.fetches.Load())

	clock = clock.Add(7 * time.Hour)
	_, err = v.Verify(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, int32(2), p.fetches.Load())
}

func TestVerify_UnknownKidRefreshIsThrottled(t *testing.T) {
	p := newProvider(t)
	v := p.verifier(t)
	_, err := v.Verify(context.Background(), p.sign(t, validClaims()))
	require.NoError(t, err)

	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, validClaims())
	tok.Header["kid"] = "new-key"
	raw, err := tok.SignedString(p.rsaKey)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, err := v.Verify(context.Background(), raw)
		assert.ErrorIs(t, err, entity.ErrUnauthenticated)
	}
	assert.Equal(t, int32(2), p.fetches.Load())
}

/* ──── 共有ダウンロードと呼び出し元のキャンセル ──── */

func TestKeySet_CancelledCallerDoesNotAbortSharedRefresh(t *testing.T) {
	p := newProvider(t)
	started := make(chan struct{}, 1)
	release := make(chan struct{})
	var releaseOnce sync.Once
	unblock := func() { releaseOnce.Do(func() { close(release) }) }

	gated := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case started <- struct{}{}:
		default:
		}
		<-release
		p.srv.Config.Handler.ServeHTTP(w, r)
	}))
	t.Cleanup(gated.Close)
	t.Cleanup(unblock)

	v, err := NewVerifier(Config{JWKSURI: gated.URL}, nil)
	require.NoError(t, err)

	// 最初の呼び出し元はダウンロード中にキャンセルされる
	ctx, cancel := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() {
		_, err := v.keys.Key(ctx, "rsa-1")
		first <- err
	}()
	<-started

	second := make(chan error, 1)
	go func() {
		_, err := v.keys.Key(context.Background(), "rsa-1")
		second <- err
	}()

	cancel()
	assert.ErrorIs(t, <-first, context.Canceled)

	unblock()
	assert.NoError(t, <-second)

	key, err := v.keys.Key(context.Background(), "rsa-1")
	require.NoError(t, err)
	assert.NotNil(t, key)
	assert.Equal(t, int32(1), p.fetches.Load())
}

func TestVerify_ProviderDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not here", http.StatusNotFound)
	}))
	defer srv.Close()
	p := newProvider(t)

	v, err := NewVerifier(Config{JWKSURI: srv.URL}, nil)
	require.NoError(t, err)

	_, err = v.Verify(context.Background(), p.sign(t, validClaims()))
	assert.ErrorIs(t, err, entity.ErrUnauthenticated)
}

func TestNewVerifier_RequiresJWKSURI(t *testing.T) {
	_, err := NewVerifier(Config{}, nil)
	assert.Error(t, err)
}

func TestJWKSURIFromUserInfo(t *testing.T) {
	tests := map[string]string{
		"https://id.example.com/realms/cms/protocol/openid-connect/userinfo": "https://id.example.com/realms/cms/protocol/openid-connect/certs",
		"https://id.example.com/userinfo?x=1":                                "https://id.example.com/certs?x=1",
		"https://id.example.com/keys":                                        "https://id.example.com/keys",
		"":                                                                   "",
	}
	for in, want := range tests {
		assert.Equal(t, want, JWKSURIFromUserInfo(in), in)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("OIDC_JWKS_URI", "")
	t.Setenv("OIDC_USERINFO_URI", "https://id.example.com/protocol/openid-connect/userinfo")
	t.Setenv("OIDC_ROLES_CLAIM", "")
	t.Setenv("OIDC_JWKS_TTL", "30m")

	cfg := LoadConfig()
	assert.Equal(t, "https://id.example.com/protocol/openid-connect/certs", cfg.JWKSURI)
	assert.Equal(t, "roles", cfg.RolesClaim)
	assert.Equal(t, 30*time.Minute, cfg.JWKSTTL)

	t.Setenv("OIDC_JWKS_URI", "https://keys.example.com")
	assert.Equal(t, "https://keys.example.com", LoadConfig().JWKSURI)
}

func TestRolesAt(t *testing.T) {
	claims := jwt.MapClaims{
		"roles":        []any{"ROLE_ADMIN", 7, ""},
		"scope":        "USER EDITOR",
		"realm_access": map[string]any{"roles": []any{"MODERATOR"}},
	}
	assert.Equal(t, []string{"ROLE_ADMIN"}, rolesAt(claims, "roles"))
	assert.Equal(t, []string{"USER", "EDITOR"}, rolesAt(claims, "scope"))
	assert.Equal(t, []string{"MODERATOR"}, rolesAt(claims, "realm_access.roles"))
	assert.Nil(t, rolesAt(claims, "resource_access.cms.roles"))
	assert.Nil(t, rolesAt(claims, "roles.nested"))
}
