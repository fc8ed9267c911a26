// Package oidc verifies bearer tokens issued by the identity provider and turns their
// claims into an authz.Principal.
package oidc

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"lingua-cms/pkg/config"
)

// Config configures a Verifier.
type Config struct {
	// Issuer must equal the iss claim when set.
	Issuer string
	// Audience must be contained in the aud claim when set.
	Audience string
	// JWKSURI is where the signing keys are published.
	JWKSURI string
	// RolesClaim is a dotted path to the role list, e.g. "realm_access.roles".
	RolesClaim string
	// JWKSTTL is how long a downloaded key set is trusted.
	JWKSTTL time.Duration
	// Leeway absorbs clock skew on exp and iat.
	Leeway time.Duration
	// MinRefreshInterval throttles downloads caused by unknown key ids.
	MinRefreshInterval time.Duration

	HTTPClient *http.Client
}

// LoadConfig reads the OIDC_* environment variables.
// OIDC_JWKS_URI wins over the URI derived from OIDC_USERINFO_URI.
func LoadConfig() Config {
	jwks := config.GetEnvString("OIDC_JWKS_URI", "")
	if jwks == "" {
		jwks = JWKSURIFromUserInfo(config.GetEnvString("OIDC_USERINFO_URI", ""))
	}
	return Config{
		Issuer:             config.GetEnvString("OIDC_ISSUER", ""),
		Audience:           config.GetEnvString("OIDC_AUDIENCE", ""),
		JWKSURI:            jwks,
		RolesClaim:         config.GetEnvString("OIDC_ROLES_CLAIM", "roles"),
		JWKSTTL:            config.GetEnvDuration("OIDC_JWKS_TTL", 6*time.Hour),
		Leeway:             config.GetEnvDuration("OIDC_LEEWAY", time.Minute),
		MinRefreshInterval: config.GetEnvDuration("OIDC_JWKS_MIN_REFRESH", 10*time.Second),
	}
}

// JWKSURIFromUserInfo derives the certificate endpoint from a userinfo endpoint, the layout
// Keycloak style providers use: .../protocol/openid-connect/userinfo → .../certs.
func JWKSURIFromUserInfo(userInfo string) string {
	userInfo = strings.TrimSpace(userInfo)
	if userInfo == "" {
		return ""
	}
	if i := strings.LastIndex(userInfo, "/userinfo"); i >= 0 {
		return userInfo[:i] + "/certs" + userInfo[i+len("/userinfo"):]
	}
	return userInfo
}

func (c *Config) setDefaults() error {
	if strings.TrimSpace(c.JWKSURI) == "" {
		return errors.New("oidc: JWKS URI is required (OIDC_JWKS_URI or OIDC_USERINFO_URI)")
	}
	if c.RolesClaim == "" {
		c.RolesClaim = "roles"
	}
	if c.JWKSTTL <= 0 {
		c.JWKSTTL = 6 * time.Hour
	}
	if c.Leeway < 0 {
		c.Leeway = 0
	}
	if c.MinRefreshInterval <= 0 {
		c.MinRefreshInterval = 10 * time.Second
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}
	return nil
}
