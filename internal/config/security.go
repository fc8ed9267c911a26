// Package config loads the security settings kept in config/security.yaml: role grants,
// extra public endpoints and token validation overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"lingua-cms/internal/infra/oidc"
	"lingua-cms/internal/service/authz"
)

// DefaultSecurityPath is used when SECURITY_CONFIG is not set.
const DefaultSecurityPath = "config/security.yaml"

// SecurityConfig mirrors security.yaml.
type SecurityConfig struct {
	Security struct {
		// Roles replaces the built-in grants of the roles it names.
		Roles           map[string][]string `yaml:"roles"`
		PublicEndpoints []string            `yaml:"public_endpoints"`
		OIDC            struct {
			Issuer     string `yaml:"issuer"`
			Audience   string `yaml:"audience"`
			RolesClaim string `yaml:"roles_claim"`
		} `yaml:"oidc"`
	} `yaml:"security"`
}

// LoadSecurityConfig reads and validates the file at path.
// A missing file yields an empty config when optional is true.
func LoadSecurityConfig(path string, optional bool) (*SecurityConfig, error) {
	// #nosec G304 -- path comes from the process environment, not from requests
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return &SecurityConfig{}, nil
		}
		return nil, fmt.Errorf("read security config: %w", err)
	}
	return ParseSecurityConfig(data)
}

// ParseSecurityConfig decodes and validates YAML. Unknown keys are rejected.
func ParseSecurityConfig(data []byte) (*SecurityConfig, error) {
	var cfg SecurityConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse security config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("security config: %w", err)
	}
	return &cfg, nil
}

func (c *SecurityConfig) validate() error {
	for role, patterns := range c.Security.Roles {
		if strings.TrimSpace(role) == "" {
			return errors.New("role name must not be empty")
		}
		for _, p := range patterns {
			if err := validatePattern(p); err != nil {
				return fmt.Errorf("role %s: %w", role, err)
			}
		}
	}
	for _, ep := range c.Security.PublicEndpoints {
		if !strings.HasPrefix(ep, "/") {
			return fmt.Errorf("public endpoint %q must start with /", ep)
		}
	}
	return nil
}

// validatePattern accepts "*" or "<resource|*>:<read|write|publish|*>".
func validatePattern(p string) error {
	if p == "*" {
		return nil
	}
	res, access, ok := strings.Cut(p, ":")
	if !ok || res == "" {
		return fmt.Errorf("invalid permission pattern %q", p)
	}
	switch authz.Access(access) {
	case authz.AccessRead, authz.AccessWrite, authz.AccessPublish, "*":
		return nil
	}
	return fmt.Errorf("invalid access level in %q", p)
}

// Grants returns the built-in grants with the configured roles applied on top.
func (c *SecurityConfig) Grants() authz.Grants {
	return authz.DefaultGrants().Merge(authz.Grants(c.Security.Roles))
}

// PublicEndpoints returns the configured extra public endpoints.
func (c *SecurityConfig) PublicEndpoints() []string {
	return c.Security.PublicEndpoints
}

// ApplyOIDC fills settings the environment left empty.
// OIDC_ROLES_CLAIM defaults to "roles", so roles_claim only applies while it is unset.
func (c *SecurityConfig) ApplyOIDC(cfg *oidc.Config) {
	o := c.Security.OIDC
	if cfg.Issuer == "" {
		cfg.Issuer = o.Issuer
	}
	if cfg.Audience == "" {
		cfg.Audience = o.Audience
	}
	if o.RolesClaim != "" && os.Getenv("OIDC_ROLES_CLAIM") == "" {
		cfg.RolesClaim = o.RolesClaim
	}
}
