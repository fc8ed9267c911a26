package authz

import "strings"

// Role names used by the identity provider.
const (
	RoleAdmin     = "ROLE_ADMIN"
	RoleEditor    = "EDITOR"
	RoleModerator = "MODERATOR"
	RoleUser      = "USER"
)

// Grants maps a role to the permission patterns it holds.
//
// Pattern forms:
//   - "*"             every permission
//   - "post:*"        every access level on one resource
//   - "*:read"        one access level on every resource
//   - "post:publish"  exactly one permission
type Grants map[string][]string

// DefaultGrants returns the built-in role table.
func DefaultGrants() Grants {
	return Grants{
		RoleAdmin:     {"*"},
		RoleEditor:    {"*:read", "*:write", "post:publish", "page:publish"},
		RoleModerator: {"*:read", "post:publish", "page:publish"},
		RoleUser:      {"*:read"},
	}
}

// Merge returns g with the roles of other replacing the same roles of g.
func (g Grants) Merge(other Grants) Grants {
	out := make(Grants, len(g)+len(other))
	for role, patterns := range g {
		out[role] = patterns
	}
	for role, patterns := range other {
		out[role] = patterns
	}
	return out
}

// Allows reports whether any of roles holds perm.
func (g Grants) Allows(roles []string, perm Permission) bool {
	for _, role := range roles {
		for _, pattern := range g[role] {
			if matchPermission(pattern, perm) {
				return true
			}
		}
	}
	return false
}

func matchPermission(pattern string, perm Permission) bool {
	if pattern == "*" {
		return true
	}
	pRes, pAccess, ok := strings.Cut(pattern, ":")
	if !ok {
		return false
	}
	res, access, ok := strings.Cut(string(perm), ":")
	if !ok {
		return false
	}
	return (pRes == "*" || pRes == res) && (pAccess == "*" || pAccess == access)
}
