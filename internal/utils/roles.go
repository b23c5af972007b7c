package utils

import "strings"

// Role is the normalized access level attached to every account.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleStaff  Role = "staff"
	RoleClient Role = "client"
)

// roleAliases maps the assorted spellings that have accumulated across
// signup forms, imported spreadsheets, and older token payloads.
var roleAliases = map[string]Role{
	"admin":         RoleAdmin,
	"administrator": RoleAdmin,
	"owner":         RoleAdmin,
	"staff":         RoleStaff,
	"worker":        RoleStaff,
	"employee":      RoleStaff,
	"driver":        RoleStaff,
	"client":        RoleClient,
	"customer":      RoleClient,
	"resident":      RoleClient,
}

// NormalizeRole maps a raw role string to a Role. Unknown or empty
// values fall back to the least-privileged role.
func NormalizeRole(raw string) Role {
	if r, ok := roleAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return r
	}
	return RoleClient
}

// ResolveRole picks the effective role across the sources a request can
// carry, in decreasing order of trust: the profile row, the app_metadata
// claim block, then a top-level role claim.
func ResolveRole(profileRole string, claims map[string]any) Role {
	if strings.TrimSpace(profileRole) != "" {
		return NormalizeRole(profileRole)
	}
	if claims != nil {
		if meta, ok := claims["app_metadata"].(map[string]any); ok {
			if raw, ok := meta["role"].(string); ok && strings.TrimSpace(raw) != "" {
				return NormalizeRole(raw)
			}
		}
		if raw, ok := claims["role"].(string); ok && strings.TrimSpace(raw) != "" {
			return NormalizeRole(raw)
		}
	}
	return RoleClient
}
