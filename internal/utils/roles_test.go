package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeRoleAliases(t *testing.T) {
	require.Equal(t, RoleAdmin, NormalizeRole("Administrator"))
	require.Equal(t, RoleAdmin, NormalizeRole(" owner "))
	require.Equal(t, RoleStaff, NormalizeRole("DRIVER"))
	require.Equal(t, RoleClient, NormalizeRole("resident"))
}

func TestNormalizeRoleUnknownFallsBackToClient(t *testing.T) {
	require.Equal(t, RoleClient, NormalizeRole(""))
	require.Equal(t, RoleClient, NormalizeRole("superuser"))
}

func TestResolveRolePrefersProfile(t *testing.T) {
	claims := map[string]any{"role": "admin"}
	require.Equal(t, RoleStaff, ResolveRole("staff", claims))
}

func TestResolveRoleFromAppMetadata(t *testing.T) {
	claims := map[string]any{
		"app_metadata": map[string]any{"role": "worker"},
		"role":         "admin",
	}
	require.Equal(t, RoleStaff, ResolveRole("", claims))
}

func TestResolveRoleFromTopLevelClaim(t *testing.T) {
	require.Equal(t, RoleAdmin, ResolveRole("", map[string]any{"role": "admin"}))
}

func TestResolveRoleDefault(t *testing.T) {
	require.Equal(t, RoleClient, ResolveRole("", nil))
	require.Equal(t, RoleClient, ResolveRole("  ", map[string]any{}))
}
