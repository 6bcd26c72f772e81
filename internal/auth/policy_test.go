package auth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicyRole(t *testing.T) {
	p := NewPolicy([]string{"Admin@Example.com", " boss@example.com "}, nil)

	assert.Equal(t, RoleAdmin, p.Role("admin@example.com"))
	assert.Equal(t, RoleAdmin, p.Role("ADMIN@EXAMPLE.COM"))
	assert.Equal(t, RoleAdmin, p.Role("boss@example.com"))
	assert.Equal(t, RoleUser, p.Role("alice@example.com"))
}

func TestPolicyIsAllowed(t *testing.T) {
	p := NewPolicy([]string{"admin@example.com"}, nil)

	assert.True(t, p.IsAllowed("admin@example.com", "/automations"))
	assert.False(t, p.IsAllowed("alice@example.com", "/automations"))

	assert.True(t, p.IsAllowed("alice@example.com", "/tasks"))
	assert.True(t, p.IsAllowed("admin@example.com", "/tasks"))

	// Unknown paths are denied for everyone, admins included.
	assert.False(t, p.IsAllowed("admin@example.com", "/secret"))
	assert.False(t, p.IsAllowed("alice@example.com", ""))
}

func TestPolicyAccessiblePagesOrder(t *testing.T) {
	p := NewPolicy(nil, []PageAccess{
		{Path: "/c", Label: "C", AllowedRoles: []Role{RoleUser}},
		{Path: "/a", Label: "A", AllowedRoles: []Role{RoleAdmin}},
		{Path: "/b", Label: "B", AllowedRoles: []Role{RoleAdmin, RoleUser}},
	})

	pages := p.AccessiblePages("alice@example.com")
	require.Len(t, pages, 2)
	assert.Equal(t, "/c", pages[0].Path)
	assert.Equal(t, "/b", pages[1].Path)
}

func TestLoadPages(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pages.yaml")
	data := `
- path: /
  label: Home
  allowed_roles: [admin]
- path: /reports
  label: Reports
  allowed_roles: [admin, user]
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	pages, err := LoadPages(path)
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, "/reports", pages[1].Path)
	assert.Equal(t, []Role{RoleAdmin, RoleUser}, pages[1].AllowedRoles)
}

func TestLoadPagesEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pages.yaml")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o600))

	_, err := LoadPages(path)
	assert.Error(t, err)
}
