package auth

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Role is derived from the admin allow-list on every check; it is
// never stored.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// PageAccess declares which roles may open a page. Table order is the
// sidebar order, so it is preserved by AccessiblePages.
type PageAccess struct {
	Path         string `yaml:"path" json:"path"`
	Label        string `yaml:"label" json:"label"`
	AllowedRoles []Role `yaml:"allowed_roles" json:"allowedRoles"`
}

// DefaultPages is the hand-authored access table. Paths not listed
// here are inaccessible to everyone.
func DefaultPages() []PageAccess {
	return []PageAccess{
		{Path: "/", Label: "Home", AllowedRoles: []Role{RoleAdmin}},
		{Path: "/tasks", Label: "Tasks", AllowedRoles: []Role{RoleAdmin, RoleUser}},
		{Path: "/projects", Label: "Projects", AllowedRoles: []Role{RoleAdmin, RoleUser}},
		{Path: "/metrics", Label: "Metrics", AllowedRoles: []Role{RoleAdmin}},
		{Path: "/automations", Label: "Control Panel", AllowedRoles: []Role{RoleAdmin}},
		{Path: "/tools", Label: "Tools", AllowedRoles: []Role{RoleAdmin}},
		{Path: "/request", Label: "New Request", AllowedRoles: []Role{RoleAdmin, RoleUser}},
	}
}

// LoadPages reads a page-access table from a YAML file, replacing the
// built-in table for deployments that need a different one.
func LoadPages(path string) ([]PageAccess, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var pages []PageAccess
	if err := yaml.Unmarshal(b, &pages); err != nil {
		return nil, fmt.Errorf("policy file %s: %w", path, err)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("policy file %s: empty table", path)
	}
	return pages, nil
}

// Policy answers role and page-access questions. Immutable after
// construction; safe for concurrent reads.
type Policy struct {
	admins map[string]struct{}
	pages  []PageAccess
}

// NewPolicy builds a policy from the admin allow-list and an access
// table; a nil table means DefaultPages.
func NewPolicy(adminEmails []string, pages []PageAccess) *Policy {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		admins[strings.ToLower(strings.TrimSpace(e))] = struct{}{}
	}
	if pages == nil {
		pages = DefaultPages()
	}
	return &Policy{admins: admins, pages: pages}
}

func (p *Policy) IsAdmin(email string) bool {
	_, ok := p.admins[strings.ToLower(email)]
	return ok
}

func (p *Policy) Role(email string) Role {
	if p.IsAdmin(email) {
		return RoleAdmin
	}
	return RoleUser
}

// IsAllowed checks page access by exact path match. Unknown paths are
// denied for every role.
func (p *Policy) IsAllowed(email, path string) bool {
	role := p.Role(email)
	for _, page := range p.pages {
		if page.Path == path {
			return roleIn(role, page.AllowedRoles)
		}
	}
	return false
}

// AccessiblePages filters the table by the caller's role, preserving
// declaration order for navigation.
func (p *Policy) AccessiblePages(email string) []PageAccess {
	role := p.Role(email)
	out := make([]PageAccess, 0, len(p.pages))
	for _, page := range p.pages {
		if roleIn(role, page.AllowedRoles) {
			out = append(out, page)
		}
	}
	return out
}

func roleIn(role Role, roles []Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
