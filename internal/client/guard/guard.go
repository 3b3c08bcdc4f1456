// Package guard decides whether the current session may open a route.
package guard

import (
	"slices"

	"github.com/smartshelf/inventory-system/internal/core/domain"
)

const (
	PathRoot           = "/"
	PathLogin          = "/login"
	PathRegister       = "/register"
	PathDashboard      = "/dashboard"
	PathAdminDashboard = "/admin-dashboard"
	PathUserDashboard  = "/user-dashboard"
	PathSalesReport    = "/sales-report"
	PathForecast       = "/forecast"
	PathAdminUsers     = "/admin/users"
)

// Route is a navigable page and the roles allowed on it.
type Route struct {
	Path    string
	Allowed []domain.Role
	Public  bool
}

var (
	managers = []domain.Role{domain.RoleStoreManager, domain.RoleAdmin}
	admins   = []domain.Role{domain.RoleAdmin}
)

// Table is the full set of routes.
var Table = []Route{
	{Path: PathLogin, Public: true},
	{Path: PathRegister, Public: true},
	{Path: PathDashboard, Allowed: managers},
	{Path: PathAdminDashboard, Allowed: admins},
	{Path: PathUserDashboard, Allowed: domain.Roles},
	{Path: PathSalesReport, Allowed: managers},
	{Path: PathForecast, Allowed: managers},
	{Path: PathAdminUsers, Allowed: admins},
}

var aliases = map[string]string{
	PathRoot: PathLogin,
}

// Lookup finds the route for path, resolving aliases.
func Lookup(path string) (Route, bool) {
	if target, ok := aliases[path]; ok {
		path = target
	}
	for _, r := range Table {
		if r.Path == path {
			return r, true
		}
	}
	return Route{}, false
}

// Permits reports whether role is in the route's allow-set.
func (r Route) Permits(role domain.Role) bool {
	return slices.Contains(r.Allowed, role)
}

type Outcome int

const (
	Allow Outcome = iota
	RedirectLogin
	RedirectHome
)

func (o Outcome) String() string {
	switch o {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect-login"
	case RedirectHome:
		return "redirect-home"
	}
	return "unknown"
}

type Decision struct {
	Outcome Outcome
	Target  string
}

// SessionReader is the read side of the session.
type SessionReader interface {
	Token() (string, bool)
	Role() (domain.Role, bool)
}

// Decide evaluates route against the current session. It has no side
// effects and must run on every navigation.
func Decide(s SessionReader, route Route) Decision {
	if route.Public {
		return Decision{Outcome: Allow, Target: route.Path}
	}

	if _, ok := s.Token(); !ok {
		return Decision{Outcome: RedirectLogin, Target: PathLogin}
	}
	role, ok := s.Role()
	if !ok || !role.Valid() {
		return Decision{Outcome: RedirectLogin, Target: PathLogin}
	}

	if !route.Permits(role) {
		return Decision{Outcome: RedirectHome, Target: HomeRoute(role)}
	}
	return Decision{Outcome: Allow, Target: route.Path}
}

// HomeRoute is the landing page for role.
func HomeRoute(role domain.Role) string {
	switch role {
	case domain.RoleAdmin:
		return PathAdminDashboard
	case domain.RoleStoreManager:
		return PathDashboard
	case domain.RoleUser:
		return PathUserDashboard
	}
	return PathLogin
}
