package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartshelf/inventory-system/internal/core/domain"
)

type fakeSession struct {
	token string
	role  domain.Role
}

func (f fakeSession) Token() (string, bool)     { return f.token, f.token != "" }
func (f fakeSession) Role() (domain.Role, bool) { return f.role, f.role != "" }

func TestDecide_Matrix(t *testing.T) {
	for _, route := range Table {
		if route.Public {
			continue
		}
		for _, role := range domain.Roles {
			d := Decide(fakeSession{token: "t", role: role}, route)
			if route.Permits(role) {
				assert.Equal(t, Decision{Outcome: Allow, Target: route.Path}, d, "%s on %s", role, route.Path)
			} else {
				assert.Equal(t, Decision{Outcome: RedirectHome, Target: HomeRoute(role)}, d, "%s on %s", role, route.Path)
			}
		}

		d := Decide(fakeSession{}, route)
		assert.Equal(t, Decision{Outcome: RedirectLogin, Target: PathLogin}, d, "anonymous on %s", route.Path)
	}
}

func TestDecide_UserOnManagerRoute(t *testing.T) {
	route, ok := Lookup(PathSalesReport)
	require.True(t, ok)

	d := Decide(fakeSession{token: "t1", role: domain.RoleUser}, route)
	assert.Equal(t, RedirectHome, d.Outcome)
	assert.Equal(t, "/user-dashboard", d.Target)
}

func TestDecide_TokenWithoutRole(t *testing.T) {
	route, _ := Lookup(PathUserDashboard)
	d := Decide(fakeSession{token: "t1"}, route)
	assert.Equal(t, RedirectLogin, d.Outcome)
}

func TestDecide_PublicRoutes(t *testing.T) {
	for _, path := range []string{PathLogin, PathRegister, PathRoot} {
		route, ok := Lookup(path)
		require.True(t, ok, path)
		assert.Equal(t, Allow, Decide(fakeSession{}, route).Outcome, path)
	}
}

func TestLookup(t *testing.T) {
	r, ok := Lookup(PathRoot)
	require.True(t, ok)
	assert.Equal(t, PathLogin, r.Path)

	_, ok = Lookup("/nowhere")
	assert.False(t, ok)
}

func TestHomeRoute(t *testing.T) {
	assert.Equal(t, "/admin-dashboard", HomeRoute(domain.RoleAdmin))
	assert.Equal(t, "/dashboard", HomeRoute(domain.RoleStoreManager))
	assert.Equal(t, "/user-dashboard", HomeRoute(domain.RoleUser))
}

func TestHomeRoutesAreReachable(t *testing.T) {
	for _, role := range domain.Roles {
		route, ok := Lookup(HomeRoute(role))
		require.True(t, ok)
		assert.True(t, route.Permits(role), "%s must be allowed on its home", role)
	}
}
