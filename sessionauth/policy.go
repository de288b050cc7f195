package sessionauth

import "strings"

// RoutePolicy declares the auth requirements for a route. The zero value is
// the strictest useful policy: authentication required, any role accepted.
type RoutePolicy struct {
	// Public marks the route reachable without a session token.
	Public bool

	// Roles restricts the route to the listed roles. Empty means any
	// authenticated identity is accepted.
	Roles []Role
}

// AllowsRole reports whether the policy admits the given role.
// A policy with no declared roles is permissive, not restrictive.
func (p RoutePolicy) AllowsRole(role Role) bool {
	if len(p.Roles) == 0 {
		return true
	}
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// PolicyTable is a static registration of route policies consulted by the
// access guard at dispatch time. It replaces runtime marker reflection:
// routes and groups are declared once, before the server starts serving.
//
// Resolution is most-specific-first: an explicit per-route policy overrides
// the default of the longest containing group prefix.
//
// The table is not safe for concurrent mutation; register everything during
// wiring, before the first request.
type PolicyTable struct {
	routes map[string]RoutePolicy
	groups map[string]RoutePolicy
}

// NewPolicyTable creates an empty policy table
func NewPolicyTable() *PolicyTable {
	return &PolicyTable{
		routes: make(map[string]RoutePolicy),
		groups: make(map[string]RoutePolicy),
	}
}

// Route declares the policy for a single method+path pair. The path must
// match the router's route pattern, not the concrete request URL.
func (t *PolicyTable) Route(method, path string, policy RoutePolicy) *PolicyTable {
	t.routes[routeKey(method, path)] = policy
	return t
}

// Public marks a single route reachable without authentication
func (t *PolicyTable) Public(method, path string) *PolicyTable {
	return t.Route(method, path, RoutePolicy{Public: true})
}

// Restrict requires authentication plus one of the listed roles
func (t *PolicyTable) Restrict(method, path string, roles ...Role) *PolicyTable {
	return t.Route(method, path, RoutePolicy{Roles: roles})
}

// GroupDefault declares the fallback policy for every route under the given
// path prefix. Per-route declarations override it.
func (t *PolicyTable) GroupDefault(prefix string, policy RoutePolicy) *PolicyTable {
	t.groups[prefix] = policy
	return t
}

// Lookup resolves the policy for a dispatched route. Unregistered routes
// resolve to the zero policy: authentication required.
func (t *PolicyTable) Lookup(method, path string) RoutePolicy {
	if policy, ok := t.routes[routeKey(method, path)]; ok {
		return policy
	}

	var (
		best    RoutePolicy
		bestLen = -1
	)
	for prefix, policy := range t.groups {
		if strings.HasPrefix(path, prefix) && len(prefix) > bestLen {
			best = policy
			bestLen = len(prefix)
		}
	}
	if bestLen >= 0 {
		return best
	}

	return RoutePolicy{}
}

func routeKey(method, path string) string {
	return method + " " + path
}
