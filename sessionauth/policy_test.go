package sessionauth

import (
	"net/http"
	"testing"
)

func TestRoutePolicyAllowsRole(t *testing.T) {
	tests := []struct {
		name    string
		policy  RoutePolicy
		role    Role
		allowed bool
	}{
		{
			name:    "no declared roles is permissive",
			policy:  RoutePolicy{},
			role:    RoleUser,
			allowed: true,
		},
		{
			name:    "declared role matches",
			policy:  RoutePolicy{Roles: []Role{RoleAdmin}},
			role:    RoleAdmin,
			allowed: true,
		},
		{
			name:    "declared role does not match",
			policy:  RoutePolicy{Roles: []Role{RoleAdmin}},
			role:    RoleUser,
			allowed: false,
		},
		{
			name:    "multiple declared roles",
			policy:  RoutePolicy{Roles: []Role{RoleAdmin, RoleUser}},
			role:    RoleUser,
			allowed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.policy.AllowsRole(tt.role); got != tt.allowed {
				t.Errorf("AllowsRole(%s) = %v, want %v", tt.role, got, tt.allowed)
			}
		})
	}
}

func TestPolicyTableResolution(t *testing.T) {
	table := NewPolicyTable()
	table.GroupDefault("/auth", RoutePolicy{})
	table.GroupDefault("/admin", RoutePolicy{Roles: []Role{RoleAdmin}})
	table.GroupDefault("/admin/reports", RoutePolicy{Roles: []Role{RoleAdmin, RoleUser}})
	table.Public(http.MethodPost, "/auth/login")
	table.Public(http.MethodGet, "/health")
	table.Restrict(http.MethodDelete, "/admin/reports/:id", RoleAdmin)

	tests := []struct {
		name   string
		method string
		path   string
		want   RoutePolicy
	}{
		{
			name:   "explicit route marker overrides group default",
			method: http.MethodPost,
			path:   "/auth/login",
			want:   RoutePolicy{Public: true},
		},
		{
			name:   "group default applies to unmarked route",
			method: http.MethodGet,
			path:   "/auth/profile",
			want:   RoutePolicy{},
		},
		{
			name:   "longest matching group prefix wins",
			method: http.MethodGet,
			path:   "/admin/reports/weekly",
			want:   RoutePolicy{Roles: []Role{RoleAdmin, RoleUser}},
		},
		{
			name:   "shorter group prefix still matches",
			method: http.MethodGet,
			path:   "/admin/settings",
			want:   RoutePolicy{Roles: []Role{RoleAdmin}},
		},
		{
			name:   "per-route restriction overrides nested group",
			method: http.MethodDelete,
			path:   "/admin/reports/:id",
			want:   RoutePolicy{Roles: []Role{RoleAdmin}},
		},
		{
			name:   "method is part of the route key",
			method: http.MethodGet,
			path:   "/auth/login",
			want:   RoutePolicy{},
		},
		{
			name:   "unregistered route defaults to protected",
			method: http.MethodGet,
			path:   "/classes",
			want:   RoutePolicy{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := table.Lookup(tt.method, tt.path)
			if got.Public != tt.want.Public || len(got.Roles) != len(tt.want.Roles) {
				t.Fatalf("Lookup(%s %s) = %+v, want %+v", tt.method, tt.path, got, tt.want)
			}
			for i := range got.Roles {
				if got.Roles[i] != tt.want.Roles[i] {
					t.Fatalf("Lookup(%s %s) = %+v, want %+v", tt.method, tt.path, got, tt.want)
				}
			}
		})
	}
}
