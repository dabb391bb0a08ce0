package user

import (
	"encoding/json"
	"strings"
)

const (
	RoleOwner = "owner"
	RoleAdmin = "admin"

	RoleUsers   = "users"
	RolePireps  = "pireps"
	RoleRoutes  = "routes"
	RoleFleet   = "fleet"
	RoleRanks   = "ranks"
	RoleLeave   = "leave"
	RoleEvents  = "events"
	RoleAirline = "airline"
)

// AssignableRoles are the roles an administrator may grant. Owner is never
// assignable.
var AssignableRoles = []string{
	RoleAdmin,
	RoleUsers,
	RolePireps,
	RoleRoutes,
	RoleFleet,
	RoleRanks,
	RoleLeave,
	RoleEvents,
	RoleAirline,
}

func IsAssignable(role string) bool {
	for _, r := range AssignableRoles {
		if r == role {
			return true
		}
	}
	return false
}

// ParseRoles reads the role column. It accepts a JSON array, a comma
// separated list or a single bare role; anything unreadable yields no roles.
func ParseRoles(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}
	}

	if strings.HasPrefix(raw, "[") {
		var roles []string
		if err := json.Unmarshal([]byte(raw), &roles); err != nil {
			return []string{}
		}
		return normalizeRoles(roles)
	}

	return normalizeRoles(strings.Split(raw, ","))
}

// EncodeRoles produces the JSON array stored in the role column.
func EncodeRoles(roles []string) string {
	b, err := json.Marshal(normalizeRoles(roles))
	if err != nil {
		return "[]"
	}
	return string(b)
}

func normalizeRoles(roles []string) []string {
	out := make([]string, 0, len(roles))
	seen := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		r = strings.ToLower(strings.TrimSpace(r))
		if r == "" {
			continue
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}

func HasRole(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasAnyRole reports whether roles grant access to any of required. Owner
// and admin pass every check.
func HasAnyRole(roles []string, required ...string) bool {
	if HasRole(roles, RoleOwner) || HasRole(roles, RoleAdmin) {
		return true
	}
	for _, r := range required {
		if HasRole(roles, r) {
			return true
		}
	}
	return false
}
