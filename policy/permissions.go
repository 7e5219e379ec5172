package policy

// Wildcard is the sentinel permission meaning all permissions granted.
const Wildcard = "*"

// Well-known role names.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
	RoleGuest = "guest"
)

// PermissionsFor returns the permission set configured for role. Unknown
// or empty roles resolve to the guest set: the lowest privilege, never an
// empty-means-admin interpretation. The returned slice is a copy.
func (rs *RuleSet) PermissionsFor(role string) []string {
	if role == "" {
		role = RoleGuest
	}
	perms, ok := rs.RolePermissions[role]
	if !ok {
		perms = rs.RolePermissions[RoleGuest]
	}
	return append([]string(nil), perms...)
}

// HasAll reports whether granted covers every entry in required. The
// wildcard grant short-circuits before the per-entry check.
func HasAll(granted, required []string) bool {
	for _, g := range granted {
		if g == Wildcard {
			return true
		}
	}

	for _, r := range required {
		found := false
		for _, g := range granted {
			if g == r {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
