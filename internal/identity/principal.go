package identity

const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
	RoleHR       = "hr"
	RoleAdmin    = "admin"
)

// Principal is the authenticated caller, bound to exactly one organization.
// Dibuat ulang tiap request dan langsung dibuang; tidak pernah dipersist.
type Principal struct {
	UserID         string
	OrganizationID string
	Role           string
}

func (p Principal) HasRole(roles ...string) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}
