package domain

// Role represents a user role carried in the access token
type Role string

const (
	RoleStudent      Role = "student"
	RoleFaculty      Role = "faculty"
	RoleAdmin        Role = "admin"
	RoleLabAssistant Role = "lab_assistant"
)

// IsValid reports whether the role is known
func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleFaculty, RoleAdmin, RoleLabAssistant:
		return true
	}
	return false
}

// IsAdmin returns true for the administrator role
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// IsPrivileged returns true for roles that see per-booking details
func (r Role) IsPrivileged() bool {
	return r == RoleAdmin || r == RoleLabAssistant
}

// Identity authenticated caller
type Identity struct {
	UserID string
	Role   Role
}

// HasRole reports whether the caller has one of the given roles
func (i Identity) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if i.Role == r {
			return true
		}
	}
	return false
}
