package domain

// Role is the closed set of access profiles a user can hold.
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleManager   Role = "MANAGER"
	RoleDeveloper Role = "DEV"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleDeveloper:
		return true
	}
	return false
}

// SeesAllOrders reports whether the role reads the full order list. Developers
// (and anything unrecognised) only see orders assigned to themselves.
func (r Role) SeesAllOrders() bool {
	switch r {
	case RoleAdmin, RoleManager:
		return true
	default:
		return false
	}
}

// SeesRevenue reports whether financial figures are shown to the role.
func (r Role) SeesRevenue() bool {
	switch r {
	case RoleAdmin, RoleManager:
		return true
	default:
		return false
	}
}

// CanCreateOrders reports whether the role may open new service orders.
func (r Role) CanCreateOrders() bool {
	switch r {
	case RoleAdmin, RoleManager:
		return true
	default:
		return false
	}
}

// Label is the human-facing name of the role.
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Administrator"
	case RoleManager:
		return "Account Manager"
	case RoleDeveloper:
		return "Developer"
	default:
		return string(r)
	}
}

// User models an agency team member. Users are seeded once and never change.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	Avatar string `json:"avatar"`
}
