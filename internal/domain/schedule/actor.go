package schedule

type Role string

const (
	RoleCustomer Role = "customer"
	RoleOwner    Role = "owner"
	RoleStaff    Role = "staff"
	RoleAdmin    Role = "admin"
)

// Actor identifies who is performing an operation. Each role carries only
// what the scheduling core needs; salon ownership is checked against the
// loaded salon, never trusted from the request.
type Actor struct {
	UserID uint
	Role   Role
}

func (a Actor) IsCustomer() bool {
	return a.Role == RoleCustomer
}

// IsSalonSide reports whether the actor acts on behalf of the salon.
func (a Actor) IsSalonSide() bool {
	return a.Role == RoleOwner || a.Role == RoleStaff || a.Role == RoleAdmin
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
