package admin

type Role string

const (
	RoleStaff Role = "staff"
	RoleAdmin Role = "admin"
)

var roleRank = map[Role]int{
	RoleStaff: 1,
	RoleAdmin: 2,
}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleStaff, RoleAdmin:
		return true
	default:
		return false
	}
}

// AtLeast reports whether r grants at least the privileges of min.
func (r Role) AtLeast(min Role) bool {
	return roleRank[r] >= roleRank[min] && r.IsValid()
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
