package workflow

// Actor is the acting user as the engine sees it: a set of role memberships.
type Actor interface {
	HasRole(role Role) bool
	IsAdmin() bool
}

// RoleSet is a minimal Actor backed by a set of role names.
type RoleSet map[Role]struct{}

func NewRoleSet(roles ...Role) RoleSet {
	s := make(RoleSet, len(roles))
	for _, r := range roles {
		s[r] = struct{}{}
	}
	return s
}

func (s RoleSet) HasRole(role Role) bool {
	_, ok := s[role]
	return ok
}

func (s RoleSet) IsAdmin() bool {
	_, ok := s[AdminRole]
	return ok
}
