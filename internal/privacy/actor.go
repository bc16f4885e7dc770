package privacy

// Actor is the already-authenticated caller context the protection layer
// works with. Identity and role are established by the host auth layer
// before any evaluation runs; the core never authenticates anyone.
type Actor struct {
	ID   int64
	Role Role
}

// HasStandingAccess reports whether the actor may read restricted fields
// without an unmask grant.
func (a Actor) HasStandingAccess() bool {
	return a.Role == RoleAdmin || a.Role == RoleHR
}
