package models

// Identity is the signed-in user as seen by the rest of the
// application: the stable id plus a display name, nothing else. It is
// resolved from the session on every request and is nil when no one is
// signed in.
type Identity struct {
	ID          string
	DisplayName string
}

// IdentityOf derives an Identity from a user account.
func IdentityOf(user User) Identity {
	return Identity{
		ID:          user.ID,
		DisplayName: user.DisplayName,
	}
}
