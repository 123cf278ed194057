package domain

// Actor identifies the authenticated caller of an operation. It is built by
// the transport layer from verified token claims and passed explicitly.
type Actor struct {
	UserID   uint
	Username string
	UserType UserType
}

// IsAdmin reports whether the actor holds the admin user type.
func (a Actor) IsAdmin() bool {
	return a.UserType == UserTypeAdmin
}
