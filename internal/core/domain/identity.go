package domain

import "time"

// Claims is the data recovered from a verified session token.
type Claims struct {
	UserID    string
	Username  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Identity is the authenticated caller attached to a request after the
// token has been verified and its user resolved.
type Identity struct {
	UserID   string
	Username string
	User     *User
}

// NewIdentity builds an Identity from a stored user.
func NewIdentity(u *User) *Identity {
	return &Identity{UserID: u.ID, Username: u.Username, User: u}
}
