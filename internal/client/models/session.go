package models

// Session is the authenticated identity derived from a token.
//
// IsLoggedIn is only ever set after the Auth API confirmed the token or the
// credentials, and implies Email is non-empty.
type Session struct {
	Token      string
	Email      string
	IsLoggedIn bool
}

// Anonymous reports whether no confirmed identity is attached.
func (s Session) Anonymous() bool {
	return !s.IsLoggedIn
}
