// Package auth establishes user identity: email/password sign-up and login
// against the identity provider's REST API, a Google OAuth2 authorization
// code flow with federated sign-in, and stateless session tokens.
package auth

// Identity is the authenticated user: the provider's opaque user id plus
// the account email.
type Identity struct {
	UID   string
	Email string
}

// Session is the per-request view of an identity, reconstructed from the
// client-held token. The zero Session is unauthenticated.
type Session struct {
	UID   string
	Email string
}

// Error carries the identity provider's rejection message (weak password,
// email already in use, invalid credentials, ...). It is surfaced to the
// user verbatim; the session stays unset.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return "auth: " + e.Message
}

// Authenticated reports whether the session carries an identity.
func (s Session) Authenticated() bool {
	return s.UID != ""
}
