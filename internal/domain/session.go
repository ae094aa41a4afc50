package domain

// SessionClaims is the identity/role payload embedded in a session token.
// It is derived from an Identity at sign-in and re-read on every request.
type SessionClaims struct {
	UserID int64
	Email  string
	Name   string
	Role   Role
}

// Session is the view exposed to request handlers. It mirrors the token
// claims; handlers never see the token itself.
type Session struct {
	User SessionClaims
}
