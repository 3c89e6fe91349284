package ports

import "context"

// TokenSource yields a bearer token that is valid at the time of the call.
// Implementations may re-authenticate to satisfy that.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// SessionStore persists the cached bearer token between invocations. An
// absent token reads back as the empty string.
type SessionStore interface {
	Token() string
	SetToken(token string) error
}
