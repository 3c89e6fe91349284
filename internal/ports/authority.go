package ports

import "context"

// TokenValidator asks the token authority whether a bearer token is still
// accepted. Transport failures count as invalid; there is no error return
// so callers uniformly fall through to re-authentication.
type TokenValidator interface {
	IsValid(ctx context.Context, token string) bool
}

// TokenExchanger trades operator credentials for a fresh bearer token via
// the authority's owner-password grant.
type TokenExchanger interface {
	ExchangePassword(ctx context.Context, username, password string) (string, error)
}
