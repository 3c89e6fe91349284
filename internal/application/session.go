package application

import (
	"context"
	"fmt"

	"github.com/bnema/opsman-cli/internal/ports"
)

// Session owns the bearer token for one CLI invocation. Validity is checked
// empirically against the authority on every use; nothing parses token
// expiry claims.
type Session struct {
	validator ports.TokenValidator
	exchanger ports.TokenExchanger
	prompter  ports.CredentialPrompter
	store     ports.SessionStore
}

var _ ports.TokenSource = (*Session)(nil)

func NewSession(validator ports.TokenValidator, exchanger ports.TokenExchanger, prompter ports.CredentialPrompter, store ports.SessionStore) *Session {
	return &Session{
		validator: validator,
		exchanger: exchanger,
		prompter:  prompter,
		store:     store,
	}
}

// Token returns the cached token if the authority still accepts it,
// otherwise runs the interactive exchange and returns the fresh token.
// An empty cached token skips straight to re-authentication without a
// network call. Exchange failure is fatal to the caller; there is no retry.
func (s *Session) Token(ctx context.Context) (string, error) {
	token := s.store.Token()
	if s.validator.IsValid(ctx, token) {
		return token, nil
	}

	return s.Authenticate(ctx)
}

// Authenticate unconditionally collects credentials, exchanges them for a
// new token, and persists it. Used directly by the login command and by
// Token when the cached token is rejected.
func (s *Session) Authenticate(ctx context.Context) (string, error) {
	username, password, err := s.prompter.Credentials()
	if err != nil {
		return "", fmt.Errorf("collect credentials: %w", err)
	}

	token, err := s.exchanger.ExchangePassword(ctx, username, password)
	if err != nil {
		return "", fmt.Errorf("authenticate with authority: %w", err)
	}

	if err := s.store.SetToken(token); err != nil {
		return "", fmt.Errorf("persist session token: %w", err)
	}

	return s.store.Token(), nil
}

// Clear drops the cached token.
func (s *Session) Clear() error {
	if err := s.store.SetToken(""); err != nil {
		return fmt.Errorf("clear session token: %w", err)
	}
	return nil
}
