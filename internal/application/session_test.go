package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeValidator struct {
	validTokens map[string]bool
	calls       int
}

func (v *fakeValidator) IsValid(_ context.Context, token string) bool {
	v.calls++
	return v.validTokens[token]
}

type fakeExchanger struct {
	token string
	err   error
	calls int
}

func (e *fakeExchanger) ExchangePassword(_ context.Context, _, _ string) (string, error) {
	e.calls++
	return e.token, e.err
}

type fakePrompter struct {
	username string
	password string
	err      error
	calls    int
}

func (p *fakePrompter) Credentials() (string, string, error) {
	p.calls++
	return p.username, p.password, p.err
}

type inMemorySessionStore struct {
	token  string
	setErr error
}

func (s *inMemorySessionStore) Token() string { return s.token }

func (s *inMemorySessionStore) SetToken(token string) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.token = token
	return nil
}

func TestSessionTokenReturnsCachedTokenWhenStillValid(t *testing.T) {
	t.Parallel()

	validator := &fakeValidator{validTokens: map[string]bool{"cached-token": true}}
	exchanger := &fakeExchanger{}
	prompter := &fakePrompter{}
	store := &inMemorySessionStore{token: "cached-token"}

	session := NewSession(validator, exchanger, prompter, store)

	token, err := session.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "cached-token", token)
	assert.Zero(t, prompter.calls)
	assert.Zero(t, exchanger.calls)
}

func TestSessionTokenReauthenticatesWhenCachedTokenRejected(t *testing.T) {
	t.Parallel()

	validator := &fakeValidator{validTokens: map[string]bool{"fresh-token": true}}
	exchanger := &fakeExchanger{token: "fresh-token"}
	prompter := &fakePrompter{username: "admin", password: "secret"}
	store := &inMemorySessionStore{token: "stale-token"}

	session := NewSession(validator, exchanger, prompter, store)

	token, err := session.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", token)
	assert.Equal(t, 1, prompter.calls)
	assert.Equal(t, 1, exchanger.calls)
	assert.Equal(t, "fresh-token", store.token)
}

func TestSessionTokenAuthenticatesWhenNoPriorSession(t *testing.T) {
	t.Parallel()

	validator := &fakeValidator{}
	exchanger := &fakeExchanger{token: "first-token"}
	prompter := &fakePrompter{username: "admin", password: "secret"}
	store := &inMemorySessionStore{}

	session := NewSession(validator, exchanger, prompter, store)

	token, err := session.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "first-token", token)
}

func TestSessionTokenIsIdempotentWithinValidityWindow(t *testing.T) {
	t.Parallel()

	validator := &fakeValidator{validTokens: map[string]bool{"fresh-token": true}}
	exchanger := &fakeExchanger{token: "fresh-token"}
	prompter := &fakePrompter{username: "admin", password: "secret"}
	store := &inMemorySessionStore{}

	session := NewSession(validator, exchanger, prompter, store)

	first, err := session.Token(context.Background())
	require.NoError(t, err)
	second, err := session.Token(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, exchanger.calls, "second call must reuse the cached token")
	assert.Equal(t, 1, prompter.calls)
}

func TestSessionTokenPropagatesExchangeFailure(t *testing.T) {
	t.Parallel()

	exchangeErr := errors.New("invalid credentials")
	validator := &fakeValidator{}
	exchanger := &fakeExchanger{err: exchangeErr}
	prompter := &fakePrompter{username: "admin", password: "wrong"}
	store := &inMemorySessionStore{}

	session := NewSession(validator, exchanger, prompter, store)

	_, err := session.Token(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, exchangeErr)
	assert.Empty(t, store.token)
}

func TestSessionTokenPropagatesPrompterFailure(t *testing.T) {
	t.Parallel()

	promptErr := errors.New("no tty")
	session := NewSession(&fakeValidator{}, &fakeExchanger{}, &fakePrompter{err: promptErr}, &inMemorySessionStore{})

	_, err := session.Token(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, promptErr)
}

func TestSessionClearDropsToken(t *testing.T) {
	t.Parallel()

	store := &inMemorySessionStore{token: "cached-token"}
	session := NewSession(&fakeValidator{}, &fakeExchanger{}, &fakePrompter{}, store)

	require.NoError(t, session.Clear())
	assert.Empty(t, store.token)
}
