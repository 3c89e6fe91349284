package ports

// CredentialPrompter collects the operator identifier and secret, typically
// from an interactive terminal. Injected so the session logic is testable
// without a TTY.
type CredentialPrompter interface {
	Credentials() (username, password string, err error)
}
