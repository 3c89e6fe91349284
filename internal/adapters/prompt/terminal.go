// Package prompt collects operator secrets interactively. Secrets are read
// with terminal echo disabled; when stdin is not a TTY (tests, pipes) they
// fall back to plain line reads.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/bnema/opsman-cli/internal/ports"
)

type Terminal struct {
	In  *os.File
	Out io.Writer

	// single reader so buffered input survives across prompts
	reader *bufio.Reader
}

var _ ports.CredentialPrompter = (*Terminal)(nil)

func NewTerminal() *Terminal {
	return &Terminal{In: os.Stdin, Out: os.Stderr}
}

// Credentials asks for the operator identifier and secret.
func (t *Terminal) Credentials() (string, string, error) {
	username, err := t.readLine("Username")
	if err != nil {
		return "", "", fmt.Errorf("read username: %w", err)
	}

	password, err := t.ReadSecret("Password")
	if err != nil {
		return "", "", fmt.Errorf("read password: %w", err)
	}

	return username, password, nil
}

// ReadSecret reads one hidden input under the given label.
func (t *Terminal) ReadSecret(label string) (string, error) {
	fd := int(t.in().Fd())
	if !term.IsTerminal(fd) {
		return t.readLine(label)
	}

	_, _ = fmt.Fprintf(t.out(), "%s: ", label)
	secret, err := term.ReadPassword(fd)
	_, _ = fmt.Fprintln(t.out())
	if err != nil {
		return "", err
	}

	return string(secret), nil
}

func (t *Terminal) readLine(label string) (string, error) {
	_, _ = fmt.Fprintf(t.out(), "%s: ", label)

	if t.reader == nil {
		t.reader = bufio.NewReader(t.in())
	}
	line, err := t.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}

func (t *Terminal) in() *os.File {
	if t.In != nil {
		return t.In
	}
	return os.Stdin
}

func (t *Terminal) out() io.Writer {
	if t.Out != nil {
		return t.Out
	}
	return os.Stderr
}
