package domain

import "errors"

var (
	ErrNoTarget        = errors.New("no appliance target configured")
	ErrWrongPassphrase = errors.New("wrong decryption passphrase")
)
