package accounts

import "errors"

var (
	ErrAddressRequired    = errors.New("Address is required")
	ErrPassphraseRequired = errors.New("Passphrase is required")
	ErrWrongPassphrase    = errors.New("Incorrect passphrase")
	ErrAccountNotFound    = errors.New("Account not found")
	ErrInvalidAmount      = errors.New("Amount must be a positive number")
)
