package registry

import "errors"

// Ledger failure classes. Every failure is terminal for the call that
// raised it; the enclosing transaction rolls back any partial change.
var (
	ErrNotPlatformOwner = errors.New("Not a platform owner")
	ErrPropertyNotFound = errors.New("Property does not exist")
	ErrAlreadySold      = errors.New("Property already sold")
	ErrIncorrectPrice   = errors.New("Incorrect price")
	ErrTransferFailed   = errors.New("Transfer to seller failed")
	ErrReentrantCall    = errors.New("Reentrant call")
	ErrInvalidInput     = errors.New("Invalid property input")
)
