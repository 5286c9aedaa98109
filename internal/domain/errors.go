package domain

import "errors"

var (
	// Transaction errors
	ErrSameMember          = errors.New("transaction members must differ")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInvalidKind         = errors.New("invalid transaction kind")
	ErrTransactionNotFound = errors.New("transaction not found")

	// Roster errors
	ErrUnknownMember = errors.New("member is not part of the roster")
	ErrEmptyRoster   = errors.New("roster must contain at least one member")
)
