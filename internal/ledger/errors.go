// Package ledger holds the domain error kinds shared by the storage,
// operator, and service layers. Every failure an operation can report to a
// caller is one of these sentinels; layers wrap them with context but the
// kind survives errors.Is.
package ledger

import "errors"

var (
	// ErrAccountNotFound is returned when an account id or display name
	// resolves to nothing.
	ErrAccountNotFound = errors.New("account not found")

	// ErrTransactionNotFound is returned when a transaction id resolves to
	// nothing.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrSelfTransferNotAllowed is returned when sender and receiver are the
	// same account.
	ErrSelfTransferNotAllowed = errors.New("cannot transfer to your own account")

	// ErrInsufficientBalance is returned when the sender's balance does not
	// cover the transfer amount at validation time.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrUnauthorized is returned when the caller is not the transaction's
	// sender.
	ErrUnauthorized = errors.New("caller is not the transaction sender")

	// ErrInvalidStatus is returned when an operation requires a transaction
	// status it is not in. PENDING is the only state that can be confirmed
	// or cancelled.
	ErrInvalidStatus = errors.New("transaction is not in the required status")

	// ErrDisplayNameTaken is returned when creating or renaming an account
	// would collide with another account's display name.
	ErrDisplayNameTaken = errors.New("display name already in use")

	// ErrInvalidAmount is returned for zero or negative transfer amounts.
	ErrInvalidAmount = errors.New("amount must be positive")
)
