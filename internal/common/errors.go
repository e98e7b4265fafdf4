// Package common defines shared constants and sentinel errors used across
// client layers of jobtracker. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Validation errors.
	ErrInvalidEmail     = errors.New("invalid email")
	ErrPasswordTooWeak  = errors.New("password must be at least 6 characters")
	ErrInvalidStatus    = errors.New("invalid application status")
	ErrInvalidAmount    = errors.New("amount must be a positive number")
	ErrInsufficientFund = errors.New("amount exceeds available balance")
	ErrInvalidMonths    = errors.New("vacation months must be positive")
	ErrInvalidTxType    = errors.New("transaction type must be deposit or withdrawal")
	ErrMissingName      = errors.New("name is required")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Offline cache has nothing for the request.
	ErrNotCached = errors.New("no cached data")
)
