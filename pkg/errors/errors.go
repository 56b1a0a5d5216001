// Package errors provides structured error handling for atomix.
// It defines sentinel errors, exit codes, and helpers for adding
// context, details, and suggestions to errors.
//
//nolint:revive // Package name intentionally shadows stdlib for domain-specific error handling
package errors

import (
	"errors"
	"fmt"
	"sort"
)

// Exit codes for the CLI surface.
const (
	ExitSuccess    = 0 // Successful execution
	ExitGeneral    = 1 // General/unknown error
	ExitInput      = 2 // Invalid input
	ExitAuth       = 3 // Authentication failed
	ExitNotFound   = 4 // Resource not found
	ExitPermission = 5 // Permission denied or insufficient funds
)

// AtomixError is the structured error type for atomix.
type AtomixError struct {
	Code       string            // Machine-readable error code
	Message    string            // Human-readable message
	Details    map[string]string // Additional context
	Suggestion string            // Actionable suggestion for user
	Cause      error             // Underlying error
	ExitCode   int               // Exit code for CLI
}

func (e *AtomixError) Error() string {
	msg := e.Message

	// Include details in error message (sorted for deterministic output)
	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			msg = fmt.Sprintf("%s (%s: %s)", msg, k, e.Details[k])
		}
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *AtomixError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is for AtomixError.
func (e *AtomixError) Is(target error) bool {
	var t *AtomixError
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// Sentinel errors.
var (
	ErrGeneral = &AtomixError{
		Code:     "GENERAL_ERROR",
		Message:  "an error occurred",
		ExitCode: ExitGeneral,
	}

	ErrInvalidInput = &AtomixError{
		Code:     "INVALID_INPUT",
		Message:  "invalid input",
		ExitCode: ExitInput,
	}

	ErrNotFound = &AtomixError{
		Code:     "NOT_FOUND",
		Message:  "resource not found",
		ExitCode: ExitNotFound,
	}

	// Operation validation errors. These are always detected before any
	// network submission and are recoverable by correcting the request.
	ErrInvalidAddress = &AtomixError{
		Code:     "INVALID_ADDRESS",
		Message:  "invalid account address format",
		ExitCode: ExitInput,
	}

	ErrInvalidAmount = &AtomixError{
		Code:     "INVALID_AMOUNT",
		Message:  "invalid amount",
		ExitCode: ExitInput,
	}

	ErrMissingField = &AtomixError{
		Code:     "MISSING_FIELD",
		Message:  "required field is missing",
		ExitCode: ExitInput,
	}

	ErrEmptyBatch = &AtomixError{
		Code:     "EMPTY_BATCH",
		Message:  "transaction batch is empty",
		ExitCode: ExitInput,
	}

	ErrGroupTooLarge = &AtomixError{
		Code:     "GROUP_TOO_LARGE",
		Message:  "transaction batch exceeds the maximum atomic group size",
		ExitCode: ExitInput,
	}

	ErrUnsupportedOperation = &AtomixError{
		Code:     "UNSUPPORTED_OPERATION",
		Message:  "unsupported operation type",
		ExitCode: ExitInput,
	}

	// Submission errors. A rejected payload is never retried automatically:
	// resubmitting signed bytes risks duplicate side effects.
	ErrSubmissionRejected = &AtomixError{
		Code:     "SUBMISSION_REJECTED",
		Message:  "transaction rejected by the ledger node",
		ExitCode: ExitGeneral,
	}

	// ErrConfirmationTimeout marks an indeterminate outcome, not a hard
	// failure: the transaction may still be confirmed later by the network.
	ErrConfirmationTimeout = &AtomixError{
		Code:       "CONFIRMATION_TIMEOUT",
		Message:    "transaction not confirmed within the round budget",
		Suggestion: "re-query ledger state for the transaction ID; do not resubmit",
		ExitCode:   ExitGeneral,
	}

	ErrInsufficientFunds = &AtomixError{
		Code:     "INSUFFICIENT_FUNDS",
		Message:  "insufficient balance for transaction",
		ExitCode: ExitPermission,
	}

	ErrNetworkError = &AtomixError{
		Code:     "NETWORK_ERROR",
		Message:  "ledger node communication failed",
		ExitCode: ExitGeneral,
	}

	// Wallet-specific errors.
	ErrInvalidMnemonic = &AtomixError{
		Code:     "INVALID_MNEMONIC",
		Message:  "invalid mnemonic phrase",
		ExitCode: ExitInput,
	}

	ErrDecryptionFailed = &AtomixError{
		Code:     "DECRYPTION_FAILED",
		Message:  "decryption failed - wrong passphrase or corrupted file",
		ExitCode: ExitAuth,
	}

	ErrWalletNotFound = &AtomixError{
		Code:     "WALLET_NOT_FOUND",
		Message:  "wallet not found",
		ExitCode: ExitNotFound,
	}

	ErrWalletExists = &AtomixError{
		Code:     "WALLET_EXISTS",
		Message:  "wallet already exists",
		ExitCode: ExitInput,
	}

	// Config-specific errors.
	ErrConfigNotFound = &AtomixError{
		Code:     "CONFIG_NOT_FOUND",
		Message:  "configuration file not found",
		ExitCode: ExitNotFound,
	}

	ErrConfigInvalid = &AtomixError{
		Code:     "CONFIG_INVALID",
		Message:  "configuration file is invalid",
		ExitCode: ExitInput,
	}

	ErrAssetNotFound = &AtomixError{
		Code:     "ASSET_NOT_FOUND",
		Message:  "asset not found",
		ExitCode: ExitNotFound,
	}

	ErrTransactionNotFound = &AtomixError{
		Code:     "TRANSACTION_NOT_FOUND",
		Message:  "transaction not found",
		ExitCode: ExitNotFound,
	}
)

// New creates a new AtomixError with the given code and message.
func New(code, message string) *AtomixError {
	return &AtomixError{
		Code:     code,
		Message:  message,
		ExitCode: ExitGeneral,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}

	msg := fmt.Sprintf(format, args...)

	var ae *AtomixError
	if errors.As(err, &ae) {
		return &AtomixError{
			Code:       ae.Code,
			Message:    fmt.Sprintf("%s: %s", msg, ae.Message),
			Details:    ae.Details,
			Suggestion: ae.Suggestion,
			Cause:      err,
			ExitCode:   ae.ExitCode,
		}
	}

	return &AtomixError{
		Code:     "GENERAL_ERROR",
		Message:  msg,
		Cause:    err,
		ExitCode: ExitGeneral,
	}
}

// WithDetails adds details to an error.
func WithDetails(err error, details map[string]string) error {
	if err == nil {
		return nil
	}

	var ae *AtomixError
	if errors.As(err, &ae) {
		return &AtomixError{
			Code:       ae.Code,
			Message:    ae.Message,
			Details:    details,
			Suggestion: ae.Suggestion,
			Cause:      ae.Cause,
			ExitCode:   ae.ExitCode,
		}
	}

	return &AtomixError{
		Code:     "GENERAL_ERROR",
		Message:  err.Error(),
		Details:  details,
		Cause:    err,
		ExitCode: ExitGeneral,
	}
}

// WithSuggestion adds a suggestion to an error.
func WithSuggestion(err error, suggestion string) error {
	if err == nil {
		return nil
	}

	var ae *AtomixError
	if errors.As(err, &ae) {
		return &AtomixError{
			Code:       ae.Code,
			Message:    ae.Message,
			Details:    ae.Details,
			Suggestion: suggestion,
			Cause:      ae.Cause,
			ExitCode:   ae.ExitCode,
		}
	}

	return &AtomixError{
		Code:       "GENERAL_ERROR",
		Message:    err.Error(),
		Suggestion: suggestion,
		Cause:      err,
		ExitCode:   ExitGeneral,
	}
}

// ExitCode returns the appropriate exit code for an error.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var ae *AtomixError
	if errors.As(err, &ae) {
		return ae.ExitCode
	}

	return ExitGeneral
}

// Code returns the error code for an error.
func Code(err error) string {
	var ae *AtomixError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return "GENERAL_ERROR"
}

// Is wraps errors.Is for convenience.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience.
func As(err error, target any) bool {
	return errors.As(err, target)
}
