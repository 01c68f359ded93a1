// Package errors provides structured error handling for Scrip.
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

// Exit codes.
const (
	ExitSuccess    = 0 // Successful execution
	ExitGeneral    = 1 // General/unknown error
	ExitInput      = 2 // Invalid input
	ExitAuth       = 3 // Authentication failed
	ExitNotFound   = 4 // Resource not found
	ExitPermission = 5 // Permission denied or insufficient funds
)

// ScripError is the structured error type for Scrip.
type ScripError struct {
	Code       string            // Machine-readable error code
	Message    string            // Human-readable message
	Details    map[string]string // Additional context
	Suggestion string            // Actionable suggestion for user
	Cause      error             // Underlying error
	ExitCode   int               // Exit code for CLI
}

func (e *ScripError) Error() string {
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

func (e *ScripError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is for ScripError.
func (e *ScripError) Is(target error) bool {
	var t *ScripError
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// Sentinel errors.
var (
	ErrGeneral = &ScripError{
		Code:     "GENERAL_ERROR",
		Message:  "an error occurred",
		ExitCode: ExitGeneral,
	}

	ErrInvalidInput = &ScripError{
		Code:     "INVALID_INPUT",
		Message:  "invalid input",
		ExitCode: ExitInput,
	}

	ErrNotFound = &ScripError{
		Code:     "NOT_FOUND",
		Message:  "resource not found",
		ExitCode: ExitNotFound,
	}

	// Wallet-specific errors.
	ErrWalletNotFound = &ScripError{
		Code:     "WALLET_NOT_FOUND",
		Message:  "wallet not found",
		ExitCode: ExitNotFound,
	}

	ErrWalletExists = &ScripError{
		Code:     "WALLET_EXISTS",
		Message:  "wallet already exists",
		ExitCode: ExitInput,
	}

	ErrInvalidMnemonic = &ScripError{
		Code:     "INVALID_MNEMONIC",
		Message:  "invalid mnemonic phrase",
		ExitCode: ExitInput,
	}

	ErrDecryptionFailed = &ScripError{
		Code:     "DECRYPTION_FAILED",
		Message:  "decryption failed - wrong password or corrupted file",
		ExitCode: ExitAuth,
	}

	// Confirmation pipeline errors. These form the closed result taxonomy
	// of a confirmation attempt: every failure a caller can observe from
	// Orchestrator.Confirm matches exactly one of these codes.
	ErrNetworkInfo = &ScripError{
		Code:     "NETWORK_INFO_UNAVAILABLE",
		Message:  "failed to fetch network parameters",
		ExitCode: ExitGeneral,
	}

	ErrInvalidBalanceID = &ScripError{
		Code:     "INVALID_BALANCE_ID",
		Message:  "malformed balance identifier",
		ExitCode: ExitInput,
	}

	ErrInvalidAccountID = &ScripError{
		Code:     "INVALID_ACCOUNT_ID",
		Message:  "malformed account identifier",
		ExitCode: ExitInput,
	}

	ErrBalanceCreateFailed = &ScripError{
		Code:     "BALANCE_CREATE_FAILED",
		Message:  "failed to create balance for asset",
		ExitCode: ExitGeneral,
	}

	ErrInsufficientBalance = &ScripError{
		Code:     "NOT_ENOUGH_ON_BALANCE",
		Message:  "not enough funds on balance",
		ExitCode: ExitPermission,
	}

	ErrInsufficientFunds = &ScripError{
		Code:     "INSUFFICIENT_FUNDS",
		Message:  "insufficient funds for transaction",
		ExitCode: ExitPermission,
	}

	ErrNotEnoughData = &ScripError{
		Code:     "NOT_ENOUGH_DATA",
		Message:  "operation is missing required data",
		ExitCode: ExitInput,
	}

	ErrQuoteNotPositive = &ScripError{
		Code:     "QUOTE_NOT_POSITIVE",
		Message:  "quote amount must be positive",
		ExitCode: ExitInput,
	}

	ErrSubmitFailed = &ScripError{
		Code:     "TX_SUBMIT_FAILED",
		Message:  "transaction build or submit failed",
		ExitCode: ExitGeneral,
	}

	// API-specific errors.
	ErrNetworkError = &ScripError{
		Code:     "NETWORK_ERROR",
		Message:  "network communication failed",
		ExitCode: ExitGeneral,
	}

	ErrTxRejected = &ScripError{
		Code:     "TX_REJECTED",
		Message:  "transaction rejected by network",
		ExitCode: ExitGeneral,
	}

	// Config-specific errors.
	ErrConfigNotFound = &ScripError{
		Code:     "CONFIG_NOT_FOUND",
		Message:  "configuration file not found",
		ExitCode: ExitNotFound,
	}

	ErrConfigInvalid = &ScripError{
		Code:     "CONFIG_INVALID",
		Message:  "configuration file is invalid",
		ExitCode: ExitInput,
	}

	ErrAmountRequired = &ScripError{
		Code:     "AMOUNT_REQUIRED",
		Message:  "amount is required",
		ExitCode: ExitInput,
	}

	ErrInvalidAmount = &ScripError{
		Code:     "INVALID_AMOUNT",
		Message:  "invalid amount format",
		ExitCode: ExitInput,
	}

	ErrBalanceNotFound = &ScripError{
		Code:     "BALANCE_NOT_FOUND",
		Message:  "balance not found",
		ExitCode: ExitNotFound,
	}
)

// New creates a new ScripError with the given code and message.
func New(code, message string) *ScripError {
	return &ScripError{
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

	var se *ScripError
	if errors.As(err, &se) {
		return &ScripError{
			Code:       se.Code,
			Message:    fmt.Sprintf("%s: %s", msg, se.Message),
			Details:    se.Details,
			Suggestion: se.Suggestion,
			Cause:      err,
			ExitCode:   se.ExitCode,
		}
	}

	return &ScripError{
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

	var se *ScripError
	if errors.As(err, &se) {
		return &ScripError{
			Code:       se.Code,
			Message:    se.Message,
			Details:    details,
			Suggestion: se.Suggestion,
			Cause:      se.Cause,
			ExitCode:   se.ExitCode,
		}
	}

	return &ScripError{
		Code:     "GENERAL_ERROR",
		Message:  err.Error(),
		Details:  details,
		Cause:    err,
		ExitCode: ExitGeneral,
	}
}

// WithCause attaches an underlying cause to a sentinel without losing its code.
func WithCause(err, cause error) error {
	if err == nil {
		return nil
	}

	var se *ScripError
	if errors.As(err, &se) {
		return &ScripError{
			Code:       se.Code,
			Message:    se.Message,
			Details:    se.Details,
			Suggestion: se.Suggestion,
			Cause:      cause,
			ExitCode:   se.ExitCode,
		}
	}

	return &ScripError{
		Code:     "GENERAL_ERROR",
		Message:  err.Error(),
		Cause:    cause,
		ExitCode: ExitGeneral,
	}
}

// WithSuggestion adds a suggestion to an error.
func WithSuggestion(err error, suggestion string) error {
	if err == nil {
		return nil
	}

	var se *ScripError
	if errors.As(err, &se) {
		return &ScripError{
			Code:       se.Code,
			Message:    se.Message,
			Details:    se.Details,
			Suggestion: suggestion,
			Cause:      se.Cause,
			ExitCode:   se.ExitCode,
		}
	}

	return &ScripError{
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

	var se *ScripError
	if errors.As(err, &se) {
		return se.ExitCode
	}

	return ExitGeneral
}

// Code returns the error code for an error.
func Code(err error) string {
	var se *ScripError
	if errors.As(err, &se) {
		return se.Code
	}
	return "GENERAL_ERROR"
}

// Detail returns a single detail value from an error, or "" if absent.
func Detail(err error, key string) string {
	var se *ScripError
	if errors.As(err, &se) {
		return se.Details[key]
	}
	return ""
}

// Is wraps errors.Is for convenience.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience.
func As(err error, target any) bool {
	return errors.As(err, target)
}
