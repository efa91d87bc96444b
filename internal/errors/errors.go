package apperrors

import (
	"fmt"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess      = 0   // Indicates successful execution.
	ExitErrorGeneric = 1   // Indicates a generic error.
	ExitErrorTable   = 2   // Indicates a missing or corrupt factor table.
	ExitErrorConfig  = 4   // Indicates a configuration error.
	ExitErrorCancel  = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect
// user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// MissingTableError reports that a factor table file that the covered prime
// set promises could not be located under the configured root directory.
// It is unrecoverable: the table set is incomplete, which is an installation
// problem rather than an algorithm limitation.
type MissingTableError struct {
	// P is the prime base whose table is missing.
	P uint
	// FileName is the conventional table file name, e.g. "c03minus.txt".
	FileName string
	// Root is the directory tree that was searched.
	Root string
}

// Error returns a formatted message describing the missing table.
func (e *MissingTableError) Error() string {
	return fmt.Sprintf("factor table %q for p = %d not found under %q", e.FileName, e.P, e.Root)
}

// CorruptTableError reports that a factor table entry failed validation:
// either a recorded factor is not prime, or the product of the recorded
// prime powers does not equal p^n - 1. This indicates data corruption and is
// never downgraded to a not-found result.
type CorruptTableError struct {
	// P and N identify the table entry for p^n - 1.
	P uint
	N uint
	// Reason describes which validation failed.
	Reason string
}

// Error returns a formatted message describing the corruption.
func (e *CorruptTableError) Error() string {
	return fmt.Sprintf("corrupt factor table entry for %d^%d - 1: %s", e.P, e.N, e.Reason)
}

// RangeError reports an out-of-bounds index passed to a factorization
// accessor. It signals a programming error at the call site.
type RangeError struct {
	// Index is the offending index.
	Index int
	// Len is the number of available elements.
	Len int
	// What names the accessed collection (e.g., "prime factor").
	What string
}

// Error returns a formatted message describing the range violation.
func (e *RangeError) Error() string {
	return fmt.Sprintf("%s index %d out of range [0, %d)", e.What, e.Index, e.Len)
}

// Arithmetic operation identifiers used by ArithmeticError.
const (
	OpAdd = "add"
	OpSub = "sub"
	OpMul = "mul"
	OpDiv = "div"
	OpCvt = "convert"
)

// ArithmeticError reports a violation of the exact-arithmetic contract of the
// numeric layer: underflow (subtraction below zero), division by zero, or
// overflow on a fixed-width operation or narrowing cast.
type ArithmeticError struct {
	// Op is one of the Op* constants above.
	Op string
	// Message explains the specific domain violation.
	Message string
}

// Error returns a formatted message describing the arithmetic failure.
func (e *ArithmeticError) Error() string {
	return fmt.Sprintf("arithmetic error in %s: %s", e.Op, e.Message)
}

// NewArithmeticError creates an ArithmeticError with a formatted message.
//
// Parameters:
//   - op: One of the Op* operation identifiers.
//   - format: A format string for the detail message.
//   - a: Arguments for the format string.
//
// Returns:
//   - error: A new *ArithmeticError.
func NewArithmeticError(op, format string, a ...any) error {
	return &ArithmeticError{Op: op, Message: fmt.Sprintf(format, a...)}
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}
