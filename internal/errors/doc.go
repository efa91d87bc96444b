// Package apperrors defines structured application error types,
// allowing for a clear distinction between error classes (configuration,
// table resources, arithmetic domain violations, accessor misuse) and for
// carrying the underlying cause.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// Typed errors are matched with errors.As; sentinel errors with errors.Is.
package apperrors
