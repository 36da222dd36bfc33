package errs

import (
	"errors"
	"fmt"
)

// ValidationError reports an input outside a code-defined range or a
// physically inconsistent value (negative dimension, out-of-table wind speed).
// It is raised before any calculation runs and is never recovered locally.
type ValidationError struct {
	Field   string // offending input field
	Message string
	CodeRef string // violated code section, e.g. "ASCE 7-22 Section 26.5.1"
}

func (e *ValidationError) Error() string {
	if e.CodeRef != "" {
		return fmt.Sprintf("%s: %s [%s]", e.Field, e.Message, e.CodeRef)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validationf builds a ValidationError with a formatted message.
func Validationf(field, codeRef, format string, args ...any) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
		CodeRef: codeRef,
	}
}

// CalculationError reports an iterative solver that exhausted its iteration
// budget without converging. The unconverged value is never returned.
type CalculationError struct {
	Message    string
	Iterations int
	CodeRef    string
}

func (e *CalculationError) Error() string {
	if e.CodeRef != "" {
		return fmt.Sprintf("%s after %d iterations [%s]", e.Message, e.Iterations, e.CodeRef)
	}
	return fmt.Sprintf("%s after %d iterations", e.Message, e.Iterations)
}

// Calculationf builds a CalculationError with a formatted message.
func Calculationf(iterations int, codeRef, format string, args ...any) *CalculationError {
	return &CalculationError{
		Message:    fmt.Sprintf(format, args...),
		Iterations: iterations,
		CodeRef:    codeRef,
	}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsCalculation reports whether err is (or wraps) a CalculationError.
func IsCalculation(err error) bool {
	var ce *CalculationError
	return errors.As(err, &ce)
}
