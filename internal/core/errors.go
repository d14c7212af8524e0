package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when an operation references an id the store does not hold.
var ErrNotFound = errors.New("not found")

// ValidationError reports a caller-supplied value that violates an invariant.
// The rejected operation never changes state.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is, or wraps, a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ParseAmount parses raw text from a form or command line into a decimal.
// Unparsable input yields a *ValidationError so callers can drop the update
// instead of letting a non-numeric value into a store. A comma decimal
// separator ("6,99") is accepted.
func ParseAmount(field, raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, invalid(field, "value is required")
	}
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, invalid(field, fmt.Sprintf("%q is not a number", raw))
	}
	return d, nil
}
