package serial

import (
	"errors"
	"fmt"
)

var (
	ErrUnbalanced       = errors.New("unbalanced markers")
	ErrMissingSeparator = errors.New("missing separator")
	ErrMissingField     = errors.New("missing field")
	ErrMissingMarkers   = errors.New("missing object markers")
	ErrReservedText     = errors.New("text contains reserved characters")
)

// FormatError reports a serialized string that does not follow the format.
// Reason is one of the Err* sentinels above and can be tested with errors.Is.
type FormatError struct {
	Op     string
	Input  string
	Reason error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("serial: %s %q: %v", e.Op, truncate(e.Input), e.Reason)
}

func (e *FormatError) Unwrap() error {
	return e.Reason
}

// TypeConversionError reports value text that can not be parsed as the
// expected scalar type.
type TypeConversionError struct {
	Type string
	Text string
	Err  error
}

func (e *TypeConversionError) Error() string {
	return fmt.Sprintf("serial: cannot convert %q to %s: %v", truncate(e.Text), e.Type, e.Err)
}

func (e *TypeConversionError) Unwrap() error {
	return e.Err
}

// ConstructionError reports a record that could not be created or
// populated. Err holds the underlying cause.
type ConstructionError struct {
	Type string
	Err  error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("serial: construct %s: %v", e.Type, e.Err)
}

func (e *ConstructionError) Unwrap() error {
	return e.Err
}

func truncate(s string) string {
	const limit = 64
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
