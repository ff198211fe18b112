package cinema

import (
	"fmt"

	"github.com/ssargent/cinedb/pkg/serial"
)

// ValidationError reports a record that can not be stored.
type ValidationError struct {
	Record  string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Record, e.Message)
}

func checkText(record, s string) error {
	if err := serial.CheckText(s); err != nil {
		return &ValidationError{record, fmt.Sprintf("%q contains reserved characters ~ # { } &", s)}
	}
	return nil
}
