package query

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ssargent/cinedb/pkg/cinema"
)

// Filter is a single condition on a movie field, e.g. runtime >= 120.
type Filter struct {
	Field    string // title, status, director, runtime, ticket_sales, rating or released
	Operator string // =, !=, >, >=, <, <= or ~ (contains, case-insensitive)
	Value    string
}

var operators = []string{">=", "<=", "!=", "=", ">", "<", "~"}

// ParseFilter reads a condition written as field<op>value.
func ParseFilter(s string) (Filter, error) {
	for i := 0; i < len(s); i++ {
		for _, op := range operators {
			if strings.HasPrefix(s[i:], op) {
				f := Filter{
					Field:    strings.TrimSpace(s[:i]),
					Operator: op,
					Value:    strings.TrimSpace(s[i+len(op):]),
				}
				return f, f.Validate()
			}
		}
	}
	return Filter{}, fmt.Errorf("%w: no operator in %q", ErrInvalidFilter, s)
}

func (f Filter) String() string {
	return f.Field + " " + f.Operator + " " + f.Value
}

// Validate checks the field, the operator and that the value parses for the
// field's type.
func (f Filter) Validate() error {
	switch f.Operator {
	case "=", "!=", ">", ">=", "<", "<=", "~":
	default:
		return fmt.Errorf("%w: operator %q", ErrInvalidFilter, f.Operator)
	}

	switch f.Field {
	case "title", "status", "director":
		return nil
	case "runtime", "ticket_sales":
		if _, err := strconv.Atoi(f.Value); err != nil {
			return fmt.Errorf("%w: %s needs a whole number", ErrInvalidFilter, f.Field)
		}
	case "rating":
		if _, err := strconv.ParseFloat(f.Value, 64); err != nil {
			return fmt.Errorf("%w: rating needs a number", ErrInvalidFilter)
		}
	case "released":
		if _, err := time.Parse(time.DateOnly, f.Value); err != nil {
			return fmt.Errorf("%w: released needs a date (YYYY-MM-DD)", ErrInvalidFilter)
		}
	case "":
		return fmt.Errorf("%w: field name cannot be empty", ErrInvalidFilter)
	default:
		return fmt.Errorf("%w: unknown field %q", ErrInvalidFilter, f.Field)
	}
	if f.Operator == "~" {
		return fmt.Errorf("%w: ~ only applies to text fields", ErrInvalidFilter)
	}
	return nil
}

// Match reports whether m satisfies the filter. The filter must be valid.
// Movies without reviews never match a rating filter.
func (f Filter) Match(m *cinema.Movie) bool {
	switch f.Field {
	case "title":
		return f.text(m.Title)
	case "status":
		return f.text(string(m.Status))
	case "director":
		if m.Director == nil {
			return false
		}
		return f.text(*m.Director)
	case "runtime":
		n, _ := strconv.Atoi(f.Value)
		return compare(m.Runtime, n, f.Operator)
	case "ticket_sales":
		n, _ := strconv.Atoi(f.Value)
		return compare(m.TicketSales, n, f.Operator)
	case "rating":
		avg, ok := m.AverageRating()
		if !ok {
			return false
		}
		v, _ := strconv.ParseFloat(f.Value, 64)
		return compare(avg, v, f.Operator)
	case "released":
		day, _ := time.Parse(time.DateOnly, f.Value)
		released := m.ReleasedAt.UTC().Truncate(24 * time.Hour)
		return compare(released.Unix(), day.Unix(), f.Operator)
	}
	return false
}

func (f Filter) text(s string) bool {
	if f.Operator == "~" {
		return strings.Contains(strings.ToLower(s), strings.ToLower(f.Value))
	}
	return compare(strings.ToLower(s), strings.ToLower(f.Value), f.Operator)
}

func compare[T int | int64 | float64 | string](a, b T, op string) bool {
	switch op {
	case "=":
		return a == b
	case "!=":
		return a != b
	case ">":
		return a > b
	case ">=":
		return a >= b
	case "<":
		return a < b
	case "<=":
		return a <= b
	}
	return false
}
