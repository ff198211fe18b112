package serial

import "strings"

// Fields maps field names to their raw, still serialized values.
type Fields map[string]string

// Lookup returns the raw value of a required field.
func (f Fields) Lookup(name string) (string, error) {
	v, ok := f[name]
	if !ok {
		return "", &FormatError{Op: "lookup", Input: name, Reason: ErrMissingField}
	}
	return v, nil
}

// MakePair joins a field name and its serialized value.
func MakePair(name, value string) string {
	return name + string(Separator) + value
}

// Join concatenates serialized pairs with the top-level Splitter.
func Join(pairs ...string) string {
	return strings.Join(pairs, string(Splitter))
}

// Parse splits a string produced by Join into its fields.
//
// Splitter and Separator characters between matched object markers belong
// to the nested value and never split the outer pair. Parse returns nil
// Fields and a nil error when s is the Null sentinel, and empty Fields when s
// is empty.
func Parse(s string) (Fields, error) {
	if s == Null {
		return nil, nil
	}
	fields := make(Fields)
	if s == "" {
		return fields, nil
	}

	depth := 0
	start := 0
	sep := -1
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case Separator:
			if sep == -1 && depth == 0 {
				sep = i
			}
		case ObjectStart:
			depth++
		case ObjectEnd:
			depth--
			if depth < 0 {
				return nil, &FormatError{Op: "parse", Input: s, Reason: ErrUnbalanced}
			}
		case Splitter:
			if depth != 0 {
				continue
			}
			if sep == -1 {
				return nil, &FormatError{Op: "parse", Input: s, Reason: ErrMissingSeparator}
			}
			fields[s[start:sep]] = s[sep+1 : i]
			start = i + 1
			sep = -1
		}
	}

	if depth != 0 {
		return nil, &FormatError{Op: "parse", Input: s, Reason: ErrUnbalanced}
	}
	if sep == -1 {
		return nil, &FormatError{Op: "parse", Input: s, Reason: ErrMissingSeparator}
	}
	fields[s[start:sep]] = s[sep+1:]

	return fields, nil
}
