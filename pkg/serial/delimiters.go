package serial

import "strings"

const (
	Splitter      = '~'
	ObjectStart   = '{'
	ObjectEnd     = '}'
	Separator     = '#'
	ListSeparator = '&'

	// Null is written in place of an absent string, object or list.
	Null = "`null`"
)

const delimiters = "~{}#&"

// nullObject is the envelope written for an absent object or list.
const nullObject = string(ObjectStart) + Null + string(ObjectEnd)

// CheckText reports whether s can be written as a leaf value and read back
// unchanged. It rejects any of the delimiter characters and the null literal.
func CheckText(s string) error {
	if s == Null {
		return &FormatError{Op: "check", Input: s, Reason: ErrReservedText}
	}
	if strings.ContainsAny(s, delimiters) {
		return &FormatError{Op: "check", Input: s, Reason: ErrReservedText}
	}
	return nil
}

// wrap encloses s in object markers.
func wrap(s string) string {
	return string(ObjectStart) + s + string(ObjectEnd)
}

// unwrap strips exactly one leading ObjectStart and one trailing ObjectEnd.
func unwrap(op, text string) (string, error) {
	if len(text) < 2 || text[0] != ObjectStart || text[len(text)-1] != ObjectEnd {
		return "", &FormatError{Op: op, Input: text, Reason: ErrMissingMarkers}
	}
	return text[1 : len(text)-1], nil
}
