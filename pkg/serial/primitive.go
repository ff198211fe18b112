package serial

import (
	"strconv"
	"time"
)

// TimeLayout is the date-time form written by EncodeTime: an ISO-8601 local
// date-time without zone information.
const TimeLayout = "2006-01-02T15:04:05.999999999"

// Legacy writers drop the seconds when they are zero.
const minuteLayout = "2006-01-02T15:04"

// EncodeInt writes an integer field as decimal text.
func EncodeInt(v int, name string) string {
	return MakePair(name, strconv.Itoa(v))
}

// DecodeInt parses value text written by EncodeInt.
func DecodeInt(text string) (int, error) {
	v, err := strconv.Atoi(text)
	if err != nil {
		return 0, &TypeConversionError{Type: "int", Text: text, Err: err}
	}
	return v, nil
}

// EncodeFloat writes a floating point field using the shortest decimal
// text that parses back to the same value.
func EncodeFloat(v float64, name string) string {
	return MakePair(name, strconv.FormatFloat(v, 'g', -1, 64))
}

// DecodeFloat parses value text written by EncodeFloat.
func DecodeFloat(text string) (float64, error) {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, &TypeConversionError{Type: "float64", Text: text, Err: err}
	}
	return v, nil
}

// EncodeTime writes the wall clock of v in TimeLayout. The location is not
// written.
func EncodeTime(v time.Time, name string) string {
	return MakePair(name, v.Format(TimeLayout))
}

// DecodeTime parses value text written by EncodeTime. It also accepts
// minute precision text and RFC 3339. The result is always in UTC.
func DecodeTime(text string) (time.Time, error) {
	var firstErr error
	for _, layout := range []string{TimeLayout, minuteLayout, time.RFC3339Nano} {
		v, err := time.Parse(layout, text)
		if err == nil {
			return v.UTC(), nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, &TypeConversionError{Type: "time", Text: text, Err: firstErr}
}

// EncodeString writes a nullable string field. A nil value is written as
// the Null sentinel, any other value verbatim.
func EncodeString(v *string, name string) string {
	if v == nil {
		return MakePair(name, Null)
	}
	return MakePair(name, *v)
}

// DecodeString returns nil for the Null sentinel and text otherwise.
func DecodeString(text string) *string {
	if text == Null {
		return nil
	}
	return &text
}
