//go:build fuzz
// +build fuzz

package serial

import (
	"reflect"
	"strings"
	"testing"
)

// FuzzParse checks that Parse never panics and that accepted input keeps
// every top-level value balanced.
func FuzzParse(f *testing.F) {
	f.Add("name#hello")
	f.Add("age#5~city#`null`")
	f.Add("a#{x#1~y#{z#2}}~b#{foo&bar}")
	f.Add("fieldname_no_separator")
	f.Add("a#1}")

	f.Fuzz(func(t *testing.T, s string) {
		fields, err := Parse(s)
		if err != nil {
			return
		}
		for name, value := range fields {
			if strings.Count(value, "{") != strings.Count(value, "}") {
				t.Fatalf("field %q has unbalanced value %q", name, value)
			}
		}
	})
}

// FuzzPlace_RoundTrip checks that records with text free of delimiters
// survive a round trip.
func FuzzPlace_RoundTrip(f *testing.F) {
	f.Add(5, "Singapore", false)
	f.Add(-1, "", true)
	f.Add(0, "a b c", false)

	f.Fuzz(func(t *testing.T, age int, city string, null bool) {
		if CheckText(city) != nil {
			t.Skip("text contains delimiters")
		}
		in := &place{Age: age, City: &city}
		if null {
			in.City = nil
		}

		got, err := DecodeObject[place](wrap(in.FieldString()))
		if err != nil {
			t.Fatalf("DecodeObject failed for %+v: %v", in, err)
		}
		if !reflect.DeepEqual(got, in) {
			t.Fatalf("round trip mismatch: got %+v, want %+v", got, in)
		}
	})
}
