package serial

import (
	"errors"
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  Fields
	}{
		{
			name:  "single pair",
			input: "name#hello",
			want:  Fields{"name": "hello"},
		},
		{
			name:  "int and null string",
			input: "age#5~city#`null`",
			want:  Fields{"age": "5", "city": "`null`"},
		},
		{
			name:  "nested object is opaque",
			input: "a#{x#1~y#2}~b#3",
			want:  Fields{"a": "{x#1~y#2}", "b": "3"},
		},
		{
			name:  "deeply nested",
			input: "a#{b#{c#{d#1~e#2}}~f#{}}~g#h",
			want:  Fields{"a": "{b#{c#{d#1~e#2}}~f#{}}", "g": "h"},
		},
		{
			name:  "list envelope",
			input: "tags#{foo&bar}~n#1",
			want:  Fields{"tags": "{foo&bar}", "n": "1"},
		},
		{
			name:  "separator in value belongs to value",
			input: "k#v#w",
			want:  Fields{"k": "v#w"},
		},
		{
			name:  "empty value",
			input: "k#~j#",
			want:  Fields{"k": "", "j": ""},
		},
		{
			name:  "empty name",
			input: "#v",
			want:  Fields{"": "v"},
		},
		{
			name:  "duplicate name keeps last",
			input: "k#1~k#2",
			want:  Fields{"k": "2"},
		},
		{
			name:  "empty input",
			input: "",
			want:  Fields{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.input)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Parse mismatch: got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestParse_Null(t *testing.T) {
	got, err := Parse(Null)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil fields for the null sentinel, got %v", got)
	}

	empty, err := Parse("")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if empty == nil {
		t.Error("expected empty non-nil fields for an empty string")
	}
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		reason error
	}{
		{"no separator", "fieldname_no_separator", ErrMissingSeparator},
		{"second pair without separator", "a#1~b", ErrMissingSeparator},
		{"first pair without separator", "a~b#1", ErrMissingSeparator},
		{"trailing splitter", "a#1~", ErrMissingSeparator},
		{"unmatched end marker", "a#1}~b#2", ErrUnbalanced},
		{"end marker before start", "a#}{", ErrUnbalanced},
		{"unclosed start marker", "a#{x#1", ErrUnbalanced},
		{"separator only inside object", "a{#1}", ErrMissingSeparator},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.input)
			if err == nil {
				t.Fatalf("expected error for %q", tc.input)
			}
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("expected *FormatError, got %T: %v", err, err)
			}
			if !errors.Is(err, tc.reason) {
				t.Errorf("expected reason %v, got %v", tc.reason, fe.Reason)
			}
			if fe.Input != tc.input {
				t.Errorf("Input mismatch: got %q, want %q", fe.Input, tc.input)
			}
		})
	}
}

func TestJoin(t *testing.T) {
	got := Join(EncodeInt(5, "age"), EncodeString(nil, "city"))
	if got != "age#5~city#`null`" {
		t.Errorf("Join mismatch: got %q", got)
	}

	if got := Join(); got != "" {
		t.Errorf("Join of nothing should be empty, got %q", got)
	}

	if got := Join("a#1"); got != "a#1" {
		t.Errorf("Join of one pair mismatch: got %q", got)
	}
}

func TestFields_Lookup(t *testing.T) {
	fields := Fields{"age": "5"}

	v, err := fields.Lookup("age")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if v != "5" {
		t.Errorf("Lookup mismatch: got %q, want %q", v, "5")
	}

	_, err = fields.Lookup("city")
	if !errors.Is(err, ErrMissingField) {
		t.Errorf("expected ErrMissingField, got %v", err)
	}
}

func TestCheckText(t *testing.T) {
	for _, ok := range []string{"", "hello", "The Matrix: Reloaded", "5 stars!"} {
		if err := CheckText(ok); err != nil {
			t.Errorf("CheckText(%q) failed: %v", ok, err)
		}
	}
	for _, bad := range []string{"a~b", "a#b", "{", "}", "rock & roll", Null} {
		if err := CheckText(bad); !errors.Is(err, ErrReservedText) {
			t.Errorf("CheckText(%q) expected ErrReservedText, got %v", bad, err)
		}
	}
}
