package serial

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestEncodeObject(t *testing.T) {
	got := EncodeObject(&point{X: 1}, "a")
	if got != "a#{x#1}" {
		t.Errorf("got %q, want %q", got, "a#{x#1}")
	}

	var missing *point
	if got := EncodeObject(missing, "a"); got != "a#{`null`}" {
		t.Errorf("got %q, want %q", got, "a#{`null`}")
	}
}

func TestObject_NestedParse(t *testing.T) {
	s := EncodeObject(&point{X: 1}, "a")

	outer, err := Parse(s)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	inner, err := unwrap("test", outer["a"])
	if err != nil {
		t.Fatalf("unwrap failed: %v", err)
	}
	fields, err := Parse(inner)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !reflect.DeepEqual(fields, Fields{"x": "1"}) {
		t.Errorf("got %v, want map[x:1]", fields)
	}
}

func TestPlace_FieldString(t *testing.T) {
	p := &place{Age: 5}
	if got := p.FieldString(); got != "age#5~city#`null`" {
		t.Errorf("got %q, want %q", got, "age#5~city#`null`")
	}
}

func TestObject_RoundTrip(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 15, 30, 0, time.UTC)

	testCases := []struct {
		name string
		in   *event
	}{
		{
			name: "all fields set",
			in: &event{
				Title:  strPtr("opening night"),
				At:     at,
				Score:  4.5,
				Where:  &place{Age: 12, City: strPtr("Singapore")},
				Points: []*point{{X: 1}, {X: -2}},
				Tags:   []string{"foo", "bar"},
			},
		},
		{
			name: "all nullable fields null",
			in:   &event{At: at},
		},
		{
			name: "null elements in list",
			in: &event{
				Title:  strPtr(""),
				At:     at,
				Points: []*point{nil, {X: 3}, nil},
				Tags:   []string{},
			},
		},
		{
			name: "empty lists",
			in: &event{
				At:     at,
				Where:  &place{},
				Points: []*point{},
				Tags:   []string{},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			encoded := EncodeObject(tc.in, "event")
			fields, err := Parse(encoded)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}

			got, err := DecodeObject[event](fields["event"])
			if err != nil {
				t.Fatalf("DecodeObject failed: %v", err)
			}
			if !reflect.DeepEqual(got, tc.in) {
				t.Errorf("round trip mismatch:\n got  %+v\n want %+v", got, tc.in)
			}
		})
	}
}

func TestObject_NullRoundTrip(t *testing.T) {
	var missing *event
	fields, err := Parse(EncodeObject(missing, "event"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	got, err := DecodeObject[event](fields["event"])
	if err != nil {
		t.Fatalf("DecodeObject failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

func TestObject_NestingSafety(t *testing.T) {
	in := &wrapper{
		Inner: &event{
			Title:  strPtr("inner"),
			At:     time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC),
			Score:  1,
			Where:  &place{Age: 1, City: strPtr("x")},
			Points: []*point{{X: 1}, {X: 2}, {X: 3}},
			Tags:   []string{"a", "b"},
		},
		Note: strPtr("outer"),
	}

	s := in.FieldString()
	fields, err := Parse(s)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(fields) != 2 {
		t.Fatalf("expected two top-level fields, got %d: %v", len(fields), fields)
	}

	out := new(wrapper)
	if err := out.FromFieldString(s); err != nil {
		t.Fatalf("FromFieldString failed: %v", err)
	}
	if !reflect.DeepEqual(out, in) {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", out, in)
	}
}

func TestDecodeObject_Errors(t *testing.T) {
	t.Run("missing markers", func(t *testing.T) {
		for _, text := range []string{"", "x#1", "{x#1", "x#1}", Null, "{"} {
			_, err := DecodeObject[point](text)
			if !errors.Is(err, ErrMissingMarkers) {
				t.Errorf("DecodeObject(%q): expected ErrMissingMarkers, got %v", text, err)
			}
		}
	})

	t.Run("unbalanced content", func(t *testing.T) {
		_, err := DecodeObject[point]("{x#1}}")
		var ce *ConstructionError
		if !errors.As(err, &ce) {
			t.Fatalf("expected *ConstructionError, got %T: %v", err, err)
		}
		if !errors.Is(err, ErrUnbalanced) {
			t.Errorf("expected ErrUnbalanced in chain, got %v", err)
		}
		var fe *FormatError
		if !errors.As(err, &fe) {
			t.Errorf("expected *FormatError in chain")
		}
	})

	t.Run("missing field", func(t *testing.T) {
		_, err := DecodeObject[point]("{y#1}")
		if !errors.Is(err, ErrMissingField) {
			t.Errorf("expected ErrMissingField, got %v", err)
		}
	})

	t.Run("bad scalar", func(t *testing.T) {
		_, err := DecodeObject[point]("{x#one}")
		var tce *TypeConversionError
		if !errors.As(err, &tce) {
			t.Fatalf("expected *TypeConversionError in chain, got %v", err)
		}
		var ce *ConstructionError
		if !errors.As(err, &ce) {
			t.Fatalf("expected *ConstructionError, got %T", err)
		}
		if ce.Type != "serial.point" {
			t.Errorf("Type mismatch: got %q", ce.Type)
		}
	})

	t.Run("corrupt nested field aborts record", func(t *testing.T) {
		s := EncodeObject(&place{Age: 3}, "where")
		s = Join("title#t", "at#2020-01-01T00:00:00", "score#1", s, "points#{{x#1}&{x#oops}}", "tags#{}")
		_, err := DecodeObject[event](wrap(s))
		if err == nil {
			t.Fatal("expected error")
		}
	})
}
