package cinema

import (
	"time"

	"github.com/ssargent/cinedb/pkg/serial"
)

// fieldReader decodes required fields and keeps the first error.
type fieldReader struct {
	fields serial.Fields
	err    error
}

func newFieldReader(s string) (*fieldReader, error) {
	fields, err := serial.Parse(s)
	if err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, &serial.FormatError{Op: "read record", Input: s, Reason: serial.ErrMissingField}
	}
	return &fieldReader{fields: fields}, nil
}

func (r *fieldReader) raw(name string) (string, bool) {
	if r.err != nil {
		return "", false
	}
	v, err := r.fields.Lookup(name)
	if err != nil {
		r.err = err
		return "", false
	}
	return v, true
}

func (r *fieldReader) nullable(name string) *string {
	v, ok := r.raw(name)
	if !ok {
		return nil
	}
	return serial.DecodeString(v)
}

// text reads a string field that is never written as null.
func (r *fieldReader) text(name string) string {
	if v := r.nullable(name); v != nil {
		return *v
	}
	return ""
}

func (r *fieldReader) int(name string) int {
	v, ok := r.raw(name)
	if !ok {
		return 0
	}
	n, err := serial.DecodeInt(v)
	if err != nil {
		r.err = err
	}
	return n
}

func (r *fieldReader) float(name string) float64 {
	v, ok := r.raw(name)
	if !ok {
		return 0
	}
	f, err := serial.DecodeFloat(v)
	if err != nil {
		r.err = err
	}
	return f
}

func (r *fieldReader) time(name string) time.Time {
	v, ok := r.raw(name)
	if !ok {
		return time.Time{}
	}
	t, err := serial.DecodeTime(v)
	if err != nil {
		r.err = err
	}
	return t
}

func (r *fieldReader) strings(name string) []string {
	v, ok := r.raw(name)
	if !ok {
		return nil
	}
	list, err := serial.DecodeStringList(v)
	if err != nil {
		r.err = err
	}
	return list
}

func readObject[T any, P serial.RecordPtr[T]](r *fieldReader, name string) *T {
	v, ok := r.raw(name)
	if !ok {
		return nil
	}
	obj, err := serial.DecodeObject[T, P](v)
	if err != nil {
		r.err = err
	}
	return obj
}

func readList[T any, P serial.RecordPtr[T]](r *fieldReader, name string) []*T {
	v, ok := r.raw(name)
	if !ok {
		return nil
	}
	list, err := serial.DecodeList[T, P](v)
	if err != nil {
		r.err = err
	}
	return list
}
