package serial

import "fmt"

// Record is implemented by every type that can be written in the flat
// format.
type Record interface {
	// FieldString returns the receiver's fields as pairs joined with Join.
	FieldString() string
	// FromFieldString populates the receiver from a string produced by
	// FieldString, with the outer object markers already removed.
	FromFieldString(s string) error
}

// RecordPtr is satisfied by *T when *T implements Record. It lets the
// decoders allocate a T without reflection.
type RecordPtr[T any] interface {
	*T
	Record
}

// EncodeObject writes a nested record field. A nil record is written as an
// object envelope around the Null sentinel.
func EncodeObject[T any, P RecordPtr[T]](r *T, name string) string {
	return MakePair(name, encodeElement[T, P](r))
}

func encodeElement[T any, P RecordPtr[T]](r *T) string {
	if r == nil {
		return nullObject
	}
	return wrap(P(r).FieldString())
}

// DecodeObject reads value text written by EncodeObject. It returns nil for
// an envelope around the Null sentinel.
func DecodeObject[T any, P RecordPtr[T]](text string) (*T, error) {
	inner, err := unwrap("decode object", text)
	if err != nil {
		return nil, err
	}
	if inner == Null {
		return nil, nil
	}

	r := new(T)
	if err := P(r).FromFieldString(inner); err != nil {
		return nil, &ConstructionError{Type: typeName[T](), Err: err}
	}
	return r, nil
}

func typeName[T any]() string {
	return fmt.Sprintf("%T", *new(T))
}
