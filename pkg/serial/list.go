package serial

import "strings"

// EncodeList writes a list of records. Each element is wrapped in object
// markers, nil elements as an envelope around the Null sentinel. A nil list
// is written as an envelope around the Null sentinel.
func EncodeList[T any, P RecordPtr[T]](items []*T, name string) string {
	if items == nil {
		return MakePair(name, nullObject)
	}
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = encodeElement[T, P](item)
	}
	return MakePair(name, wrap(strings.Join(parts, string(ListSeparator))))
}

// EncodeStringList writes a list of strings. Elements are not wrapped.
func EncodeStringList(items []string, name string) string {
	if items == nil {
		return MakePair(name, nullObject)
	}
	return MakePair(name, wrap(strings.Join(items, string(ListSeparator))))
}

// EncodeNullableStringList writes a list of nullable strings. Nil elements
// are written as the Null sentinel.
func EncodeNullableStringList(items []*string, name string) string {
	if items == nil {
		return MakePair(name, nullObject)
	}
	parts := make([]string, len(items))
	for i, item := range items {
		if item == nil {
			parts[i] = Null
		} else {
			parts[i] = *item
		}
	}
	return MakePair(name, wrap(strings.Join(parts, string(ListSeparator))))
}

// splitList strips the outer envelope and splits its content on
// ListSeparator. The split does not track nesting. A nil slice means the
// list itself is absent.
func splitList(op, text string) ([]string, error) {
	inner, err := unwrap(op, text)
	if err != nil {
		return nil, err
	}
	switch inner {
	case Null:
		return nil, nil
	case "":
		return []string{}, nil
	}
	return strings.Split(inner, string(ListSeparator)), nil
}

// DecodeList reads value text written by EncodeList. The first element that
// fails to decode aborts the whole list.
func DecodeList[T any, P RecordPtr[T]](text string) ([]*T, error) {
	pieces, err := splitList("decode list", text)
	if err != nil || pieces == nil {
		return nil, err
	}
	items := make([]*T, len(pieces))
	for i, piece := range pieces {
		if piece == Null {
			continue
		}
		item, err := DecodeObject[T, P](piece)
		if err != nil {
			return nil, err
		}
		items[i] = item
	}
	return items, nil
}

// DecodeListFunc reads value text written by EncodeList, replacing every
// element that fails to decode with nil and passing its error to onError.
// Errors in the outer envelope are still returned.
func DecodeListFunc[T any, P RecordPtr[T]](text string, onError func(i int, err error)) ([]*T, error) {
	pieces, err := splitList("decode list", text)
	if err != nil || pieces == nil {
		return nil, err
	}
	items := make([]*T, len(pieces))
	for i, piece := range pieces {
		if piece == Null {
			continue
		}
		item, err := DecodeObject[T, P](piece)
		if err != nil {
			if onError != nil {
				onError(i, err)
			}
			continue
		}
		items[i] = item
	}
	return items, nil
}

// DecodeStringList reads value text written by EncodeStringList. Null
// elements are returned as empty strings.
func DecodeStringList(text string) ([]string, error) {
	pieces, err := splitList("decode string list", text)
	if err != nil || pieces == nil {
		return nil, err
	}
	for i, piece := range pieces {
		if piece == Null {
			pieces[i] = ""
		}
	}
	return pieces, nil
}

// DecodeNullableStringList reads value text written by
// EncodeNullableStringList.
func DecodeNullableStringList(text string) ([]*string, error) {
	pieces, err := splitList("decode string list", text)
	if err != nil || pieces == nil {
		return nil, err
	}
	items := make([]*string, len(pieces))
	for i, piece := range pieces {
		items[i] = DecodeString(piece)
	}
	return items, nil
}
