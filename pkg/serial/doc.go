// Package serial implements the flat-string record format used by cinedb.
//
// A record is written as a list of name/value pairs joined into one string.
// Nested records and lists are wrapped in object markers so the outer parser
// can treat their content as opaque.
//
// # Format
//
// The delimiters are fixed and must match any previously written data:
//
//	~       separates top-level pairs
//	{ }     open and close nested object or list content
//	#       separates a pair's name from its value
//	&       separates list elements
//	`null`  marks an absent string, object or list
//
// A record with an integer field and an absent string field:
//
//	age#5~city#`null`
//
// A record holding a nested record and a list of strings:
//
//	a#{x#1}~tags#{foo&bar}
//
// # Records
//
// Types that can be written implement [Record]. FieldString returns the
// joined pairs for the receiver's fields and FromFieldString populates the
// receiver from such a string. The generic helpers [EncodeObject],
// [DecodeObject], [EncodeList] and [DecodeList] work on any pointer type
// satisfying [RecordPtr], so decoding allocates the target with new(T) and
// never uses reflection. When the type is only known by name, use a
// [Registry].
//
// # Limitations
//
// Leaf values are written verbatim. A string containing ~, #, {, } or & can
// not be read back correctly: & breaks list decoding, ~ and # outside of
// object markers break field decoding, and unbalanced braces break both.
// List elements are split on & without tracking nesting. Use [CheckText] to
// reject such strings before they are written. A string list holding a
// single null element reads back as an absent list, and a list holding a
// single empty string reads back as an empty list.
//
// # Thread Safety
//
// All functions are pure and safe for concurrent use. A [Registry] is safe
// for concurrent lookups once registration is finished.
package serial
