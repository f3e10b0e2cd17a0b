// Package csvline deserializes a single line of delimiter separated text
// directly onto a go value (a struct, slice, scalar or pointer), similar in
// spirit to [json.Unmarshal] but for exactly one CSV record.
//
// The target type drives the decoding: struct fields bind to input fields by
// declaration order, never by name. There is no header concept. A pointer
// field is optional, a trailing slice field absorbs the remainder of the
// record, and every other leaf consumes exactly one field.
//
//	type Row struct {
//	    Name   string
//	    Count  int
//	    Factor *float64
//	    Tags   []string
//	}
//
//	row, err := csvline.UnmarshalNew[Row](`gauge,3,0.5,a,b,c`)
//
// Field splitting follows the RFC 4180 single line grammar: a quoted field
// may contain the delimiter, line breaks and doubled quotes. The separator
// is a single byte and defaults to ','; use [Decoder.WithSeparator] for
// TSV-like input.
//
// Decoding either consumes and converts every field of the line, or fails
// with a single error carrying the field index, the raw text and the
// expected scalar kind. There is no partial result.
package csvline
