package csvline

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrUnterminatedQuote is returned (wrapped in a SyntaxError) when a quoted
// field is still open at the end of the line.
var ErrUnterminatedQuote = errors.New("unterminated quoted field")

// Kind names the scalar class a leaf expects. It is carried by
// MissingFieldError and FieldParseError to build diagnostics without
// re-parsing the input.
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindUint
	KindFloat
	KindString
	// KindText marks leaves decoded through encoding.TextUnmarshaler.
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "integer"
	case KindUint:
		return "unsigned integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindText:
		return "text"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// SyntaxError reports a line that could not be split into fields. Column is
// the one-based byte position the splitter stopped at.
type SyntaxError struct {
	Column int
	Err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at column %d: %v", e.Column, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// MissingFieldError reports that the record ended while a required leaf at
// Index still expected a field.
type MissingFieldError struct {
	Index    int
	Expected Kind
}

func (e MissingFieldError) Error() string {
	return fmt.Sprintf("missing field at index %d: expected %s", e.Index, e.Expected)
}

// TrailingFieldsError reports that the record held more fields than the
// target shape declares.
type TrailingFieldsError struct {
	Remaining int
}

func (e TrailingFieldsError) Error() string {
	return fmt.Sprintf("record has %d trailing field(s)", e.Remaining)
}

// FieldParseError reports a field whose text could not be converted to the
// requested scalar kind. It wraps the underlying strconv error, so
// errors.Is(err, strconv.ErrRange) works for overflow.
type FieldParseError struct {
	Index    int
	Raw      string
	Expected Kind
	Err      error
}

func (e FieldParseError) Error() string {
	return fmt.Sprintf("parse field %d %q as %s: %v", e.Index, e.Raw, e.Expected, e.Err)
}

func (e FieldParseError) Unwrap() error {
	return e.Err
}

// NotSupportedError reports a target type that requests a shape this format
// cannot represent, e.g. a map (the format carries no keys) or a nested
// compound field.
type NotSupportedError struct {
	Type   reflect.Type
	Reason string
}

func (n NotSupportedError) Error() string {
	return fmt.Sprintf("type %q is not supported: %s", n.Type, n.Reason)
}
