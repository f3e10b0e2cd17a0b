package csvline

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"
	"strconv"

	"golang.org/x/exp/constraints"
)

// A conv converts one field's text into the target value. Conversions never
// look at neighbouring fields; attribution (index, raw text) is added by the
// caller.
type conv func(text string, target reflect.Value) error

var tyTextUnmarshaler = reflect.TypeFor[encoding.TextUnmarshaler]()

var errBoolSyntax = fmt.Errorf(`expected "true" or "false": %w`, strconv.ErrSyntax)

// leafConvOf returns the conversion for ty if ty is a leaf, i.e. a type
// that consumes exactly one field. Types implementing
// encoding.TextUnmarshaler take precedence over the builtin kinds.
func leafConvOf(ty reflect.Type) (conv, Kind, bool) {
	if reflect.PointerTo(ty).Implements(tyTextUnmarshaler) {
		return convText, KindText, true
	}

	switch ty.Kind() {
	case reflect.Bool:
		return convBool, KindBool, true

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return makeNumberConv(strconv.ParseInt, reflect.Value.SetInt, ty.Bits()), KindInt, true

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return makeNumberConv(strconv.ParseUint, reflect.Value.SetUint, ty.Bits()), KindUint, true

	case reflect.Float32, reflect.Float64:
		return makeFloatConv(ty.Bits()), KindFloat, true

	case reflect.String:
		return convString, KindString, true

	default:
		return nil, 0, false
	}
}

// convBool accepts exactly "true" and "false". This is stricter than
// strconv.ParseBool, which also takes "True", "1" and friends.
func convBool(text string, target reflect.Value) error {
	switch text {
	case "true":
		target.SetBool(true)
	case "false":
		target.SetBool(false)
	default:
		return errBoolSyntax
	}

	return nil
}

// makeNumberConv builds the conversion for an integer type of the given
// width. Overflow of the requested width is a failure wrapping
// strconv.ErrRange, never a wraparound.
func makeNumberConv[V constraints.Integer](
	parse func(s string, base int, bitSize int) (V, error),
	setValue func(reflect.Value, V),
	bits int,
) conv {
	return func(text string, target reflect.Value) error {
		parsed, err := parse(text, 10, bits)
		if err != nil {
			return numberErr(err)
		}

		setValue(target, parsed)
		return nil
	}
}

func makeFloatConv(bits int) conv {
	return func(text string, target reflect.Value) error {
		parsed, err := strconv.ParseFloat(text, bits)
		if err != nil {
			return numberErr(err)
		}

		target.SetFloat(parsed)
		return nil
	}
}

func convString(text string, target reflect.Value) error {
	target.SetString(text)
	return nil
}

func convText(text string, target reflect.Value) error {
	m := target.Addr().Interface().(encoding.TextUnmarshaler)
	return m.UnmarshalText([]byte(text))
}

// numberErr strips the strconv.NumError envelope. The raw text is reported
// by FieldParseError already, keeping only ErrSyntax or ErrRange here avoids
// repeating it.
func numberErr(err error) error {
	var numError *strconv.NumError
	if errors.As(err, &numError) {
		return numError.Err
	}

	return err
}
