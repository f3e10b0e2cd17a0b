package csvline

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

type scalarTestValues[T any] struct {
	MinIn  string
	MinOut T

	MaxIn  string
	MaxOut T

	OutOfRange []string
	Invalid    []string
}

func scalarTest[T any](t *testing.T, v scalarTestValues[T]) {
	var tZero T

	t.Run(fmt.Sprintf("parse to %T", tZero), func(t *testing.T) {
		actual, err := UnmarshalNew[T](v.MinIn)
		require.NoError(t, err)
		require.Equal(t, v.MinOut, actual)

		actual, err = UnmarshalNew[T](v.MaxIn)
		require.NoError(t, err)
		require.Equal(t, v.MaxOut, actual)

		for _, value := range v.OutOfRange {
			actual, err = UnmarshalNew[T](value)
			require.ErrorIs(t, err, strconv.ErrRange)
			require.Equal(t, tZero, actual)
		}

		for _, value := range v.Invalid {
			actual, err = UnmarshalNew[T](value)

			var parseErr FieldParseError
			require.ErrorAs(t, err, &parseErr, "input %q", value)
			require.Equal(t, value, parseErr.Raw)
			require.Equal(t, tZero, actual)
		}
	})
}

func TestScalarGrammar(t *testing.T) {
	scalarTest(t, scalarTestValues[int8]{
		MinIn:      "-128",
		MinOut:     -128,
		MaxIn:      "127",
		MaxOut:     127,
		OutOfRange: []string{"-129", "128"},
		Invalid:    []string{"foobar", "1e4", "0x10", "1_000", " 1"},
	})

	scalarTest(t, scalarTestValues[int64]{
		MinIn:      "-9223372036854775808",
		MinOut:     -9223372036854775808,
		MaxIn:      "9223372036854775807",
		MaxOut:     9223372036854775807,
		OutOfRange: []string{"-9223372036854775809", "9223372036854775808"},
		Invalid:    []string{"foobar", "1e4"},
	})

	scalarTest(t, scalarTestValues[uint8]{
		MinIn:      "0",
		MinOut:     0,
		MaxIn:      "255",
		MaxOut:     255,
		OutOfRange: []string{"256"},
		Invalid:    []string{"foobar", "-1"},
	})

	scalarTest(t, scalarTestValues[uint64]{
		MinIn:      "0",
		MinOut:     0,
		MaxIn:      "18446744073709551615",
		MaxOut:     18446744073709551615,
		OutOfRange: []string{"18446744073709551616"},
		Invalid:    []string{"foobar", "-1"},
	})

	scalarTest(t, scalarTestValues[float64]{
		MinIn:   "-1234.5",
		MinOut:  -1234.5,
		MaxIn:   "1e4",
		MaxOut:  10000,
		Invalid: []string{"foobar"},
	})

	// the empty line carries no fields at all, so the empty string field
	// must be spelled as a quoted empty field
	scalarTest(t, scalarTestValues[string]{
		MinIn:  `""`,
		MinOut: "",
		MaxIn:  "foobar",
		MaxOut: "foobar",
	})
}

// The empty field is a parse failure for every kind except string. It has
// to be spelled as a quoted empty field: the empty line carries no fields,
// which is a missing field instead.
func TestEmptyField(t *testing.T) {
	_, err := UnmarshalNew[int](`""`)
	require.Equal(t, FieldParseError{Index: 0, Raw: "", Expected: KindInt, Err: strconv.ErrSyntax}, err)

	_, err = UnmarshalNew[uint8](`""`)
	require.Equal(t, FieldParseError{Index: 0, Raw: "", Expected: KindUint, Err: strconv.ErrSyntax}, err)

	_, err = UnmarshalNew[float64](`""`)
	require.Equal(t, FieldParseError{Index: 0, Raw: "", Expected: KindFloat, Err: strconv.ErrSyntax}, err)

	_, err = UnmarshalNew[bool](`""`)
	require.Equal(t, FieldParseError{Index: 0, Raw: "", Expected: KindBool, Err: errBoolSyntax}, err)

	text, err := UnmarshalNew[string](`""`)
	require.NoError(t, err)
	require.Equal(t, "", text)

	_, err = UnmarshalNew[int]("")
	require.Equal(t, MissingFieldError{Index: 0, Expected: KindInt}, err)
}

// Rendering a value with strconv and decoding it back must yield the value.
// This covers the conversion functions only, serialization of whole lines is
// out of scope.
func TestScalarRoundTrip(t *testing.T) {
	for _, value := range []int64{0, 1, -1, 42, -9223372036854775808, 9223372036854775807} {
		actual, err := UnmarshalNew[int64](strconv.FormatInt(value, 10))
		require.NoError(t, err)
		require.Equal(t, value, actual)
	}

	for _, value := range []uint64{0, 18446744073709551615} {
		actual, err := UnmarshalNew[uint64](strconv.FormatUint(value, 10))
		require.NoError(t, err)
		require.Equal(t, value, actual)
	}

	for _, value := range []float64{0, -0.5, 3.141592653589793, 1e300, -1e-300} {
		actual, err := UnmarshalNew[float64](strconv.FormatFloat(value, 'g', -1, 64))
		require.NoError(t, err)
		require.Equal(t, value, actual)
	}

	for _, value := range []bool{true, false} {
		actual, err := UnmarshalNew[bool](strconv.FormatBool(value))
		require.NoError(t, err)
		require.Equal(t, value, actual)
	}
}
