package csvline

import (
	"fmt"
	"reflect"
	"sync"
)

// A setter fills the reflect.Value from fields pulled off the cursor.
type setter func(cur *cursor, target reflect.Value) error

// Decoder can be used to customize decoding. A Decoder is safe for
// concurrent use; every Unmarshal call splits its line and walks the fields
// on the call stack.
type Decoder struct {
	// the field separator, ',' if zero
	sep byte

	// the struct tag consulted for skipping fields
	structTag string

	// Cache for setters, indexed by reflect.Type
	setterCache sync.Map
}

func NewDecoder() *Decoder {
	return &Decoder{
		sep:       ',',
		structTag: "csv",
	}
}

// WithSeparator returns a Decoder splitting fields on sep instead of ','.
func (d *Decoder) WithSeparator(sep byte) *Decoder {
	if d.sep == sep {
		return d
	}

	return &Decoder{
		sep:       sep,
		structTag: d.structTag,
	}
}

// WithTag returns a Decoder consulting the given struct tag. The tag only
// renames fields for diagnostics and supports skipping with "-"; names are
// never matched against the input.
func (d *Decoder) WithTag(structTag string) *Decoder {
	if d.structTag == structTag {
		return d
	}

	return &Decoder{
		sep:       d.sep,
		structTag: structTag,
	}
}

// Unmarshal decodes one line into target, which must be a non-nil pointer.
// On failure target is left in an unspecified intermediate state and must
// not be used.
func (d *Decoder) Unmarshal(line string, target any) error {
	targetValue := reflect.ValueOf(target).Elem()

	// build the setter for the targets type
	set, err := d.setterOf(targetValue.Type())
	if err != nil {
		return err
	}

	sep := d.sep
	if sep == 0 {
		sep = ','
	}

	fields, err := splitFields(line, sep)
	if err != nil {
		return err
	}

	cur := cursor{fields: fields}
	if err := set(&cur, targetValue); err != nil {
		return err
	}

	if remaining := cur.remaining(); remaining > 0 {
		return TrailingFieldsError{Remaining: remaining}
	}

	return nil
}

func (d *Decoder) setterOf(ty reflect.Type) (setter, error) {
	if cached, ok := d.setterCache.Load(ty); ok {
		return cached.(setter), nil
	}

	set, err := d.makeSetterOf(ty)
	if err != nil {
		return nil, err
	}

	d.setterCache.Store(ty, set)

	return set, nil
}

func (d *Decoder) makeSetterOf(ty reflect.Type) (setter, error) {
	if fn, kind, ok := leafConvOf(ty); ok {
		return makeSetLeaf(fn, kind), nil
	}

	switch ty.Kind() {
	case reflect.Pointer:
		return d.makeSetOptional(ty)

	case reflect.Struct:
		return d.makeSetStruct(ty)

	case reflect.Slice:
		return d.makeSetSequence(ty)

	case reflect.Array:
		return d.makeSetArray(ty)

	case reflect.Map:
		return nil, NotSupportedError{Type: ty, Reason: "a flat record carries no keys"}

	default:
		return nil, NotSupportedError{Type: ty, Reason: "not decodable from field text"}
	}
}

// makeSetLeaf wires a scalar conversion to the cursor: pull exactly one
// field, convert it, attribute failures to the field's index.
func makeSetLeaf(fn conv, kind Kind) setter {
	return func(cur *cursor, target reflect.Value) error {
		text, index, ok := cur.next()
		if !ok {
			return MissingFieldError{Index: index, Expected: kind}
		}

		if err := fn(text, target); err != nil {
			return FieldParseError{Index: index, Raw: text, Expected: kind, Err: err}
		}

		return nil
	}
}

// makeSetOptional builds the setter for a pointer type. The field is
// optional: an exhausted record or empty field text leaves the pointer nil,
// anything else decodes the pointee.
func (d *Decoder) makeSetOptional(ty reflect.Type) (setter, error) {
	pointeeType := ty.Elem()

	fn, kind, ok := leafConvOf(pointeeType)
	if !ok {
		return nil, NotSupportedError{Type: ty, Reason: "optional of a non-scalar type"}
	}

	set := func(cur *cursor, target reflect.Value) error {
		text, index, ok := cur.next()
		if !ok || text == "" {
			return nil
		}

		// newValue is a pointer to a fresh instance of the pointeeType
		newValue := reflect.New(pointeeType)
		if err := fn(text, newValue.Elem()); err != nil {
			return FieldParseError{Index: index, Raw: text, Expected: kind, Err: err}
		}

		target.Set(newValue)
		return nil
	}

	return set, nil
}

// makeSetStruct builds the positional setter for a struct type. The Nth
// declared field always binds to the Nth input field. A slice field must be
// the final field; compound fields cannot span a flat record and are
// rejected when the setter is built, independent of any input.
func (d *Decoder) makeSetStruct(ty reflect.Type) (setter, error) {
	structTag := d.structTag
	if structTag == "" {
		structTag = "csv"
	}

	fields := fieldsToDeserialize(ty, structTag)

	var setters []setter

	for idx, field := range fields {
		if _, _, leaf := leafConvOf(field.Type); !leaf {
			switch field.Type.Kind() {
			case reflect.Pointer:
				// optional, checked by makeSetOptional

			case reflect.Slice:
				if idx != len(fields)-1 {
					reason := fmt.Sprintf("sequence field %q must be the final field", field.Name)
					return nil, NotSupportedError{Type: ty, Reason: reason}
				}

			default:
				reason := fmt.Sprintf("field %q cannot span a flat record", field.Name)
				return nil, NotSupportedError{Type: field.Type, Reason: reason}
			}
		}

		set, err := d.setterOf(field.Type)
		if err != nil {
			return nil, err
		}

		setters = append(setters, set)
	}

	set := func(cur *cursor, target reflect.Value) error {
		for idx, field := range fields {
			fieldValue := target.FieldByIndex(field.Index)
			if err := setters[idx](cur, fieldValue); err != nil {
				return err
			}
		}

		return nil
	}

	return set, nil
}

// makeSetSequence builds the setter for a slice type. A sequence absorbs
// every field the cursor still holds, so it is only valid as the whole
// target or as the final struct field.
func (d *Decoder) makeSetSequence(ty reflect.Type) (setter, error) {
	elementType := ty.Elem()

	fn, kind, ok := leafConvOf(elementType)
	if !ok {
		return nil, NotSupportedError{Type: ty, Reason: "sequence of a non-scalar element"}
	}

	set := func(cur *cursor, target reflect.Value) error {
		count := cur.remaining()
		if count == 0 {
			return nil
		}

		elements := reflect.MakeSlice(ty, count, count)

		for idx := 0; idx < count; idx++ {
			text, fieldIndex, _ := cur.next()
			if err := fn(text, elements.Index(idx)); err != nil {
				return FieldParseError{Index: fieldIndex, Raw: text, Expected: kind, Err: err}
			}
		}

		target.Set(elements)
		return nil
	}

	return set, nil
}

// makeSetArray builds the setter for an array type: a fixed run of exactly
// Len scalar fields.
func (d *Decoder) makeSetArray(ty reflect.Type) (setter, error) {
	fn, kind, ok := leafConvOf(ty.Elem())
	if !ok {
		return nil, NotSupportedError{Type: ty, Reason: "array of a non-scalar element"}
	}

	elementCount := ty.Len()

	set := func(cur *cursor, target reflect.Value) error {
		for idx := 0; idx < elementCount; idx++ {
			text, fieldIndex, ok := cur.next()
			if !ok {
				return MissingFieldError{Index: fieldIndex, Expected: kind}
			}

			if err := fn(text, target.Index(idx)); err != nil {
				return FieldParseError{Index: fieldIndex, Raw: text, Expected: kind, Err: err}
			}
		}

		return nil
	}

	return set, nil
}
