package csvline

import (
	"reflect"
	"strings"
)

type field struct {
	Name  string
	Type  reflect.Type
	Index []int
}

// fieldsToDeserialize returns the fields of ty in declaration order.
// Embedded structs are flattened in place, so their fields bind to the
// record positions where the embedding is declared. Names exist only for
// diagnostics and tag-based skipping; they are never matched against input.
func fieldsToDeserialize(ty reflect.Type, structTag string) []field {
	if ty.Kind() != reflect.Struct {
		panic("not a struct")
	}

	var fields []field

	var walk func(ty reflect.Type, parent []int)
	walk = func(ty reflect.Type, parent []int) {
		for idx := range ty.NumField() {
			fi := ty.Field(idx)
			if !fi.IsExported() {
				continue
			}

			name, explicit := nameOf(fi, structTag)
			if name == "" {
				// this one is skipped
				continue
			}

			// derive index of this one. ensure we allocate a new slice by
			// setting cap to the length of the parents index
			index := append(parent[:len(parent):len(parent)], fi.Index...)

			// an embedded struct is flattened, unless it is itself a leaf
			// (e.g. it implements encoding.TextUnmarshaler) or the tag gave
			// it an explicit name
			if fi.Anonymous && !explicit && fi.Type.Kind() == reflect.Struct {
				if _, _, leaf := leafConvOf(fi.Type); !leaf {
					walk(fi.Type, index)
					continue
				}
			}

			fields = append(fields, field{
				Name:  name,
				Type:  fi.Type,
				Index: index,
			})
		}
	}

	walk(ty, nil)

	return fields
}

func nameOf(fi reflect.StructField, structTag string) (name string, explicit bool) {
	// parse the struct tag to get a renamed alias
	tag := fi.Tag.Get(structTag)

	if tag == "" {
		// tag is empty, take the original name
		return fi.Name, false
	}

	if tag == "-" {
		// return empty name indicate: skip this field
		return "", true
	}

	idx := strings.IndexByte(tag, ',')
	switch {
	case idx == -1:
		// no comma, take the full tag as explicit name
		return tag, true

	case idx > 0:
		// non empty alias, take up to comma
		return tag[:idx], true

	default:
		// no alias before the comma, keep field name
		return fi.Name, false
	}
}
