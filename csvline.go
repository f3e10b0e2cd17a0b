package csvline

// The default Decoder instance.
var dec Decoder

// Unmarshal decodes one comma separated line into target using the default
// decoder. target must be a non-nil pointer.
func Unmarshal(line string, target any) error {
	return dec.Unmarshal(line, target)
}

// UnmarshalNew decodes one comma separated line into a fresh T.
func UnmarshalNew[T any](line string) (T, error) {
	return UnmarshalNewWith[T](&dec, line)
}

// UnmarshalNewWith decodes one line into a fresh T using the given Decoder.
func UnmarshalNewWith[T any](dec *Decoder, line string) (T, error) {
	var target T
	err := dec.Unmarshal(line, &target)
	return target, err
}
