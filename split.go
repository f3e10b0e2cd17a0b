package csvline

import "strings"

// splitFields splits one record into its fields following the RFC 4180
// grammar with a configurable one byte separator. Unquoted fields are
// substrings of line; only quote unescaping and quoted/unquoted mixing
// allocate. An unquoted CR or LF terminates the record, a trailing separator
// yields a trailing empty field, and the empty line yields no fields.
func splitFields(line string, sep byte) ([]string, error) {
	if line == "" {
		return nil, nil
	}

	var fields []string

	pos := 0
	for {
		if pos >= len(line) {
			// the record ended directly after a separator
			return append(fields, ""), nil
		}

		switch line[pos] {
		case sep:
			fields = append(fields, "")
			pos++

		case '\n', '\r':
			if len(fields) > 0 {
				// a separator directly before the terminator ends an
				// empty field
				fields = append(fields, "")
			}
			return fields, nil

		case '"':
			text, next, err := scanQuoted(line, pos, sep)
			if err != nil {
				return nil, err
			}
			fields = append(fields, text)
			if next < 0 {
				return fields, nil
			}
			pos = next

		default:
			end := indexTerminator(line, pos, sep)
			if end == -1 {
				return append(fields, line[pos:]), nil
			}
			fields = append(fields, line[pos:end])
			if line[end] != sep {
				return fields, nil
			}
			pos = end + 1
		}
	}
}

// scanQuoted consumes one field that opens with a quote at line[start]. It
// returns the resolved field text and the position directly after the
// field's separator, or -1 if the field ended the record.
func scanQuoted(line string, start int, sep byte) (text string, next int, err error) {
	escaped := false

	pos := start + 1
	for {
		quote := strings.IndexByte(line[pos:], '"')
		if quote == -1 {
			return "", 0, &SyntaxError{Column: start + 1, Err: ErrUnterminatedQuote}
		}
		pos += quote + 1

		if pos < len(line) && line[pos] == '"' {
			// a doubled quote is one literal quote
			escaped = true
			pos++
			continue
		}

		// closing quote at pos-1
		text = line[start+1 : pos-1]
		if escaped {
			text = strings.ReplaceAll(text, `""`, `"`)
		}
		break
	}

	if pos >= len(line) {
		return text, -1, nil
	}

	switch line[pos] {
	case sep:
		return text, pos + 1, nil
	case '\n', '\r':
		return text, -1, nil
	}

	// data after the closing quote continues the field unquoted, the
	// tolerant behavior most CSV readers settled on
	end := indexTerminator(line, pos, sep)
	if end == -1 {
		return text + line[pos:], -1, nil
	}
	if line[end] != sep {
		return text + line[pos:end], -1, nil
	}
	return text + line[pos:end], end + 1, nil
}

// indexTerminator returns the position of the next separator or record
// terminator at or after pos, or -1.
func indexTerminator(line string, pos int, sep byte) int {
	for i := pos; i < len(line); i++ {
		switch line[i] {
		case sep, '\n', '\r':
			return i
		}
	}
	return -1
}
