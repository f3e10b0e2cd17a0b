package csvline

// cursor is a forward-only view over the split fields of one record. It is
// built on the call stack for a single Unmarshal call and never rewinds.
type cursor struct {
	fields []string
	pos    int
}

// next returns the next unconsumed field and its zero-based index. When the
// record is exhausted ok is false and index is the index the next field
// would have had, which is what arity errors report.
func (c *cursor) next() (text string, index int, ok bool) {
	if c.pos >= len(c.fields) {
		return "", c.pos, false
	}

	text, index = c.fields[c.pos], c.pos
	c.pos++
	return text, index, true
}

// remaining is the number of fields not yet consumed.
func (c *cursor) remaining() int {
	return len(c.fields) - c.pos
}
