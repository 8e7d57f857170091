package proto

import (
	"strings"
)

// Delimiter wraps fields that contain spaces.
const Delimiter = '\x01'

// Record is one decoded protocol line.
type Record struct {
	Type   string
	Fields []string
}

// ParseLine splits a raw protocol line into its type and fields.
// It returns false for lines that are not records (blank lines, banners,
// anything without the "*TYPE:" header).
func ParseLine(line string) (Record, bool) {
	line = strings.TrimRight(line, "\r\n")
	if !strings.HasPrefix(line, "*") {
		return Record{}, false
	}

	colon := strings.IndexByte(line, ':')
	if colon < 2 {
		return Record{}, false
	}

	typ := line[1:colon]
	if strings.ContainsAny(typ, " \x01") {
		return Record{}, false
	}

	return Record{Type: typ, Fields: SplitFields(line[colon+1:])}, true
}

// SplitFields splits a record body into fields. Runs of spaces separate
// fields; text between a pair of \x01 bytes is kept whole, spaces included.
// An unterminated \x01 field runs to the end of the line.
func SplitFields(body string) []string {
	var (
		fields []string
		cur    strings.Builder
		quoted bool
		inWord bool
	)

	flush := func() {
		fields = append(fields, cur.String())
		cur.Reset()
		inWord = false
	}

	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case c == Delimiter:
			if quoted {
				quoted = false
				flush()
			} else {
				if inWord {
					flush()
				}
				quoted = true
				inWord = true
			}
		case c == ' ' && !quoted:
			if inWord {
				flush()
			}
		default:
			cur.WriteByte(c)
			inWord = true
		}
	}

	if inWord {
		flush()
	}
	return fields
}

// Quote wraps a field value for the wire when it needs it.
func Quote(field string) string {
	if field == "" || strings.ContainsRune(field, ' ') {
		return string(Delimiter) + field + string(Delimiter)
	}
	return field
}

// FormatLine renders a record back into protocol form. Recorded feeds and
// tests use it to produce lines ParseLine accepts.
func FormatLine(typ string, fields ...string) string {
	var b strings.Builder
	b.WriteByte('*')
	b.WriteString(typ)
	b.WriteByte(':')
	for _, f := range fields {
		b.WriteByte(' ')
		b.WriteString(Quote(f))
	}
	return b.String()
}
