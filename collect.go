// Continuation collection for a field value.
//
// A field value may be hard-wrapped: lines indented deeper than the field
// name belong to the value, and comment lines ("--" after indentation) may
// sit between them. The first line at or below the field's own indentation
// starts the next field and ends the value.
//
// Comment lines are skipped whatever their indentation and never end the
// value. The document lexer discards them before layout is considered, so a
// comment in column 0 between two continuation lines does not split a field.
package cabalscan

import "bytes"

var (
	newline       = []byte{'\n'}
	commentMarker = []byte("--")
)

// collect tokenises value, which starts right after the separator, and any
// continuation lines hanging deeper than indent.
func collect(value []byte, indent int) [][]byte {
	first, rest, more := bytes.Cut(value, newline)
	tokens := bytes.Fields(first)

	for more {
		var line []byte
		line, rest, more = bytes.Cut(rest, newline)
		body := skipSpace(line)
		if bytes.HasPrefix(body, commentMarker) {
			continue
		}
		if indentOf(line) <= indent {
			break
		}
		tokens = append(tokens, bytes.Fields(body)...)
	}
	return tokens
}
