// Occurrence scanning for the version field keyword.
//
// Every case-insensitive hit of "cabal-version" is a possible declaration.
// A hit only counts when the keyword is the first thing on its line (after
// indentation) and is followed, after optional horizontal whitespace, by the
// ':' separator; anything else is dropped without error, exactly as the
// field would not exist for the full parser.
//
// Hits are visited latest first. A later declaration overrides an earlier
// one, so the first candidate that decodes is the answer and the walk can
// stop there.
package cabalscan

import "iter"

// Keyword is the field name searched for, matched ignoring ASCII case.
const Keyword = "cabal-version"

var keyword = []byte(Keyword)

// Candidate is one structurally valid occurrence of the keyword.
type Candidate struct {
	Offset int      // byte offset of the keyword in the buffer
	Prefix []byte   // everything before the keyword
	Indent int      // horizontal whitespace bytes before the keyword on its line
	Tokens [][]byte // whitespace-separated value tokens, continuation lines included
}

// Candidates yields the valid occurrences in buf, latest in the document
// first. Tokens alias buf; buf must not be modified while they are in use.
func Candidates(buf []byte) iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) {
		offsets := IndexFold(buf, keyword)
		for i := len(offsets) - 1; i >= 0; i-- {
			c, ok := occurrence(buf, offsets[i])
			if !ok {
				continue
			}
			if !yield(c) {
				return
			}
		}
	}
}

// occurrence validates the keyword at offset at and extracts its value.
func occurrence(buf []byte, at int) (Candidate, bool) {
	prefix := buf[:at]
	line := trimRightSpace(prefix)
	if len(line) > 0 && line[len(line)-1] != '\n' {
		return Candidate{}, false
	}
	indent := len(prefix) - len(line)

	rest := skipSpace(buf[at+len(keyword):])
	if len(rest) == 0 || rest[0] != ':' {
		return Candidate{}, false
	}
	value := skipSpace(rest[1:])

	return Candidate{
		Offset: at,
		Prefix: prefix,
		Indent: indent,
		Tokens: collect(value, indent),
	}, true
}

// isSpace reports horizontal whitespace. Newline never counts.
func isSpace(c byte) bool { return c == ' ' || c == '\t' }

func skipSpace(b []byte) []byte {
	i := 0
	for i < len(b) && isSpace(b[i]) {
		i++
	}
	return b[i:]
}

func trimRightSpace(b []byte) []byte {
	i := len(b)
	for i > 0 && isSpace(b[i-1]) {
		i--
	}
	return b[:i]
}

// indentOf counts the leading horizontal whitespace of a line.
func indentOf(line []byte) int {
	return len(line) - len(skipSpace(line))
}
