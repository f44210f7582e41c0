// Case-insensitive literal search over raw document bytes.
//
// The keyword is absent from the vast majority of any document, so the
// search spends nearly all of its time skipping. Candidate first bytes are
// located with bytes.IndexByte for the lower and upper case variant (both
// assembly-backed), and only then is the full needle compared. The next
// offset of each variant is remembered and searched for again only once the
// scan has moved past it, so every byte is examined at most once per
// variant however dense either case is.
//
// Folding is ASCII-only. bytes.EqualFold would apply Unicode simple folding,
// letting multi-byte runes such as U+017F (long s) stand in for ASCII
// letters, which the document grammar never does. Zero bytes are ordinary
// bytes here; nothing depends on NUL termination.
package cabalscan

import "bytes"

// IndexFold returns the offsets of every non-overlapping occurrence of
// needle in haystack, ignoring ASCII case, in increasing order. It returns
// nil when either argument is empty or there is no match.
func IndexFold(haystack, needle []byte) []int {
	n := len(needle)
	if n == 0 || len(haystack) < n {
		return nil
	}
	lo, up := lower(needle[0]), upper(needle[0])
	h := haystack[:len(haystack)-n+1] // offsets at which a match still fits

	var offsets []int
	nextLo, nextUp := -1, -1
	for i := 0; i < len(h); {
		nextLo = seek(h, lo, i, nextLo)
		j := nextLo
		if up != lo {
			nextUp = seek(h, up, i, nextUp)
			j = min(j, nextUp)
		}
		if j == len(h) {
			break
		}
		i = j
		if equalFold(haystack[i:i+n], needle) {
			offsets = append(offsets, i)
			i += n
			continue
		}
		i++
	}
	return offsets
}

// seek returns the offset of the first c in h at or after i, or len(h) if
// there is none. next is the previous answer for c; it is reused while it
// is still at or after i.
func seek(h []byte, c byte, i, next int) int {
	if next >= i {
		return next
	}
	if j := bytes.IndexByte(h[i:], c); j >= 0 {
		return i + j
	}
	return len(h)
}

// equalFold compares equal-length slices ignoring ASCII case.
func equalFold(a, b []byte) bool {
	for k := range a {
		if a[k] != b[k] && lower(a[k]) != lower(b[k]) {
			return false
		}
	}
	return true
}

func lower(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}

func upper(c byte) byte {
	if 'a' <= c && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}
