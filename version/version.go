// Package version models Cabal package versions and version ranges.
//
// A Version is a non-empty sequence of non-negative integers written as
// dot-separated decimal components ("1.10", "2.0.0.1"). Versions order
// lexicographically by component; when one is a prefix of the other the
// shorter one sorts first, so "1.2" and "1.2.0" are distinct versions.
//
// A Range is a constraint expression ("^>= 1.2 && < 2 || == 3.*") kept in
// its decomposed form: a normalised, ordered list of non-overlapping
// intervals. Most callers only ever need the lower bound of the first one.
package version

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Sentinel errors. Parse and ParseRange wrap them with the offending input.
var (
	ErrInvalidVersion = errors.New("invalid version")
	ErrInvalidRange   = errors.New("invalid version range")
)

// maxDigits bounds a single component so it always fits in an int.
const maxDigits = 9

// Zero is the version "0", the smallest version there is.
var Zero = Version{c: []int{0}}

// Version is an immutable package version. The zero value is not a valid
// version; use Zero for "0".
type Version struct {
	c []int
}

// New builds a version from its components. It panics if there are no
// components or any of them is negative.
func New(components ...int) Version {
	if len(components) == 0 {
		panic("version: no components")
	}
	for _, n := range components {
		if n < 0 {
			panic("version: negative component")
		}
	}
	return Version{c: slices.Clone(components)}
}

// Parse parses a dotted version such as "1.10" or "2.0.0.1". Components
// must be decimal, without leading zeros, and at most nine digits long.
func Parse(s string) (Version, error) {
	if s == "" {
		return Version{}, fmt.Errorf("%w: empty", ErrInvalidVersion)
	}
	parts := strings.Split(s, ".")
	c := make([]int, len(parts))
	for i, p := range parts {
		n, ok := component(p)
		if !ok {
			return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
		}
		c[i] = n
	}
	return Version{c: c}, nil
}

// MustParse is like Parse but panics on error. Intended for constants and
// static tables.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

func component(p string) (int, bool) {
	if p == "" || len(p) > maxDigits || (len(p) > 1 && p[0] == '0') {
		return 0, false
	}
	n := 0
	for i := 0; i < len(p); i++ {
		if p[i] < '0' || p[i] > '9' {
			return 0, false
		}
		n = n*10 + int(p[i]-'0')
	}
	return n, true
}

// Components returns a copy of the version's components.
func (v Version) Components() []int { return slices.Clone(v.c) }

// Valid reports whether v has at least one component.
func (v Version) Valid() bool { return len(v.c) > 0 }

// Compare returns -1, 0 or +1 depending on whether v sorts before, equal to
// or after o.
func (v Version) Compare(o Version) int { return slices.Compare(v.c, o.c) }

// Equal reports whether v and o have identical components.
func (v Version) Equal(o Version) bool { return slices.Equal(v.c, o.c) }

func (v Version) String() string {
	var b strings.Builder
	for i, n := range v.c {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(strconv.Itoa(n))
	}
	return b.String()
}

// MarshalText encodes the version in its dotted form.
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText decodes a dotted version.
func (v *Version) UnmarshalText(text []byte) error {
	p, err := Parse(string(text))
	if err != nil {
		return err
	}
	*v = p
	return nil
}

// nextMinor is the exclusive upper end of a major-version constraint:
// 1 -> 1.1, 1.2.3 -> 1.3.
func (v Version) nextMinor() Version {
	if len(v.c) == 1 {
		return Version{c: []int{v.c[0], 1}}
	}
	return Version{c: []int{v.c[0], v.c[1] + 1}}
}

// nextLast is the exclusive upper end of a wildcard: 1.2 (from 1.2.*) -> 1.3.
func (v Version) nextLast() Version {
	c := slices.Clone(v.c)
	c[len(c)-1]++
	return Version{c: c}
}
