package version

import (
	"fmt"
	"strings"
)

// Range is a parsed version constraint, held as its interval decomposition.
type Range struct {
	src string
	ivs []Interval
}

// ParseRange parses a version range expression. Supported forms:
//
//	-any  -none
//	== V  > V  >= V  < V  <= V  ^>= V
//	== V.*
//	== { V, V }  ^>= { V, V }
//	R && R  R || R  ( R )
//
// "&&" binds tighter than "||". Whitespace between tokens is optional.
func ParseRange(s string) (Range, error) {
	p := &rangeParser{s: s}
	ivs, err := p.union()
	if err == nil {
		p.space()
		if p.pos != len(p.s) {
			err = p.errorf("unexpected %q", p.s[p.pos:])
		}
	}
	if err != nil {
		return Range{}, err
	}
	return Range{src: strings.TrimSpace(s), ivs: ivs}, nil
}

// Intervals returns the normalised interval decomposition. An unsatisfiable
// range has none.
func (r Range) Intervals() []Interval {
	return append([]Interval(nil), r.ivs...)
}

// LowerBound returns the smallest version admitted by the first interval.
// It reports false when the range admits no version at all.
func (r Range) LowerBound() (Version, bool) {
	if len(r.ivs) == 0 {
		return Version{}, false
	}
	return r.ivs[0].Lower.Version, true
}

// Contains reports whether v satisfies the range.
func (r Range) Contains(v Version) bool {
	for _, iv := range r.ivs {
		if iv.Contains(v) {
			return true
		}
	}
	return false
}

func (r Range) String() string { return r.src }

type rangeParser struct {
	s   string
	pos int
}

func (p *rangeParser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: %q at offset %d: %s", ErrInvalidRange, p.s, p.pos, fmt.Sprintf(format, args...))
}

func (p *rangeParser) space() {
	for p.pos < len(p.s) {
		switch p.s[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *rangeParser) accept(tok string) bool {
	p.space()
	if strings.HasPrefix(p.s[p.pos:], tok) {
		p.pos += len(tok)
		return true
	}
	return false
}

func (p *rangeParser) union() ([]Interval, error) {
	ivs, err := p.intersection()
	for err == nil && p.accept("||") {
		var rhs []Interval
		if rhs, err = p.intersection(); err == nil {
			ivs = union(ivs, rhs)
		}
	}
	return ivs, err
}

func (p *rangeParser) intersection() ([]Interval, error) {
	ivs, err := p.primary()
	for err == nil && p.accept("&&") {
		var rhs []Interval
		if rhs, err = p.primary(); err == nil {
			ivs = intersect(ivs, rhs)
		}
	}
	return ivs, err
}

func (p *rangeParser) primary() ([]Interval, error) {
	switch {
	case p.accept("("):
		ivs, err := p.union()
		if err != nil {
			return nil, err
		}
		if !p.accept(")") {
			return nil, p.errorf("missing ')'")
		}
		return ivs, nil
	case p.accept("-any"):
		return []Interval{atLeast(Zero)}, nil
	case p.accept("-none"):
		return nil, nil
	case p.accept("^>="):
		if p.accept("{") {
			return p.set(func(v Version) Interval { return between(v, v.nextMinor()) })
		}
		v, err := p.version(false)
		if err != nil {
			return nil, err
		}
		return []Interval{between(v, v.nextMinor())}, nil
	case p.accept("=="):
		if p.accept("{") {
			return p.set(point)
		}
		start := p.pos
		v, err := p.version(true)
		if err != nil {
			return nil, err
		}
		if strings.HasSuffix(p.s[start:p.pos], "*") {
			return []Interval{between(v, v.nextLast())}, nil
		}
		return []Interval{point(v)}, nil
	case p.accept(">="):
		return p.leaf(atLeast)
	case p.accept("<="):
		return p.leaf(func(v Version) Interval { return below(v, true) })
	case p.accept(">"):
		return p.leaf(greater)
	case p.accept("<"):
		return p.leaf(func(v Version) Interval { return below(v, false) })
	}
	if p.pos >= len(p.s) {
		return nil, p.errorf("unexpected end of input")
	}
	return nil, p.errorf("expected constraint")
}

func (p *rangeParser) leaf(mk func(Version) Interval) ([]Interval, error) {
	v, err := p.version(false)
	if err != nil {
		return nil, err
	}
	return normalize([]Interval{mk(v)}), nil
}

// set parses the remainder of "{ V, V }" after the opening brace.
func (p *rangeParser) set(mk func(Version) Interval) ([]Interval, error) {
	var ivs []Interval
	for {
		v, err := p.version(false)
		if err != nil {
			return nil, err
		}
		ivs = append(ivs, mk(v))
		if p.accept("}") {
			return normalize(ivs), nil
		}
		if !p.accept(",") {
			return nil, p.errorf("expected ',' or '}'")
		}
	}
}

// version reads a dotted version literal. With wildcard set a trailing
// ".*" is accepted and stripped; the caller detects it from the consumed
// text.
func (p *rangeParser) version(wildcard bool) (Version, error) {
	p.space()
	start := p.pos
	for p.pos < len(p.s) && (p.s[p.pos] == '.' || ('0' <= p.s[p.pos] && p.s[p.pos] <= '9')) {
		p.pos++
	}
	lit := p.s[start:p.pos]
	if wildcard && strings.HasSuffix(lit, ".") && p.pos < len(p.s) && p.s[p.pos] == '*' {
		p.pos++
		lit = strings.TrimSuffix(lit, ".")
	}
	if lit == "" {
		return Version{}, p.errorf("expected version")
	}
	v, err := Parse(lit)
	if err != nil {
		return Version{}, p.errorf("bad version %q", lit)
	}
	return v, nil
}
