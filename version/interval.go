// Interval arithmetic for version ranges.
//
// Every constraint is evaluated straight into a list of intervals while
// parsing: leaves become one interval (or none), "&&" intersects and "||"
// unions. Lists are kept normalised, meaning sorted by lower bound with no
// empty, overlapping or touching members, so the first interval always holds
// the smallest admissible version.
package version

import "slices"

// Bound is one end of an interval.
type Bound struct {
	Version   Version
	Inclusive bool
}

// Interval is a contiguous set of versions. Lower is always present; a
// range with no lower limit starts at Zero, inclusive. When Unbounded is
// set the interval has no upper limit and Upper is ignored.
type Interval struct {
	Lower     Bound
	Upper     Bound
	Unbounded bool
}

// Contains reports whether v lies inside the interval.
func (iv Interval) Contains(v Version) bool {
	c := v.Compare(iv.Lower.Version)
	if c < 0 || (c == 0 && !iv.Lower.Inclusive) {
		return false
	}
	if iv.Unbounded {
		return true
	}
	c = v.Compare(iv.Upper.Version)
	return c < 0 || (c == 0 && iv.Upper.Inclusive)
}

func (iv Interval) empty() bool {
	if iv.Unbounded {
		return false
	}
	c := iv.Lower.Version.Compare(iv.Upper.Version)
	return c > 0 || (c == 0 && !(iv.Lower.Inclusive && iv.Upper.Inclusive))
}

func atLeast(v Version) Interval {
	return Interval{Lower: Bound{v, true}, Unbounded: true}
}

func greater(v Version) Interval {
	return Interval{Lower: Bound{v, false}, Unbounded: true}
}

func below(v Version, inclusive bool) Interval {
	return Interval{Lower: Bound{Zero, true}, Upper: Bound{v, inclusive}}
}

func between(lo, hi Version) Interval {
	return Interval{Lower: Bound{lo, true}, Upper: Bound{hi, false}}
}

func point(v Version) Interval {
	return Interval{Lower: Bound{v, true}, Upper: Bound{v, true}}
}

// cmpLower orders lower bounds; at equal versions an inclusive bound starts
// earlier than an exclusive one.
func cmpLower(a, b Bound) int {
	if c := a.Version.Compare(b.Version); c != 0 {
		return c
	}
	switch {
	case a.Inclusive == b.Inclusive:
		return 0
	case a.Inclusive:
		return -1
	}
	return 1
}

// cmpUpper orders the upper ends of two intervals; unbounded is greatest and
// at equal versions an inclusive bound reaches further.
func cmpUpper(a, b Interval) int {
	switch {
	case a.Unbounded && b.Unbounded:
		return 0
	case a.Unbounded:
		return 1
	case b.Unbounded:
		return -1
	}
	if c := a.Upper.Version.Compare(b.Upper.Version); c != 0 {
		return c
	}
	switch {
	case a.Upper.Inclusive == b.Upper.Inclusive:
		return 0
	case a.Upper.Inclusive:
		return 1
	}
	return -1
}

// reaches reports whether a, which starts no later than b, overlaps or
// touches b so the two can be merged.
func reaches(a, b Interval) bool {
	if a.Unbounded {
		return true
	}
	c := a.Upper.Version.Compare(b.Lower.Version)
	return c > 0 || (c == 0 && (a.Upper.Inclusive || b.Lower.Inclusive))
}

func normalize(ivs []Interval) []Interval {
	out := make([]Interval, 0, len(ivs))
	for _, iv := range ivs {
		if !iv.empty() {
			out = append(out, iv)
		}
	}
	slices.SortFunc(out, func(a, b Interval) int { return cmpLower(a.Lower, b.Lower) })

	merged := out[:0]
	for _, iv := range out {
		if n := len(merged); n > 0 && reaches(merged[n-1], iv) {
			if cmpUpper(iv, merged[n-1]) > 0 {
				merged[n-1].Upper = iv.Upper
				merged[n-1].Unbounded = iv.Unbounded
			}
			continue
		}
		merged = append(merged, iv)
	}
	if len(merged) == 0 {
		return nil
	}
	return merged
}

func union(a, b []Interval) []Interval {
	return normalize(append(slices.Clone(a), b...))
}

func intersect(a, b []Interval) []Interval {
	var out []Interval
	for _, x := range a {
		for _, y := range b {
			iv := x
			if cmpLower(y.Lower, iv.Lower) > 0 {
				iv.Lower = y.Lower
			}
			if cmpUpper(y, iv) < 0 {
				iv.Upper = y.Upper
				iv.Unbounded = y.Unbounded
			}
			out = append(out, iv)
		}
	}
	return normalize(out)
}
