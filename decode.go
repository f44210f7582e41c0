// Tiered decoding of a field value into a version.
//
// The two declaration shapes that cover almost every document are answered
// from the known-version tables without parsing:
//
//	cabal-version: >= 1.10   -> [">=", "1.10"] -> exact table, "1.10"
//	cabal-version: >=1.10    -> [">=1.10"]     -> range table, ">=1.10"
//	cabal-version: 2.0       -> ["2.0"]        -> range table miss, exact table hit
//
// Anything else, including a two-token ">=" form whose version is not in the
// corpus, is joined without separators and handed to the version package:
// first as a plain version, then as a range whose first interval's lower
// bound is taken. A range that admits nothing decodes to version.Zero rather
// than failing, keeping Scan total.
package cabalscan

import (
	"bytes"

	"github.com/jpl-au/cabalscan/version"
)

// Tier identifies which decoding stage produced a version.
//
// TierSingleLookup looks the lone token up as written, first among the
// range spellings (">=V") and then among the plain ones ("V"). A value
// written without a space, such as ">=1.10", is therefore reported as
// TierSingleLookup rather than TierFallback. Prefixing ">=" to the token
// before the range lookup would send it to the fallback parse instead; the
// decoded version is the same either way, only the reported tier differs.
type Tier int

const (
	TierNone         Tier = iota // nothing decoded
	TierRangeLookup              // [">=", V] found in the exact table
	TierSingleLookup             // [V] found in the range or exact table
	TierFallback                 // general version or range parse
)

func (t Tier) String() string {
	switch t {
	case TierRangeLookup:
		return "range-lookup"
	case TierSingleLookup:
		return "single-lookup"
	case TierFallback:
		return "fallback"
	default:
		return "none"
	}
}

var geq = []byte(">=")

// Decode maps the value tokens of a candidate to a version. It reports the
// tier that succeeded, or TierNone and false when the tokens do not describe
// a version.
func Decode(tokens [][]byte) (version.Version, Tier, bool) {
	t := known()
	switch {
	case len(tokens) == 0:
		return version.Version{}, TierNone, false
	case len(tokens) == 2 && bytes.Equal(tokens[0], geq):
		if v, ok := t.exact[string(tokens[1])]; ok {
			return v, TierRangeLookup, true
		}
	case len(tokens) == 1:
		if v, ok := t.ranged[string(tokens[0])]; ok {
			return v, TierSingleLookup, true
		}
		if v, ok := t.exact[string(tokens[0])]; ok {
			return v, TierSingleLookup, true
		}
	}
	if v, ok := parseFallback(string(bytes.Join(tokens, nil))); ok {
		return v, TierFallback, true
	}
	return version.Version{}, TierNone, false
}

func parseFallback(s string) (version.Version, bool) {
	if v, err := version.Parse(s); err == nil {
		return v, true
	}
	r, err := version.ParseRange(s)
	if err != nil {
		return version.Version{}, false
	}
	if lb, ok := r.LowerBound(); ok {
		return lb, true
	}
	return version.Zero, true
}
