// Selection of the declared version.
//
// Candidates arrive latest first and the first one that decodes wins.
// Failures are not reported: an undecodable or misplaced declaration simply
// does not count, and a document with no counting declaration is version 0.
package cabalscan

import (
	"io"

	"github.com/jpl-au/cabalscan/version"
)

// Scan returns the cabal-version declared by the document in buf, or
// version.Zero when there is no usable declaration. buf is not modified.
// Scan is safe for concurrent use.
func Scan(buf []byte) version.Version {
	for c := range Candidates(buf) {
		if v, _, ok := Decode(c.Tokens); ok {
			return v
		}
	}
	return version.Zero
}

// ScanReader reads the whole stream (see ReadAll) and scans it. Only errors
// from reading are returned.
func ScanReader(r io.Reader, opts ReadOptions) (version.Version, error) {
	buf, err := ReadAll(r, opts)
	if err != nil {
		return version.Version{}, err
	}
	return Scan(buf), nil
}

// Trace records how one candidate was decoded.
type Trace struct {
	Candidate
	Tier    Tier
	Version version.Version
	OK      bool
}

// Explain decodes every candidate in buf, latest first, without stopping at
// the first success. Scan's result is the Version of the first trace with
// OK set, or version.Zero if there is none.
func Explain(buf []byte) []Trace {
	var traces []Trace
	for c := range Candidates(buf) {
		v, tier, ok := Decode(c.Tokens)
		traces = append(traces, Trace{Candidate: c, Tier: tier, Version: v, OK: ok})
	}
	return traces
}
