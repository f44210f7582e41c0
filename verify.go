// Cross-checking the scan against an authoritative parse.
package cabalscan

import (
	"fmt"

	"github.com/jpl-au/cabalscan/version"
)

// MismatchError reports a document whose scanned cabal-version differs from
// the version the full parser found.
type MismatchError struct {
	Scanned version.Version
	Parsed  version.Version
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s: scanned %s, parsed %s", ErrMismatch, e.Scanned, e.Parsed)
}

func (e *MismatchError) Unwrap() error { return ErrMismatch }

// Verify scans buf and compares the result with parsed, the cabal-version
// reported by the authoritative parser for the same document. It
// returns nil when they agree and a *MismatchError otherwise.
func Verify(buf []byte, parsed version.Version) error {
	if scanned := Scan(buf); !scanned.Equal(parsed) {
		return &MismatchError{Scanned: scanned, Parsed: parsed}
	}
	return nil
}
