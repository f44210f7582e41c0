// Package cabalscan infers the cabal-version declared by a package
// description without running the full grammar parser.
//
// The scan is a heuristic reading of one field: it finds every line that
// starts with the "cabal-version:" field, gathers the value including
// indented continuation lines, and decodes it, preferring the declaration
// that appears last. Its purpose is a cross-check. A document whose
// heuristic reading disagrees with the authoritative parser is suspect (it
// may have been crafted to mean different things to different tools) and
// should be rejected; Verify packages that comparison.
//
// Scan never fails. A document without a usable declaration scans as
// version 0. The only errors in this package come from reading input
// streams and from Verify.
package cabalscan

import "errors"

// Sentinel errors for programmatic handling with errors.Is.
var (
	ErrTooLarge   = errors.New("document exceeds maximum size")
	ErrDecompress = errors.New("decompression failed")
	ErrMismatch   = errors.New("cabal-version mismatch")
)
