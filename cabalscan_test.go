// Behavioural tests for Scan.
//
// Scan is a cross-check against the full parser, so what matters is that it
// reads the same field the parser would: the last declaration that is a real
// field, with its continuation lines, ignoring comments and text that merely
// contains the keyword. Each test below pins one of those rules.
package cabalscan

import (
	"strings"
	"testing"

	"github.com/jpl-au/cabalscan/version"
)

func scanString(doc string) string {
	return Scan([]byte(doc)).String()
}

// TestScanNoKeyword verifies documents without any declaration scan as 0.
func TestScanNoKeyword(t *testing.T) {
	for _, doc := range []string{
		"",
		"name: foo\nversion: 1.0\n",
		"cabal\nversion: 2.0\n",
		strings.Repeat("library\n  build-depends: base\n", 100),
	} {
		if got := Scan([]byte(doc)); !got.Equal(version.Zero) {
			t.Errorf("Scan(%q) = %s, want 0", doc, got)
		}
	}
}

// TestScanIgnoresCommentsAndInlineText verifies occurrences inside comment
// lines or after other text on their line are ignored, so they cannot
// override a real declaration.
func TestScanIgnoresCommentsAndInlineText(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"comment only", "-- cabal-version: 3.0\nname: foo\n", "0"},
		{"comment after real", "cabal-version: 1.10\n-- cabal-version: 3.0\n", "1.10"},
		{"inline after real", "cabal-version: 1.10\ndescription: cabal-version: 3.0\n", "1.10"},
		{"prefixed name", "cabal-version: 2.2\nx-cabal-version: 3.0\n", "2.2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scanString(tt.doc); got != tt.want {
				t.Errorf("Scan = %s, want %s", got, tt.want)
			}
		})
	}
}

// TestScanLaterWins verifies the latest valid declaration takes priority
// and a malformed later one falls back to the next latest.
func TestScanLaterWins(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"later valid", "cabal-version: 1.8\nname: foo\ncabal-version: 2.0\n", "2.0"},
		{"later malformed", "cabal-version: 1.2\nname: foo\ncabal-version: not-a-version\n", "1.2"},
		{"later misplaced", "cabal-version: 1.2\nname: foo cabal-version: 3.0\n", "1.2"},
		{"later empty", "cabal-version: 1.4\ncabal-version:\nname: foo\n", "1.4"},
		{"three", "cabal-version: 1\ncabal-version: 2\ncabal-version: 3\n", "3"},
		{"all malformed", "cabal-version: x\ncabal-version: y\n", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scanString(tt.doc); got != tt.want {
				t.Errorf("Scan = %s, want %s", got, tt.want)
			}
		})
	}
}

// TestScanHangingContinuation verifies a value wrapped onto deeper
// indented lines scans the same as when written on one line.
func TestScanHangingContinuation(t *testing.T) {
	oneLine := scanString("cabal-version: >=1.10 && <2\nname: foo\n")
	wrapped := scanString("cabal-version: >=1.10\n  && <2\nname: foo\n")
	if oneLine != wrapped {
		t.Errorf("wrapped = %s, one line = %s", wrapped, oneLine)
	}
	if oneLine != "1.10" {
		t.Errorf("Scan = %s, want 1.10", oneLine)
	}

	split := scanString("cabal-version:\n  >=\n    1.22\n")
	if split != "1.22" {
		t.Errorf("split value = %s, want 1.22", split)
	}
}

// TestScanContinuationAtKeywordIndent verifies a line at or below the
// keyword's own indentation is not part of the value. Here the line
// "  2.0" is a sibling of the indented keyword, not a continuation; if it
// were included the value would read "1.2 2.0" and fail to decode.
func TestScanContinuationAtKeywordIndent(t *testing.T) {
	doc := "library\n  cabal-version: 1.2\n  2.0\n"
	if got := scanString(doc); got != "1.2" {
		t.Errorf("Scan = %s, want 1.2", got)
	}

	doc = "cabal-version: 1.2\n3.4\n"
	if got := scanString(doc); got != "1.2" {
		t.Errorf("Scan = %s, want 1.2", got)
	}
}

// TestScanCommentBetweenContinuations verifies a comment line between two
// continuation lines neither ends the value nor contributes to it.
func TestScanCommentBetweenContinuations(t *testing.T) {
	doc := "cabal-version:\n  >=\n  -- required by common stanzas\n  2.2\nname: foo\n"
	if got := scanString(doc); got != "2.2" {
		t.Errorf("Scan = %s, want 2.2", got)
	}
}

// TestScanIdempotent verifies there is no hidden state between scans.
func TestScanIdempotent(t *testing.T) {
	doc := []byte("cabal-version: 1.8\n\ncabal-version:\n  >= 2.0\n")
	orig := string(doc)
	first := Scan(doc)
	second := Scan(doc)
	if !first.Equal(second) {
		t.Errorf("first %s, second %s", first, second)
	}
	if string(doc) != orig {
		t.Error("Scan modified its input")
	}
}

func TestScanExamples(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want []int
	}{
		{"range form", "name: foo\ncabal-version: >=1.10\n", []int{1, 10}},
		{"later hanging range", "cabal-version: 1.8\nname: foo\nversion: 0.1\ncabal-version:\n  >= 2.0\n", []int{2, 0}},
		{"malformed final", "cabal-version: 1.2\nname: foo\ncabal-version: not-a-version\n", []int{1, 2}},
		{"first line", "cabal-version: 3.0\nname: foo\n", []int{3, 0}},
		{"caret", "cabal-version: ^>=2.2\n", []int{2, 2}},
		{"unknown version", "cabal-version: 7.77\n", []int{7, 77}},
		{"upper case", "CABAL-VERSION: 1.24\n", []int{1, 24}},
		{"empty range", "cabal-version: -none\n", []int{0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := version.New(tt.want...)
			if got := Scan([]byte(tt.doc)); !got.Equal(want) {
				t.Errorf("Scan = %s, want %s", got, want)
			}
		})
	}
}

// TestScanZeroBytes verifies NUL bytes are handled like any other byte.
func TestScanZeroBytes(t *testing.T) {
	doc := "name: f\x00o\ncabal-version: 2.4\n\x00\n"
	if got := scanString(doc); got != "2.4" {
		t.Errorf("Scan = %s, want 2.4", got)
	}
}

// TestExplainAgreesWithScan verifies Explain reports every candidate and
// that its first success is Scan's result.
func TestExplainAgreesWithScan(t *testing.T) {
	doc := []byte("cabal-version: 1.2\nname: x cabal-version: 9\ncabal-version: bogus\n")
	traces := Explain(doc)
	if len(traces) != 2 {
		t.Fatalf("got %d traces, want 2", len(traces))
	}
	if traces[0].OK || traces[0].Tier != TierNone {
		t.Errorf("latest trace = %+v, want failure", traces[0])
	}
	if !traces[1].OK || traces[1].Version.String() != "1.2" || traces[1].Tier != TierSingleLookup {
		t.Errorf("earlier trace = %+v, want 1.2 via single-lookup", traces[1])
	}
	if got := Scan(doc); !got.Equal(traces[1].Version) {
		t.Errorf("Scan = %s, Explain first success = %s", got, traces[1].Version)
	}
}

func TestExplainEmpty(t *testing.T) {
	if traces := Explain([]byte("name: foo\n")); len(traces) != 0 {
		t.Errorf("got %d traces, want 0", len(traces))
	}
}
