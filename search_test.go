package cabalscan

import (
	"bytes"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"
	"time"
)

func TestIndexFoldFindsAll(t *testing.T) {
	hay := []byte("cabal-version: 1\nCABAL-VERSION: 2\nCabal-Version: 3\n")
	got := IndexFold(hay, keyword)
	want := []int{0, 17, 34}
	if !slices.Equal(got, want) {
		t.Errorf("IndexFold = %v, want %v", got, want)
	}
}

func TestIndexFoldNoMatch(t *testing.T) {
	if got := IndexFold([]byte("name: foo\nversion: 1.0\n"), keyword); got != nil {
		t.Errorf("IndexFold = %v, want nil", got)
	}
}

// TestIndexFoldEmpty verifies the degenerate inputs return nothing rather
// than matching at every offset.
func TestIndexFoldEmpty(t *testing.T) {
	tests := []struct {
		name        string
		hay, needle string
	}{
		{"empty haystack", "", "abc"},
		{"empty needle", "abc", ""},
		{"both empty", "", ""},
		{"needle longer", "ab", "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IndexFold([]byte(tt.hay), []byte(tt.needle)); got != nil {
				t.Errorf("IndexFold(%q, %q) = %v, want nil", tt.hay, tt.needle, got)
			}
		})
	}
}

// TestIndexFoldNonOverlapping checks that a match consumes its bytes, so a
// self-overlapping needle is reported at 0 and 2 in "aaaa", not 0, 1, 2.
func TestIndexFoldNonOverlapping(t *testing.T) {
	got := IndexFold([]byte("aaaaa"), []byte("AA"))
	want := []int{0, 2}
	if !slices.Equal(got, want) {
		t.Errorf("IndexFold = %v, want %v", got, want)
	}
}

func TestIndexFoldMatchAtEnd(t *testing.T) {
	got := IndexFold([]byte("xxxCabal-Version"), keyword)
	if !slices.Equal(got, []int{3}) {
		t.Errorf("IndexFold = %v, want [3]", got)
	}
}

// TestIndexFoldMixedCaseFirstByte exercises the two-variant first byte
// search: an upper case hit that precedes a lower case one must be found
// first, and a lower case false start must not hide a later upper case hit.
func TestIndexFoldMixedCaseFirstByte(t *testing.T) {
	hay := []byte("c Cabal-version c cabal-VERSION")
	got := IndexFold(hay, keyword)
	want := []int{2, 18}
	if !slices.Equal(got, want) {
		t.Errorf("IndexFold = %v, want %v", got, want)
	}
}

// TestIndexFoldASCIIOnly verifies that bytes outside ASCII never fold onto
// ASCII letters. U+017F (long s) folds to 's' under Unicode rules.
func TestIndexFoldASCIIOnly(t *testing.T) {
	hay := []byte("cabal-verſion: 2.0\n")
	if got := IndexFold(hay, keyword); got != nil {
		t.Errorf("IndexFold = %v, want nil", got)
	}
}

// TestIndexFoldZeroBytes verifies embedded NUL bytes neither stop the
// search nor match anything.
func TestIndexFoldZeroBytes(t *testing.T) {
	hay := []byte("\x00cabal-version\x00\x00CABAL-VERSION")
	got := IndexFold(hay, keyword)
	want := []int{1, 16}
	if !slices.Equal(got, want) {
		t.Errorf("IndexFold = %v, want %v", got, want)
	}
}

func TestIndexFoldNonLetterNeedle(t *testing.T) {
	got := IndexFold([]byte("a--b--c"), []byte("--"))
	if !slices.Equal(got, []int{1, 4}) {
		t.Errorf("IndexFold = %v, want [1 4]", got)
	}
}

func TestIndexFoldLarge(t *testing.T) {
	hay := []byte(strings.Repeat("x", 100000) + "cabal-version" + strings.Repeat("c", 100000))
	got := IndexFold(hay, keyword)
	if !slices.Equal(got, []int{100000}) {
		t.Errorf("IndexFold = %v, want [100000]", got)
	}
}

// TestIndexFoldDenseSingleCase verifies a buffer packed with one case of
// the keyword's first letter, and none of the other, is searched in linear
// time. Rescanning for the absent variant after every false start would
// take minutes here.
func TestIndexFoldDenseSingleCase(t *testing.T) {
	for _, c := range []string{"C", "c"} {
		hay := bytes.Repeat([]byte(c), 4<<20)
		start := time.Now()
		if got := IndexFold(hay, keyword); got != nil {
			t.Errorf("IndexFold(%s...) = %v, want nil", c, got)
		}
		if d := time.Since(start); d > 2*time.Second {
			t.Errorf("IndexFold over %d bytes of %q took %v", len(hay), c, d)
		}
	}
}

// indexFoldSlow is the obvious search: compare at every offset.
func indexFoldSlow(hay, needle []byte) []int {
	var offsets []int
	for i := 0; i+len(needle) <= len(hay); {
		if equalFold(hay[i:i+len(needle)], needle) {
			offsets = append(offsets, i)
			i += len(needle)
			continue
		}
		i++
	}
	return offsets
}

// TestIndexFoldAgreesWithSlowSearch compares IndexFold with indexFoldSlow
// on random text drawn from the needle's own letters in both cases, which
// keeps the remembered offsets of both first byte variants in play.
func TestIndexFoldAgreesWithSlowSearch(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	alphabet := []byte("cCaAbBlL-\n ")
	needles := [][]byte{keyword, []byte("cab"), []byte("Cc"), []byte("-")}
	for range 500 {
		hay := make([]byte, rng.IntN(200))
		for i := range hay {
			hay[i] = alphabet[rng.IntN(len(alphabet))]
		}
		if rng.IntN(4) == 0 && len(hay) > len(keyword) {
			copy(hay[rng.IntN(len(hay)-len(keyword)):], "CaBaL-vErSiOn")
		}
		for _, needle := range needles {
			got, want := IndexFold(hay, needle), indexFoldSlow(hay, needle)
			if !slices.Equal(got, want) {
				t.Fatalf("IndexFold(%q, %q) = %v, want %v", hay, needle, got, want)
			}
		}
	}
}
