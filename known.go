// Lookup tables for commonly declared versions.
//
// Almost every document declares one of a small set of versions, either as
// "cabal-version: V" or "cabal-version: >=V". The corpus in known.txt lists
// them once; both tables are derived from it in a single pass so they cannot
// drift apart. Construction happens on first use under sync.OnceValue and
// the maps are never written again, so concurrent scans read them without
// locking.
package cabalscan

import (
	_ "embed"
	"strings"
	"sync"

	"github.com/jpl-au/cabalscan/version"
)

//go:embed known.txt
var corpus string

type tables struct {
	exact  map[string]version.Version // "V"   -> V
	ranged map[string]version.Version // ">=V" -> V
	list   []string                   // distinct entries in corpus order
}

var known = sync.OnceValue(func() *tables {
	t := &tables{
		exact:  make(map[string]version.Version),
		ranged: make(map[string]version.Version),
	}
	for line := range strings.Lines(corpus) {
		s := strings.TrimSpace(line)
		if s == "" || s[0] == '#' {
			continue
		}
		if _, dup := t.exact[s]; dup {
			continue
		}
		v := version.MustParse(s)
		t.exact[s] = v
		t.ranged[">="+s] = v
		t.list = append(t.list, s)
	}
	return t
})

// Known returns the distinct version strings served by the lookup tables,
// in corpus order.
func Known() []string {
	return append([]string(nil), known().list...)
}
