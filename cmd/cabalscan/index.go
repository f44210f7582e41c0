// Index archive scanning.
//
// A package index is a tar archive (usually gzip or zstd compressed) of
// every revision of every package description. Revisions often repeat a
// file verbatim, so results are memoised by document digest and each
// distinct document is scanned once.
package main

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jpl-au/cabalscan"
	"github.com/jpl-au/cabalscan/version"
)

// indexStats summarises one walk over an index.
type indexStats struct {
	Entries  int            // .cabal entries seen
	Unique   int            // distinct documents scanned
	Errors   int            // entries that could not be read
	Versions map[string]int // entries per declared version
}

func newIndexCmd(a *app) *cobra.Command {
	var summary bool
	cmd := &cobra.Command{
		Use:   "index <archive>",
		Short: "Scan every .cabal file in a package index tarball",
		Long: `Scan every .cabal entry of a package index tarball and report each one.
Compressed archives are detected unless decompression is disabled. With
--summary a per-version count follows the entries.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			rep := a.reporter(cmd.OutOrStdout())
			st, err := a.walkIndex(f, rep.emit)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			a.log.Info("index scanned",
				"entries", st.Entries, "unique", st.Unique, "errors", st.Errors)
			if summary {
				return st.writeSummary(cmd.OutOrStdout())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&summary, "summary", false, "print a per-version count after the entries")
	return cmd
}

// walkIndex reads the archive in r and passes one result per .cabal entry
// to emit, in archive order. Oversized entries are reported and skipped;
// a damaged archive stops the walk.
func (a *app) walkIndex(r io.Reader, emit func(result) error) (indexStats, error) {
	st := indexStats{Versions: make(map[string]int)}

	src := io.NopCloser(r)
	if a.cfg.Decompress {
		var err error
		if src, err = cabalscan.Decompress(r); err != nil {
			return st, err
		}
	}
	defer src.Close()

	memo := make(map[string]version.Version)
	tr := tar.NewReader(src)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return st, nil
		}
		if err != nil {
			return st, fmt.Errorf("read archive: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg || !strings.HasSuffix(hdr.Name, ".cabal") {
			continue
		}
		st.Entries++

		res := result{File: hdr.Name}
		buf, err := cabalscan.ReadAll(tr, cabalscan.ReadOptions{MaxSize: a.cfg.MaxSize})
		if err != nil {
			st.Errors++
			a.log.Warn("skipping entry", "entry", hdr.Name, "err", err)
			res.Error = err.Error()
		} else {
			res.Digest = a.digest(buf)
			v, ok := memo[res.Digest]
			if !ok {
				v = cabalscan.Scan(buf)
				memo[res.Digest] = v
				st.Unique++
			}
			res.Version, res.Cached = v, ok
			st.Versions[v.String()]++
		}
		if err := emit(res); err != nil {
			return st, err
		}
	}
}

// writeSummary prints entry counts per version, oldest version first.
func (st indexStats) writeSummary(w io.Writer) error {
	keys := make([]string, 0, len(st.Versions))
	for k := range st.Versions {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(x, y string) int {
		return version.MustParse(x).Compare(version.MustParse(y))
	})
	for _, k := range keys {
		if _, err := fmt.Fprintf(w, "%s\t%d\n", k, st.Versions[k]); err != nil {
			return err
		}
	}
	return nil
}
