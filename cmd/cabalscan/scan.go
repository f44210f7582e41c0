package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jpl-au/cabalscan"
)

func newScanCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "scan [file...]",
		Short: "Print the declared cabal-version of each file",
		Long: `Print the declared cabal-version of each file, one per line.
With no files, or with "-", the document is read from standard input.
Files that cannot be read are reported and the command fails once every
file has been tried.`,
		RunE: func(cmd *cobra.Command, files []string) error {
			if len(files) == 0 {
				files = []string{"-"}
			}
			rep := a.reporter(cmd.OutOrStdout())
			failed := 0
			for _, name := range files {
				res := a.scan(name, cmd.InOrStdin())
				if res.Error != "" {
					failed++
				}
				if err := rep.emit(res); err != nil {
					return err
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files could not be scanned", failed, len(files))
			}
			return nil
		},
	}
}

func (a *app) scan(name string, stdin io.Reader) result {
	buf, err := a.read(name, stdin)
	if err != nil {
		a.log.Error("read failed", "file", name, "err", err)
		return result{File: name, Error: err.Error()}
	}
	v := cabalscan.Scan(buf)
	a.log.Debug("scanned", "file", name, "bytes", len(buf), "version", v)
	return result{File: name, Version: v, Digest: a.digest(buf)}
}
