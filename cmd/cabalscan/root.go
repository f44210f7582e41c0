package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jpl-au/cabalscan"
)

// app carries what every subcommand needs once flags and configuration
// have been resolved.
type app struct {
	cfgFile string
	cfg     settings
	log     *log.Logger
	digest  func([]byte) string
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "cabalscan",
		Short: "Report the cabal-version declared by package descriptions",
		Long: `cabalscan reads package description (.cabal) files and reports the
cabal-version they declare, without running a full parser.

The scan takes the last "cabal-version:" field in the document, including
indented continuation lines, and ignores comments and text that merely
contains the keyword. A document without a usable declaration reports 0.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&a.cfgFile, "config", "", "config file (default ./cabalscan.yaml, then the user config dir)")
	f.BoolP("verbose", "v", false, "enable debug logging")
	f.String("format", formatText, "output format: text or json")
	f.String("digest", digestXXH3, "document digest: xxh3, fnv or blake2b")
	f.Int64("max-size", cabalscan.DefaultMaxSize, "maximum decoded document size in bytes")
	f.Bool("decompress", true, "detect and decode gzip or zstd input")

	root.AddCommand(
		newScanCmd(a),
		newIndexCmd(a),
		newCheckCmd(a),
		newExplainCmd(a),
		newKnownCmd(a),
	)
	return root
}

// init resolves settings from flags, environment and config file, and sets
// up logging on the command's error stream.
func (a *app) init(cmd *cobra.Command) error {
	cfg, used, err := loadSettings(a.cfgFile, cmd.Root().PersistentFlags())
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := log.InfoLevel
	if cfg.Verbose {
		level = log.DebugLevel
	}
	a.log = log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Prefix: "cabalscan",
		Level:  level,
	})
	if used != "" {
		a.log.Debug("loaded config", "file", used)
	}

	a.digest, err = digester(cfg.Digest)
	return err
}

func (a *app) readOptions() cabalscan.ReadOptions {
	return cabalscan.ReadOptions{MaxSize: a.cfg.MaxSize, Decompress: a.cfg.Decompress}
}

// read loads one document; "-" is stdin.
func (a *app) read(name string, stdin io.Reader) ([]byte, error) {
	if name == "-" {
		return cabalscan.ReadAll(stdin, a.readOptions())
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	buf, err := cabalscan.ReadAll(f, a.readOptions())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return buf, nil
}
