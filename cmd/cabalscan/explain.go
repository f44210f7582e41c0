package main

import (
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/jpl-au/cabalscan"
	"github.com/jpl-au/cabalscan/version"
)

// traceLine is the JSON form of one candidate.
type traceLine struct {
	Offset  int             `json:"offset"`
	Indent  int             `json:"indent"`
	Tokens  []string        `json:"tokens"`
	Tier    string          `json:"tier"`
	Version version.Version `json:"version"`
	OK      bool            `json:"ok"`
}

func newExplainCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "explain [file]",
		Short: "Show every cabal-version candidate and how it decoded",
		Long: `Show every cabal-version candidate in a document, latest first, with
its tokens and the decoding tier that accepted it. The scan result is the
first candidate marked ok.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "-"
			if len(args) == 1 {
				name = args[0]
			}
			buf, err := a.read(name, cmd.InOrStdin())
			if err != nil {
				return err
			}
			traces := cabalscan.Explain(buf)
			a.log.Debug("explained", "file", name, "candidates", len(traces))
			return a.writeTraces(cmd.OutOrStdout(), traces)
		},
	}
}

func (a *app) writeTraces(w io.Writer, traces []cabalscan.Trace) error {
	if a.cfg.Format == formatJSON {
		enc := json.NewEncoder(w)
		for _, t := range traces {
			if err := enc.Encode(toTraceLine(t)); err != nil {
				return err
			}
		}
		return nil
	}
	for _, t := range traces {
		l := toTraceLine(t)
		status := "skip"
		if l.OK {
			status = "ok"
		}
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%q\n",
			l.Offset, status, l.Tier, l.Version, strings.Join(l.Tokens, " ")); err != nil {
			return err
		}
	}
	return nil
}

func toTraceLine(t cabalscan.Trace) traceLine {
	tokens := make([]string, len(t.Tokens))
	for i, tok := range t.Tokens {
		tokens[i] = string(tok)
	}
	return traceLine{
		Offset:  t.Offset,
		Indent:  t.Indent,
		Tokens:  tokens,
		Tier:    t.Tier.String(),
		Version: t.Version,
		OK:      t.OK,
	}
}
