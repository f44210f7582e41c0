package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpl-au/cabalscan"
	"github.com/jpl-au/cabalscan/version"
)

func newCheckCmd(a *app) *cobra.Command {
	var expect string
	cmd := &cobra.Command{
		Use:   "check <file> --expect <version>",
		Short: "Compare the scanned cabal-version with a full parser's result",
		Long: `Compare the scanned cabal-version of a file with the version reported
by a full parser, as an upload gate would. A disagreement means a tool
relying on the cheap scan would misread the file, and the command fails.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			want, err := version.Parse(expect)
			if err != nil {
				return fmt.Errorf("--expect: %w", err)
			}
			name := args[0]
			buf, err := a.read(name, cmd.InOrStdin())
			if err != nil {
				return err
			}
			if err := cabalscan.Verify(buf, want); err != nil {
				a.log.Error("rejected", "file", name, "err", err)
				return fmt.Errorf("%s: %w", name, err)
			}
			a.log.Debug("accepted", "file", name, "version", want)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\tok %s\n", name, want)
			return err
		},
	}
	cmd.Flags().StringVar(&expect, "expect", "", "cabal-version reported by the full parser")
	_ = cmd.MarkFlagRequired("expect")
	return cmd
}
