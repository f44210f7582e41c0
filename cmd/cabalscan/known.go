package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpl-au/cabalscan"
)

func newKnownCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "known",
		Short: "List the cabal-version spellings recognised without parsing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, v := range cabalscan.Known() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), v); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
