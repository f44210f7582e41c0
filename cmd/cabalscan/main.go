// Command cabalscan reports the cabal-version declared by package
// description files, using the same heuristic scan a package server runs
// to cross-check uploads against the full parser.
package main

import (
	"context"
	"os"
	"runtime/debug"

	"github.com/charmbracelet/fang"
)

func main() {
	if err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(buildVersion()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

// buildVersion reports the module version stamped by the go tool.
func buildVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}
