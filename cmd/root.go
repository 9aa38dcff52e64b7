package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// Config collects the run command's flags (asm takes none), constructed
// fresh per invocation rather than from package-level state.
type Config struct {
	Workers  int
	Affinity bool
	Debug    bool
	Quiet    bool
}

func Execute() {
	root := &cobra.Command{
		Use:   "rvm",
		Short: "register-based bytecode VM",
	}

	root.AddCommand(newRunCmd())
	root.AddCommand(newAsmCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
