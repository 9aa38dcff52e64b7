package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rvm/vm"
)

func newAsmCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "asm <source.asm>",
		Short: "assemble a program and report errors without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			functions, err := vm.ParseSource(string(src))
			if err != nil {
				return err
			}
			for i, fn := range functions {
				fmt.Printf("[%d] %s (%d instructions)\n", i, fn.Name, len(fn.Instructions))
			}
			return nil
		},
	}
	return c
}
