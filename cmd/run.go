package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"rvm/vm"
)

func newRunCmd() *cobra.Command {
	cfg := &Config{}

	c := &cobra.Command{
		Use:   "run <source.asm>",
		Short: "assemble and execute a program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFile(args[0], cfg)
		},
	}

	c.Flags().IntVar(&cfg.Workers, "workers", 1, "number of VM workers to run concurrently (0 = NumCPU)")
	c.Flags().BoolVar(&cfg.Affinity, "affinity", false, "pin each worker to core (index mod NumCPU)")
	c.Flags().BoolVar(&cfg.Debug, "debug", false, "run worker 0 under the interactive stepper")
	c.Flags().BoolVarP(&cfg.Quiet, "quiet", "q", false, "suppress the startup banner")

	return c
}

func runFile(path string, cfg *Config) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	functions, err := vm.ParseSource(string(src))
	if err != nil {
		return fmt.Errorf("assemble %s: %w", path, err)
	}

	image := vm.NewCodeImage(functions)

	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}

	if !cfg.Quiet {
		fmt.Printf("rvm: %d function(s), %d worker(s)\n", len(functions), workers)
	}

	if cfg.Debug {
		w := vm.NewWorker(0, image)
		vm.NewDebugger(w).Run()
		return nil
	}

	pool := vm.NewPool(image, workers, cfg.Affinity)
	return pool.WaitAll()
}
