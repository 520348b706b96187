package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/mieliepit/mieliepit/internal/logio"
)

func main() {
	os.Exit(run(logio.New(os.Stderr)))
}

func run(logger *logio.Logger) int {
	var timeout time.Duration
	var trace bool
	var depthLimit int
	flag.DurationVar(&timeout, "timeout", 0, "specify a time limit")
	flag.BoolVar(&trace, "trace", false, "enable trace logging")
	flag.IntVar(&depthLimit, "depth-limit", 0, "override the word call depth limit")
	flag.Parse()

	opts := []VMOption{WithOutput(os.Stdout)}
	for _, name := range flag.Args() {
		f, err := os.Open(name)
		if err != nil {
			logger.ErrorIf(err)
			return logger.ExitCode()
		}
		opts = append(opts, WithScript(name, f))
	}
	opts = append(opts, WithInput(os.Stdin))
	if trace {
		opts = append(opts, WithLogf(logger.Leveledf("TRACE")))
	}
	if depthLimit != 0 {
		opts = append(opts, WithDepthLimit(depthLimit))
	}
	vm := New(opts...)
	defer vm.Close()

	ctx := context.Background()
	if timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	logger.ErrorIf(vm.Run(ctx))
	return logger.ExitCode()
}
