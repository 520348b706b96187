package main

import (
	"context"
	"io"

	"github.com/mieliepit/mieliepit/internal/panicerr"
)

// New creates a VM with the default options applied first, then the
// given ones in order.
func New(opts ...VMOption) *VM {
	var vm VM
	defaultOptions.apply(&vm)
	VMOptions(opts...).apply(&vm)
	return &vm
}

// Run boots the VM and drives its input sources to completion. Internal
// invariant violations surface as errors rather than crashing the
// caller.
func (vm *VM) Run(ctx context.Context) error {
	return panicerr.Recover("VM", func() error {
		return vm.run(ctx)
	})
}

// WithInput queues an interactive input source; the prompt is printed
// before each of its lines.
func WithInput(r io.Reader) VMOption { return withInput(r) }

// WithScript queues a non-interactive input source under the given
// display name. Sources run in the order they were queued.
func WithScript(name string, r io.Reader) VMOption { return withScript(name, r) }

func WithOutput(w io.Writer) VMOption   { return withOutput(w) }
func WithTee(w io.Writer) VMOption      { return withTee(w) }
func WithPrompt(prompt string) VMOption { return withPrompt(prompt) }
func WithDepthLimit(limit int) VMOption { return withDepthLimit(limit) }

// WithoutBoot skips the boot script; only the primitives and syntax
// operators are defined.
func WithoutBoot() VMOption { return noBootOption{} }

func WithLogf(logfn func(mess string, args ...interface{})) VMOption { return withLogfn(logfn) }
