package main

import (
	"io"

	"github.com/mieliepit/mieliepit/internal/flushio"
)

type VMOption interface{ apply(vm *VM) }

var defaultOptions = VMOptions(
	withOutput(io.Discard),
	withPrompt("> "),
	withDepthLimit(1024),
)

// VMOptions combines options into one, applied in order.
func VMOptions(opts ...VMOption) VMOption { return options(opts) }

type options []VMOption

func (opts options) apply(vm *VM) {
	for _, opt := range opts {
		if opt != nil {
			opt.apply(vm)
		}
	}
}

type withLogfn func(mess string, args ...interface{})

func (logfn withLogfn) apply(vm *VM) {
	vm.logfn = logfn
}

type sourceOption struct {
	source
}

func withInput(r io.Reader) sourceOption {
	return sourceOption{source{name: "<input>", r: r, prompt: true}}
}

func withScript(name string, r io.Reader) sourceOption {
	return sourceOption{source{name: name, r: r}}
}

func (s sourceOption) apply(vm *VM) {
	vm.in = append(vm.in, s.source)
	if cl, ok := s.r.(io.Closer); ok {
		vm.closers = append(vm.closers, cl)
	}
}

type outputOption struct{ io.Writer }

func withOutput(w io.Writer) outputOption { return outputOption{w} }

func (o outputOption) apply(vm *VM) {
	if vm.out != nil {
		vm.out.Flush()
	}
	vm.out = flushio.NewWriteFlusher(o.Writer)
}

type teeOption struct{ io.Writer }

func withTee(w io.Writer) teeOption { return teeOption{w} }

func (o teeOption) apply(vm *VM) {
	vm.out = flushio.Tee(vm.out, flushio.NewWriteFlusher(o.Writer))
}

type promptOption string

func withPrompt(p string) promptOption { return promptOption(p) }

func (p promptOption) apply(vm *VM) { vm.prompt = string(p) }

type depthLimitOption int

func withDepthLimit(limit int) depthLimitOption { return depthLimitOption(limit) }

func (limit depthLimitOption) apply(vm *VM) { vm.depthLimit = int(limit) }

type noBootOption struct{}

func (noBootOption) apply(vm *VM) { vm.noBoot = true }
