package main

import (
	"context"
	"fmt"
	"io"

	"github.com/mieliepit/mieliepit/internal/flushio"
)

// VM is the whole of the interpreter's mutable state: the data stack,
// the append-only code buffer, the user word table, and the one-slot
// error channel that every driver loop polls.
type VM struct {
	stack []number
	code  []value
	words []word

	err        error
	errHandled bool
	quit       bool

	depth      int
	depthLimit int

	in      []source
	out     flushio.WriteFlusher
	prompt  string
	noBoot  bool
	closers []io.Closer

	ctx   context.Context
	logfn func(mess string, args ...interface{})
}

// word is a user definition: a name, a help description, and a
// contiguous slice of the code buffer.
type word struct {
	name string
	desc string
	pos  int
	len  int
}

// source is one queued input stream. Interactive sources get the
// prompt printed before each line.
type source struct {
	name   string
	r      io.Reader
	prompt bool
}

func (vm *VM) logf(mess string, args ...interface{}) {
	if vm.logfn != nil {
		vm.logfn(mess, args...)
	}
}

func (vm *VM) withLogPrefix(prefix string) func() {
	logfn := vm.logfn
	if logfn != nil {
		vm.logfn = func(mess string, args ...interface{}) {
			logfn(prefix+mess, args...)
		}
	}
	return func() { vm.logfn = logfn }
}

// fail records err on the error channel; the first error of a run wins
// and every enclosing loop exits at its next check.
func (vm *VM) fail(err error) {
	if vm.err == nil && err != nil {
		vm.err = err
		vm.errHandled = false
		vm.logf("fail: %v", err)
	}
}

func (vm *VM) broken() bool { return vm.err != nil }

func (vm *VM) push(n number) {
	vm.stack = append(vm.stack, n)
}

// pop removes and returns the top of the stack, reporting false and
// recording no error when empty. Primitives must call need first when they want the
// leave-the-stack-unchanged-on-failure guarantee.
func (vm *VM) pop() (number, bool) {
	if len(vm.stack) == 0 {
		return 0, false
	}
	i := len(vm.stack) - 1
	n := vm.stack[i]
	vm.stack = vm.stack[:i]
	return n, true
}

// need reports whether the stack holds at least n cells.
func (vm *VM) need(n int) error {
	if len(vm.stack) < n {
		return errUnderflow
	}
	return nil
}

// peek returns the nth cell from the top, 0 being the top itself.
func (vm *VM) peek(nth int) number {
	return vm.stack[len(vm.stack)-1-nth]
}

// emit appends values to the code buffer and returns how many it added.
func (vm *VM) emit(vals ...value) int {
	vm.code = append(vm.code, vals...)
	return len(vals)
}

// findWord resolves a name against the user word table, latest first,
// so redefinitions shadow older words.
func (vm *VM) findWord(name string) (int, bool) {
	for i := len(vm.words) - 1; i >= 0; i-- {
		if vm.words[i].name == name {
			return i, true
		}
	}
	return 0, false
}

func (vm *VM) install(w word) {
	vm.words = append(vm.words, w)
	vm.logf("install word %q pos=%v len=%v", w.name, w.pos, w.len)
}

func (vm *VM) write(s string) {
	if _, err := io.WriteString(vm.out, s); err != nil {
		vm.fail(err)
	}
}

func (vm *VM) printf(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(vm.out, format, args...); err != nil {
		vm.fail(err)
	}
}

func (vm *VM) flush() {
	if err := vm.out.Flush(); err != nil {
		vm.fail(err)
	}
}

func (vm *VM) Close() (err error) {
	for i := len(vm.closers) - 1; i >= 0; i-- {
		if cerr := vm.closers[i].Close(); err == nil {
			err = cerr
		}
	}
	return err
}
