package main

import (
	"context"
	"strings"

	"github.com/mieliepit/mieliepit/internal/fileinput"
)

// run drives the queued input sources line by line: boot script first,
// then each source in order. User errors are rendered and cleared so
// the session continues; io and bootstrap failures end the run.
func (vm *VM) run(ctx context.Context) error {
	vm.ctx = ctx
	if !vm.noBoot {
		if err := vm.boot(); err != nil {
			return err
		}
	}
	for _, src := range vm.in {
		if err := vm.runSource(src); err != nil {
			return err
		}
		if vm.quit {
			break
		}
	}
	return vm.out.Flush()
}

func (vm *VM) runSource(src source) error {
	lines := fileinput.NewLines(src.name, src.r)
	for !vm.quit {
		if err := vm.ctx.Err(); err != nil {
			return err
		}
		if src.prompt && vm.prompt != "" {
			vm.write(vm.prompt)
			vm.flush()
		}
		if !lines.Scan() {
			break
		}
		line := lines.Text()
		vm.logf("interpret %v %q", lines.Loc(), line)
		ip := vm.interpret(line)
		vm.report(lines.Loc(), ip)
		vm.flush()
	}
	return lines.Err()
}

// report renders any pending error once: the location, the message,
// then the offending line with a caret under the current token, or the
// phrase "@ end of line" when the failure happened at line end.
func (vm *VM) report(loc fileinput.Location, ip *interp) {
	if vm.err == nil || vm.errHandled {
		return
	}
	err := vm.err
	vm.err = nil
	vm.errHandled = true
	vm.printf("%v: %v\n", loc, err)
	tok := ip.tok
	if tok.text == "" {
		vm.printf("  %s @ end of line\n", ip.line)
		return
	}
	vm.printf("  %s\n  %s^ at %q\n", ip.line, strings.Repeat(" ", tok.start), tok.text)
}
