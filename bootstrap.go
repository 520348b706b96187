package main

// The boot script installs the convenience words every session starts
// with. It is ordinary source run through the interpreter, so it also
// doubles as a smoke test of definition and compilation.
var bootLines = []string{
	": neg ( a -- -a ) not inc ;",
	": - ( a b -- a-b ) neg + ;",
	": != ( a b -- p ) = not ;",
	": >= ( a b -- p ) < not ;",
	": > ( a b -- p ) swap < ;",
	": <= ( a b -- p ) swap < not ;",
	": mod ( a b -- a%b ) 2 nth 2 nth / * neg + ;",
	": abs ( a -- |a| ) dup 0 < ? neg ;",
	": max ( a b -- max ) 2 nth 2 nth < ? [ swap ] drop ;",
	": min ( a b -- min ) 2 nth 2 nth < not ? [ swap ] drop ;",
	": clear ( ... -- ) stack_len rep drop ;",
}

// boot runs the boot script. Any failure is a defect in the script or
// the interpreter itself, so it aborts the session rather than being
// reported like a user error.
func (vm *VM) boot() error {
	for _, line := range bootLines {
		vm.interpret(line)
		if vm.err != nil {
			err := vm.err
			vm.err = nil
			return bootstrapError{line, err}
		}
	}
	return nil
}
