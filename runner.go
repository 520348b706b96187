package main

// runner executes a compiled slice of the code buffer. code is the
// initial view, curr the remaining program; raw functions implement
// control flow by rewriting curr.
type runner struct {
	vm   *VM
	code []value
	curr []value
}

// rawFunc is an internal callable that only ever appears in compiled
// code. run may mutate the runner's program counter.
type rawFunc struct {
	name string
	run  func(r *runner)
}

// runWord executes the compiled slice of the given user word. Word
// table and code buffer bounds are invariants of compilation; their
// violation is an assertion, not a user error.
func (vm *VM) runWord(idx int) {
	if idx < 0 || idx >= len(vm.words) {
		panic(wordIndexError(idx))
	}
	w := vm.words[idx]
	if w.pos+w.len > len(vm.code) {
		panic(codeSliceError(w.pos + w.len))
	}
	if vm.depthLimit != 0 && vm.depth >= vm.depthLimit {
		vm.fail(errDepthLimit)
		return
	}
	vm.depth++
	defer func() { vm.depth-- }()
	if vm.logfn != nil {
		defer vm.withLogPrefix("	")()
	}
	vm.runSlice(vm.code[w.pos : w.pos+w.len])
}

// runSlice drives a fresh runner over code until it is exhausted or an
// error is recorded.
func (vm *VM) runSlice(code []value) {
	r := runner{vm: vm, code: code, curr: code}
	for !vm.broken() && len(r.curr) > 0 {
		if vm.ctx != nil {
			if err := vm.ctx.Err(); err != nil {
				vm.fail(err)
				return
			}
		}
		r.runNext()
	}
}

func (r *runner) next() (value, bool) {
	if len(r.curr) == 0 {
		return value{}, false
	}
	v := r.curr[0]
	r.curr = r.curr[1:]
	return v, true
}

func (r *runner) runNext() bool {
	v, ok := r.next()
	if !ok {
		return false
	}
	r.runValue(v)
	return true
}

func (r *runner) runValue(v value) {
	vm := r.vm
	switch v.kind {
	case kindWord:
		vm.logf("call word %q -- s:%v", vm.words[v.idx].name, vm.stack)
		vm.runWord(v.idx)
	case kindPrim:
		vm.callPrim(v.idx)
	case kindNumber:
		vm.push(v.num)
	case kindRawFunc:
		vm.logf("rawfunc %q -- s:%v", v.fn.name, vm.stack)
		v.fn.run(r)
	case kindSyntax:
		vm.fail(errCompiledSyntax)
	}
}

// skip advances the program counter by n values. The distance is
// always a compiler-emitted literal, so running past the end of the
// slice means the code buffer is corrupt.
func (r *runner) skip(n number) {
	if n > number(len(r.curr)) {
		panic(codeSliceError(len(r.code) - len(r.curr) + int(n)))
	}
	r.curr = r.curr[n:]
}

// The raw functions. Each is emitted by the compile handler of the
// syntax operator of the same name and is meaningless outside a
// runner.
var (
	// rawRec restarts the current word from its first value.
	rawRec = &rawFunc{
		name: "rec",
		run:  func(r *runner) { r.curr = r.code },
	}

	// rawRet ends the current word.
	rawRet = &rawFunc{
		name: "ret",
		run:  func(r *runner) { r.curr = nil },
	}

	// rawChoose pops the compiler-emitted skip distance and a
	// predicate; a zero predicate skips the protected unit.
	rawChoose = &rawFunc{
		name: "?",
		run: func(r *runner) {
			vm := r.vm
			dist, _ := vm.pop()
			pred, ok := vm.pop()
			if !ok {
				vm.fail(primError{"?", errUnderflow})
				return
			}
			if pred == 0 {
				r.skip(dist)
			}
		},
	}

	// rawRepAnd pops the compiler-emitted body length and a count,
	// runs the body count times, then advances past it and pushes the
	// count back.
	rawRepAnd = &rawFunc{
		name: "rep_and",
		run: func(r *runner) {
			vm := r.vm
			bodyLen, _ := vm.pop()
			count, ok := vm.pop()
			if !ok {
				vm.fail(primError{"rep_and", errUnderflow})
				return
			}
			if bodyLen > number(len(r.curr)) {
				panic(codeSliceError(len(r.code) - len(r.curr) + int(bodyLen)))
			}
			body := r.curr[:bodyLen]
			for i := number(0); i < count && !vm.broken(); i++ {
				vm.runSlice(body)
			}
			r.skip(bodyLen)
			vm.push(count)
		},
	}
)
