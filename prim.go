package main

// prim is a native built-in. Its callback operates on the whole VM and
// returns an error rather than recording one, so callPrim can prefix it
// with the primitive's name uniformly.
type prim struct {
	name string
	desc string
	fun  func(vm *VM) error
}

// The table is populated in init: the introspection primitives render
// the table itself, which would otherwise be an initialization cycle.
var primTable []prim

// primIndex resolves a primitive name at emit time. Unknown names are a
// programming error in the caller, not user input.
func primIndex(name string) int {
	for i := len(primTable) - 1; i >= 0; i-- {
		if primTable[i].name == name {
			return i
		}
	}
	panic("unknown primitive " + name)
}

func (vm *VM) callPrim(idx int) {
	p := primTable[idx]
	if err := p.fun(vm); err != nil {
		vm.fail(primError{p.name, err})
	}
}

func init() {
	primTable = []prim{
		{".", "prints the top of the stack, at most 16 entries, oldest first", primDot},
		{"stack_len", "( -- n ) pushes the stack depth", primStackLen},
		{"dup", "( a -- a a )", primDup},
		{"swap", "( a b -- b a )", primSwap},
		{"rot", "( a b c -- b c a )", primRot},
		{"unrot", "( a b c -- c a b )", primUnrot},
		{"rev", "reverses the whole stack", primRev},
		{"drop", "( a -- )", primDrop},
		{"rev_n", "( ... n -- ... ) reverses the top n entries", primRevN},
		{"nth", "( ... n -- ... x ) copies the nth entry, 1 being the top", primNth},
		{"inc", "( a -- a+1 )", primInc},
		{"dec", "( a -- a-1 )", primDec},
		{"+", "( a b -- a+b )", primAdd},
		{"*", "( a b -- a*b )", primMul},
		{"/", "( a b -- a/b ) signed division", primDiv},
		{"shl", "( a n -- a<<n )", primShl},
		{"shr", "( a n -- a>>n )", primShr},
		{"or", "( a b -- a|b )", primOr},
		{"and", "( a b -- a&b )", primAnd},
		{"xor", "( a b -- a^b )", primXor},
		{"not", "( a -- ^a ) bitwise complement", primNot},
		{"=", "( a b -- p ) -1 when equal, 0 otherwise", primEq},
		{"<", "( a b -- p ) signed less-than", primLess},
		{"true", "( -- -1 )", primTrue},
		{"false", "( -- 0 )", primFalse},
		{"print", "( a -- ) prints a as signed decimal and a space", primPrint},
		{"pstr", "( a -- ) prints the bytes of one packed word", primPstr},
		{"print_string", "( ... n -- ) prints n packed words as a string", primPrintString},
		{"exit", "ends the session", primQuit},
		{"quit", "ends the session", primQuit},
		{"syntax", "lists the syntax operators", primListSyntax},
		{"primitives", "lists the primitives", primListPrims},
		{"words", "lists the user words, latest first", primListWords},
		{"guide", "prints a short usage guide", primGuide},
	}
}

const dotLimit = 16

func primDot(vm *VM) error {
	if len(vm.stack) == 0 {
		vm.write("empty.\n")
		return nil
	}
	from := 0
	if len(vm.stack) > dotLimit {
		from = len(vm.stack) - dotLimit
	}
	for _, n := range vm.stack[from:] {
		vm.printf("%v ", n)
	}
	vm.write("\n")
	return nil
}

func primStackLen(vm *VM) error {
	vm.push(number(len(vm.stack)))
	return nil
}

func primDup(vm *VM) error {
	if err := vm.need(1); err != nil {
		return err
	}
	vm.push(vm.peek(0))
	return nil
}

func primSwap(vm *VM) error {
	if err := vm.need(2); err != nil {
		return err
	}
	i := len(vm.stack) - 1
	vm.stack[i], vm.stack[i-1] = vm.stack[i-1], vm.stack[i]
	return nil
}

func primRot(vm *VM) error {
	if err := vm.need(3); err != nil {
		return err
	}
	i := len(vm.stack) - 1
	vm.stack[i-2], vm.stack[i-1], vm.stack[i] = vm.stack[i-1], vm.stack[i], vm.stack[i-2]
	return nil
}

func primUnrot(vm *VM) error {
	if err := vm.need(3); err != nil {
		return err
	}
	i := len(vm.stack) - 1
	vm.stack[i-2], vm.stack[i-1], vm.stack[i] = vm.stack[i], vm.stack[i-2], vm.stack[i-1]
	return nil
}

func reverse(ns []number) {
	for i, j := 0, len(ns)-1; i < j; i, j = i+1, j-1 {
		ns[i], ns[j] = ns[j], ns[i]
	}
}

func primRev(vm *VM) error {
	reverse(vm.stack)
	return nil
}

func primDrop(vm *VM) error {
	if _, ok := vm.pop(); !ok {
		return errUnderflow
	}
	return nil
}

func primRevN(vm *VM) error {
	if err := vm.need(1); err != nil {
		return err
	}
	n := vm.peek(0)
	if n > number(len(vm.stack)-1) {
		return errUnderflow
	}
	vm.pop()
	reverse(vm.stack[len(vm.stack)-int(n):])
	return nil
}

func primNth(vm *VM) error {
	if err := vm.need(1); err != nil {
		return err
	}
	n := vm.peek(0)
	if n < 1 || n > number(len(vm.stack)-1) {
		return errUnderflow
	}
	vm.pop()
	vm.push(vm.peek(int(n) - 1))
	return nil
}

func primInc(vm *VM) error {
	if err := vm.need(1); err != nil {
		return err
	}
	vm.stack[len(vm.stack)-1]++
	return nil
}

func primDec(vm *VM) error {
	if err := vm.need(1); err != nil {
		return err
	}
	vm.stack[len(vm.stack)-1]--
	return nil
}

func binop(vm *VM, f func(a, b number) (number, error)) error {
	if err := vm.need(2); err != nil {
		return err
	}
	b, _ := vm.pop()
	a, _ := vm.pop()
	r, err := f(a, b)
	if err != nil {
		vm.push(a)
		vm.push(b)
		return err
	}
	vm.push(r)
	return nil
}

func primAdd(vm *VM) error {
	return binop(vm, func(a, b number) (number, error) { return a + b, nil })
}

func primMul(vm *VM) error {
	return binop(vm, func(a, b number) (number, error) { return a * b, nil })
}

func primDiv(vm *VM) error {
	return binop(vm, func(a, b number) (number, error) {
		if b == 0 {
			return 0, errZeroDivide
		}
		// Dividing the minimum value by -1 overflows, which Go turns
		// into a runtime panic; negation wraps instead.
		if b.signed() == -1 {
			return signedNumber(-a.signed()), nil
		}
		return signedNumber(a.signed() / b.signed()), nil
	})
}

func shiftCount(n number) (uint, bool) {
	if n >= 8*wordBytes {
		return 0, false
	}
	return uint(n), true
}

func primShl(vm *VM) error {
	return binop(vm, func(a, n number) (number, error) {
		s, ok := shiftCount(n)
		if !ok {
			return 0, nil
		}
		return a << s, nil
	})
}

func primShr(vm *VM) error {
	return binop(vm, func(a, n number) (number, error) {
		s, ok := shiftCount(n)
		if !ok {
			return 0, nil
		}
		return a >> s, nil
	})
}

func primOr(vm *VM) error {
	return binop(vm, func(a, b number) (number, error) { return a | b, nil })
}

func primAnd(vm *VM) error {
	return binop(vm, func(a, b number) (number, error) { return a & b, nil })
}

func primXor(vm *VM) error {
	return binop(vm, func(a, b number) (number, error) { return a ^ b, nil })
}

func primNot(vm *VM) error {
	if err := vm.need(1); err != nil {
		return err
	}
	vm.stack[len(vm.stack)-1] = ^vm.stack[len(vm.stack)-1]
	return nil
}

func primEq(vm *VM) error {
	return binop(vm, func(a, b number) (number, error) { return boolNumber(a == b), nil })
}

func primLess(vm *VM) error {
	return binop(vm, func(a, b number) (number, error) { return boolNumber(a.signed() < b.signed()), nil })
}

func primTrue(vm *VM) error {
	vm.push(numberTrue)
	return nil
}

func primFalse(vm *VM) error {
	vm.push(numberFalse)
	return nil
}

func primPrint(vm *VM) error {
	n, ok := vm.pop()
	if !ok {
		return errUnderflow
	}
	vm.printf("%v ", n)
	return nil
}

func primPstr(vm *VM) error {
	n, ok := vm.pop()
	if !ok {
		return errUnderflow
	}
	vm.write(unpackString([]number{n}))
	return nil
}

func primPrintString(vm *VM) error {
	n, ok := vm.pop()
	if !ok {
		return errUnderflow
	}
	if n > number(len(vm.stack)) {
		vm.push(n)
		return errUnderflow
	}
	at := len(vm.stack) - int(n)
	vm.write(unpackString(vm.stack[at:]))
	vm.stack = vm.stack[:at]
	return nil
}

func primQuit(vm *VM) error {
	vm.quit = true
	return nil
}

func primListSyntax(vm *VM) error {
	for _, s := range syntaxTable {
		vm.printf("`%s`: %s\n", s.name, s.desc)
	}
	return nil
}

func primListPrims(vm *VM) error {
	for _, p := range primTable {
		vm.printf("`%s`: %s\n", p.name, p.desc)
	}
	return nil
}

func primListWords(vm *VM) error {
	for i := len(vm.words) - 1; i >= 0; i-- {
		w := vm.words[i]
		vm.printf("`%s`: %s\n", w.name, w.desc)
	}
	return nil
}

const guideText = `Numbers push themselves; words run when named.
Try: 1 2 + .            arithmetic and stack display
     : sq dup * ;       define a word, then 7 sq .
     help sq            describe a word; def sq prints its source
     words primitives   list what is defined
     quit               end the session
`

func primGuide(vm *VM) error {
	vm.write(guideText)
	return nil
}
