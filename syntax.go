package main

import (
	"fmt"
	"strconv"
	"strings"
)

// syntax is a built-in that participates in parsing. Each operator
// supplies one handler per interpreter mode and is free to consume
// further tokens or to re-enter the interpreter for a nested unit.
// compile reports how many values it emitted so callers can back-patch
// and roll back.
type syntax struct {
	name    string
	desc    string
	run     func(ip *interp)
	ignore  func(ip *interp)
	compile func(ip *interp) (int, bool)
}

// The table is populated in init: several handlers render syntax
// entries for help and def, which would otherwise be an initialization
// cycle.
var syntaxTable []syntax

func init() {
	syntaxTable = []syntax{
		{"(", "comment; skips everything up to a lone )",
			skipComment, skipComment, compileComment},
		{"\"", "string; pushes the packed words then their count",
			runString, ignoreString, compileString},
		{"hex", "reads one hexadecimal token as a number literal",
			runHex, ignoreHex, compileHex},
		{"'", "short string; packs one token into a single number",
			runShort, ignoreShort, compileShort},
		{"help", "prints the description of the following word",
			runHelp, ignoreHelp, compileHelp},
		{"def", "prints the definition of the following word",
			runDef, ignoreDef, compileDef},
		{"rec", "restarts the current word",
			runRec, ignoreNop, compileRec},
		{"ret", "ends the current word",
			runRet, ignoreNop, compileRet},
		{"?", "pops a predicate; zero skips the next unit",
			runChoose, ignoreChoose, compileChoose},
		{"rep_and", "pops a count, runs the next unit that many times, keeps the count",
			runRepAnd, ignoreUnit, compileRepAnd},
		{"rep", "pops a count and runs the next unit that many times",
			runRep, ignoreUnit, compileRep},
		{"[", "groups units up to ] into a single unit",
			runBlock, ignoreBlock, compileBlock},
		{":", "defines a word: : name ( desc ) body ;",
			runDefine, ignoreDefine, compileDefine},
	}
}

func (ip *interp) withMode(m mode) func() {
	prev := ip.mode
	ip.mode = m
	return func() { ip.mode = prev }
}

func ignoreNop(*interp) {}

// ignoreUnit consumes the operator's one following unit.
func ignoreUnit(ip *interp) { ip.ignoreNext() }

// Comments. Bodies are never resolved against the dictionary, so free
// text cannot raise undefined-word errors; only a lone ) closes.

func skipComment(ip *interp) {
	for {
		tok := ip.next()
		if tok.text == "" {
			ip.vm.fail(errUnclosedComment)
			return
		}
		ip.take()
		if tok.text == ")" {
			return
		}
	}
}

func compileComment(ip *interp) (int, bool) {
	skipComment(ip)
	return 0, !ip.vm.broken()
}

// Strings. The raw text between the delimiters is recovered from the
// token offsets into the line, so inner spacing survives, then packed
// eight bytes per word followed by the word count.

func scanString(ip *interp) (string, bool) {
	start, end := -1, -1
	for {
		tok := ip.next()
		if tok.text == "" {
			ip.vm.fail(errUnclosedString)
			return "", false
		}
		ip.take()
		if tok.text == "\"" {
			break
		}
		if start < 0 {
			start = tok.start
		}
		end = tok.end()
	}
	if start < 0 {
		return "", true
	}
	return ip.line[start:end], true
}

func runString(ip *interp) {
	s, ok := scanString(ip)
	if !ok {
		return
	}
	words := packString(s)
	for _, w := range words {
		ip.vm.push(w)
	}
	ip.vm.push(number(len(words)))
}

func ignoreString(ip *interp) {
	scanString(ip)
}

func compileString(ip *interp) (int, bool) {
	s, ok := scanString(ip)
	if !ok {
		return 0, false
	}
	vm := ip.vm
	n := 0
	for _, w := range packString(s) {
		n += vm.emit(numberValue(w))
	}
	n += vm.emit(numberValue(number(len(packString(s)))))
	return n, true
}

// Hex literals. Only 0-9 a-f A-F are digits; anything else is an
// error, and at most two digits per byte of the machine word.

func scanHex(ip *interp) (number, bool) {
	vm := ip.vm
	tok := ip.next()
	if tok.text == "" {
		vm.fail(primError{"hex", errMissingToken})
		return 0, false
	}
	ip.take()
	if len(tok.text) > 2*wordBytes {
		vm.fail(primError{"hex", errHexRange})
		return 0, false
	}
	var n number
	for i := 0; i < len(tok.text); i++ {
		c := tok.text[i]
		var d number
		switch {
		case c >= '0' && c <= '9':
			d = number(c - '0')
		case c >= 'a' && c <= 'f':
			d = number(c-'a') + 10
		case c >= 'A' && c <= 'F':
			d = number(c-'A') + 10
		default:
			vm.fail(primError{"hex", badHexDigitError(c)})
			return 0, false
		}
		n = n<<4 | d
	}
	return n, true
}

func runHex(ip *interp) {
	if n, ok := scanHex(ip); ok {
		ip.vm.push(n)
	}
}

func ignoreHex(ip *interp) {
	scanHex(ip)
}

func compileHex(ip *interp) (int, bool) {
	n, ok := scanHex(ip)
	if !ok {
		return 0, false
	}
	return ip.vm.emit(numberValue(n)), true
}

// Short strings: one token packed into a single machine word.

func scanShort(ip *interp) (number, bool) {
	vm := ip.vm
	tok := ip.next()
	if tok.text == "" {
		vm.fail(primError{"'", errMissingToken})
		return 0, false
	}
	ip.take()
	if len(tok.text) > wordBytes {
		vm.fail(primError{"'", errShortTooLong})
		return 0, false
	}
	return packString(tok.text)[0], true
}

func runShort(ip *interp) {
	if n, ok := scanShort(ip); ok {
		ip.vm.push(n)
	}
}

func ignoreShort(ip *interp) {
	scanShort(ip)
}

func compileShort(ip *interp) (int, bool) {
	n, ok := scanShort(ip)
	if !ok {
		return 0, false
	}
	return ip.vm.emit(numberValue(n)), true
}

// help and def resolve their argument with the same priority the
// interpreter uses, render a line of text, and in compile mode emit
// that text as a packed string so the compiled word reproduces the
// output when run.

func emitPrint(vm *VM, s string) int {
	words := packString(s)
	n := 0
	for _, w := range words {
		n += vm.emit(numberValue(w))
	}
	n += vm.emit(numberValue(number(len(words))))
	n += vm.emit(primValue(primIndex("print_string")))
	return n
}

func helpText(ip *interp) (string, bool) {
	v, ok := ip.readValue()
	if !ok {
		if !ip.vm.broken() {
			ip.vm.fail(primError{"help", errMissingToken})
		}
		return "", false
	}
	vm := ip.vm
	switch v.kind {
	case kindWord:
		w := vm.words[v.idx]
		return fmt.Sprintf("`%s`: %s", w.name, w.desc), true
	case kindPrim:
		p := primTable[v.idx]
		return fmt.Sprintf("`%s`: %s", p.name, p.desc), true
	case kindSyntax:
		s := syntaxTable[v.idx]
		return fmt.Sprintf("`%s`: %s", s.name, s.desc), true
	case kindNumber:
		return fmt.Sprintf("%v is a number; it pushes itself onto the stack",
			strconv.FormatUint(uint64(v.num), 10)), true
	}
	return "", false
}

func runHelp(ip *interp) {
	if s, ok := helpText(ip); ok {
		ip.vm.write(s + "\n")
	}
}

func ignoreHelp(ip *interp) {
	if tok := ip.next(); tok.text != "" {
		ip.take()
	}
}

func compileHelp(ip *interp) (int, bool) {
	s, ok := helpText(ip)
	if !ok {
		return 0, false
	}
	return emitPrint(ip.vm, s+"\n"), true
}

func defText(ip *interp) (string, bool) {
	v, ok := ip.readValue()
	if !ok {
		if !ip.vm.broken() {
			ip.vm.fail(primError{"def", errMissingToken})
		}
		return "", false
	}
	vm := ip.vm
	switch v.kind {
	case kindWord:
		return vm.renderWord(v.idx), true
	case kindPrim:
		return fmt.Sprintf("`%s` <built-in primitive>", primTable[v.idx].name), true
	case kindSyntax:
		return fmt.Sprintf("`%s` <built-in syntax>", syntaxTable[v.idx].name), true
	case kindNumber:
		return fmt.Sprintf("%v <number>", strconv.FormatUint(uint64(v.num), 10)), true
	}
	return "", false
}

// renderWord reconstructs the source form of a user word from its
// compiled slice: word and primitive references print their names,
// numbers print as unsigned decimal, raw functions their internal
// name. Compile-time rewrites such as back-patched skip distances
// print as the literals they became.
func (vm *VM) renderWord(idx int) string {
	w := vm.words[idx]
	var sb strings.Builder
	sb.WriteString(": ")
	sb.WriteString(w.name)
	if w.desc != "" {
		sb.WriteString(" ( ")
		sb.WriteString(w.desc)
		sb.WriteString(" )")
	}
	for _, v := range vm.code[w.pos : w.pos+w.len] {
		sb.WriteByte(' ')
		switch v.kind {
		case kindWord:
			sb.WriteString(vm.words[v.idx].name)
		case kindPrim:
			sb.WriteString(primTable[v.idx].name)
		case kindNumber:
			sb.WriteString(strconv.FormatUint(uint64(v.num), 10))
		case kindRawFunc:
			sb.WriteString(v.fn.name)
		}
	}
	sb.WriteString(" ;")
	return sb.String()
}

func runDef(ip *interp) {
	if s, ok := defText(ip); ok {
		ip.vm.write(s + "\n")
	}
}

func ignoreDef(ip *interp) {
	if tok := ip.next(); tok.text != "" {
		ip.take()
	}
}

func compileDef(ip *interp) (int, bool) {
	s, ok := defText(ip)
	if !ok {
		return 0, false
	}
	return emitPrint(ip.vm, s+"\n"), true
}

// rec and ret only mean something inside a compiled word.

func runRec(ip *interp) { ip.vm.fail(primError{"rec", errNotDefining}) }
func runRet(ip *interp) { ip.vm.fail(primError{"ret", errNotDefining}) }

func compileRec(ip *interp) (int, bool) {
	return ip.vm.emit(rawFuncValue(rawRec)), true
}

func compileRet(ip *interp) (int, bool) {
	return ip.vm.emit(rawFuncValue(rawRet)), true
}

// ? at run level pops the predicate and either runs or ignores the
// next unit. Compiled, it becomes a zero placeholder plus the choose
// raw function, and the placeholder is back-patched with the emitted
// length of the protected unit.

func runChoose(ip *interp) {
	vm := ip.vm
	pred, ok := vm.pop()
	if !ok {
		vm.fail(primError{"?", errUnderflow})
		return
	}
	if pred != 0 {
		ip.dispatchNext()
	} else {
		restore := ip.withMode(modeIgnore)
		ip.dispatchNext()
		restore()
	}
}

func ignoreChoose(ip *interp) {
	ip.ignoreNext()
}

func compileChoose(ip *interp) (int, bool) {
	vm := ip.vm
	at := len(vm.code)
	vm.emit(numberValue(0), rawFuncValue(rawChoose))
	n, ok := ip.compileNext()
	if !ok {
		if !vm.broken() {
			vm.fail(primError{"?", errMissingToken})
		}
		return 0, false
	}
	vm.code[at].num = number(n)
	return n + 2, true
}

// rep and rep_and. At run level the next unit is compiled into a
// temporary tail of the code buffer, run count times, then the tail is
// rolled back. Compiled, they mirror ?: placeholder, raw function,
// body, back-patch; rep also emits a drop to discard the kept count.

func runRepeat(ip *interp, name string, keep bool) {
	vm := ip.vm
	count, ok := vm.pop()
	if !ok {
		vm.fail(primError{name, errUnderflow})
		return
	}
	mark := len(vm.code)
	restore := ip.withMode(modeCompile)
	_, ok = ip.compileNext()
	restore()
	if !ok {
		if !vm.broken() {
			vm.fail(primError{name, errMissingToken})
		}
		vm.code = vm.code[:mark]
		return
	}
	body := vm.code[mark:]
	for i := number(0); i < count && !vm.broken(); i++ {
		vm.runSlice(body)
	}
	vm.code = vm.code[:mark]
	if keep {
		vm.push(count)
	}
}

func runRepAnd(ip *interp) { runRepeat(ip, "rep_and", true) }
func runRep(ip *interp)    { runRepeat(ip, "rep", false) }

func compileRepeat(ip *interp, name string, keep bool) (int, bool) {
	vm := ip.vm
	at := len(vm.code)
	vm.emit(numberValue(0), rawFuncValue(rawRepAnd))
	n, ok := ip.compileNext()
	if !ok {
		if !vm.broken() {
			vm.fail(primError{name, errMissingToken})
		}
		return 0, false
	}
	vm.code[at].num = number(n)
	total := n + 2
	if !keep {
		total += vm.emit(primValue(primIndex("drop")))
	}
	return total, true
}

func compileRepAnd(ip *interp) (int, bool) { return compileRepeat(ip, "rep_and", true) }
func compileRep(ip *interp) (int, bool)    { return compileRepeat(ip, "rep", false) }

// Blocks group units up to ] so that ? and rep can protect more than a
// single token. Compiled contents are emitted contiguously; the block
// reports their total length as one unit.

func runBlock(ip *interp) {
	for {
		tok := ip.next()
		if tok.text == "" {
			ip.vm.fail(errUnclosedBlock)
			return
		}
		if tok.text == "]" {
			ip.take()
			return
		}
		if !ip.runNext() || ip.vm.broken() {
			return
		}
	}
}

func ignoreBlock(ip *interp) {
	for {
		tok := ip.next()
		if tok.text == "" {
			ip.vm.fail(errUnclosedBlock)
			return
		}
		if tok.text == "]" {
			ip.take()
			return
		}
		if !ip.ignoreNext() || ip.vm.broken() {
			return
		}
	}
}

func compileBlock(ip *interp) (int, bool) {
	total := 0
	for {
		tok := ip.next()
		if tok.text == "" {
			ip.vm.fail(errUnclosedBlock)
			return 0, false
		}
		if tok.text == "]" {
			ip.take()
			return total, true
		}
		n, ok := ip.compileNext()
		if !ok {
			return 0, false
		}
		total += n
	}
}

// Word definition. Run-level only: the header is the name and an
// optional ( description ), then the body compiles until ;. A failed
// body rolls the code buffer back to its pre-definition length.

func runDefine(ip *interp) {
	vm := ip.vm
	name := ip.next()
	if name.text == "" {
		vm.fail(primError{":", errMissingToken})
		return
	}
	ip.take()
	desc := scanDesc(ip)
	if vm.broken() {
		return
	}
	mark := len(vm.code)
	restore := ip.withMode(modeCompile)
	defer restore()
	for {
		tok := ip.next()
		if tok.text == "" {
			vm.fail(errUnclosedDefine)
			break
		}
		if tok.text == ";" {
			ip.take()
			vm.install(word{
				name: name.text,
				desc: desc,
				pos:  mark,
				len:  len(vm.code) - mark,
			})
			return
		}
		if _, ok := ip.compileNext(); !ok {
			if !vm.broken() {
				vm.fail(errUnclosedDefine)
			}
			break
		}
	}
	vm.code = vm.code[:mark]
}

// scanDesc reads an optional ( description ) after the name. Unlike a
// comment, the header honours one level of nested parens so stack
// effect notes like ( a ( b -- c ) ) survive.
func scanDesc(ip *interp) string {
	tok := ip.next()
	if tok.text != "(" {
		return ""
	}
	ip.take()
	depth := 1
	start, end := -1, -1
	for {
		tok = ip.next()
		if tok.text == "" {
			ip.vm.fail(errUnclosedComment)
			return ""
		}
		ip.take()
		switch tok.text {
		case "(":
			depth++
		case ")":
			depth--
			if depth == 0 {
				if start < 0 {
					return ""
				}
				return ip.line[start:end]
			}
		}
		if start < 0 {
			start = tok.start
		}
		end = tok.end()
	}
}

func ignoreDefine(ip *interp) {
	for {
		tok := ip.next()
		if tok.text == "" {
			ip.vm.fail(errUnclosedDefine)
			return
		}
		ip.take()
		if tok.text == ";" {
			return
		}
	}
}

func compileDefine(ip *interp) (int, bool) {
	ip.vm.fail(primError{":", errNestedDefine})
	return 0, false
}
