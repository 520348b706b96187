/* Package main: mieliepit, a small stack language

Mieliepit is a line-oriented concatenative language. Numbers push
themselves onto a data stack, built-in primitives consume and produce
stack cells, and the colon syntax compiles new words out of existing
ones:

	> : sq ( n -- n*n ) dup * ;
	> 7 sq .
	49

The interpreter runs in one of three modes. Run mode executes each
resolved token immediately. Compile mode, entered by :, emits tagged
values into a session-long code buffer; the finished definition becomes
a word referencing a contiguous slice of that buffer. Ignore mode
advances past tokens without effect and exists so that the ? operator
can skip its protected unit at run level.

Most built-ins are primitives with plain stack contracts. A handful are
syntax operators that take part in parsing itself: comments ( ... ),
strings " ... ", hex and short-string literals, help and def, the
control operators ? rep rep_and rec ret, the grouping block [ ... ],
and : itself. Each syntax operator behaves per mode, and the compiling
forms emit code sequences that reproduce the run-level effect, using
internal raw functions to move the program counter of a running word.

Word lookup is latest-first, so redefining a word shadows the old
meaning for subsequent input while previously compiled callers keep the
code they were compiled against.
*/
package main
