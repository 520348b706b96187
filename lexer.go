package main

// token is one whitespace-delimited run of the current line. start is
// its byte offset into the line, which is how the string syntax
// reconstructs the spacing between tokens. A handled token has been
// consumed; the next call to next re-scans.
type token struct {
	text    string
	start   int
	handled bool
}

func (tok token) end() int { return tok.start + len(tok.text) }

// lexer is a cursor over one input line. Only ASCII space separates
// tokens; lines are treated as opaque byte strings.
type lexer struct {
	line string
	pos  int
	tok  token
}

func (lx *lexer) rest() bool { return lx.pos < len(lx.line) }

func (lx *lexer) advance() {
	for lx.pos < len(lx.line) && lx.line[lx.pos] == ' ' {
		lx.pos++
	}
	start := lx.pos
	for lx.pos < len(lx.line) && lx.line[lx.pos] != ' ' {
		lx.pos++
	}
	lx.tok = token{text: lx.line[start:lx.pos], start: start}
}

// next returns the current token, scanning a fresh one only if the
// current one has already been handled. An empty text means end of
// line. Resolution peeks by calling next without take; a miss leaves
// the token in place for the next candidate.
func (lx *lexer) next() token {
	if lx.tok.handled || lx.tok.text == "" {
		lx.advance()
	}
	return lx.tok
}

// take marks the current token consumed.
func (lx *lexer) take() { lx.tok.handled = true }
