// Package fileinput reads whole lines from a named input stream while
// tracking the location of each, to support user-facing error reports.
package fileinput

import (
	"bufio"
	"fmt"
	"io"
)

// Location names a line in an input stream.
type Location struct {
	Name string
	Line int
}

func (loc Location) String() string { return fmt.Sprintf("%v:%v", loc.Name, loc.Line) }

// Lines scans one stream line by line. The zero Location has line 0;
// the first successful Scan advances it to 1.
type Lines struct {
	loc Location
	sc  *bufio.Scanner
}

// NewLines creates a line scanner over r under the given display name.
func NewLines(name string, r io.Reader) *Lines {
	return &Lines{
		loc: Location{Name: name},
		sc:  bufio.NewScanner(r),
	}
}

// Scan advances to the next line, reporting false at end of stream or
// on a read error.
func (ls *Lines) Scan() bool {
	if !ls.sc.Scan() {
		return false
	}
	ls.loc.Line++
	return true
}

// Text returns the current line without its trailing newline.
func (ls *Lines) Text() string { return ls.sc.Text() }

// Loc returns the location of the current line.
func (ls *Lines) Loc() Location { return ls.loc }

// Err returns the first non-EOF error encountered while scanning.
func (ls *Lines) Err() error { return ls.sc.Err() }
