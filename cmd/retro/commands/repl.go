// Package commands implements the per-container REPL drivers. Each driver
// consumes whitespace separated tokens, mirrors them onto its container and
// prints the protocol replies: ok / not ok / found / not found / a numeric
// time or value / No such element. A "run <file>" token executes a script
// (top level streams only), "finish" terminates cleanly.
package commands

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/sanity-io/litter"
)

// Trace turns on stderr dumps of every decoded command.
var Trace bool

func init() {
	litter.Config.HidePrivateFields = false
}

type tokens struct {
	s *bufio.Scanner
}

func newTokens(r io.Reader) *tokens {
	s := bufio.NewScanner(r)
	s.Split(bufio.ScanWords)
	return &tokens{s}
}

func (t *tokens) next() (string, bool) {
	if !t.s.Scan() {
		return "", false
	}
	return t.s.Text(), true
}

func (t *tokens) int64() (int64, error) {
	w, in := t.next()
	if !in {
		return 0, io.ErrUnexpectedEOF
	}
	return strconv.ParseInt(w, 10, 64)
}

// command is the decoded form of one driver instruction; X and Tm are only
// meaningful for operations that carry them.
type command struct {
	Op string
	X  int64
	Tm int64
}

func trace(c command) {
	if Trace {
		fmt.Fprintln(os.Stderr, litter.Sdump(c))
	}
}

func reply(w io.Writer, ok bool, yes, no string) {
	if ok {
		fmt.Fprintln(w, yes)
	} else {
		fmt.Fprintln(w, no)
	}
}

func replyKey(w io.Writer, k int64) {
	if k == math.MaxInt64 {
		fmt.Fprintln(w, "No such element")
	} else {
		fmt.Fprintln(w, k)
	}
}

// runScript opens name and feeds it to body with file execution disabled, so
// scripts cannot nest further.
func runScript(name string, body func(*tokens, bool) error) error {
	f, err := os.Open(name)
	if err != nil {
		return fmt.Errorf("run %s: %w", name, err)
	}
	defer f.Close()
	return body(newTokens(f), false)
}
