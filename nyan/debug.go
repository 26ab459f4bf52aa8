package nyan

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Debugger is a local, stdin-driven REPL wrapped around an Engine, adapted
// from the teacher's DebugConsole (step/print/breakpoint/reset/quit). It is
// unrelated to the remote socket-based debugger the original project stubs
// out; that one stays unimplemented.
type Debugger struct {
	engine      *Engine
	breakpoints map[int64]bool
	steps       uint64
	in          *bufio.Reader
	out         io.Writer
}

// NewDebugger wraps engine for interactive stepping.
func NewDebugger(engine *Engine, in io.Reader, out io.Writer) *Debugger {
	return &Debugger{
		engine:      engine,
		breakpoints: make(map[int64]bool),
		in:          bufio.NewReader(in),
		out:         out,
	}
}

// Run reads one command per line until 'q'/'quit' or the root signals
// MainEof.
func (d *Debugger) Run() error {
	fmt.Fprint(d.out, "Debugger mode, 'q' to quit\n>> ")
	for {
		line, err := d.in.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		args := strings.Fields(line)
		if len(args) == 0 {
			fmt.Fprint(d.out, ">> ")
			continue
		}
		done, err := d.dispatch(args)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		fmt.Fprint(d.out, ">> ")
	}
}

func (d *Debugger) dispatch(args []string) (bool, error) {
	switch args[0] {
	case "p", "print":
		d.printCommand()
	case "s", "step":
		return d.stepCommand(args)
	case "br", "breakpoint":
		if err := d.breakpointCommand(args); err != nil {
			fmt.Fprintln(d.out, err)
		}
	case "r", "reset":
		d.engine.current().Reset()
	case "q", "quit":
		fmt.Fprintln(d.out, "Quitting.")
		return true, nil
	default:
		fmt.Fprintf(d.out, "unknown command %q\n", args[0])
	}
	return false, nil
}

func (d *Debugger) printCommand() {
	s := d.engine.current()
	fmt.Fprintf(d.out, "script=%s cursor=%d dataPtr=%d cell=%d portPtr=%d parentMode=%v stackDepth=%d steps=%d\n",
		s.Path, s.cursor, s.tape.Ptr(), s.tape.Get(), s.portPtr, s.parentMode, len(d.engine.stack), d.steps)
}

func (d *Debugger) checkBreak() bool {
	s := d.engine.current()
	if d.breakpoints[s.cursor] {
		fmt.Fprintf(d.out, "break at cursor %d\n", s.cursor)
		return true
	}
	return false
}

// stepCommand advances the engine one Script.step at a time (not a whole
// Run), N times when given a numeric argument, stopping early at a
// breakpoint. The return value signals whether the root reached MainEof.
func (d *Debugger) stepCommand(args []string) (bool, error) {
	n := 1
	if len(args) >= 2 {
		v, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Fprintf(d.out, "bad step count %q\n", args[1])
			return false, nil
		}
		n = v
	}
	for i := 0; i < n; i++ {
		s := d.engine.current()
		sig, err := s.step()
		if err != nil {
			return false, err
		}
		d.steps++
		if sig != nil {
			if done := d.engine.handleSignal(s, sig); done {
				d.printCommand()
				return true, nil
			}
		}
		if d.checkBreak() {
			break
		}
	}
	d.printCommand()
	return false, nil
}

func (d *Debugger) breakpointCommand(args []string) error {
	if len(args) < 2 {
		return newError(ErrManifestSyntax, "breakpoint command needs a cursor argument")
	}
	var cursor int64
	if _, err := fmt.Sscanf(args[1], "%d", &cursor); err != nil {
		return wrapError(ErrManifestSyntax, err, "parsing breakpoint cursor %q", args[1])
	}
	d.breakpoints[cursor] = true
	return nil
}
