package nyan

import (
	"bytes"
	"strings"
	"testing"
)

func opsFromString(t *testing.T, s string) []Opcode {
	t.Helper()
	ops := make([]Opcode, 0, len(s))
	for _, r := range s {
		op, ok := sourceAlphabet[r]
		if !ok {
			t.Fatalf("rune %q is not in the source alphabet", r)
		}
		ops = append(ops, op)
	}
	return ops
}

func newScriptWithIO(t *testing.T, ops []Opcode, in *strings.Reader, out *bytes.Buffer, debug bool) *Script {
	t.Helper()
	program, err := loadProgram(&sourceTokens{ops: ops})
	if err != nil {
		t.Fatalf("loadProgram: %v", err)
	}
	return NewScript("/virtual/"+t.Name()+".nyan", program, true, debug, in, out)
}

func TestScriptCat(t *testing.T) {
	ops := opsFromString(t, ",~.,-")
	in := strings.NewReader("abc")
	out := &bytes.Buffer{}
	s := newScriptWithIO(t, ops, in, out, false)
	sig, err := s.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sig.Kind != SignalMainEof {
		t.Fatalf("signal: got=%v, want=SignalMainEof", sig.Kind)
	}
	if out.String() != "abc" {
		t.Fatalf("stdout: got=%q, want=%q", out.String(), "abc")
	}
}

func TestScriptPortUnbound(t *testing.T) {
	ops := opsFromString(t, ";")
	s := newScriptWithIO(t, ops, strings.NewReader(""), &bytes.Buffer{}, false)
	_, err := s.Run()
	if err == nil {
		t.Fatal("expected a PortUnbound error, got nil")
	}
	ne, ok := err.(*NyanError)
	if !ok || ne.Kind != ErrPortUnbound {
		t.Fatalf("got error %v, want Kind=ErrPortUnbound", err)
	}
}

func TestScriptLoopSkippedWhenCellIsZero(t *testing.T) {
	// Loop body decrements the cell; since the cell starts at 0 the loop
	// body never runs and the trailing '.' prints code point 0.
	ops := opsFromString(t, "~냐-.")
	out := &bytes.Buffer{}
	s := newScriptWithIO(t, ops, strings.NewReader(""), out, false)
	if _, err := s.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := []byte(out.String()); len(got) != 1 || got[0] != 0 {
		t.Fatalf("stdout: got=%v, want=[0]", got)
	}
}

func TestScriptDebugModeRendersStdoutAsValue(t *testing.T) {
	ops := opsFromString(t, "냥냥.")
	out := &bytes.Buffer{}
	s := newScriptWithIO(t, ops, strings.NewReader(""), out, true)
	if _, err := s.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.String() != "{2}" {
		t.Fatalf("stdout: got=%q, want={2}", out.String())
	}
}

func TestScriptDebugPrintOpcodeAlwaysRendersAsValue(t *testing.T) {
	ops := opsFromString(t, "냥뀨")
	out := &bytes.Buffer{}
	s := newScriptWithIO(t, ops, strings.NewReader(""), out, false)
	if _, err := s.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.String() != "{1}" {
		t.Fatalf("stdout: got=%q, want={1}", out.String())
	}
}

func TestScriptResetZeroesState(t *testing.T) {
	ops := opsFromString(t, "냥먕")
	s := newScriptWithIO(t, ops, strings.NewReader(""), &bytes.Buffer{}, false)
	s.isRoot = false
	if _, err := s.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if s.tape.Get() != 1 || s.portPtr != 1 {
		t.Fatalf("precondition failed: cell=%d portPtr=%d", s.tape.Get(), s.portPtr)
	}
	s.Reset()
	if s.cursor != 0 || s.portPtr != 0 || s.parentMode {
		t.Fatalf("Reset left stale state: cursor=%d portPtr=%d parentMode=%v", s.cursor, s.portPtr, s.parentMode)
	}
	if s.tape.Get() != 0 {
		t.Fatalf("Reset should reassign a fresh tape: cell=%d", s.tape.Get())
	}
}
