package nyan

import (
	"fmt"
	"io"
)

// SignalKind is the terminal outcome of one Script.Run call, implementing
// the "Coroutine via signal tuples" redesign: the source returns a tuple
// from a mainloop and lets an outer driver re-enter; here that tuple is a
// small sum type the Engine switches on explicitly.
type SignalKind int

const (
	SignalPause SignalKind = iota
	SignalSubEof
	SignalMainEof
)

// Signal is what a Script hands back to the Engine when it can no longer
// make progress on its own.
type Signal struct {
	Kind       SignalKind
	ParentMode bool
	Port       int64
}

// Script is one loaded program plus its runtime state: tape, pointers,
// parent-mode flag, port bindings and cursor. At most one Script exists per
// absolute path (enforced by the manifest loader's path registry).
type Script struct {
	Path       string
	program    *Program
	tape       *Tape
	portPtr    int64
	parentMode bool
	cursor     int64
	children   map[int64]*Communicator
	parents    map[int64]*Communicator
	isRoot     bool
	debug      bool
	in         io.Reader
	out        io.Writer
}

// NewScript constructs a Script around an already-loaded Program. in/out
// are the stdio streams the port opcodes' siblings `,` and `.` read/write.
func NewScript(path string, program *Program, isRoot, debug bool, in io.Reader, out io.Writer) *Script {
	return &Script{
		Path:     path,
		program:  program,
		tape:     NewTape(),
		children: make(map[int64]*Communicator),
		parents:  make(map[int64]*Communicator),
		isRoot:   isRoot,
		debug:    debug,
		in:       in,
		out:      out,
	}
}

// Reset zeroes a sub-script's execution state after it signals SubEof,
// preserving its token stream and port bindings. The tape is reassigned
// rather than mutated in place (see the resolved "reassign wrappers"
// design note).
func (s *Script) Reset() {
	s.tape = NewTape()
	s.cursor = 0
	s.portPtr = 0
	s.parentMode = false
}

// Run drives step() until it returns a terminal Signal or an error.
func (s *Script) Run() (*Signal, error) {
	for {
		sig, err := s.step()
		if err != nil {
			return nil, err
		}
		if sig != nil {
			return sig, nil
		}
	}
}

func (s *Script) step() (*Signal, error) {
	if s.cursor >= s.program.Len() {
		if s.isRoot {
			return &Signal{Kind: SignalMainEof}, nil
		}
		return &Signal{Kind: SignalSubEof}, nil
	}
	inst, err := s.program.Fetch(s.cursor)
	if err != nil {
		return nil, err
	}
	switch inst.Op {
	case OpLoopStart:
		if s.tape.Get() == 0 {
			s.cursor = s.program.Brackets[s.cursor] + 1
		} else {
			s.cursor++
		}
		return nil, nil
	case OpLoopEnd:
		if s.tape.Get() != 0 {
			s.cursor = s.program.Brackets[s.cursor]
		} else {
			s.cursor++
		}
		return nil, nil
	case OpToggleParent:
		s.parentMode = !s.parentMode
		s.cursor++
		return nil, nil
	case OpDebugPrint:
		fmt.Fprintf(s.out, "{%d}", s.tape.Get())
		s.cursor++
		return nil, nil
	case OpPortWrite:
		comm, err := s.selectedCommunicator()
		if err != nil {
			return nil, err
		}
		comm.Send(s, s.tape.Get())
		s.cursor++
		return &Signal{Kind: SignalPause, ParentMode: s.parentMode, Port: s.portPtr}, nil
	case OpPortRead:
		comm, err := s.selectedCommunicator()
		if err != nil {
			return nil, err
		}
		v, ok := comm.Receive(s)
		if !ok {
			return &Signal{Kind: SignalPause, ParentMode: s.parentMode, Port: s.portPtr}, nil
		}
		s.tape.Set(v)
		s.cursor++
		return nil, nil
	default:
		for i := int64(0); i < inst.Count; i++ {
			if err := s.execScalar(inst.Op); err != nil {
				return nil, err
			}
		}
		if inst.Next == 0 {
			s.cursor++
		} else {
			s.cursor += inst.Next
		}
		return nil, nil
	}
}

// execScalar runs the one-tick effect of a compressible opcode. Called
// inst.Count times in a row by step so that a burst is one non-preemptible
// unit (no port opcode is ever compressible).
func (s *Script) execScalar(op Opcode) error {
	switch op {
	case OpPtrInc:
		s.tape.MovePtr(1)
	case OpPtrDec:
		s.tape.MovePtr(-1)
	case OpCellInc:
		s.tape.Inc()
	case OpCellDec:
		s.tape.Dec()
	case OpPortPtrInc:
		s.portPtr++
	case OpPortPtrDec:
		s.portPtr--
	case OpStdout:
		if s.debug {
			fmt.Fprintf(s.out, "{%d}", s.tape.Get())
		} else {
			fmt.Fprint(s.out, string(rune(s.tape.Get())))
		}
	case OpStdin:
		b := make([]byte, 1)
		n, err := s.in.Read(b)
		if err != nil || n == 0 {
			s.tape.Set(0)
		} else {
			s.tape.Set(int64(b[0]))
		}
	default:
		return newError(ErrInvalidOpcode, "opcode 0x%02x has no scalar effect", byte(op))
	}
	return nil
}

func (s *Script) selectedCommunicator() (*Communicator, error) {
	m := s.children
	if s.parentMode {
		m = s.parents
	}
	comm, ok := m[s.portPtr]
	if !ok {
		return nil, newError(ErrPortUnbound, "no communicator bound at port %d (parentMode=%v) in %s", s.portPtr, s.parentMode, s.Path)
	}
	return comm, nil
}
