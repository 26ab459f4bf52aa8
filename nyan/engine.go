package nyan

import "github.com/golang/glog"

// Engine drives the script graph coroutine-style. It owns the active-call
// stack; the stack is seeded with the root rather than left empty so "top
// of stack" is always a valid index (see SPEC_FULL.md §4.G for this
// simplification of the literal "initially empty, root implicit" wording).
type Engine struct {
	root  *Script
	stack []*Script
	debug bool
}

// NewEngine creates an Engine ready to run the given root Script. debug
// enables scheduler-transition logging independent of glog's own -v flag.
func NewEngine(root *Script, debug bool) *Engine {
	return &Engine{root: root, stack: []*Script{root}, debug: debug}
}

// Run drives the scheduling loop, the way NesConsole.Step drives cpu/ppu
// and reacts to the NMI side effect: here the side effect is a Signal
// deciding which script runs next.
func (e *Engine) Run() error {
	for {
		cur := e.current()
		sig, err := cur.Run()
		if err != nil {
			return err
		}
		if done := e.handleSignal(cur, sig); done {
			return nil
		}
	}
}

func (e *Engine) current() *Script {
	return e.stack[len(e.stack)-1]
}

// handleSignal applies one Signal to the active-call stack. It is shared by
// Run (which always runs a script to its next Signal) and the Debugger
// (which single-steps and must apply the same transition logic after every
// individual instruction that happens to produce one).
func (e *Engine) handleSignal(cur *Script, sig *Signal) (done bool) {
	switch sig.Kind {
	case SignalMainEof:
		return true
	case SignalSubEof:
		e.stack = e.stack[:len(e.stack)-1]
		cur.Reset()
		if e.debug {
			glog.Infof("sub-eof: %s reset, stack depth %d", cur.Path, len(e.stack))
		}
	case SignalPause:
		peer := e.peerFor(cur, sig)
		// Cycle rule: if the element two below the top is the peer, we are
		// resuming the caller, so pop instead of growing the stack.
		if len(e.stack) >= 2 && e.stack[len(e.stack)-2] == peer {
			e.stack = e.stack[:len(e.stack)-1]
		} else {
			e.stack = append(e.stack, peer)
		}
		if e.debug {
			glog.Infof("pause on port %d (parentMode=%v): stack depth %d", sig.Port, sig.ParentMode, len(e.stack))
		}
	}
	return false
}

func (e *Engine) peerFor(s *Script, sig *Signal) *Script {
	m := s.children
	if sig.ParentMode {
		m = s.parents
	}
	comm, ok := m[sig.Port]
	if !ok {
		glog.Fatalf("engine invariant violated: no communicator at port %d (parentMode=%v) on %s after a successful send/receive", sig.Port, sig.ParentMode, s.Path)
	}
	return comm.Peer(s)
}
