package nyan

import "io"

// RunFile loads path (and its manifest graph, if any) and drives it to
// completion. debug enables `.`'s {value} rendering and the engine's
// scheduler-trace logging.
func RunFile(path string, debug bool, in io.Reader, out io.Writer) error {
	root, err := newGraphBuilder(debug, in, out).Build(path)
	if err != nil {
		return err
	}
	return NewEngine(root, debug).Run()
}

// DebugFile loads path as RunFile does with debug enabled (so `.` renders
// as {value}) but hands control to an interactive Debugger instead of
// running to completion unattended.
func DebugFile(path string, in io.Reader, out io.Writer) error {
	root, err := newGraphBuilder(true, in, out).Build(path)
	if err != nil {
		return err
	}
	return NewDebugger(NewEngine(root, true), in, out).Run()
}
