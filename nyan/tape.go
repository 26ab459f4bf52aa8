package nyan

// Tape is the sparse integer cell array indexed by a movable data pointer.
// Absent keys read as 0; writing any value, including 0, materializes the
// entry the way a real map write does, matching the teacher's RAM shape
// generalized from a fixed array to an unbounded signed index space.
type Tape struct {
	cells map[int64]int64
	ptr   int64
}

// NewTape creates an empty tape with the pointer at 0.
func NewTape() *Tape {
	return &Tape{cells: make(map[int64]int64)}
}

// Get reads the cell at the current pointer.
func (t *Tape) Get() int64 {
	return t.cells[t.ptr]
}

// Set writes the cell at the current pointer.
func (t *Tape) Set(v int64) {
	t.cells[t.ptr] = v
}

// Inc increments the cell at the current pointer.
func (t *Tape) Inc() {
	t.cells[t.ptr]++
}

// Dec decrements the cell at the current pointer.
func (t *Tape) Dec() {
	t.cells[t.ptr]--
}

// MovePtr moves the data pointer by delta, which is always ±1 in practice.
func (t *Tape) MovePtr(delta int64) {
	t.ptr += delta
}

// Ptr returns the current pointer value.
func (t *Tape) Ptr() int64 {
	return t.ptr
}
