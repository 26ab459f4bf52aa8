package nyan

// Instruction is one fetched unit: an opcode, how many times to run it (1
// everywhere except inside a binary compressible run), and the cursor
// stride to advance by once it has executed.
type Instruction struct {
	Op    Opcode
	Count int64
	Next  int64
}

// Fetcher decodes one instruction at a cursor position. The source token
// stream and the binary opcode stream both implement it, which is what lets
// bracket.go and Script.step dispatch without caring which form backs them
// (the "Polymorphic interpreters" unification).
type Fetcher interface {
	// Fetch returns the instruction at cursor. A cursor at or past Len
	// yields the sentinel instruction that terminates execution.
	Fetch(cursor int64) (Instruction, error)
	Len() int64
}

// Program is a fully loaded script body: its instruction stream plus the
// bracket table computed once at load time.
type Program struct {
	Fetcher
	Brackets bracketTable
}

func loadProgram(f Fetcher) (*Program, error) {
	bt, err := buildBracketTable(f)
	if err != nil {
		return nil, err
	}
	return &Program{Fetcher: f, Brackets: bt}, nil
}
