package nyan

// bracketTable is a bijection between the cursor positions of matching loop
// tokens: every opening maps to its closing and vice versa.
type bracketTable map[int64]int64

// buildBracketTable scans a Fetcher left to right, pairing OpLoopStart with
// OpLoopEnd. It fails with ErrUnmatchedBracket if an opening is never closed
// or a closing appears with nothing open.
func buildBracketTable(f Fetcher) (bracketTable, error) {
	table := make(bracketTable)
	var stack []int64
	cursor := int64(0)
	for cursor < f.Len() {
		inst, err := f.Fetch(cursor)
		if err != nil {
			return nil, err
		}
		switch inst.Op {
		case OpLoopStart:
			stack = append(stack, cursor)
		case OpLoopEnd:
			if len(stack) == 0 {
				return nil, newError(ErrUnmatchedBracket, "unmatched '-' at position %d", cursor)
			}
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			table[open] = cursor
			table[cursor] = open
		}
		if inst.Next == 0 {
			cursor++
		} else {
			cursor += inst.Next
		}
	}
	if len(stack) != 0 {
		return nil, newError(ErrUnmatchedBracket, "unmatched '~' at position %d", stack[len(stack)-1])
	}
	return table, nil
}
