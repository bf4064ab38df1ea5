package vm

// pending is an unmatched LoopBegin: its index in the program being built and
// its byte offset in the source.
type pending struct {
	index  int
	offset int
}

// Load lexes src into a Program in a single pass. Characters outside the
// instruction set are dropped and take no slot, so jump targets index the
// filtered sequence. A ']' with nothing to close fails immediately; '['
// left open at the end of src fails after the scan.
func Load(src string) (Program, error) {
	var (
		prog  = make(Program, 0, len(src))
		stack []pending
	)
	for offset, c := range src {
		op := Decode(c)
		var jump uint32

		switch op {
		case Unrecognized:
			continue
		case LoopBegin:
			stack = append(stack, pending{index: len(prog), offset: offset})
		case LoopEnd:
			if len(stack) == 0 {
				return nil, &LoadError{Offset: offset, Err: ErrUnmatchedClose}
			}
			b := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			jump = uint32(b.index)
			prog[b.index].Jump = uint32(len(prog))
		}
		prog = append(prog, Entry{Op: op, Jump: jump})
	}
	if len(stack) > 0 {
		return nil, &LoadError{Offset: stack[0].offset, Pending: len(stack), Err: ErrUnmatchedOpen}
	}
	return prog, nil
}
