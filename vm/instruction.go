package vm

// Instruction is a single decoded source character.
type Instruction byte

const (
	Unrecognized Instruction = iota
	MoveRight
	MoveLeft
	Increment
	Decrement
	Output
	Input
	LoopBegin
	LoopEnd
)

var instructionChars = [...]byte{
	MoveRight: '>',
	MoveLeft:  '<',
	Increment: '+',
	Decrement: '-',
	Output:    '.',
	Input:     ',',
	LoopBegin: '[',
	LoopEnd:   ']',
}

// Decode maps a source character to its instruction.
func Decode(c rune) Instruction {
	switch c {
	case '>':
		return MoveRight
	case '<':
		return MoveLeft
	case '+':
		return Increment
	case '-':
		return Decrement
	case '.':
		return Output
	case ',':
		return Input
	case '[':
		return LoopBegin
	case ']':
		return LoopEnd
	}
	return Unrecognized
}

// IsBracket reports whether op carries a jump target.
func (op Instruction) IsBracket() bool {
	return op == LoopBegin || op == LoopEnd
}

func (op Instruction) valid() bool {
	return op > Unrecognized && op <= LoopEnd
}

func (op Instruction) String() string {
	if !op.valid() {
		return "unrecognized"
	}
	return string(instructionChars[op])
}
