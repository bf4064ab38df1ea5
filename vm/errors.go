package vm

import (
	"errors"
	"fmt"
)

// Load errors.
var (
	ErrUnmatchedClose = errors.New("unmatched closing bracket")
	ErrUnmatchedOpen  = errors.New("unmatched opening bracket")
)

// Runtime errors.
var (
	ErrMemoryOverflow  = errors.New("memory overflow")
	ErrMemoryUnderflow = errors.New("memory underflow")
	ErrInputExhausted  = errors.New("input exhausted")
)

// LoadError is returned when program text is structurally malformed. No
// part of the program is usable after it.
type LoadError struct {
	Offset  int // byte offset of the offending bracket in the source
	Pending int // opening brackets still unmatched, for ErrUnmatchedOpen
	Err     error
}

func (e *LoadError) Error() string {
	if e.Pending > 1 {
		return fmt.Sprintf("%v at offset %d (%d unmatched)", e.Err, e.Offset, e.Pending)
	}
	return fmt.Sprintf("%v at offset %d", e.Err, e.Offset)
}

func (e *LoadError) Unwrap() error { return e.Err }

// RuntimeError halts a run. PC, DP and the tape are left exactly as they were
// when the failing instruction was fetched.
type RuntimeError struct {
	PC  int
	DP  int
	Op  Instruction
	Err error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%v (instruction %d %q, cell %d)", e.Err, e.PC, e.Op.String(), e.DP)
}

func (e *RuntimeError) Unwrap() error { return e.Err }

// ErrInvalidInstruction wraps an instruction the engine cannot execute. A
// program built by Load never contains one.
type ErrInvalidInstruction struct {
	op Instruction
}

func (e *ErrInvalidInstruction) Error() string {
	return fmt.Sprintf("invalid instruction 0x%x", byte(e.op))
}
