package vm

import (
	"errors"
	"fmt"
	"io"

	"github.com/entropyio/go-bfvm/logger"
)

// LogModule is the logger module the VM logs under. Trace records are
// emitted at debug level for this module.
const LogModule = "[vm]"

var log = logger.NewLogger(LogModule)

// Config are the configuration options for the VM.
type Config struct {
	Trace bool // log every executed instruction at debug level
}

type flusher interface {
	Flush() error
}

// VM owns a loaded program, the tape and both pointers. It is not safe for
// concurrent use.
type VM struct {
	cfg Config

	prog Program
	tape Tape
	pc   int // instruction pointer
	dp   int // data pointer

	in  io.Reader
	out io.Writer
	buf [1]byte
}

// New returns a VM with an empty program. Input instructions read from in,
// Output instructions write to out. If out has a Flush method it is flushed
// before every Input.
func New(in io.Reader, out io.Writer, cfg Config) *VM {
	return &VM{cfg: cfg, in: in, out: out}
}

// Reset zeroes the tape and both pointers. The program is kept.
func (vm *VM) Reset() {
	vm.tape = Tape{}
	vm.pc = 0
	vm.dp = 0
}

// Load discards the current program and state and loads src. On failure the
// VM is left with an empty program.
func (vm *VM) Load(src string) error {
	vm.Reset()
	vm.prog = nil

	prog, err := Load(src)
	if err != nil {
		return err
	}
	vm.prog = prog
	if logger.IsDebug(LogModule) {
		log.Debugf("loaded %d instructions from %d bytes, hash:%x", len(prog), len(src), prog.Hash())
	}
	return nil
}

// LoadProgram installs an already loaded program, for example one read back
// with DecodeProgram, after validating it.
func (vm *VM) LoadProgram(prog Program) error {
	vm.Reset()
	vm.prog = nil

	if err := prog.Validate(); err != nil {
		return err
	}
	vm.prog = prog
	if logger.IsDebug(LogModule) {
		log.Debugf("installed %d instructions, hash:%x", len(prog), prog.Hash())
	}
	return nil
}

// Run executes from the current instruction pointer until it passes the last
// instruction. The first failure halts the run and is returned as a
// *RuntimeError with the pointers and tape as they were at that instruction.
func (vm *VM) Run() error {
	var steps uint64
	for vm.pc < len(vm.prog) {
		if err := vm.step(); err != nil {
			log.Debugf("halted after %d steps: %v", steps, err)
			return err
		}
		steps++
	}
	log.Debugf("finished after %d steps", steps)
	return nil
}

func (vm *VM) step() error {
	e := vm.prog[vm.pc]
	if vm.cfg.Trace {
		log.Debugf("pc:%d op:%v dp:%d cell:%d", vm.pc, e.Op, vm.dp, vm.tape[vm.dp])
	}

	switch e.Op {
	case MoveRight:
		if !canMoveRight(vm.dp) {
			return vm.fail(e.Op, ErrMemoryOverflow)
		}
		vm.dp++
	case MoveLeft:
		if !canMoveLeft(vm.dp) {
			return vm.fail(e.Op, ErrMemoryUnderflow)
		}
		vm.dp--
	case Increment:
		vm.tape[vm.dp]++
	case Decrement:
		vm.tape[vm.dp]--
	case Output:
		vm.buf[0] = vm.tape[vm.dp]
		if _, err := vm.out.Write(vm.buf[:]); err != nil {
			return vm.fail(e.Op, fmt.Errorf("output: %w", err))
		}
	case Input:
		if err := vm.read(); err != nil {
			return vm.fail(e.Op, err)
		}
	case LoopBegin:
		if vm.tape[vm.dp] == 0 {
			vm.pc = int(e.Jump)
		}
	case LoopEnd:
		if vm.tape[vm.dp] != 0 {
			vm.pc = int(e.Jump)
		}
	default:
		return vm.fail(e.Op, &ErrInvalidInstruction{op: e.Op})
	}
	// A taken jump lands on the partner bracket and steps past it here.
	vm.pc++
	return nil
}

func (vm *VM) read() error {
	if f, ok := vm.out.(flusher); ok {
		if err := f.Flush(); err != nil {
			return fmt.Errorf("output: %w", err)
		}
	}
	if _, err := io.ReadFull(vm.in, vm.buf[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrInputExhausted
		}
		return fmt.Errorf("input: %w", err)
	}
	vm.tape[vm.dp] = vm.buf[0]
	return nil
}

func (vm *VM) fail(op Instruction, err error) error {
	return &RuntimeError{PC: vm.pc, DP: vm.dp, Op: op, Err: err}
}

// Program returns the loaded program.
func (vm *VM) Program() Program { return vm.prog }

// Tape returns the VM's memory. Writes through it are visible to the program.
func (vm *VM) Tape() *Tape { return &vm.tape }

// PC returns the instruction pointer.
func (vm *VM) PC() int { return vm.pc }

// DataPointer returns the index of the current cell.
func (vm *VM) DataPointer() int { return vm.dp }
