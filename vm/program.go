package vm

import (
	"fmt"
	"math"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/sha3"
)

// Entry is one loaded instruction. Jump holds the index of the partner
// bracket for LoopBegin and LoopEnd and is zero otherwise.
type Entry struct {
	_    struct{} `cbor:",toarray"`
	Op   Instruction
	Jump uint32
}

// Program is a loaded, bracket-resolved instruction sequence. It is not
// modified after loading.
type Program []Entry

// MaxImageLen is the largest program an image can hold. It is the most
// array elements the CBOR decoder accepts.
const MaxImageLen = math.MaxInt32

var (
	cborEncMode cbor.EncMode
	cborDecMode cbor.DecMode
)

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("vm: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em

	dm, err := cbor.DecOptions{MaxArrayElements: MaxImageLen}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("vm: failed to create CBOR dec mode: %v", err))
	}
	cborDecMode = dm
}

// EncodeProgram serializes a program image to canonical CBOR.
func EncodeProgram(p Program) ([]byte, error) {
	if len(p) > MaxImageLen {
		return nil, fmt.Errorf("vm: program of %d instructions exceeds image limit %d", len(p), MaxImageLen)
	}
	return cborEncMode.Marshal(p)
}

// DecodeProgram deserializes and validates a program image.
func DecodeProgram(data []byte) (Program, error) {
	var p Program
	if err := cborDecMode.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("vm: unmarshal program: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("vm: invalid program image: %w", err)
	}
	return p, nil
}

func (p Program) Len() int { return len(p) }

// String returns the program as source text, without the dropped characters.
func (p Program) String() string {
	var b strings.Builder
	b.Grow(len(p))
	for _, e := range p {
		b.WriteString(e.Op.String())
	}
	return b.String()
}

// Hash returns the Keccak-256 of the program's instructions and jump targets.
func (p Program) Hash() [32]byte {
	w := sha3.NewLegacyKeccak256()
	for _, e := range p {
		w.Write([]byte{byte(e.Op), byte(e.Jump >> 24), byte(e.Jump >> 16), byte(e.Jump >> 8), byte(e.Jump)})
	}
	var h [32]byte
	w.Sum(h[:0])
	return h
}

// Validate checks that every entry is executable and that brackets pair up
// symmetrically.
func (p Program) Validate() error {
	for i, e := range p {
		if !e.Op.valid() {
			return fmt.Errorf("entry %d: %w", i, &ErrInvalidInstruction{op: e.Op})
		}
		if !e.Op.IsBracket() {
			if e.Jump != 0 {
				return fmt.Errorf("entry %d: %v carries jump target %d", i, e.Op, e.Jump)
			}
			continue
		}
		j := int(e.Jump)
		if j >= len(p) {
			return fmt.Errorf("entry %d: jump target %d out of range", i, j)
		}
		want := LoopEnd
		if e.Op == LoopEnd {
			want = LoopBegin
		}
		if p[j].Op != want || int(p[j].Jump) != i {
			return fmt.Errorf("entry %d: %v -> %d is not paired", i, e.Op, j)
		}
		if (e.Op == LoopBegin) != (j > i) {
			return fmt.Errorf("entry %d: %v -> %d points the wrong way", i, e.Op, j)
		}
	}
	return nil
}
