package vm

import (
	"github.com/entropyio/go-bfvm/config"
)

// Tape is the machine's memory: config.MemSize cells, all zero at reset.
type Tape [config.MemSize]byte

func maxDataPointer() int {
	return config.MemSize - 1
}

func canMoveRight(dp int) bool {
	return dp < maxDataPointer()
}
func canMoveLeft(dp int) bool {
	return dp > 0
}
