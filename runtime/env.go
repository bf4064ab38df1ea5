package runtime

import (
	"github.com/entropyio/go-bfvm/vm"
)

func NewEnv(cfg *Config) *vm.VM {
	engineConfig := vm.Config{
		Trace: cfg.VMConfig.Trace,
	}
	return vm.New(cfg.Input, cfg.Output, engineConfig)
}
