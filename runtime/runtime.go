package runtime

import (
	"bufio"
	"io"
	"os"

	"github.com/entropyio/go-bfvm/config"
	"github.com/entropyio/go-bfvm/logger"
	"github.com/entropyio/go-bfvm/vm"
)

var log = logger.NewLogger("[runtime]")

// Config is a basic type specifying certain configuration flags for running
// a program.
type Config struct {
	VMConfig *config.VMConfig
	Input    io.Reader // bytes for Input instructions
	Output   io.Writer // sink for Output instructions
}

// sets defaults on the config
func setDefaults(cfg *Config) {
	if cfg.VMConfig == nil {
		cfg.VMConfig = config.DefaultVMConfig
	}
	if cfg.Input == nil {
		cfg.Input = os.Stdin
	}
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
}

// Load lexes and bracket-checks src without running it.
func Load(src string) (vm.Program, error) {
	return vm.Load(src)
}

// Execute loads src into a fresh VM and runs it to completion. It returns
// the VM, whose tape and pointers show where the run stopped, and the first
// load or runtime error.
//
// Unless cfg.VMConfig.UnbufferedOutput is set, output is buffered and flushed
// before every Input instruction and when Execute returns.
func Execute(src string, cfg *Config) (*vm.VM, error) {
	if cfg == nil {
		cfg = new(Config)
	}
	setDefaults(cfg)

	log.Debugf("execute source:%d bytes", len(src))
	return run(cfg, func(machine *vm.VM) error {
		return machine.Load(src)
	})
}

// ExecuteProgram runs an already loaded program, for example one decoded
// from an image, the same way Execute runs source text.
func ExecuteProgram(prog vm.Program, cfg *Config) (*vm.VM, error) {
	if cfg == nil {
		cfg = new(Config)
	}
	setDefaults(cfg)

	log.Debugf("execute program:%d instructions", prog.Len())
	return run(cfg, func(machine *vm.VM) error {
		return machine.LoadProgram(prog)
	})
}

func run(cfg *Config, load func(*vm.VM) error) (machine *vm.VM, err error) {
	env := *cfg
	if !cfg.VMConfig.UnbufferedOutput {
		w := bufio.NewWriter(cfg.Output)
		env.Output = w
		defer func() {
			if ferr := w.Flush(); ferr != nil && err == nil {
				err = ferr
			}
		}()
	}

	machine = NewEnv(&env)
	if err = load(machine); err != nil {
		return machine, err
	}
	err = machine.Run()
	return machine, err
}
