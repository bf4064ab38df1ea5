// bfvm runs brainfuck programs.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/entropyio/go-bfvm/config"
	"github.com/entropyio/go-bfvm/logger"
	"github.com/entropyio/go-bfvm/runtime"
	"github.com/entropyio/go-bfvm/vm"
)

// imageExt marks a file holding an encoded program rather than source text.
const imageExt = ".bfc"

var log = logger.NewLogger("[bfvm]")

type options struct {
	configPath string
	verbose    bool
	dump       bool
	output     string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opts options
	fs := flag.NewFlagSet("bfvm", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "TOML config file")
	fs.BoolVar(&opts.verbose, "v", false, "Verbose output (debug logging)")
	fs.BoolVar(&opts.dump, "dump", false, "Print the loaded program with its jump targets instead of running it")
	fs.StringVar(&opts.output, "o", "", "Write the loaded program as a "+imageExt+" image instead of running it")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: bfvm [options] <file>\n\n")
		fmt.Fprintf(stderr, "Loads and runs a brainfuck program. Files ending in %s are program images written with -o.\n\n", imageExt)
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}

	cfg := config.DefaultVMConfig
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			fmt.Fprintf(stderr, "bfvm: %v\n", err)
			return 1
		}
	}
	logger.SetOutput(stderr)
	level := cfg.LogLevel
	if opts.verbose {
		level = "debug"
	}
	if err := logger.SetLevel(level); err != nil {
		fmt.Fprintf(stderr, "bfvm: %v\n", err)
		return 1
	}
	// Trace records are debug records of the vm module.
	vmLevel := level
	if cfg.Trace {
		vmLevel = "debug"
	}
	if err := logger.SetModuleLevel(vm.LogModule, vmLevel); err != nil {
		fmt.Fprintf(stderr, "bfvm: %v\n", err)
		return 1
	}
	log.Debugf("\n%s", cfg)

	prog, err := loadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "bfvm: %v\n", err)
		return 1
	}

	switch {
	case opts.dump:
		dump(stdout, prog)
		return 0
	case opts.output != "":
		if err := writeImage(opts.output, prog); err != nil {
			fmt.Fprintf(stderr, "bfvm: %v\n", err)
			return 1
		}
		return 0
	}

	_, err = runtime.ExecuteProgram(prog, &runtime.Config{
		VMConfig: cfg,
		Input:    stdin,
		Output:   stdout,
	})
	if wantNewline(cfg.TrailingNewline, stdout) {
		fmt.Fprintln(stdout)
	}
	if err != nil {
		fmt.Fprintf(stderr, "bfvm: %s: %v\n", fs.Arg(0), err)
		return 1
	}
	return 0
}

func loadFile(path string) (vm.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), imageExt) {
		return vm.DecodeProgram(data)
	}
	prog, err := runtime.Load(string(data))
	if err != nil {
		var lerr *vm.LoadError
		if errors.As(err, &lerr) {
			line, col := position(data, lerr.Offset)
			return nil, fmt.Errorf("%s:%d:%d: %w", path, line, col, err)
		}
		return nil, err
	}
	return prog, nil
}

// position converts a byte offset into a 1-based line and a 1-based column
// counted in characters.
func position(src []byte, offset int) (line, col int) {
	line = 1
	start := 0
	for i := 0; i < offset && i < len(src); i++ {
		if src[i] == '\n' {
			line++
			start = i + 1
		}
	}
	if offset > len(src) {
		offset = len(src)
	}
	return line, utf8.RuneCount(src[start:offset]) + 1
}

func writeImage(path string, prog vm.Program) error {
	data, err := vm.EncodeProgram(prog)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	log.Infof("wrote %d instructions to %s", prog.Len(), path)
	return nil
}

func dump(w io.Writer, prog vm.Program) {
	fmt.Fprintf(w, "; %d instructions, keccak256 %x\n", prog.Len(), prog.Hash())
	for i, e := range prog {
		if e.Op.IsBracket() {
			fmt.Fprintf(w, "%06d  %v  -> %06d\n", i, e.Op, e.Jump)
		} else {
			fmt.Fprintf(w, "%06d  %v\n", i, e.Op)
		}
	}
}

func wantNewline(mode string, stdout io.Writer) bool {
	switch mode {
	case config.NewlineAlways:
		return true
	case config.NewlineNever:
		return false
	}
	f, ok := stdout.(*os.File)
	return ok && isTerminal(int(f.Fd()))
}
