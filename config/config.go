package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// MemSize is the number of cells on the tape.
const MemSize = 30_000

const (
	NewlineAuto   = "auto"
	NewlineAlways = "always"
	NewlineNever  = "never"
)

var logLevels = []string{"critical", "error", "warning", "notice", "info", "debug"}

// DefaultVMConfig is used when no config file is given.
var DefaultVMConfig = &VMConfig{
	LogLevel:        "warning",
	TrailingNewline: NewlineAuto,
}

// VMConfig holds the settings a bfvm.toml file can carry.
type VMConfig struct {
	LogLevel string `toml:"log-level"`
	Trace    bool   `toml:"trace"` // log every executed instruction at debug level

	// UnbufferedOutput writes every Output instruction straight through
	// instead of flushing at input and at exit.
	UnbufferedOutput bool `toml:"unbuffered-output"`

	// TrailingNewline controls the newline printed after a run: auto prints
	// it only when stdout is a terminal.
	TrailingNewline string `toml:"trailing-newline"`

	// Path is the file the config was read from (set at load time).
	Path string `toml:"-"`
}

// Load parses a TOML config file. Keys missing from the file keep their
// DefaultVMConfig values.
func Load(path string) (*VMConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	cfg := *DefaultVMConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	cfg.Path = path

	if err := cfg.Check(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// Check validates the enumerated settings.
func (c *VMConfig) Check() error {
	if !contains(logLevels, strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("unknown log-level %q (want one of %s)", c.LogLevel, strings.Join(logLevels, ", "))
	}
	switch c.TrailingNewline {
	case NewlineAuto, NewlineAlways, NewlineNever:
	default:
		return fmt.Errorf("unknown trailing-newline %q (want auto, always or never)", c.TrailingNewline)
	}
	return nil
}

// String implements the fmt.Stringer interface.
func (c *VMConfig) String() string {
	var banner string

	source := c.Path
	if source == "" {
		source = "defaults"
	}
	banner += fmt.Sprintf("Config:    %s\n", source)
	banner += fmt.Sprintf("Tape:      %d cells\n", MemSize)
	banner += fmt.Sprintf("Log level: %s\n", c.LogLevel)
	banner += fmt.Sprintf("Trace:     %v\n", c.Trace)
	if c.UnbufferedOutput {
		banner += "Output:    unbuffered\n"
	} else {
		banner += "Output:    buffered (flushed on input and exit)\n"
	}
	banner += fmt.Sprintf("Newline:   %s\n", c.TrailingNewline)
	return banner
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
