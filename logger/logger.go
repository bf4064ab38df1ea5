package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/op/go-logging"
)

var format = logging.MustStringFormatter(
	`%{color}%{time:15:04:05.000} %{module} %{level:.4s}%{color:reset} %{message}`,
)

var backend logging.LeveledBackend

func init() {
	SetOutput(os.Stderr)
}

// NewLogger returns the logger for a module. The module name is printed in
// front of every record, e.g. "[vm]".
func NewLogger(module string) *logging.Logger {
	return logging.MustGetLogger(module)
}

// SetOutput redirects every module logger to w. The default level is kept;
// per-module levels are dropped.
func SetOutput(w io.Writer) {
	level := logging.WARNING
	if backend != nil {
		level = backend.GetLevel("")
	}
	formatted := logging.NewBackendFormatter(logging.NewLogBackend(w, "", 0), format)
	backend = logging.SetBackend(formatted)
	backend.SetLevel(level, "")
}

// SetLevel sets the level for all modules. Accepts the go-logging names
// (critical, error, warning, notice, info, debug), case-insensitive.
func SetLevel(name string) error {
	level, err := logging.LogLevel(name)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	backend.SetLevel(level, "")
	return nil
}

// SetModuleLevel sets the level for one module, overriding SetLevel for it.
func SetModuleLevel(module, name string) error {
	level, err := logging.LogLevel(name)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	backend.SetLevel(level, module)
	return nil
}

// IsDebug reports whether debug records are emitted for module.
func IsDebug(module string) bool {
	return backend.IsEnabledFor(logging.DEBUG, module)
}
