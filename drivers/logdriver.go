package drivers

import (
	"log"

	"github.com/retrohost/retrohost/abi"
)

// StdLogDriver forwards core log messages to the standard library logger,
// matching the plain log.Printf style used throughout the rest of this
// codebase rather than introducing a structured logging dependency.
type StdLogDriver struct {
	Logger *log.Logger
}

func NewStdLogDriver(logger *log.Logger) *StdLogDriver {
	if logger == nil {
		logger = log.Default()
	}
	return &StdLogDriver{Logger: logger}
}

func (d *StdLogDriver) Log(level int, msg string) {
	d.Logger.Printf("[%s] %s", levelPrefix(level), msg)
}

func levelPrefix(level int) string {
	switch level {
	case abi.LogDebug:
		return "DEBUG"
	case abi.LogInfo:
		return "INFO"
	case abi.LogWarn:
		return "WARN"
	case abi.LogError:
		return "ERROR"
	default:
		return "INFO"
	}
}
