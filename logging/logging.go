// Package logging configures the structured logger cmd/brex and the
// resolver/compiler diagnostics trail write to, a thin wrapper over
// xlogger so config.CLIConfig's log_level/log_format settings map
// directly onto its Config fields.
package logging

import (
	"fmt"
	"log/slog"

	"github.com/marron-at-work/brex/xlogger"
)

// New builds a slog.Logger from a level name (debug/info/warn/error) and
// a format name (text/json).
func New(level, format string) *slog.Logger {
	return xlogger.New(xlogger.Config{
		Level:   level,
		LogType: format,
	})
}

// LogDiagnostics logs each diagnostic's String() form at error level, one
// record per diagnostic, under the given stage name.
func LogDiagnostics(logger *slog.Logger, stage string, diags []fmt.Stringer) {
	for _, d := range diags {
		logger.Error(d.String(), slog.String("stage", stage))
	}
}
