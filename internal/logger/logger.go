// Package logger configures the process-wide slog default.
//
// Launchmat logs diagnostics only: read-path degrades in the store, skipped
// roots and unparseable bundles during discovery. All of it goes to stderr so
// JSON command output on stdout stays machine-readable.
package logger

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// Setup installs a tint handler as the slog default.
// LAUNCHMAT_DEBUG=1 lowers the level to debug.
func Setup() {
	level := slog.LevelWarn
	if os.Getenv("LAUNCHMAT_DEBUG") == "1" {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
	})))
}
