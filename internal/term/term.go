// Package term provides ANSI color state and terminal detection.
//
// [Configure] sets the state once during startup. The logging package reads
// it to pick a colored or plain zap level encoder, and display uses the raw
// escape codes for the banner and the summary block.
package term

import (
	"os"
	"strings"

	"go.uber.org/zap/zapcore"

	"github.com/backmassage/imgopt/internal/config"
)

// ANSI color codes for stdout. Empty when colors are disabled.
var (
	Green   = ""
	Yellow  = ""
	Magenta = ""
	NC      = "" // Reset sequence.
)

// logColor is resolved separately because logs go to stderr, which may be
// redirected while stdout is still a terminal.
var logColor bool

// Configure resolves the color mode for stdout (report and banner) and
// stderr (logs) and sets the package-level state.
func Configure(mode config.ColorMode) {
	if resolve(mode, os.Stdout) {
		Green = "\033[1;92m"
		Yellow = "\033[1;93m"
		Magenta = "\033[1;95m"
		NC = "\033[0m"
	} else {
		Green, Yellow, Magenta, NC = "", "", "", ""
	}
	logColor = resolve(mode, os.Stderr)
}

// Enabled reports whether ANSI colors are active on stdout.
func Enabled() bool { return NC != "" }

// LogEnabled reports whether ANSI colors are active on stderr.
func LogEnabled() bool { return logColor }

// LevelEncoder returns the zap level encoder for the stderr sink.
func LevelEncoder() zapcore.LevelEncoder {
	if LogEnabled() {
		return zapcore.CapitalColorLevelEncoder
	}
	return zapcore.CapitalLevelEncoder
}

// Paint wraps s in color when colors are enabled.
func Paint(color, s string) string {
	if !Enabled() || color == "" {
		return s
	}
	return color + s + NC
}

// resolve determines whether colors should be enabled on f based on the
// configured mode, TTY detection and the NO_COLOR env var (https://no-color.org).
func resolve(mode config.ColorMode, f *os.File) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default: // ColorAuto
		return IsTerminal(f) &&
			os.Getenv("NO_COLOR") == "" &&
			strings.ToLower(os.Getenv("TERM")) != "dumb"
	}
}

// IsTerminal reports whether f is attached to a TTY (character device).
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
