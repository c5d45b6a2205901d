// Package logging builds the zap logger used across imgopt: a console or
// JSON core on stderr, plus an optional plain (uncolored) file core.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/backmassage/imgopt/internal/config"
	"github.com/backmassage/imgopt/internal/term"
)

const timeLayout = "2006-01-02 15:04:05"

// Logger wraps a *zap.Logger together with the log file it may own.
// Call Close() when done.
type Logger struct {
	*zap.Logger
	closeFile func()
}

// NewLogger configures terminal colors from cfg, parses the level and
// optionally opens cfg.LogFile in append mode.
func NewLogger(cfg *config.Config) (*Logger, error) {
	term.Configure(cfg.ColorMode)

	level, err := ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	enabler := zap.NewAtomicLevelAt(level)

	stderr := zapcore.Lock(os.Stderr)
	cores := []zapcore.Core{
		zapcore.NewCore(newEncoder(cfg.LogFormat, term.LevelEncoder()), stderr, enabler),
	}

	l := &Logger{}
	if cfg.LogFile != "" {
		if dir := filepath.Dir(cfg.LogFile); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
			}
		}
		sink, closeFile, err := zap.Open(cfg.LogFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", cfg.LogFile, err)
		}
		cores = append(cores, zapcore.NewCore(newEncoder(cfg.LogFormat, zapcore.CapitalLevelEncoder), sink, enabler))
		l.closeFile = closeFile
	}

	l.Logger = zap.New(zapcore.NewTee(cores...), zap.ErrorOutput(stderr))
	return l, nil
}

// Close flushes buffered entries and closes the log file if one was opened.
func (l *Logger) Close() error {
	// Sync on a terminal stderr reports EINVAL on Linux; nothing to act on.
	_ = l.Sync()
	if l.closeFile != nil {
		l.closeFile()
		l.closeFile = nil
	}
	return nil
}

// ParseLevel maps a config level name to a zap level.
func ParseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("invalid log level: %s", s)
	}
}

func newEncoder(format config.LogFormat, levelEnc zapcore.LevelEncoder) zapcore.Encoder {
	if format == config.LogJSON {
		ec := zap.NewProductionEncoderConfig()
		ec.EncodeTime = zapcore.ISO8601TimeEncoder
		return zapcore.NewJSONEncoder(ec)
	}
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeLevel = levelEnc
	ec.EncodeTime = zapcore.TimeEncoderOfLayout(timeLayout)
	ec.CallerKey = ""
	ec.StacktraceKey = ""
	return zapcore.NewConsoleEncoder(ec)
}
