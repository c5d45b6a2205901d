// Package config holds runtime configuration: defaults, config file and
// environment overrides, CLI flag parsing, and validation. All defaults match
// the legacy optimize-images script for parity.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// --- Enum types for validated string fields ---

// Resampler selects the interpolation used when downscaling.
type Resampler string

const (
	ResampleLanczos3 Resampler = "lanczos3" // Sharpest (default).
	ResampleBicubic  Resampler = "bicubic"
	ResampleBilinear Resampler = "bilinear"
	ResampleNearest  Resampler = "nearest" // Fastest, blocky.
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// LogFormat selects the log encoder.
type LogFormat string

const (
	LogConsole LogFormat = "console" // Human-readable (default).
	LogJSON    LogFormat = "json"
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// then by [LoadFile] (optional), then by [ParseFlags], before being passed
// (by pointer) to packages that need it.
type Config struct {
	// Paths.
	SourceDir    string // Default: "images". Positional arg overrides.
	OutputSubdir string // Default: "optimized". Created inside SourceDir.

	// Resize bounding box.
	MaxWidth  int       // Default: 1200.
	MaxHeight int       // Default: 900.
	Resampler Resampler // Default: "lanczos3".

	// Encoding.
	Quality    int    // Default: 80. Shared by JPEG and WebP.
	AutoOrient bool   // Apply EXIF orientation on decode.
	Background string // Default: "#ffffff". Flattens alpha for JPEG.

	// Behavior flags.
	DryRun      bool
	KeepPartial bool // Keep the JPEG when the WebP write fails.
	CheckOnly   bool // Run --check diagnostics and exit.

	// Display and logging.
	Verbose       bool
	ShowFileStats bool      // Default: true.
	ColorMode     ColorMode // Default: "auto".
	LogLevel      string    // Default: "info".
	LogFormat     LogFormat // Default: "console".
	LogFile       string    // Optional log file path.

	// Ambient.
	ConfigFile  string // Optional viper-readable config file.
	MetricsFile string // Optional Prometheus textfile output.
}

// DefaultConfig returns a Config with all defaults matching the legacy
// script's settings block.
func DefaultConfig() Config {
	return Config{
		SourceDir:     "images",
		OutputSubdir:  "optimized",
		MaxWidth:      1200,
		MaxHeight:     900,
		Resampler:     ResampleLanczos3,
		Quality:       80,
		AutoOrient:    false,
		Background:    "#ffffff",
		DryRun:        false,
		KeepPartial:   false,
		CheckOnly:     false,
		Verbose:       false,
		ShowFileStats: true,
		ColorMode:     ColorAuto,
		LogLevel:      "info",
		LogFormat:     LogConsole,
	}
}

// OutputDir is the directory derived artifacts are written to.
func (c *Config) OutputDir() string {
	return filepath.Join(c.SourceDir, c.OutputSubdir)
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks enum fields and numeric ranges. When not in CheckOnly mode,
// it also requires a non-empty source directory.
func (c *Config) Validate() error {
	switch c.Resampler {
	case ResampleLanczos3, ResampleBicubic, ResampleBilinear, ResampleNearest:
		// valid
	default:
		return errors.New("invalid resampler (use 'lanczos3', 'bicubic', 'bilinear' or 'nearest')")
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	switch c.LogFormat {
	case LogConsole, LogJSON:
		// valid
	default:
		return errors.New("invalid log format (use 'console' or 'json')")
	}

	if c.Quality < 1 || c.Quality > 100 {
		return fmt.Errorf("quality must be between 1 and 100 (got %d)", c.Quality)
	}
	if c.MaxWidth <= 0 || c.MaxHeight <= 0 {
		return fmt.Errorf("bounding box must be positive (got %dx%d)", c.MaxWidth, c.MaxHeight)
	}
	if _, err := ParseHexColor(c.Background); err != nil {
		return err
	}

	sub := c.OutputSubdir
	if sub == "" || sub == "." || sub == ".." || strings.ContainsRune(sub, filepath.Separator) {
		return fmt.Errorf("output subdirectory must be a single directory name (got %q)", sub)
	}

	if c.CheckOnly {
		return nil
	}
	if c.SourceDir == "" {
		return errors.New("need a source directory")
	}
	return nil
}

// ValidatePaths ensures the resolved output directory is a proper child of
// the resolved source directory. Discover only skips the configured
// subdirectory, so any other layout would feed artifacts back into the batch.
// Both arguments must be absolute, symlink-resolved paths.
func (c *Config) ValidatePaths(sourceAbs, outputAbs string) error {
	if outputAbs == sourceAbs {
		return errors.New("output directory must not be the source directory")
	}
	if filepath.Dir(outputAbs) != sourceAbs {
		return fmt.Errorf("output directory %s must be directly inside %s", outputAbs, sourceAbs)
	}
	return nil
}

// RGBA is a parsed background color.
type RGBA struct {
	R, G, B, A uint8
}

// ParseHexColor accepts "#rgb", "#rrggbb" or "#rrggbbaa" (leading '#' optional).
func ParseHexColor(s string) (RGBA, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(raw) == 3 {
		raw = string([]byte{raw[0], raw[0], raw[1], raw[1], raw[2], raw[2]})
	}
	if len(raw) == 6 {
		raw += "ff"
	}
	if len(raw) != 8 {
		return RGBA{}, fmt.Errorf("invalid background color %q (use #rrggbb)", s)
	}
	n, err := strconv.ParseUint(raw, 16, 32)
	if err != nil {
		return RGBA{}, fmt.Errorf("invalid background color %q (use #rrggbb)", s)
	}
	return RGBA{
		R: uint8(n >> 24),
		G: uint8(n >> 16),
		B: uint8(n >> 8),
		A: uint8(n),
	}, nil
}
