package config

// This file implements CLI flag parsing and help text.
// Precedence: DefaultConfig < config file < IMGOPT_* environment < flags.
// Negated flags (e.g. --no-stats) are applied after Parse so Config defaults hold unless set.

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/facebookgo/flagenv"
)

// EnvPrefix is prepended to upper-cased flag names when reading overrides
// from the environment (e.g. IMGOPT_QUALITY=70, IMGOPT_NO_STATS=true).
const EnvPrefix = "IMGOPT_"

// ErrExit is returned by Parse after --help or --version has been printed.
var ErrExit = errors.New("exit requested")

// ParseFlags parses os.Args into cfg. On --help or --version it prints and exits.
// On error it returns non-nil (e.g. unknown flag, too many positional args).
func ParseFlags(cfg *Config, version string) error {
	err := Parse(cfg, os.Args[1:], version, os.Stdout)
	if errors.Is(err, ErrExit) {
		os.Exit(0)
	}
	return err
}

// Parse applies the config file named by --config (or IMGOPT_CONFIG), then
// environment overrides, then args. Help and version output go to out.
func Parse(cfg *Config, args []string, version string, out io.Writer) error {
	if path := configPathFromArgs(args); path != "" {
		cfg.ConfigFile = path
	} else if path := os.Getenv(EnvPrefix + "CONFIG"); path != "" {
		cfg.ConfigFile = path
	}
	if cfg.ConfigFile != "" {
		if err := LoadFile(cfg, cfg.ConfigFile); err != nil {
			return err
		}
	}

	fs := flag.NewFlagSet("imgopt", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	// Negated/override flags: we capture bools then apply to cfg after Parse,
	// so that defaults from DefaultConfig() hold unless the user passes the flag.
	var negated negatedFlags

	defineResizeFlags(fs, cfg)
	defineEncodingFlags(fs, cfg)
	defineBehaviorFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, &negated)
	defineUtilityFlags(fs, cfg, &negated)

	// Environment first, then args, so a flag given under either of its
	// names always beats IMGOPT_*.
	if err := flagenv.ParseSet(EnvPrefix, envFlagSet(fs)); err != nil {
		return err
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(out, version)
			return ErrExit
		}
		return err
	}

	applyNegatedFlags(cfg, &negated)

	if negated.showHelp {
		printUsage(out, version)
		return ErrExit
	}
	if negated.showVersion {
		fmt.Fprintln(out, "imgopt v"+version)
		return ErrExit
	}

	return parsePositionalArgs(fs, cfg)
}

// envExempt lists flags that are never read from the environment: short
// aliases (their long name is read instead) and the exit-only flags.
var envExempt = map[string]bool{
	"q": true, "o": true, "d": true, "v": true, "c": true, "l": true,
	"V": true, "h": true, "version": true, "help": true, "config": true,
}

// envFlagSet mirrors fs without the exempt names. The flag.Values are
// shared, so setting a flag here writes straight into the Config.
func envFlagSet(fs *flag.FlagSet) *flag.FlagSet {
	env := flag.NewFlagSet("imgopt-env", flag.ContinueOnError)
	env.SetOutput(io.Discard)
	fs.VisitAll(func(f *flag.Flag) {
		if !envExempt[f.Name] {
			env.Var(f.Value, f.Name, f.Usage)
		}
	})
	return env
}

// negatedFlags holds boolean flags that are applied after Parse.
// These either invert a default (e.g. noStats -> ShowFileStats=false) or trigger exit (showHelp, showVersion).
type negatedFlags struct {
	noStats     bool
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// configPathFromArgs finds --config before the full parse so the file can
// seed flag defaults.
func configPathFromArgs(args []string) string {
	for i, a := range args {
		if a == "--" {
			return ""
		}
		name := strings.TrimLeft(a, "-")
		if name == a {
			continue
		}
		if v, ok := strings.CutPrefix(name, "config="); ok {
			return v
		}
		if name == "config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

// defineResizeFlags registers --max-width, --max-height, --resampler.
func defineResizeFlags(fs *flag.FlagSet, cfg *Config) {
	fs.IntVar(&cfg.MaxWidth, "max-width", cfg.MaxWidth, "Bounding box width")
	fs.IntVar(&cfg.MaxHeight, "max-height", cfg.MaxHeight, "Bounding box height")
	fs.Var(&resamplerValue{&cfg.Resampler}, "resampler", "Interpolation: lanczos3 | bicubic | bilinear | nearest")
}

// defineEncodingFlags registers -q/--quality, --auto-orient, --background.
func defineEncodingFlags(fs *flag.FlagSet, cfg *Config) {
	fs.Var(&qualityValue{&cfg.Quality}, "quality", "Encoder quality 1-100 (JPEG and WebP)")
	fs.Var(&qualityValue{&cfg.Quality}, "q", "Same as --quality")
	fs.BoolVar(&cfg.AutoOrient, "auto-orient", cfg.AutoOrient, "Apply EXIF orientation")
	fs.StringVar(&cfg.Background, "background", cfg.Background, "Flatten color for transparent PNGs")
}

// defineBehaviorFlags registers --output, dry-run, keep-partial.
func defineBehaviorFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.OutputSubdir, "output", cfg.OutputSubdir, "Output subdirectory name")
	fs.StringVar(&cfg.OutputSubdir, "o", cfg.OutputSubdir, "Same as --output")
	fs.BoolVar(&cfg.DryRun, "dry-run", cfg.DryRun, "Preview only; do not write files")
	fs.BoolVar(&cfg.DryRun, "d", cfg.DryRun, "Same as --dry-run")
	fs.BoolVar(&cfg.KeepPartial, "keep-partial", cfg.KeepPartial, "Keep the JPEG when the WebP write fails")
}

// defineDisplayFlags registers color, verbose, stats, logging and metrics flags.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&n.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&n.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&n.noStats, "no-stats", false, "Hide the per-file size report")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Same as --verbose")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run codec diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug | info | warn | error")
	fs.Var(&logFormatValue{&cfg.LogFormat}, "log-format", "Log format: console | json")
	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", cfg.LogFile, "Same as --log")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", cfg.MetricsFile, "Write Prometheus metrics to file")
}

// defineUtilityFlags registers --config, --version and --help.
func defineUtilityFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.StringVar(&cfg.ConfigFile, "config", cfg.ConfigFile, "Config file (yaml, toml or json)")
	fs.BoolVar(&n.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&n.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&n.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&n.showHelp, "h", false, "Same as --help")
}

// applyNegatedFlags copies negated and override flag values into cfg.
func applyNegatedFlags(cfg *Config, n *negatedFlags) {
	if n.noStats {
		cfg.ShowFileStats = false
	}
	if n.noColor {
		cfg.ColorMode = ColorNever
	} else if n.forceColor {
		cfg.ColorMode = ColorAlways
	}
	if cfg.Verbose {
		cfg.LogLevel = "debug"
	}
}

// parsePositionalArgs sets SourceDir from the optional positional arg.
func parsePositionalArgs(fs *flag.FlagSet, cfg *Config) error {
	args := fs.Args()
	switch len(args) {
	case 0:
		return nil
	case 1:
		cfg.SourceDir = NormalizeDirArg(args[0])
		return nil
	default:
		return fmt.Errorf("expected at most one source_dir, got %d arguments", len(args))
	}
}

// printUsage writes the help text. Column-aligned for readability.
func printUsage(out io.Writer, version string) {
	const col1 = 28 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "imgopt v" + version + " - web image optimizer (JPEG + WebP)"},
		{"", ""},
		{"  imgopt [OPTIONS] [source_dir]", ""},
		{"", ""},
		{"Resize", ""},
		{"  --max-width <px>", "Bounding box width (default: 1200)"},
		{"  --max-height <px>", "Bounding box height (default: 900)"},
		{"  --resampler <name>", "lanczos3 | bicubic | bilinear | nearest"},
		{"", ""},
		{"Encoding", ""},
		{"  -q, --quality <1-100>", "JPEG and WebP quality (default: 80)"},
		{"  --auto-orient", "Apply EXIF orientation"},
		{"  --background <#hex>", "Flatten color for transparency (default: #ffffff)"},
		{"", ""},
		{"Output & behavior", ""},
		{"  -o, --output <name>", "Output subdirectory (default: optimized)"},
		{"  -d, --dry-run", "Preview only; do not write files"},
		{"  --keep-partial", "Keep the JPEG when the WebP write fails"},
		{"", ""},
		{"Display", ""},
		{"  --no-stats", "Hide the per-file size report"},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"  --log-level <level>", "debug | info | warn | error"},
		{"  --log-format <fmt>", "console | json"},
		{"", ""},
		{"Utility", ""},
		{"  --config <path>", "Config file (yaml, toml or json)"},
		{"  -l, --log <path>", "Append logs to file"},
		{"  --metrics-file <path>", "Write Prometheus metrics on exit"},
		{"  -c, --check", "Codec diagnostics (JPEG, WebP)"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
		{"", ""},
		{"", "Every flag may also be set as " + EnvPrefix + "<FLAG_NAME> in the environment."},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(out)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(out, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(out, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(out, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}

// flag.Value adapters so we can use enum types with flag.Var.

type resamplerValue struct{ p *Resampler }

func (r *resamplerValue) String() string {
	if r.p == nil {
		return ""
	}
	return string(*r.p)
}
func (r *resamplerValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "lanczos3", "lanczos":
		*r.p = ResampleLanczos3
	case "bicubic":
		*r.p = ResampleBicubic
	case "bilinear":
		*r.p = ResampleBilinear
	case "nearest":
		*r.p = ResampleNearest
	default:
		return fmt.Errorf("invalid resampler %q (use 'lanczos3', 'bicubic', 'bilinear' or 'nearest')", s)
	}
	return nil
}

type colorModeValue struct{ p *ColorMode }

func (c *colorModeValue) String() string {
	if c.p == nil {
		return ""
	}
	return string(*c.p)
}
func (c *colorModeValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "auto":
		*c.p = ColorAuto
	case "always":
		*c.p = ColorAlways
	case "never":
		*c.p = ColorNever
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", s)
	}
	return nil
}

type logFormatValue struct{ p *LogFormat }

func (l *logFormatValue) String() string {
	if l.p == nil {
		return ""
	}
	return string(*l.p)
}
func (l *logFormatValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "console":
		*l.p = LogConsole
	case "json":
		*l.p = LogJSON
	default:
		return fmt.Errorf("invalid log format %q (use 'console' or 'json')", s)
	}
	return nil
}

type qualityValue struct{ p *int }

func (q *qualityValue) String() string {
	if q.p == nil {
		return ""
	}
	return strconv.Itoa(*q.p)
}
func (q *qualityValue) Set(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("quality must be a whole number (got %q)", s)
	}
	*q.p = n
	return nil
}
