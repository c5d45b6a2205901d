package config

// This file loads the optional config file. The format is chosen from the
// extension (yaml, yml, toml, json) by viper. Only keys present in the file
// override the current values, so DefaultConfig holds for everything else.

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoadFile reads path into cfg. Keys mirror the long flag names with dashes
// replaced by underscores; logging keys live under a "log" table.
//
//	source_dir: site/images
//	quality: 75
//	log:
//	  level: debug
//	  format: json
func LoadFile(cfg *Config, path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file %s: %w", path, err)
	}
	return apply(cfg, v)
}

func apply(cfg *Config, v *viper.Viper) error {
	setString(v, "source_dir", &cfg.SourceDir)
	setString(v, "output_subdir", &cfg.OutputSubdir)
	setInt(v, "max_width", &cfg.MaxWidth)
	setInt(v, "max_height", &cfg.MaxHeight)
	setInt(v, "quality", &cfg.Quality)
	setBool(v, "auto_orient", &cfg.AutoOrient)
	setString(v, "background", &cfg.Background)
	setBool(v, "keep_partial", &cfg.KeepPartial)
	setBool(v, "dry_run", &cfg.DryRun)
	setBool(v, "verbose", &cfg.Verbose)
	setBool(v, "show_file_stats", &cfg.ShowFileStats)
	setString(v, "log.level", &cfg.LogLevel)
	setString(v, "log.file", &cfg.LogFile)
	setString(v, "metrics_file", &cfg.MetricsFile)

	if v.IsSet("resampler") {
		r := resamplerValue{&cfg.Resampler}
		if err := r.Set(v.GetString("resampler")); err != nil {
			return err
		}
	}
	if v.IsSet("color") {
		c := colorModeValue{&cfg.ColorMode}
		if err := c.Set(v.GetString("color")); err != nil {
			return err
		}
	}
	if v.IsSet("log.format") {
		cfg.LogFormat = LogFormat(strings.ToLower(v.GetString("log.format")))
	}
	cfg.SourceDir = NormalizeDirArg(cfg.SourceDir)
	return nil
}

func setString(v *viper.Viper, key string, dst *string) {
	if v.IsSet(key) {
		*dst = v.GetString(key)
	}
}

func setInt(v *viper.Viper, key string, dst *int) {
	if v.IsSet(key) {
		*dst = v.GetInt(key)
	}
}

func setBool(v *viper.Viper, key string, dst *bool) {
	if v.IsSet(key) {
		*dst = v.GetBool(key)
	}
}
