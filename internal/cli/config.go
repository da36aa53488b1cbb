package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/backoffice/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// envPrefix prefixes environment overrides, e.g. BACKOFFICE_PAGE_SIZE.
	envPrefix = "BACKOFFICE"

	// Config keys.
	cfgKeyPageSize       = "page_size"
	cfgKeyLogLevel       = "log_level"
	cfgKeyLogFormat      = "log_format"
	cfgKeyConfirmDeletes = "confirm_deletes"
	cfgKeySeedDir        = "seed_dir"
	cfgKeyExportDir      = "export_dir"
)

// loadConfig reads config.yaml from configDir using Viper, applies
// BACKOFFICE_* environment overrides and validates the result. A missing
// config.yaml is not an error; defaults apply.
func loadConfig(configDir string) (types.Config, error) {
	def := types.DefaultConfig()

	v := viper.New()
	v.SetDefault(cfgKeyPageSize, def.PageSize)
	v.SetDefault(cfgKeyLogLevel, def.LogLevel)
	v.SetDefault(cfgKeyLogFormat, def.LogFormat)
	v.SetDefault(cfgKeyConfirmDeletes, def.ConfirmDeletes)
	v.SetDefault(cfgKeySeedDir, def.SeedDir)
	v.SetDefault(cfgKeyExportDir, def.ExportDir)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return types.Config{}, systemError(fmt.Errorf("read config: %w", err))
		}
	}

	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("%w: %v", types.ErrInvalidConfig, err)
	}
	cfg.LogLevel = strings.ToUpper(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}

// writeConfigIfMissing creates config.yaml with default values if the file
// does not exist. It reports whether it wrote the file.
func writeConfigIfMissing(configDir string) (bool, error) {
	path := filepath.Join(configDir, configFileExt)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return false, fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(types.DefaultConfig())
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	header := []byte("# Backoffice configuration. Every key can be overridden with BACKOFFICE_<KEY>.\n")
	if err := os.WriteFile(path, append(header, data...), 0o644); err != nil {
		return false, fmt.Errorf("write config: %w", err)
	}
	return true, nil
}

// newLogger returns a slog logger writing text or JSON records to w at the
// configured level.
func newLogger(w io.Writer, cfg types.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == types.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
