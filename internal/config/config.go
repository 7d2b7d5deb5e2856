package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	DefaultNotesDir  = "~/notes"
	DefaultCacheSize = 128

	envPrefix = "TASKNOTE"
)

// Config holds the settings shared by the tasknote binaries
type Config struct {
	Notes  NotesConfig
	Index  IndexConfig
	Log    LogConfig
	Render RenderConfig
	Editor string
}

type NotesConfig struct {
	Dir string
}

type IndexConfig struct {
	Path string // empty means the per-directory default under XDG_DATA_HOME
}

type LogConfig struct {
	Level  string
	Format string
	File   string // TUI only; empty discards
}

type RenderConfig struct {
	CacheSize int
}

// Load reads config.yaml from ./config, the working directory and
// $XDG_CONFIG_HOME/tasknote, then applies TASKNOTE_* environment overrides.
// A missing config file is not an error.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")
	v.AddConfigPath(filepath.Join(configHome(), "tasknote"))

	return load(v)
}

// LoadFile reads an explicit config file plus environment overrides
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Notes: NotesConfig{
			Dir: v.GetString("notes.dir"),
		},
		Index: IndexConfig{
			Path: v.GetString("index.path"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			File:   v.GetString("log.file"),
		},
		Render: RenderConfig{
			CacheSize: v.GetInt("render.cache_size"),
		},
		Editor: v.GetString("editor"),
	}

	if cfg.Notes.Dir == "" {
		cfg.Notes.Dir = DefaultNotesDir
	}
	if cfg.Render.CacheSize < 0 {
		return nil, fmt.Errorf("render.cache_size must be >= 0, got: %d", cfg.Render.CacheSize)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("notes.dir", NotesDir())
	v.SetDefault("index.path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("render.cache_size", DefaultCacheSize)
	v.SetDefault("editor", "")
}

// NotesDir returns the notes directory from the TASKNOTE_DIR env var,
// falling back to DefaultNotesDir.
func NotesDir() string {
	if env := os.Getenv("TASKNOTE_DIR"); env != "" {
		return env
	}
	return DefaultNotesDir
}

// configHome returns $XDG_CONFIG_HOME or ~/.config
func configHome() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}
