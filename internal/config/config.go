package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/led-robster/process-logger/internal/source"
)

// Config holds the runtime settings for process-logger.
type Config struct {
	Source          source.Kind
	PollInterval    time.Duration
	WatchDir        string
	LinesPath       string
	LogFile         string
	LogLevel        string
	ShutdownTimeout time.Duration
}

const (
	defaultConfigPath      = "~/.config/process-logger/config.toml"
	defaultLogFile         = "~/.local/state/process-logger/process-logger.log"
	defaultLogLevel        = "info"
	defaultPollInterval    = 500 * time.Millisecond
	defaultShutdownTimeout = 3 * time.Second
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Source:          source.KindProcess,
		PollInterval:    defaultPollInterval,
		LogFile:         mustExpand(defaultLogFile),
		LogLevel:        defaultLogLevel,
		ShutdownTimeout: defaultShutdownTimeout,
	}
}

// Load locates and parses the config file, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Source          string   `toml:"source"`
		PollInterval    Duration `toml:"poll_interval"`
		WatchDir        string   `toml:"watch_dir"`
		LinesPath       string   `toml:"lines_path"`
		LogFile         string   `toml:"log_file"`
		LogLevel        string   `toml:"log_level"`
		ShutdownTimeout Duration `toml:"shutdown_timeout"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if kind := strings.TrimSpace(raw.Source); kind != "" {
		parsed, err := source.ParseKind(kind)
		if err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
		cfg.Source = parsed
	}
	if raw.PollInterval.Duration > 0 {
		cfg.PollInterval = raw.PollInterval.Duration
	}
	if raw.ShutdownTimeout.Duration > 0 {
		cfg.ShutdownTimeout = raw.ShutdownTimeout.Duration
	}
	if dir := strings.TrimSpace(raw.WatchDir); dir != "" {
		cfg.WatchDir = mustExpand(dir)
	}
	if lines := strings.TrimSpace(raw.LinesPath); lines != "" {
		cfg.LinesPath = mustExpand(lines)
	}
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}
	if level := strings.ToLower(strings.TrimSpace(raw.LogLevel)); level != "" {
		cfg.LogLevel = level
	}

	return cfg, nil
}

// SourceOptions converts the config into options for source.Open.
func (c Config) SourceOptions() source.Options {
	return source.Options{
		Kind:         c.Source,
		PollInterval: c.PollInterval,
		Dir:          c.WatchDir,
		LinesPath:    c.LinesPath,
	}
}

// ExpandPath resolves ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
