package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/led-robster/process-logger/internal/config"
	"github.com/led-robster/process-logger/internal/highlight"
	"github.com/led-robster/process-logger/internal/logging"
	"github.com/led-robster/process-logger/internal/prefs"
	"github.com/led-robster/process-logger/internal/source"
	"github.com/led-robster/process-logger/internal/ui"
)

// Options configure the process-logger application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/process-logger/prefs.toml
	Overrides  Overrides
}

// Overrides are command-line values that win over the config file. Zero
// values leave the file's setting alone.
type Overrides struct {
	Source   string
	Poll     time.Duration
	Dir      string
	Lines    string
	LogLevel string
}

// Apply folds the overrides into cfg.
func (o Overrides) Apply(cfg *config.Config) error {
	if kind := strings.TrimSpace(o.Source); kind != "" {
		parsed, err := source.ParseKind(kind)
		if err != nil {
			return err
		}
		cfg.Source = parsed
	}
	if o.Poll < 0 {
		return fmt.Errorf("poll interval must be positive, got %s", o.Poll)
	}
	if o.Poll > 0 {
		cfg.PollInterval = o.Poll
	}
	if dir := strings.TrimSpace(o.Dir); dir != "" {
		expanded, err := config.ExpandPath(dir)
		if err != nil {
			return fmt.Errorf("watch dir: %w", err)
		}
		cfg.WatchDir = expanded
	}
	if lines := strings.TrimSpace(o.Lines); lines != "" {
		expanded, err := config.ExpandPath(lines)
		if err != nil {
			return fmt.Errorf("lines path: %w", err)
		}
		cfg.LinesPath = expanded
	}
	if level := strings.ToLower(strings.TrimSpace(o.LogLevel)); level != "" {
		cfg.LogLevel = level
	}
	return nil
}

// Run boots the process-logger TUI until the user quits or the context is
// cancelled, then shuts the producer down.
func Run(ctx context.Context, opts Options) (err error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := opts.Overrides.Apply(&cfg); err != nil {
		return fmt.Errorf("apply flags: %w", err)
	}

	logger, closeLog, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = closeLog() }()

	userPrefs, _ := prefs.Load(opts.PrefsPath)
	base := baseColor(userPrefs.BaseColor, logger)

	src, err := source.Open(cfg.SourceOptions())
	if err != nil {
		return fmt.Errorf("open %s source: %w", cfg.Source, err)
	}

	logger.Info("starting",
		"source", string(cfg.Source),
		"poll_interval", cfg.PollInterval,
		"base_color", base.Hex(),
	)

	p, err := newPipeline(src, base, uint64(time.Now().UnixNano()), logger)
	if err != nil {
		_ = source.Close(src)
		return err
	}
	if err := p.start(ctx); err != nil {
		_ = source.Close(src)
		return err
	}
	defer func() {
		if shutdownErr := p.shutdown(cfg.ShutdownTimeout); shutdownErr != nil && err == nil {
			err = shutdownErr
		}
	}()

	uiOpts := ui.Options{
		Context:   ctx,
		Session:   p.session,
		Queue:     p.queue,
		Producer:  p.producer,
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
		Logger:    logger.With("component", "ui"),
	}
	if err := ui.Run(uiOpts); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// baseColor parses the stored base color, falling back to the default when
// the preference is unreadable.
func baseColor(value string, logger *slog.Logger) colorful.Color {
	c, err := highlight.ParseColor(value)
	if err == nil {
		return c
	}
	logger.Warn("ignoring stored base color", "value", value, "error", err)
	c, _ = highlight.ParseColor(highlight.DefaultBaseColor)
	return c
}
