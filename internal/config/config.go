package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/termconsole/internal/app"
	"github.com/atomicstack/termconsole/internal/menu"
	"github.com/atomicstack/termconsole/internal/surface"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envMode     = "TERMCONSOLE_MODE"
	envMaxLines = "TERMCONSOLE_MAX_LINES"
	envMinWidth = "TERMCONSOLE_MIN_WIDTH"
	envTimeout  = "TERMCONSOLE_TIMEOUT"
	envTitle    = "TERMCONSOLE_TITLE"
	envItems    = "TERMCONSOLE_ITEMS"
	envConfirm  = "TERMCONSOLE_CONFIRM"
	envTrace    = "TERMCONSOLE_TRACE"
	envLogFile  = "TERMCONSOLE_LOG_FILE"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. Arguments left
// after the flags are menu items.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("termconsole", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	mode := fs.String("mode", envOrDefault(env, envMode, surface.ModeEmulated.String()), "alternate context mode: emulated or native")
	maxLines := fs.Int("max-lines", envOrInt(env, envMaxLines, menu.DefaultMaxVisibleLines), "rows available to options and scroll arrows")
	minWidth := fs.Int("min-width", envOrInt(env, envMinWidth, 0), "minimum option row width in cells")
	timeout := fs.Duration("timeout", envOrDuration(env, envTimeout, 0), "give up when nothing is chosen in time (0 waits forever)")
	title := fs.String("title", envOrDefault(env, envTitle, ""), "heading shown above the menu")
	items := fs.String("items", envOrDefault(env, envItems, ""), "file with one item per line (k:text sets hotkey k, a leading ! disables)")
	confirm := fs.Bool("confirm", envOrBool(env, envConfirm, false), "answer every confirmation with yes")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	parsedMode, err := surface.ParseMode(*mode)
	if err != nil {
		return Config{}, err
	}
	if *maxLines < 0 {
		return Config{}, fmt.Errorf("max-lines must be >= 0 (got %d)", *maxLines)
	}
	if *minWidth < 0 {
		return Config{}, fmt.Errorf("min-width must be >= 0 (got %d)", *minWidth)
	}
	if *timeout < 0 {
		return Config{}, fmt.Errorf("timeout must be >= 0 (got %s)", *timeout)
	}

	cfg := Config{
		App: app.Config{
			Mode:        parsedMode,
			MaxLines:    *maxLines,
			MinWidth:    *minWidth,
			Timeout:     *timeout,
			Title:       *title,
			Items:       append([]string(nil), fs.Args()...),
			ItemsFile:   *items,
			AutoConfirm: *confirm,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"mode":     parsedMode.String(),
			"maxLines": strconv.Itoa(*maxLines),
			"minWidth": strconv.Itoa(*minWidth),
			"timeout":  timeout.String(),
			"title":    *title,
			"items":    *items,
			"confirm":  strconv.FormatBool(*confirm),
			"trace":    strconv.FormatBool(*trace),
			"logFile":  *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			continue
		}
		values[key] = value
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures there is something to pick from.
func Validate(cfg Config) error {
	if len(cfg.App.Items) == 0 && cfg.App.ItemsFile == "" {
		return errors.New("no items given: pass them as arguments or with --items")
	}
	return nil
}
