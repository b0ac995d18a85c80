package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/echoline/echoline/internal/app"
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
	envWidth          = "ECHOLINE_WIDTH"
	envHeight         = "ECHOLINE_HEIGHT"
	envRightFormat    = "ECHOLINE_RIGHT_FORMAT"
	envRightPadding   = "ECHOLINE_RIGHT_PADDING"
	envTruncate       = "ECHOLINE_TRUNCATE"
	envUpdateInterval = "ECHOLINE_UPDATE_INTERVAL"
	envEnhanceVisual  = "ECHOLINE_ENHANCE_VISUAL"
	envThinLine       = "ECHOLINE_THIN_LINE"
	envTrace          = "ECHOLINE_TRACE"
	envLogFile        = "ECHOLINE_LOG_FILE"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("echoline", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	rightFormat := fs.String("right-format", envOrDefault(env, envRightFormat, ""), "comma-separated status segment descriptors for the right zone")
	rightPadding := fs.Int("right-padding", envOrInt(env, envRightPadding, 0), "trailing columns reserved after the status summary")
	truncateLine := fs.Bool("truncate", envOrBool(env, envTruncate, false), "truncate overflowing lines instead of wrapping")
	updateInterval := fs.Duration("update-interval", envOrDuration(env, envUpdateInterval, 100*time.Millisecond), "minimum time between interval-gated redraws")
	enhanceVisual := fs.Bool("enhance-visual", envOrBool(env, envEnhanceVisual, false), "dim the sticky message while it is only being held")
	thinLine := fs.Bool("thin-line", envOrBool(env, envThinLine, false), "draw a rule above the display region")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}
	if *rightPadding < 0 {
		return Config{}, fmt.Errorf("right-padding must be >= 0 (got %d)", *rightPadding)
	}
	if *updateInterval <= 0 {
		return Config{}, fmt.Errorf("update-interval must be positive (got %v)", *updateInterval)
	}

	cfg := Config{
		App: app.Config{
			Width:          *width,
			Height:         *height,
			RightFormat:    *rightFormat,
			RightPadding:   *rightPadding,
			Truncate:       *truncateLine,
			UpdateInterval: *updateInterval,
			EnhanceVisual:  *enhanceVisual,
			ThinLine:       *thinLine,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"width":          strconv.Itoa(*width),
			"height":         strconv.Itoa(*height),
			"rightFormat":    *rightFormat,
			"rightPadding":   strconv.Itoa(*rightPadding),
			"truncate":       strconv.FormatBool(*truncateLine),
			"updateInterval": updateInterval.String(),
			"enhanceVisual":  strconv.FormatBool(*enhanceVisual),
			"thinLine":       strconv.FormatBool(*thinLine),
			"trace":          strconv.FormatBool(*trace),
			"logFile":        *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
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
