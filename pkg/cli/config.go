package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Fepozopo/rscope/pkg/rscope"
)

// DefaultUpdateRepo is the GitHub repository checked by 'rscope update'.
const DefaultUpdateRepo = "Fepozopo/rscope"

// Config holds the settings shared by every command. Values come from the
// environment, optionally seeded from a .env file, and command flags
// override them.
type Config struct {
	SRGB         bool
	DetectEdges  bool
	LogLevel     slog.Level
	Preview      bool
	PreviewDebug bool
	UpdateRepo   string
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		DetectEdges: true,
		LogLevel:    slog.LevelWarn,
		UpdateRepo:  DefaultUpdateRepo,
	}
}

// AnalysisConfig returns the library configuration for an analysis run.
func (c Config) AnalysisConfig() rscope.Config {
	return rscope.Config{SRGB: c.SRGB, DetectEdges: c.DetectEdges}
}

// LoadConfig loads envFile into the process environment when it exists and
// then reads the configuration from the environment. Variables already set
// in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	return configFromEnv(os.Getenv)
}

func configFromEnv(getenv func(string) string) (Config, error) {
	cfg := DefaultConfig()
	var err error

	if cfg.SRGB, err = envBool(getenv, "RSCOPE_SRGB", cfg.SRGB); err != nil {
		return Config{}, err
	}
	if cfg.DetectEdges, err = envBool(getenv, "RSCOPE_DETECT_EDGES", cfg.DetectEdges); err != nil {
		return Config{}, err
	}
	if cfg.Preview, err = envBool(getenv, "RSCOPE_PREVIEW", cfg.Preview); err != nil {
		return Config{}, err
	}
	if cfg.PreviewDebug, err = envBool(getenv, "PREVIEW_DEBUG", cfg.PreviewDebug); err != nil {
		return Config{}, err
	}
	if v := strings.TrimSpace(getenv("RSCOPE_LOG_LEVEL")); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return Config{}, fmt.Errorf("RSCOPE_LOG_LEVEL: %w", err)
		}
	}
	if v := strings.TrimSpace(getenv("RSCOPE_UPDATE_REPO")); v != "" {
		cfg.UpdateRepo = v
	}
	return cfg, nil
}

func envBool(getenv func(string) string, key string, def bool) (bool, error) {
	v := strings.TrimSpace(getenv(key))
	if v == "" {
		return def, nil
	}
	switch strings.ToLower(v) {
	case "yes", "on":
		return true, nil
	case "no", "off":
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def, fmt.Errorf("%s: invalid boolean %q", key, v)
	}
	return b, nil
}

// NewLogger returns a text logger on w at the configured level.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.LogLevel}))
}
