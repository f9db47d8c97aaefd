// Package config loads sar-runner's startup configuration: the initial
// travel speed, the pattern the configuration form starts with, the unit
// distances are printed in, and logging.
//
// The file is optional. Its format is picked by extension (YAML, TOML or
// JSON), a .env file in the working directory is loaded first, and
// SAR_RUNNER_* environment variables override what the file says.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/ensigniasec/sar-runner/internal/pattern"
	"github.com/ensigniasec/sar-runner/internal/units"
	"github.com/ensigniasec/sar-runner/internal/validate"
)

const (
	defaultConfigPath = "~/.config/sar-runner/config.yaml"
	maxConfigSize     = 1024 * 1024 // 1MB is far beyond any sane config

	defaultSpeedValue = 40
	defaultSpeedUnit  = "knots"
	defaultLogLevel   = "info"

	// Sector search the configuration form starts from.
	defaultSweepWidth     = 200
	defaultMultiplier     = 1
	defaultIterations     = 1
	defaultStartDirection = 0
)

// Environment variables that override file values.
const (
	EnvConfig       = "SAR_RUNNER_CONFIG"
	EnvSpeed        = "SAR_RUNNER_SPEED"
	EnvSpeedUnit    = "SAR_RUNNER_SPEED_UNIT"
	EnvDistanceUnit = "SAR_RUNNER_DISTANCE_UNIT"
	EnvLogLevel     = "SAR_RUNNER_LOG_LEVEL"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported config format")
	ErrInvalidConfig     = errors.New("invalid config")
)

// Speed is a magnitude plus unit, as written in the config file.
type Speed struct {
	Value float64 `json:"value" yaml:"value" toml:"value" validate:"gt=0"`
	Unit  string  `json:"unit" yaml:"unit" toml:"unit" validate:"speed_unit"`
}

// Config is the startup configuration. An empty DistanceUnit prints metres,
// switching to kilometres for long distances.
type Config struct {
	Speed        Speed          `json:"speed" yaml:"speed" toml:"speed"`
	Pattern      pattern.Params `json:"pattern" yaml:"pattern" toml:"pattern"`
	DistanceUnit string         `json:"distance_unit,omitempty" yaml:"distance_unit,omitempty" toml:"distance_unit,omitempty" validate:"omitempty,distance_unit"`
	LogLevel     string         `json:"log_level" yaml:"log_level" toml:"log_level" validate:"omitempty,oneof=trace debug info warn warning error"`
	LogFile      string         `json:"log_file,omitempty" yaml:"log_file,omitempty" toml:"log_file,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Speed: Speed{Value: defaultSpeedValue, Unit: defaultSpeedUnit},
		Pattern: pattern.Params{
			Kind:           pattern.Sector,
			SweepWidth:     defaultSweepWidth,
			Multiplier:     defaultMultiplier,
			Iterations:     defaultIterations,
			StartDirection: defaultStartDirection,
		},
		LogLevel: defaultLogLevel,
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return defaultConfigPath
}

// Load reads the config at path. An empty path means $SAR_RUNNER_CONFIG or
// the default location; a missing file at the default location is not an
// error and yields Default with environment overrides applied.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		if env := strings.TrimSpace(os.Getenv(EnvConfig)); env != "" {
			path, explicit = env, true
		} else {
			path = defaultConfigPath
		}
	}
	resolved, err := expandTilde(path)
	if err != nil {
		return Config{}, fmt.Errorf("resolve config path: %w", err)
	}

	cfg := Default()
	data, err := readFile(resolved)
	switch {
	case err == nil:
		logrus.Debug("Loading config file from: ", resolved)
		if err := unmarshal(resolved, data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", resolved, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
		logrus.Debugf("no config at %s; using defaults", resolved)
	default:
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if kind, err := pattern.ParseKind(string(cfg.Pattern.Kind)); err == nil {
		cfg.Pattern.Kind = kind
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the config, including the pattern parameters.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := c.Pattern.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// TravelSpeed converts the configured speed.
func (c Config) TravelSpeed() (units.Speed, error) {
	return units.NewSpeed(c.Speed.Value, c.Speed.Unit)
}

// Level parses LogLevel, falling back to info.
func (c Config) Level() logrus.Level {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

func applyEnv(cfg *Config) error {
	if v := strings.TrimSpace(os.Getenv(EnvSpeed)); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, EnvSpeed, v)
		}
		cfg.Speed.Value = f
	}
	if v := strings.TrimSpace(os.Getenv(EnvSpeedUnit)); v != "" {
		cfg.Speed.Unit = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDistanceUnit)); v != "" {
		cfg.DistanceUnit = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	return nil
}

// readFile reads a file with a size cap.
func readFile(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size() > maxConfigSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxConfigSize)
	}
	return io.ReadAll(io.LimitReader(file, maxConfigSize))
}

// unmarshal decodes data using the path's extension to choose the format.
func unmarshal(path string, data []byte, v any) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, v)
	case ".toml":
		return toml.Unmarshal(data, v)
	case ".json":
		return json.Unmarshal(data, v)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// expandTilde expands the tilde in a path to the user's home directory.
func expandTilde(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, path[1:]), nil
}
