package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/dshills/inputbus/internal/input"
	"github.com/dshills/inputbus/internal/logging"
)

// Config holds all inputbus settings.
type Config struct {
	Input  InputConfig  `json:"input" yaml:"input" toml:"input"`
	Log    LogConfig    `json:"log" yaml:"log" toml:"log"`
	Debug  DebugConfig  `json:"debug" yaml:"debug" toml:"debug"`
	Script ScriptConfig `json:"script" yaml:"script" toml:"script"`
}

// InputConfig configures the synthesizer.
type InputConfig struct {
	// TapThresholdMS is the dwell time in milliseconds below which a release
	// counts as a tap.
	TapThresholdMS int `json:"tap_threshold_ms" yaml:"tap_threshold_ms" toml:"tap_threshold_ms"`
}

// TapThreshold returns the threshold as a duration.
func (c InputConfig) TapThreshold() time.Duration {
	return time.Duration(c.TapThresholdMS) * time.Millisecond
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `json:"level" yaml:"level" toml:"level"`
	Format string `json:"format" yaml:"format" toml:"format"`
}

// DebugConfig configures the debug HTTP server. An empty Addr disables it.
type DebugConfig struct {
	Addr        string   `json:"addr" yaml:"addr" toml:"addr"`
	CORSOrigins []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
}

// ScriptConfig configures Lua listener scripts. An empty Path disables them.
type ScriptConfig struct {
	Path string `json:"path" yaml:"path" toml:"path"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Input: InputConfig{TapThresholdMS: int(input.DefaultTapThreshold / time.Millisecond)},
		Log:   LogConfig{Level: "info", Format: string(logging.FormatConsole)},
	}
}

// Load reads the file at path over the defaults, applies environment
// overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, ErrEmptyPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := decode(path, data, &cfg); err != nil {
		return cfg, err
	}

	cfg.ApplyEnv(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// decode unmarshals data into cfg according to the extension of path.
func decode(path string, data []byte, cfg *Config) error {
	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".json":
		err = json.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return &ParseError{Path: path, Err: err}
	}
	return nil
}

// ApplyEnv overrides settings from environment variables looked up with lookup.
// Empty and unparseable values are ignored.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup("INPUTBUS_TAP_THRESHOLD_MS"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			c.Input.TapThresholdMS = n
		}
	}
	if v, ok := lookup("INPUTBUS_LOG_LEVEL"); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup("INPUTBUS_DEBUG_ADDR"); ok && v != "" {
		c.Debug.Addr = v
	}
}

// Validate checks every setting and returns all problems joined.
func (c Config) Validate() error {
	var errs []error
	if c.Input.TapThresholdMS <= 0 {
		errs = append(errs, &ValidationError{Setting: "input.tap_threshold_ms", Message: "must be positive"})
	}
	if c.Log.Level != "" && !logging.ValidLevel(c.Log.Level) {
		errs = append(errs, &ValidationError{Setting: "log.level", Message: fmt.Sprintf("unknown level %q", c.Log.Level)})
	}
	switch logging.Format(c.Log.Format) {
	case "", logging.FormatConsole, logging.FormatJSON:
	default:
		errs = append(errs, &ValidationError{Setting: "log.format", Message: fmt.Sprintf("unknown format %q", c.Log.Format)})
	}
	return errors.Join(errs...)
}

// LoggingConfig converts the log section to a logging.Config.
func (c Config) LoggingConfig() logging.Config {
	cfg := logging.DefaultConfig()
	if c.Log.Level != "" {
		cfg.Level = c.Log.Level
	}
	if c.Log.Format != "" {
		cfg.Format = logging.Format(c.Log.Format)
	}
	return cfg
}
