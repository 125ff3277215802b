package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/hcmd/foundation/core/error"
	mdwlog "github.com/msto63/hcmd/foundation/core/log"
)

// Limits for console settings
const (
	MaxAliasContextsLimit = 1000000
	MaxHistorySize        = 10000
)

// Config holds the complete application configuration
type Config struct {
	General GeneralConfig `toml:"general" yaml:"general"`
	Console ConsoleConfig `toml:"console" yaml:"console"`
	Remote  RemoteConfig  `toml:"remote" yaml:"remote"`

	source string // file the config was loaded from
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name      string `toml:"name" yaml:"name"`
	LogLevel  string `toml:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format"`
	LogFile   string `toml:"log_file" yaml:"log_file"`
}

// ConsoleConfig holds interpreter and interactive console settings
type ConsoleConfig struct {
	Prompt           string            `toml:"prompt" yaml:"prompt"`
	MaxAliasContexts int               `toml:"max_alias_contexts" yaml:"max_alias_contexts"`
	Suggest          bool              `toml:"suggest" yaml:"suggest"`
	Color            bool              `toml:"color" yaml:"color"`
	HistorySize      int               `toml:"history_size" yaml:"history_size"`
	Autoexec         []string          `toml:"autoexec" yaml:"autoexec"`
	Aliases          map[string]string `toml:"aliases" yaml:"aliases"`
}

// RemoteConfig holds the websocket console server settings
type RemoteConfig struct {
	Host           string   `toml:"host" yaml:"host"`
	Port           int      `toml:"port" yaml:"port"`
	Path           string   `toml:"path" yaml:"path"`
	ReadTimeout    Duration `toml:"read_timeout" yaml:"read_timeout"`
	WriteTimeout   Duration `toml:"write_timeout" yaml:"write_timeout"`
	MaxMessageSize int64    `toml:"max_message_size" yaml:"max_message_size"`
}

// Duration wraps time.Duration for text based config formats
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML parses a duration scalar
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	return d.UnmarshalText([]byte(node.Value))
}

// Default returns a configuration with every default applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	// General
	if c.General.Name == "" {
		c.General.Name = "hcmd"
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "warn"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "text"
	}

	// Console
	if c.Console.Prompt == "" {
		c.Console.Prompt = "> "
	}
	if c.Console.MaxAliasContexts == 0 {
		c.Console.MaxAliasContexts = 50000
	}
	if c.Console.HistorySize == 0 {
		c.Console.HistorySize = 100
	}
	if c.Console.Aliases == nil {
		c.Console.Aliases = make(map[string]string)
	}

	// Remote
	if c.Remote.Host == "" {
		c.Remote.Host = "127.0.0.1"
	}
	if c.Remote.Port == 0 {
		c.Remote.Port = 9400
	}
	if c.Remote.Path == "" {
		c.Remote.Path = "/console"
	}
	if c.Remote.ReadTimeout.Duration == 0 {
		c.Remote.ReadTimeout.Duration = 5 * time.Minute
	}
	if c.Remote.WriteTimeout.Duration == 0 {
		c.Remote.WriteTimeout.Duration = 10 * time.Second
	}
	if c.Remote.MaxMessageSize == 0 {
		c.Remote.MaxMessageSize = 64 * 1024
	}
}

// Validate checks value ranges and enumerations
func (c *Config) Validate() error {
	if _, err := mdwlog.ParseLevel(c.General.LogLevel); err != nil {
		return invalid("general.log_level", c.General.LogLevel, err.Error())
	}
	if _, err := mdwlog.ParseFormat(c.General.LogFormat); err != nil {
		return invalid("general.log_format", c.General.LogFormat, err.Error())
	}
	if c.Console.MaxAliasContexts < 1 || c.Console.MaxAliasContexts > MaxAliasContextsLimit {
		return invalid("console.max_alias_contexts", c.Console.MaxAliasContexts,
			fmt.Sprintf("must be within [1, %d]", MaxAliasContextsLimit))
	}
	if c.Console.HistorySize < 0 || c.Console.HistorySize > MaxHistorySize {
		return invalid("console.history_size", c.Console.HistorySize,
			fmt.Sprintf("must be within [0, %d]", MaxHistorySize))
	}
	if c.Remote.Port < 1 || c.Remote.Port > 65535 {
		return invalid("remote.port", c.Remote.Port, "must be within [1, 65535]")
	}
	if !strings.HasPrefix(c.Remote.Path, "/") {
		return invalid("remote.path", c.Remote.Path, "must start with /")
	}
	if c.Remote.MaxMessageSize < 0 {
		return invalid("remote.max_message_size", c.Remote.MaxMessageSize, "must not be negative")
	}
	return nil
}

func invalid(key string, value interface{}, reason string) error {
	return mdwerror.Newf("invalid %s: %s", key, reason).
		WithCode(mdwerror.CodeInvalidConfig).
		WithOperation("config.Validate").
		WithDetails(map[string]interface{}{"key": key, "value": value})
}

// Load reads configuration from a TOML or YAML file, chosen by extension,
// applies defaults and validates the result
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, mdwerror.Newf("config file not found: %s", path).
				WithCode(mdwerror.CodeNotFound).
				WithOperation("config.Load")
		}
		return nil, mdwerror.Wrap(err, "failed to read config").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("config.Load")
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return nil, mdwerror.Newf("unsupported config format %q", ext).
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("config.Load").
			WithDetail("path", path)
	}
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to parse config").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("config.Load").
			WithDetail("path", path)
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()
	cfg.source = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromEnv loads configuration from HCMD_CONFIG or the first default
// location that exists
func LoadFromEnv() (*Config, error) {
	path := os.Getenv("HCMD_CONFIG")
	if path == "" {
		for _, p := range DefaultPaths() {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return nil, mdwerror.New("no config file found, set HCMD_CONFIG or create hcmd.toml").
			WithCode(mdwerror.CodeNotFound).
			WithOperation("config.LoadFromEnv")
	}

	return Load(path)
}

// DefaultPaths lists the locations searched by LoadFromEnv
func DefaultPaths() []string {
	return []string{
		"./hcmd.toml",
		"./hcmd.yaml",
		"./configs/hcmd.toml",
		filepath.Join(os.Getenv("HOME"), ".config/hcmd/config.toml"),
	}
}

func (c *Config) expandEnvVars() {
	// alias bodies are left alone: $name there refers to console variables
	c.General.LogFile = os.ExpandEnv(c.General.LogFile)
}

// Source returns the file the configuration was loaded from, empty for
// defaults
func (c *Config) Source() string {
	return c.source
}

// Address returns the listen address of the remote console
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Remote.Host, c.Remote.Port)
}
