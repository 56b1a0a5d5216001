// Package config provides configuration management for Atomix.
package config

import (
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/algointent/atomix/internal/fileutil"
	atomixerr "github.com/algointent/atomix/pkg/errors"
)

// Config represents the application configuration.
type Config struct {
	Version   int             `yaml:"version" validate:"gte=1"`
	Home      string          `yaml:"home" validate:"required"`
	Node      NodeConfig      `yaml:"node"`
	Amounts   AmountsConfig   `yaml:"amounts"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Wallet    WalletConfig    `yaml:"wallet"`
	Output    OutputConfig    `yaml:"output"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// NodeConfig defines ledger node connection settings.
type NodeConfig struct {
	URL   string `yaml:"url" validate:"required,url"`
	Token string `yaml:"token"`
	// WaitRounds bounds how many rounds a confirmation wait may span.
	WaitRounds uint64 `yaml:"wait_rounds" validate:"gte=1,lte=1000"`
}

// AmountsConfig defines decimal-amount handling settings.
type AmountsConfig struct {
	// FallbackAssetDecimals is used when an asset's precision cannot be
	// fetched from the node. Every use of the fallback is logged.
	FallbackAssetDecimals int `yaml:"fallback_asset_decimals" validate:"gte=0,lte=19"`
}

// RateLimitConfig bounds outbound node calls.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" validate:"gt=0"`
	Burst             int     `yaml:"burst" validate:"gte=1"`
}

// WalletConfig defines local signing key settings.
type WalletConfig struct {
	// KeyFile is the age-encrypted key file path.
	KeyFile string `yaml:"key_file"`
}

// OutputConfig defines output formatting settings.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" validate:"oneof=auto text json"`
	Color         string `yaml:"color" validate:"oneof=auto always never"`
	Verbose       bool   `yaml:"verbose"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level string `yaml:"level" validate:"oneof=off none error info debug"`
	File  string `yaml:"file"`
}

// validate is shared across Load calls; validator instances cache struct
// metadata and are safe for concurrent use.
var validate = validator.New()

// Load reads configuration from the specified file, layered over defaults.
func Load(path string) (*Config, error) {
	// #nosec G304 -- config file path is from validated user input
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, atomixerr.WithDetails(atomixerr.ErrConfigNotFound,
				map[string]string{"path": path})
		}
		return nil, err
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, atomixerr.Wrap(atomixerr.ErrConfigInvalid, "parsing %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks structural constraints on the configuration.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		details := map[string]string{}
		if atomixerr.As(err, &verrs) {
			for _, fe := range verrs {
				details[fe.Namespace()] = fe.Tag()
			}
		}
		return atomixerr.WithDetails(atomixerr.ErrConfigInvalid, details)
	}
	return nil
}

// Save writes configuration to the specified file.
func Save(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return fileutil.WriteAtomic(path, data, 0o600)
}

// Path returns the default config file path.
func Path(home string) string {
	return filepath.Join(home, "config.yaml")
}

// GetHome returns the atomix home directory path.
func (c *Config) GetHome() string {
	return c.Home
}

// GetNodeURL returns the ledger node URL.
func (c *Config) GetNodeURL() string {
	return c.Node.URL
}

// GetNodeToken returns the ledger node API token.
func (c *Config) GetNodeToken() string {
	return c.Node.Token
}

// GetWaitRounds returns the confirmation wait budget in rounds.
func (c *Config) GetWaitRounds() uint64 {
	return c.Node.WaitRounds
}

// GetFallbackAssetDecimals returns the asset decimal fallback.
func (c *Config) GetFallbackAssetDecimals() int {
	return c.Amounts.FallbackAssetDecimals
}

// GetLoggingLevel returns the configured logging level.
func (c *Config) GetLoggingLevel() string {
	return c.Logging.Level
}

// GetLoggingFile returns the configured log file path.
func (c *Config) GetLoggingFile() string {
	return c.Logging.File
}

// GetOutputFormat returns the default output format.
func (c *Config) GetOutputFormat() string {
	return c.Output.DefaultFormat
}

// IsVerbose returns true if verbose output is enabled.
func (c *Config) IsVerbose() bool {
	return c.Output.Verbose
}

// DefaultHome returns the default atomix home directory.
func DefaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".atomix"
	}
	return filepath.Join(home, ".atomix")
}
