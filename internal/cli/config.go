package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/algointent/atomix/internal/config"
	"github.com/algointent/atomix/internal/output"
	atomixerr "github.com/algointent/atomix/pkg/errors"
)

// configCmd is the parent command for configuration operations.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `View and modify Atomix configuration settings.`,
}

// configInitCmd initializes the configuration.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long: `Create a default configuration file at ~/.atomix/config.yaml.

If a configuration file already exists, this command will not overwrite it
unless --force is specified.

Example:
  atomix config init
  atomix config init --force`,
	RunE: runConfigInit,
}

// configShowCmd shows the current configuration.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long: `Display the current configuration settings.

Example:
  atomix config show
  atomix config show -o json`,
	RunE: runConfigShow,
}

// configGetCmd gets a specific configuration value.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configGetCmd = &cobra.Command{
	Use:   "get <path>",
	Short: "Get a configuration value",
	Long: `Get a specific configuration value by its path.

The path uses dot notation to navigate the configuration tree.

Examples:
  atomix config get node.url
  atomix config get node.wait_rounds
  atomix config get logging.level`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

// configSetCmd sets a configuration value.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configSetCmd = &cobra.Command{
	Use:   "set <path> <value>",
	Short: "Set a configuration value",
	Long: `Set a specific configuration value by its path.

The path uses dot notation to navigate the configuration tree.
The configuration file will be updated immediately.

Examples:
  atomix config set node.url https://mainnet-api.algonode.cloud
  atomix config set node.wait_rounds 8
  atomix config set logging.level debug`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var configForce bool

func runConfigInit(cmd *cobra.Command, _ []string) error {
	configPath := config.Path(cfg.Home)

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil && !configForce {
		return atomixerr.WithSuggestion(
			atomixerr.ErrGeneral,
			fmt.Sprintf("configuration already exists at %s. Use --force to overwrite.", configPath),
		)
	}

	// Ensure directory exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	// Create default config
	defaultCfg := config.Defaults()
	defaultCfg.Home = cfg.Home

	// Write config file
	if err := config.Save(defaultCfg, configPath); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	w := cmd.OutOrStdout()
	out(w, "Configuration initialized at %s\n", configPath)
	outln(w)
	outln(w, "Edit this file to configure:")
	outln(w, "  - node.url: Your node endpoint")
	outln(w, "  - node.token: API token, if the node requires one")
	outln(w, "  - node.wait_rounds: Rounds to wait for confirmation")
	outln(w, "  - output.default_format: Output format (text/json)")
	outln(w, "  - logging.level: Log level (off/error/info/debug)")

	return nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if formatter.IsJSON() {
		return formatter.Print(cfg)
	}

	w := cmd.OutOrStdout()
	out(w, "home: %s\n", cfg.Home)
	out(w, "node.url: %s\n", cfg.Node.URL)
	out(w, "node.token: %s\n", maskToken(cfg.Node.Token))
	out(w, "node.wait_rounds: %d\n", cfg.Node.WaitRounds)
	out(w, "amounts.fallback_asset_decimals: %d\n", cfg.Amounts.FallbackAssetDecimals)
	out(w, "rate_limit.requests_per_second: %g\n", cfg.RateLimit.RequestsPerSecond)
	out(w, "rate_limit.burst: %d\n", cfg.RateLimit.Burst)
	out(w, "wallet.key_file: %s\n", cfg.Wallet.KeyFile)
	out(w, "output.default_format: %s\n", cfg.Output.DefaultFormat)
	out(w, "output.verbose: %t\n", cfg.Output.Verbose)
	out(w, "logging.level: %s\n", cfg.Logging.Level)
	out(w, "logging.file: %s\n", cfg.Logging.File)
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	path := args[0]

	value, err := getConfigValue(cfg, path)
	if err != nil {
		return err
	}

	outln(cmd.OutOrStdout(), value)
	return nil
}

func runConfigSet(_ *cobra.Command, args []string) error {
	path := args[0]
	value := args[1]

	// Validate the path exists
	if _, err := getConfigValue(cfg, path); err != nil {
		return err
	}

	// Load current config from file
	configPath := config.Path(cfg.Home)
	currentCfg, err := config.Load(configPath)
	if err != nil {
		// If file doesn't exist, start with defaults
		currentCfg = config.Defaults()
		currentCfg.Home = cfg.Home
	}

	if err := setConfigValue(currentCfg, path, value); err != nil {
		return err
	}
	if err := currentCfg.Validate(); err != nil {
		return err
	}

	if err := config.Save(currentCfg, configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	output.Successf("Set %s = %s", path, value)
	return nil
}

// getConfigValue retrieves a value from the config using dot notation.
func getConfigValue(c *config.Config, path string) (string, error) {
	switch path {
	case "home":
		return c.Home, nil
	case "node.url":
		return c.Node.URL, nil
	case "node.token":
		return c.Node.Token, nil
	case "node.wait_rounds":
		return fmt.Sprintf("%d", c.Node.WaitRounds), nil
	case "amounts.fallback_asset_decimals":
		return fmt.Sprintf("%d", c.Amounts.FallbackAssetDecimals), nil
	case "rate_limit.requests_per_second":
		return fmt.Sprintf("%g", c.RateLimit.RequestsPerSecond), nil
	case "rate_limit.burst":
		return fmt.Sprintf("%d", c.RateLimit.Burst), nil
	case "wallet.key_file":
		return c.Wallet.KeyFile, nil
	case "output.default_format":
		return c.Output.DefaultFormat, nil
	case "output.verbose":
		return fmt.Sprintf("%t", c.Output.Verbose), nil
	case "logging.level":
		return c.Logging.Level, nil
	case "logging.file":
		return c.Logging.File, nil
	default:
		return "", atomixerr.WithDetails(atomixerr.ErrNotFound, map[string]string{
			"config_key": path,
		})
	}
}

// setConfigValue updates a value in the config using dot notation.
func setConfigValue(c *config.Config, path, value string) error {
	invalid := func(err error) error {
		return atomixerr.WithDetails(atomixerr.Wrap(err, "parsing value for %s", path),
			map[string]string{"value": value})
	}

	switch path {
	case "home":
		c.Home = value
	case "node.url":
		c.Node.URL = value
	case "node.token":
		c.Node.Token = value
	case "node.wait_rounds":
		v, err := cast.ToUint64E(value)
		if err != nil {
			return invalid(err)
		}
		c.Node.WaitRounds = v
	case "amounts.fallback_asset_decimals":
		v, err := cast.ToIntE(value)
		if err != nil {
			return invalid(err)
		}
		c.Amounts.FallbackAssetDecimals = v
	case "rate_limit.requests_per_second":
		v, err := cast.ToFloat64E(value)
		if err != nil {
			return invalid(err)
		}
		c.RateLimit.RequestsPerSecond = v
	case "rate_limit.burst":
		v, err := cast.ToIntE(value)
		if err != nil {
			return invalid(err)
		}
		c.RateLimit.Burst = v
	case "wallet.key_file":
		c.Wallet.KeyFile = value
	case "output.default_format":
		c.Output.DefaultFormat = value
	case "output.verbose":
		v, err := cast.ToBoolE(value)
		if err != nil {
			return invalid(err)
		}
		c.Output.Verbose = v
	case "logging.level":
		c.Logging.Level = value
	case "logging.file":
		c.Logging.File = value
	default:
		return atomixerr.WithDetails(atomixerr.ErrNotFound, map[string]string{
			"config_key": path,
		})
	}
	return nil
}

// maskToken hides all but the tail of an API token.
func maskToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 4 {
		return strings.Repeat("*", len(token))
	}
	return strings.Repeat("*", len(token)-4) + token[len(token)-4:]
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)

	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite existing configuration")
}
