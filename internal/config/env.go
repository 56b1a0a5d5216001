package config

import (
	"os"
	"strings"

	"github.com/spf13/cast"
)

// Environment variable names.
const (
	EnvHome             = "ATOMIX_HOME"
	EnvNodeURL          = "ATOMIX_NODE_URL"
	EnvNodeToken        = "ATOMIX_NODE_TOKEN" // #nosec G101 -- false positive, this is a const name not a credential
	EnvWaitRounds       = "ATOMIX_WAIT_ROUNDS"
	EnvFallbackDecimals = "ATOMIX_FALLBACK_DECIMALS"
	EnvOutputFormat     = "ATOMIX_OUTPUT_FORMAT"
	EnvVerbose          = "ATOMIX_VERBOSE"
	EnvLogLevel         = "ATOMIX_LOG_LEVEL"
	EnvNoColor          = "NO_COLOR"
)

// ApplyEnvironment applies environment variable overrides to the configuration.
func ApplyEnvironment(cfg *Config) {
	if v := os.Getenv(EnvHome); v != "" {
		cfg.Home = v
	}

	if v := os.Getenv(EnvNodeURL); v != "" {
		cfg.Node.URL = strings.TrimSpace(v)
	}

	if v := os.Getenv(EnvNodeToken); v != "" {
		cfg.Node.Token = v
	}

	if v := os.Getenv(EnvWaitRounds); v != "" {
		if rounds := cast.ToUint64(v); rounds > 0 {
			cfg.Node.WaitRounds = rounds
		}
	}

	if v := os.Getenv(EnvFallbackDecimals); v != "" {
		// Zero is a valid precision, so only a parseable value overrides.
		if d, err := cast.ToIntE(v); err == nil && d >= 0 {
			cfg.Amounts.FallbackAssetDecimals = d
		}
	}

	if v := os.Getenv(EnvOutputFormat); v != "" {
		cfg.Output.DefaultFormat = strings.ToLower(v)
	}

	if v := os.Getenv(EnvVerbose); v != "" {
		cfg.Output.Verbose = cast.ToBool(strings.ToLower(strings.TrimSpace(v)))
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}

	// NO_COLOR disables colored output
	if _, ok := os.LookupEnv(EnvNoColor); ok {
		cfg.Output.Color = "never"
	}
}
