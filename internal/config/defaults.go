package config

// DefaultNodeURL is the default ledger node endpoint. AlgoNode's public
// tier requires no API token.
const DefaultNodeURL = "https://testnet-api.algonode.cloud"

// DefaultWaitRounds is how many rounds a confirmation wait may span
// before the outcome is reported as indeterminate.
const DefaultWaitRounds = 4

// DefaultFallbackAssetDecimals is used when an asset's precision cannot
// be fetched from the node.
const DefaultFallbackAssetDecimals = 6

// Defaults returns the default configuration.
func Defaults() *Config {
	return &Config{
		Version: 1,
		Home:    "~/.atomix",
		Node: NodeConfig{
			URL:        DefaultNodeURL,
			Token:      "",
			WaitRounds: DefaultWaitRounds,
		},
		Amounts: AmountsConfig{
			FallbackAssetDecimals: DefaultFallbackAssetDecimals,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 10,
			Burst:             20,
		},
		Wallet: WalletConfig{
			KeyFile: "~/.atomix/key.age",
		},
		Output: OutputConfig{
			DefaultFormat: "auto",
			Color:         "auto",
			Verbose:       false,
		},
		Logging: LoggingConfig{
			Level: "error",
			File:  "~/.atomix/atomix.log",
		},
	}
}
