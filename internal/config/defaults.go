package config

// DefaultAPIURL is the default platform API endpoint.
const DefaultAPIURL = "https://api.scrip.network"

// Defaults returns the default configuration.
func Defaults() *Config {
	return &Config{
		Version: 1,
		Home:    "~/.scrip",
		API: APIConfig{
			URL:            DefaultAPIURL,
			TimeoutSeconds: 30,
			RatePerSecond:  5,
			Burst:          10,
		},
		Wallet: WalletConfig{
			File:      "~/.scrip/wallet.age",
			AccountID: "",
		},
		Security: SecurityConfig{
			MemoryLock: true,
		},
		Output: OutputConfig{
			DefaultFormat: "auto",
			Color:         "auto",
			Verbose:       false,
		},
		Logging: LoggingConfig{
			Level: "error",
			File:  "~/.scrip/scrip.log",
		},
	}
}
