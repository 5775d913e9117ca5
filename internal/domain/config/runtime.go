package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	DataDir     string

	// Context settings
	Profile     string // foundry profile
	NetworkName string

	// Execution settings
	Debug          bool
	NonInteractive bool
	JSON           bool // Output in JSON format
	Timeout        time.Duration

	// Signing key for deployment transactions, hex encoded
	PrivateKey string

	Deploy DeployConfig

	// Resolved configurations
	FoundryConfig *FoundryConfig
}

// DeployConfig holds the deployer's own settings
type DeployConfig struct {
	Mainchains    []string `mapstructure:"mainchains"`
	Sidechains    []string `mapstructure:"sidechains"`
	LocalNetworks []string `mapstructure:"local_networks"`
	// ProxyContract is the artifact deployed in front of upgradeable implementations
	ProxyContract string `mapstructure:"proxy_contract"`
	ArtifactsDir  string `mapstructure:"artifacts_dir"`
	// Verifier is the forge verifier name (etherscan, blockscout, sourcify)
	Verifier string `mapstructure:"verifier"`
	// ConfirmationTimeout bounds the wait for a deployment receipt, 0 means no bound
	ConfirmationTimeout time.Duration `mapstructure:"confirmation_timeout"`
}

// Network represents resolved network configuration
type Network struct {
	ChainID        uint64 `json:"chainId"`
	Name           string `json:"name"`
	RPCURL         string `json:"rpcUrl"`
	ExplorerURL    string `json:"explorerUrl,omitempty"`
	ExplorerAPIKey string `json:"-"`
}
