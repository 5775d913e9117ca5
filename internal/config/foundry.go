package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/trebuchet-org/stgdeploy/internal/domain/config"
)

// foundryTOML represents the raw foundry.toml structure
type foundryTOML struct {
	RpcEndpoints map[string]string               `toml:"rpc_endpoints"`
	Etherscan    map[string]map[string]any       `toml:"etherscan"`
	Profile      map[string]config.ProfileConfig `toml:"profile"`
}

// LoadEnvFiles loads .env and .env.local from the project root.
// Variables already present in the environment win.
func LoadEnvFiles(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				slog.Warn("failed to load env file", "file", envFile, "error", err)
			}
		}
	}
}

// loadFoundryConfig loads and parses foundry.toml, expanding ${VAR} references
func loadFoundryConfig(projectRoot string) (*config.FoundryConfig, error) {
	LoadEnvFiles(projectRoot)

	foundryPath := filepath.Join(projectRoot, "foundry.toml")
	var raw foundryTOML

	if _, err := toml.DecodeFile(foundryPath, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse foundry.toml: %w", err)
	}

	cfg := &config.FoundryConfig{
		RpcEndpoints: make(map[string]string, len(raw.RpcEndpoints)),
		Etherscan:    make(map[string]config.EtherscanConfig, len(raw.Etherscan)),
		Profile:      raw.Profile,
	}
	if cfg.Profile == nil {
		cfg.Profile = make(map[string]config.ProfileConfig)
	}

	for name, url := range raw.RpcEndpoints {
		cfg.RpcEndpoints[name] = os.ExpandEnv(url)
	}

	for network, ethConfig := range raw.Etherscan {
		ec := config.EtherscanConfig{}
		if url, ok := ethConfig["url"].(string); ok {
			ec.URL = os.ExpandEnv(url)
		}
		if key, ok := ethConfig["key"].(string); ok {
			ec.Key = os.ExpandEnv(key)
		}
		if chain, ok := ethConfig["chain"]; ok {
			ec.Chain = chain
		}
		cfg.Etherscan[network] = ec
	}

	return cfg, nil
}
