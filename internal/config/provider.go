package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/stgdeploy/internal/domain"
	"github.com/trebuchet-org/stgdeploy/internal/domain/config"
)

// EnvPrefix prefixes every environment variable read through viper
const EnvPrefix = "STGDEPLOY"

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		DataDir:        filepath.Join(projectRoot, ".stgdeploy"),
		Profile:        v.GetString("profile"),
		NetworkName:    v.GetString("network"),
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive") || v.GetBool("yes") || os.Getenv("CI") == "true",
		JSON:           v.GetBool("json"),
		Timeout:        v.GetDuration("timeout"),
	}

	foundryConfig, err := loadFoundryConfig(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to load foundry config: %w", err)
	}
	cfg.FoundryConfig = foundryConfig

	// PRIVATE_KEY is read after .env is loaded so it can live there
	cfg.PrivateKey = v.GetString("private_key")
	if cfg.PrivateKey == "" {
		cfg.PrivateKey = os.Getenv("PRIVATE_KEY")
	}

	// Read leaf keys so a partial deploy section in the local config keeps the defaults
	cfg.Deploy = config.DeployConfig{
		Mainchains:          v.GetStringSlice("deploy.mainchains"),
		Sidechains:          v.GetStringSlice("deploy.sidechains"),
		LocalNetworks:       v.GetStringSlice("deploy.local_networks"),
		ProxyContract:       v.GetString("deploy.proxy_contract"),
		ArtifactsDir:        v.GetString("deploy.artifacts_dir"),
		Verifier:            v.GetString("deploy.verifier"),
		ConfirmationTimeout: v.GetDuration("deploy.confirmation_timeout"),
	}
	if cfg.Deploy.ArtifactsDir == "" {
		cfg.Deploy.ArtifactsDir = "out"
		if profile, ok := foundryConfig.Profile[cfg.Profile]; ok && profile.OutPath != "" {
			cfg.Deploy.ArtifactsDir = profile.OutPath
		}
	}

	return cfg, nil
}

// FindProjectRoot walks up from current directory to find foundry.toml
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		foundryToml := filepath.Join(dir, "foundry.toml")
		if _, err := os.Stat(foundryToml); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Foundry project (foundry.toml not found)")
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, flags *pflag.FlagSet) *viper.Viper {
	v := viper.New()

	v.SetConfigName("config.local")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, ".stgdeploy"))

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	v.SetDefault("profile", "default")
	v.SetDefault("timeout", "0s")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("project_root", projectRoot)
	v.SetDefault("deploy.mainchains", domain.DefaultMainchainNetworks)
	v.SetDefault("deploy.sidechains", domain.DefaultSidechainNetworks)
	v.SetDefault("deploy.local_networks", domain.DefaultLocalNetworks)
	v.SetDefault("deploy.proxy_contract", "ERC1967Proxy")
	v.SetDefault("deploy.verifier", "etherscan")
	v.SetDefault("deploy.confirmation_timeout", "0s")

	// Try to read config file (ignore error if not found)
	_ = v.ReadInConfig()

	if flags != nil {
		flags.VisitAll(func(f *pflag.Flag) {
			key := strings.ReplaceAll(f.Name, "-", "_")
			if err := v.BindPFlag(key, f); err != nil {
				panic(err)
			}
		})
	}

	return v
}

// ProvideNetworkResolver creates a NetworkResolver for Wire dependency injection
func ProvideNetworkResolver(cfg *config.RuntimeConfig) *NetworkResolver {
	return NewNetworkResolver(cfg.ProjectRoot, cfg.FoundryConfig)
}

// ProvideClassifier builds the network classifier from the deploy config
func ProvideClassifier(cfg *config.RuntimeConfig) *domain.Classifier {
	return domain.NewClassifier(cfg.Deploy.Mainchains, cfg.Deploy.Sidechains, cfg.Deploy.LocalNetworks)
}
