package config

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/trebuchet-org/stgdeploy/internal/domain/config"
)

// envVarPattern matches ${VAR_NAME} patterns in TOML values
var envVarPattern = regexp.MustCompile(`^\$\{([A-Za-z_][A-Za-z0-9_]*)\}$`)

// DetectEnvVar checks if a raw TOML value is a simple ${VAR_NAME} reference.
// Returns the variable name and true if the value is a pure env var reference.
func DetectEnvVar(rawValue string) (string, bool) {
	matches := envVarPattern.FindStringSubmatch(rawValue)
	if len(matches) == 2 {
		return matches[1], true
	}
	return "", false
}

// GenerateEnvVarName generates a conventional env var name for a network's RPC URL.
// Convention: uppercase, dashes/dots to underscores, camelCase split, append _RPC_URL.
// Examples: flow -> FLOW_RPC_URL, flowTestnet -> FLOW_TESTNET_RPC_URL
func GenerateEnvVarName(networkName string) string {
	var b strings.Builder
	for i, r := range networkName {
		if i > 0 && r >= 'A' && r <= 'Z' {
			prev := networkName[i-1]
			if prev >= 'a' && prev <= 'z' {
				b.WriteByte('_')
			}
		}
		b.WriteRune(r)
	}
	name := strings.ToUpper(b.String())
	name = strings.NewReplacer("-", "_", ".", "_").Replace(name)
	return name + "_RPC_URL"
}

// LoadRawRPCEndpoints reads foundry.toml and returns RPC endpoints without env var expansion.
func LoadRawRPCEndpoints(projectRoot string) (map[string]string, error) {
	foundryPath := filepath.Join(projectRoot, "foundry.toml")

	var cfg config.FoundryConfig
	if _, err := toml.DecodeFile(foundryPath, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse foundry.toml: %w", err)
	}

	return cfg.RpcEndpoints, nil
}

// LoadRawRPCEndpoint reads a single raw RPC endpoint value from foundry.toml (before env var expansion).
func LoadRawRPCEndpoint(projectRoot string, networkName string) (string, error) {
	endpoints, err := LoadRawRPCEndpoints(projectRoot)
	if err != nil {
		return "", err
	}

	raw, ok := endpoints[networkName]
	if !ok {
		return "", fmt.Errorf("network '%s' not found in foundry.toml [rpc_endpoints]", networkName)
	}

	return raw, nil
}

// unsetRPCHint explains an RPC endpoint that expanded to an empty string
func unsetRPCHint(projectRoot, networkName string) string {
	raw, err := LoadRawRPCEndpoint(projectRoot, networkName)
	if err != nil {
		return ""
	}
	if name, ok := DetectEnvVar(raw); ok {
		return fmt.Sprintf("set %s in the environment or .env", name)
	}
	return fmt.Sprintf("add %s to .env and reference it as ${%s}", GenerateEnvVarName(networkName), GenerateEnvVarName(networkName))
}
