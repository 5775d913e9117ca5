package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/stgdeploy/internal/domain/config"
)

func TestNetworkResolver_Resolve(t *testing.T) {
	t.Setenv("ETHERSCAN_API_KEY", "global-key")

	foundry := &config.FoundryConfig{
		RpcEndpoints: map[string]string{
			"flow":     "https://mainnet.evm.nodes.onflow.org",
			"arbitrum": "https://arb1.arbitrum.io/rpc",
			"custom":   "https://rpc.custom.example",
			"hardhat":  "http://127.0.0.1:8545",
		},
		Etherscan: map[string]config.EtherscanConfig{
			"arbitrum": {Key: "arbiscan-key"},
			"custom":   {URL: "https://explorer.custom.example/api", Key: "custom-key"},
		},
	}
	chainIDs := map[string]uint64{
		"https://mainnet.evm.nodes.onflow.org": 747,
		"https://arb1.arbitrum.io/rpc":         42161,
		"https://rpc.custom.example":           999,
		"http://127.0.0.1:8545":                31337,
	}
	resolver := NewNetworkResolver(t.TempDir(), foundry).
		WithChainIDFetcher(func(ctx context.Context, rpcURL string) (uint64, error) {
			return chainIDs[rpcURL], nil
		})

	tests := []struct {
		network     string
		chainID     uint64
		explorerURL string
		apiKey      string
	}{
		{network: "flow", chainID: 747, explorerURL: "https://evm.flowscan.io/api", apiKey: "global-key"},
		{network: "arbitrum", chainID: 42161, explorerURL: "https://api.arbiscan.io/api", apiKey: "arbiscan-key"},
		{network: "custom", chainID: 999, explorerURL: "https://explorer.custom.example/api", apiKey: "custom-key"},
		{network: "hardhat", chainID: 31337, explorerURL: "", apiKey: "global-key"},
	}

	for _, tt := range tests {
		t.Run(tt.network, func(t *testing.T) {
			network, err := resolver.Resolve(context.Background(), tt.network)
			require.NoError(t, err)
			assert.Equal(t, tt.network, network.Name)
			assert.Equal(t, tt.chainID, network.ChainID)
			assert.Equal(t, foundry.RpcEndpoints[tt.network], network.RPCURL)
			assert.Equal(t, tt.explorerURL, network.ExplorerURL)
			assert.Equal(t, tt.apiKey, network.ExplorerAPIKey)
		})
	}
}

func TestNetworkResolver_FlowscanPlaceholderKey(t *testing.T) {
	t.Setenv("ETHERSCAN_API_KEY", "")

	foundry := &config.FoundryConfig{
		RpcEndpoints: map[string]string{
			"flow":        "https://mainnet.evm.nodes.onflow.org",
			"flowTestnet": "https://testnet.evm.nodes.onflow.org",
			"arbitrum":    "https://arb1.arbitrum.io/rpc",
			"custom":      "https://rpc.custom.example",
		},
		Etherscan: map[string]config.EtherscanConfig{
			"flowTestnet": {Key: "flowscan-key"},
		},
	}
	chainIDs := map[string]uint64{
		"https://mainnet.evm.nodes.onflow.org": 747,
		"https://testnet.evm.nodes.onflow.org": 545,
		"https://arb1.arbitrum.io/rpc":         42161,
		"https://rpc.custom.example":           999,
	}
	resolver := NewNetworkResolver(t.TempDir(), foundry).
		WithChainIDFetcher(func(ctx context.Context, rpcURL string) (uint64, error) {
			return chainIDs[rpcURL], nil
		})

	tests := []struct {
		network string
		apiKey  string
	}{
		{network: "flow", apiKey: "abc"},
		{network: "flowTestnet", apiKey: "flowscan-key"},
		{network: "arbitrum", apiKey: ""},
		{network: "custom", apiKey: ""},
	}

	for _, tt := range tests {
		t.Run(tt.network, func(t *testing.T) {
			network, err := resolver.Resolve(context.Background(), tt.network)
			require.NoError(t, err)
			assert.Equal(t, tt.apiKey, network.ExplorerAPIKey)
		})
	}
}

func TestNetworkResolver_CachesChainID(t *testing.T) {
	calls := 0
	resolver := NewNetworkResolver(t.TempDir(), &config.FoundryConfig{
		RpcEndpoints: map[string]string{"flow": "https://mainnet.evm.nodes.onflow.org"},
	}).WithChainIDFetcher(func(ctx context.Context, rpcURL string) (uint64, error) {
		calls++
		return 747, nil
	})

	for i := 0; i < 3; i++ {
		_, err := resolver.Resolve(context.Background(), "flow")
		require.NoError(t, err)
	}
	assert.Equal(t, 1, calls)
}

func TestNetworkResolver_Errors(t *testing.T) {
	root := t.TempDir()
	foundryContent := `[rpc_endpoints]
flow = "${FLOW_RPC_URL}"
arbitrum = "https://arb1.arbitrum.io/rpc"
mainnet = "https://eth.llamarpc.com"
`
	require.NoError(t, os.WriteFile(filepath.Join(root, "foundry.toml"), []byte(foundryContent), 0644))

	foundry := &config.FoundryConfig{
		RpcEndpoints: map[string]string{
			"flow":     "",
			"arbitrum": "https://arb1.arbitrum.io/rpc",
			"mainnet":  "https://eth.llamarpc.com",
		},
	}
	resolver := NewNetworkResolver(root, foundry).
		WithChainIDFetcher(func(ctx context.Context, rpcURL string) (uint64, error) {
			return 0, errors.New("connection refused")
		})

	tests := []struct {
		name    string
		network string
		want    []string
	}{
		{
			name:    "unset rpc variable",
			network: "flow",
			want:    []string{"rpc endpoint for network 'flow' is empty", "set FLOW_RPC_URL"},
		},
		{
			name:    "unknown network with suggestion",
			network: "flowTestnet",
			want:    []string{"network 'flowTestnet' not found", "did you mean flow"},
		},
		{
			name:    "unknown network without suggestion",
			network: "zzz",
			want:    []string{"network 'zzz' not found in foundry.toml [rpc_endpoints]"},
		},
		{
			name:    "unreachable rpc",
			network: "arbitrum",
			want:    []string{"failed to fetch chain ID for network arbitrum", "connection refused"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolver.Resolve(context.Background(), tt.network)
			require.Error(t, err)
			for _, want := range tt.want {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestNetworkResolver_Names(t *testing.T) {
	resolver := NewNetworkResolver(t.TempDir(), &config.FoundryConfig{
		RpcEndpoints: map[string]string{"flow": "a", "arbitrum": "b", "mainnet": "c"},
	})
	assert.Equal(t, []string{"arbitrum", "flow", "mainnet"}, resolver.Names())
}
