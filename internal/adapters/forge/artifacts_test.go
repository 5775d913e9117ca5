package forge

import (
	"encoding/hex"
	"io"
	"log/slog"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/stgdeploy/internal/domain"
	"github.com/trebuchet-org/stgdeploy/internal/domain/config"
)

const integrationSidechainArtifact = `{
  "abi": [
    {"type": "constructor", "inputs": [{"name": "_stgIntegrationMainchain", "type": "address", "internalType": "address"}], "stateMutability": "nonpayable"},
    {"type": "function", "name": "mainchain", "inputs": [], "outputs": [{"name": "", "type": "address"}], "stateMutability": "view"}
  ],
  "bytecode": {"object": "0x6080604052"},
  "metadata": {"settings": {"compilationTarget": {"src/StargateIntegrationSidechain.sol": "StargateIntegrationSidechain"}}}
}`

const adapterMainchainArtifact = `{
  "abi": [
    {"type": "constructor", "inputs": [], "stateMutability": "nonpayable"},
    {"type": "function", "name": "initialize", "inputs": [{"name": "_lzEndpoint", "type": "address"}], "outputs": [], "stateMutability": "nonpayable"}
  ],
  "bytecode": {"object": "0x60806040"},
  "metadata": {"settings": {"compilationTarget": {"src/adapters/StargateAdapterMainchain.sol": "StargateAdapterMainchain"}}}
}`

func writeArtifact(t *testing.T, dir, file, name, content string) {
	t.Helper()
	path := filepath.Join(dir, file, name+".json")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func newTestLoader(t *testing.T) *ArtifactLoader {
	t.Helper()
	root := t.TempDir()
	out := filepath.Join(root, "out")
	writeArtifact(t, out, "StargateIntegrationSidechain.sol", "StargateIntegrationSidechain", integrationSidechainArtifact)
	writeArtifact(t, out, "Adapters.sol", "StargateAdapterMainchain", adapterMainchainArtifact)
	writeArtifact(t, out, "Abstract.sol", "Abstract", `{"abi": [], "bytecode": {"object": "0x"}}`)

	cfg := &config.RuntimeConfig{
		ProjectRoot: root,
		Deploy:      config.DeployConfig{ArtifactsDir: "out"},
	}
	return NewArtifactLoader(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestArtifactLoader_Load(t *testing.T) {
	loader := newTestLoader(t)

	tests := []struct {
		name       string
		contract   string
		identifier string
		wantErr    error
		errText    string
	}{
		{
			name:       "direct path",
			contract:   "StargateIntegrationSidechain",
			identifier: "src/StargateIntegrationSidechain.sol:StargateIntegrationSidechain",
		},
		{
			name:       "found by glob",
			contract:   "StargateAdapterMainchain",
			identifier: "src/adapters/StargateAdapterMainchain.sol:StargateAdapterMainchain",
		},
		{
			name:     "missing",
			contract: "StargateIntegration",
			wantErr:  domain.ErrArtifactNotFound,
		},
		{
			name:     "no bytecode",
			contract: "Abstract",
			errText:  "no creation bytecode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := loader.Load(tt.contract)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.errText != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errText)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.identifier, a.Identifier())
				assert.NotEmpty(t, a.Bytecode)
			}
		})
	}
}

func TestArtifact_EncodeConstructorArgs(t *testing.T) {
	loader := newTestLoader(t)
	a, err := loader.Load("StargateIntegrationSidechain")
	require.NoError(t, err)

	mainchain := "0x1111111111111111111111111111111111111111"
	encoded, err := a.EncodeConstructorArgs([]string{mainchain})
	require.NoError(t, err)
	assert.Equal(t, common.LeftPadBytes(common.HexToAddress(mainchain).Bytes(), 32), encoded)

	_, err = a.EncodeConstructorArgs([]string{"0xMAIN"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid address")

	_, err = a.EncodeConstructorArgs(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 1 arguments, got 0")
}

func TestArtifact_PackInitializer(t *testing.T) {
	loader := newTestLoader(t)

	a, err := loader.Load("StargateAdapterMainchain")
	require.NoError(t, err)

	endpoint := "0x1a44076050125825900e736c501f859c50fE728c"
	data, err := a.PackInitializer([]string{endpoint})
	require.NoError(t, err)
	require.Len(t, data, 4+32)
	assert.Equal(t, hex.EncodeToString(a.ABI.Methods["initialize"].ID), hex.EncodeToString(data[:4]))

	direct, err := loader.Load("StargateIntegrationSidechain")
	require.NoError(t, err)
	_, err = direct.PackInitializer([]string{endpoint})
	assert.ErrorContains(t, err, "has no initialize function")
}

func TestConvertArg(t *testing.T) {
	mustType := func(name string) abi.Type {
		typ, err := abi.NewType(name, "", nil)
		require.NoError(t, err)
		return typ
	}

	tests := []struct {
		name    string
		typ     string
		input   string
		want    interface{}
		wantErr string
	}{
		{name: "address", typ: "address", input: "0x1a44076050125825900e736c501f859c50fE728c", want: common.HexToAddress("0x1a44076050125825900e736c501f859c50fE728c")},
		{name: "empty address", typ: "address", input: "", wantErr: "invalid address"},
		{name: "placeholder address", typ: "address", input: "0xENDPOINT", wantErr: "invalid address"},
		{name: "string", typ: "string", input: "stargate", want: "stargate"},
		{name: "bool", typ: "bool", input: "true", want: true},
		{name: "uint256", typ: "uint256", input: "1000000", want: big.NewInt(1000000)},
		{name: "hex uint256", typ: "uint256", input: "0xff", want: big.NewInt(255)},
		{name: "uint32", typ: "uint32", input: "30101", want: uint32(30101)},
		{name: "uint8 overflow", typ: "uint8", input: "256", wantErr: "overflows uint8"},
		{name: "negative uint", typ: "uint64", input: "-1", wantErr: "overflows uint64"},
		{name: "int8 minimum", typ: "int8", input: "-128", want: int8(-128)},
		{name: "int8 overflow", typ: "int8", input: "128", wantErr: "overflows int8"},
		{name: "int64", typ: "int64", input: "-42", want: int64(-42)},
		{name: "not a number", typ: "uint256", input: "ten", wantErr: "invalid integer"},
		{name: "bytes", typ: "bytes", input: "0xc0ffee", want: []byte{0xc0, 0xff, 0xee}},
		{name: "bytes without prefix", typ: "bytes", input: "c0ffee", wantErr: "invalid hex value"},
		{name: "bytes4", typ: "bytes4", input: "0x8129fc1c", want: [4]byte{0x81, 0x29, 0xfc, 0x1c}},
		{name: "bytes4 wrong size", typ: "bytes4", input: "0x8129", wantErr: "expected 4 bytes, got 2"},
		{name: "unsupported", typ: "address[]", input: "0x1", wantErr: "unsupported argument type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := convertArg(mustType(tt.typ), tt.input)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
