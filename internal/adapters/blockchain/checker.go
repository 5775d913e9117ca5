package blockchain

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/trebuchet-org/stgdeploy/internal/domain"
)

// ImplementationSlot is the EIP-1967 storage slot holding a proxy's logic contract,
// keccak256("eip1967.proxy.implementation") - 1
var ImplementationSlot = common.HexToHash("0x360894a13ba1a3210667c828492db98dca3e2076cc3735a920a3ca505d382bbc")

// StateReader reads code and storage
type StateReader interface {
	ethereum.ChainStateReader
	Close()
}

// StateDialer connects to a network for state reads
type StateDialer func(ctx context.Context, rpcURL string) (StateReader, error)

// CheckerAdapter inspects deployed contracts
type CheckerAdapter struct {
	dial StateDialer
}

// NewCheckerAdapter creates a new blockchain checker adapter
func NewCheckerAdapter() *CheckerAdapter {
	return &CheckerAdapter{
		dial: func(ctx context.Context, rpcURL string) (StateReader, error) {
			return ethclient.DialContext(ctx, rpcURL)
		},
	}
}

// WithDialer replaces the RPC dialer
func (c *CheckerAdapter) WithDialer(dial StateDialer) *CheckerAdapter {
	c.dial = dial
	return c
}

// ImplementationOf returns the logic contract behind an EIP-1967 proxy
func (c *CheckerAdapter) ImplementationOf(ctx context.Context, network *domain.NetworkContext, proxy string) (string, error) {
	if !common.IsHexAddress(proxy) {
		return "", fmt.Errorf("invalid address %q", proxy)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := c.dial(ctx, network.RPCURL)
	if err != nil {
		return "", fmt.Errorf("failed to connect to RPC: %w", err)
	}
	defer client.Close()

	addr := common.HexToAddress(proxy)
	code, err := client.CodeAt(ctx, addr, nil)
	if err != nil {
		return "", fmt.Errorf("failed to check code: %w", err)
	}
	if len(code) == 0 {
		return "", fmt.Errorf("no code at address %s", addr.Hex())
	}

	slot, err := client.StorageAt(ctx, addr, ImplementationSlot, nil)
	if err != nil {
		return "", fmt.Errorf("failed to read implementation slot: %w", err)
	}
	impl := common.BytesToAddress(slot)
	if impl == (common.Address{}) {
		return "", fmt.Errorf("%s is not an EIP-1967 proxy", addr.Hex())
	}
	return impl.Hex(), nil
}
