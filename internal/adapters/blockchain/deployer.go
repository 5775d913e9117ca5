package blockchain

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/trebuchet-org/stgdeploy/internal/adapters/forge"
	"github.com/trebuchet-org/stgdeploy/internal/domain"
	"github.com/trebuchet-org/stgdeploy/internal/domain/config"
	"github.com/trebuchet-org/stgdeploy/internal/usecase"
)

// Backend is the subset of an RPC client needed to send and confirm deployments
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
	Close()
}

// Dialer connects to a network's RPC endpoint
type Dialer func(ctx context.Context, rpcURL string) (Backend, error)

// DialRPC is the Dialer backed by ethclient
func DialRPC(ctx context.Context, rpcURL string) (Backend, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// DeployerAdapter creates contracts with a local private key
type DeployerAdapter struct {
	log           *slog.Logger
	artifacts     *forge.ArtifactLoader
	privateKey    string
	proxyContract string
	timeout       time.Duration
	dial          Dialer
}

// NewDeployerAdapter creates a new deployer adapter
func NewDeployerAdapter(cfg *config.RuntimeConfig, artifacts *forge.ArtifactLoader, log *slog.Logger) *DeployerAdapter {
	return &DeployerAdapter{
		log:           log.With("component", "DeployerAdapter"),
		artifacts:     artifacts,
		privateKey:    cfg.PrivateKey,
		proxyContract: cfg.Deploy.ProxyContract,
		timeout:       cfg.Deploy.ConfirmationTimeout,
		dial:          DialRPC,
	}
}

// WithDialer replaces the RPC dialer
func (d *DeployerAdapter) WithDialer(dial Dialer) *DeployerAdapter {
	d.dial = dial
	return d
}

// session is one connected, signing view of a network
type session struct {
	backend Backend
	auth    *bind.TransactOpts
}

// DeployDirect creates contractName through its constructor
func (d *DeployerAdapter) DeployDirect(ctx context.Context, network *domain.NetworkContext, contractName string, args []string) (*usecase.Deployed, error) {
	artifact, err := d.artifacts.Load(contractName)
	if err != nil {
		return nil, err
	}
	values, err := artifact.ConstructorValues(args)
	if err != nil {
		return nil, err
	}

	s, err := d.connect(ctx, network)
	if err != nil {
		return nil, err
	}
	defer s.backend.Close()

	address, txHash, err := d.deploy(ctx, s, artifact, values...)
	if err != nil {
		return nil, err
	}
	return &usecase.Deployed{
		Address:         address.Hex(),
		TransactionHash: txHash.Hex(),
	}, nil
}

// DeployProxy creates the implementation, then an ERC1967 proxy whose constructor
// delegates initialize(initArgs...) to it
func (d *DeployerAdapter) DeployProxy(ctx context.Context, network *domain.NetworkContext, contractName string, initArgs []string) (*usecase.Deployed, error) {
	impl, err := d.artifacts.Load(contractName)
	if err != nil {
		return nil, err
	}
	initData, err := impl.PackInitializer(initArgs)
	if err != nil {
		return nil, err
	}
	proxy, err := d.artifacts.Load(d.proxyContract)
	if err != nil {
		return nil, fmt.Errorf("proxy contract: %w", err)
	}

	s, err := d.connect(ctx, network)
	if err != nil {
		return nil, err
	}
	defer s.backend.Close()

	implAddress, _, err := d.deploy(ctx, s, impl)
	if err != nil {
		return nil, fmt.Errorf("implementation: %w", err)
	}

	proxyValues, err := proxy.ConstructorValues([]string{implAddress.Hex(), hexutil.Encode(initData)})
	if err != nil {
		return nil, err
	}
	proxyAddress, txHash, err := d.deploy(ctx, s, proxy, proxyValues...)
	if err != nil {
		return nil, fmt.Errorf("proxy: %w", err)
	}

	return &usecase.Deployed{
		Address:         proxyAddress.Hex(),
		Implementation:  implAddress.Hex(),
		TransactionHash: txHash.Hex(),
	}, nil
}

// connect dials the network and builds a transactor bound to its chain id
func (d *DeployerAdapter) connect(ctx context.Context, network *domain.NetworkContext) (*session, error) {
	key, err := parsePrivateKey(d.privateKey)
	if err != nil {
		return nil, err
	}
	if network.RPCURL == "" {
		return nil, fmt.Errorf("no RPC URL for network %s", network.Name)
	}

	backend, err := d.dial(ctx, network.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}

	chainID, err := backend.ChainID(ctx)
	if err != nil {
		backend.Close()
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}
	if network.ChainID != 0 && chainID.Uint64() != network.ChainID {
		backend.Close()
		return nil, fmt.Errorf("chain ID mismatch: expected %d, got %d", network.ChainID, chainID.Uint64())
	}

	auth, err := bind.NewKeyedTransactorWithChainID(key, chainID)
	if err != nil {
		backend.Close()
		return nil, fmt.Errorf("transactor: %w", err)
	}
	auth.Context = ctx

	d.log.Debug("connected", "network", network.Name, "chainId", chainID, "deployer", auth.From.Hex())
	return &session{backend: backend, auth: auth}, nil
}

// deploy sends one creation transaction and blocks until code is at the new address
func (d *DeployerAdapter) deploy(ctx context.Context, s *session, artifact *forge.Artifact, values ...interface{}) (common.Address, common.Hash, error) {
	address, tx, _, err := bind.DeployContract(s.auth, artifact.ABI, artifact.Bytecode, s.backend, values...)
	if err != nil {
		return common.Address{}, common.Hash{}, fmt.Errorf("send %s creation: %w", artifact.Name, err)
	}
	d.log.Info("deployment sent", "contract", artifact.Name, "tx", tx.Hash().Hex(), "address", address.Hex())

	waitCtx := ctx
	if d.timeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	confirmed, err := bind.WaitDeployed(waitCtx, s.backend, tx)
	if err != nil {
		return common.Address{}, tx.Hash(), fmt.Errorf("wait for %s (tx %s): %w", artifact.Name, tx.Hash().Hex(), err)
	}
	d.log.Info("deployment confirmed", "contract", artifact.Name, "address", confirmed.Hex())
	return confirmed, tx.Hash(), nil
}

func parsePrivateKey(hexKey string) (*ecdsa.PrivateKey, error) {
	if hexKey == "" {
		return nil, fmt.Errorf("no deployer key configured (set PRIVATE_KEY)")
	}
	key, err := crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return key, nil
}

// Ensure the adapter implements the interface
var _ usecase.ChainClient = (*DeployerAdapter)(nil)
