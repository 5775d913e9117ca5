package verification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/stgdeploy/internal/adapters/forge"
	"github.com/trebuchet-org/stgdeploy/internal/domain"
	"github.com/trebuchet-org/stgdeploy/internal/usecase"
)

// ProxyInspector resolves the logic contract behind a proxy
type ProxyInspector interface {
	ImplementationOf(ctx context.Context, network *domain.NetworkContext, proxy string) (string, error)
}

// VerifierAdapter resolves artifacts and proxies, then delegates to the internal verifier
type VerifierAdapter struct {
	log       *slog.Logger
	verifier  *InternalVerifier
	artifacts *forge.ArtifactLoader
	proxies   ProxyInspector
}

// NewVerifierAdapter creates a new adapter wrapping the internal verifier
func NewVerifierAdapter(
	verifier *InternalVerifier,
	artifacts *forge.ArtifactLoader,
	proxies ProxyInspector,
	log *slog.Logger,
) *VerifierAdapter {
	return &VerifierAdapter{
		log:       log.With("component", "VerifierAdapter"),
		verifier:  verifier,
		artifacts: artifacts,
		proxies:   proxies,
	}
}

// Verify submits the contract at req.Address. For proxies the implementation
// behind the EIP-1967 slot is verified, without constructor arguments.
func (v *VerifierAdapter) Verify(ctx context.Context, network *domain.NetworkContext, req usecase.VerifyRequest) (*usecase.VerifyResponse, error) {
	artifact, err := v.artifacts.Load(req.ContractName)
	if err != nil {
		return nil, err
	}

	target := req.Address
	var encodedArgs string
	switch req.Strategy {
	case domain.StrategyProxy:
		target, err = v.proxies.ImplementationOf(ctx, network, req.Address)
		if err != nil {
			return nil, fmt.Errorf("resolve implementation of %s: %w", req.Address, err)
		}
		v.log.Debug("verifying proxy implementation", "proxy", req.Address, "implementation", target)
	default:
		if len(artifact.ABI.Constructor.Inputs) > 0 {
			encoded, err := artifact.EncodeConstructorArgs(req.ConstructorArgs)
			if err != nil {
				return nil, err
			}
			encodedArgs = common.Bytes2Hex(encoded)
		}
	}

	if err := v.verifier.Verify(ctx, network, ForgeRequest{
		Address:         target,
		Identifier:      artifact.Identifier(),
		ConstructorArgs: encodedArgs,
	}); err != nil {
		return nil, err
	}

	resp := &usecase.VerifyResponse{
		Verified: true,
		URL:      explorerAddressURL(network, req.Address),
	}
	if target != req.Address {
		resp.Message = fmt.Sprintf("implementation %s verified", target)
	}
	return resp, nil
}

// Ensure the adapter implements the interface
var _ usecase.ContractVerifier = (*VerifierAdapter)(nil)
