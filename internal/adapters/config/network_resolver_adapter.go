package config

import (
	"context"

	"github.com/trebuchet-org/stgdeploy/internal/config"
	"github.com/trebuchet-org/stgdeploy/internal/domain"
	"github.com/trebuchet-org/stgdeploy/internal/usecase"
)

// NetworkResolverAdapter adapts the config.NetworkResolver to the usecase.NetworkResolver interface.
// It is the only place a network name is turned into a NetworkClass.
type NetworkResolverAdapter struct {
	resolver   *config.NetworkResolver
	classifier *domain.Classifier
}

// NewNetworkResolverAdapter creates a new adapter
func NewNetworkResolverAdapter(resolver *config.NetworkResolver, classifier *domain.Classifier) *NetworkResolverAdapter {
	return &NetworkResolverAdapter{
		resolver:   resolver,
		classifier: classifier,
	}
}

// GetNetworks returns all configured network names
func (a *NetworkResolverAdapter) GetNetworks(ctx context.Context) []string {
	return a.resolver.Names()
}

// ResolveNetwork resolves a network name to its classified context
func (a *NetworkResolverAdapter) ResolveNetwork(ctx context.Context, networkName string) (*domain.NetworkContext, error) {
	network, err := a.resolver.Resolve(ctx, networkName)
	if err != nil {
		return nil, err
	}

	return &domain.NetworkContext{
		Name:           network.Name,
		Class:          a.classifier.Classify(network.Name),
		ChainID:        network.ChainID,
		RPCURL:         network.RPCURL,
		ExplorerURL:    network.ExplorerURL,
		ExplorerAPIKey: network.ExplorerAPIKey,
	}, nil
}

// Ensure the adapter implements the interface
var _ usecase.NetworkResolver = (*NetworkResolverAdapter)(nil)
