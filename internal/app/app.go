package app

import (
	"github.com/trebuchet-org/stgdeploy/internal/domain"
	"github.com/trebuchet-org/stgdeploy/internal/domain/config"
	"github.com/trebuchet-org/stgdeploy/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig

	// Shared dependencies
	Registry *domain.Registry
	Networks usecase.NetworkResolver
	Selector usecase.NetworkSelector
	Progress usecase.ProgressSink

	// Use cases
	DeployContract   *usecase.DeployContract
	VerifyDeployment *usecase.VerifyDeployment
	ListNetworks     *usecase.ListNetworks
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	registry *domain.Registry,
	networks usecase.NetworkResolver,
	selector usecase.NetworkSelector,
	progress usecase.ProgressSink,
	deployContract *usecase.DeployContract,
	verifyDeployment *usecase.VerifyDeployment,
	listNetworks *usecase.ListNetworks,
) (*App, error) {
	return &App{
		Config:           cfg,
		Registry:         registry,
		Networks:         networks,
		Selector:         selector,
		Progress:         progress,
		DeployContract:   deployContract,
		VerifyDeployment: verifyDeployment,
		ListNetworks:     listNetworks,
	}, nil
}
