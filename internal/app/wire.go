//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/stgdeploy/internal/adapters"
	"github.com/trebuchet-org/stgdeploy/internal/config"
	"github.com/trebuchet-org/stgdeploy/internal/domain"
	"github.com/trebuchet-org/stgdeploy/internal/logging"
	"github.com/trebuchet-org/stgdeploy/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Domain
		domain.NewRegistry,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewExecuteDeployment,
		usecase.NewSubmitVerification,
		usecase.NewDeployContract,
		usecase.NewVerifyDeployment,
		usecase.NewListNetworks,

		// App
		NewApp,
	)
	return nil, nil
}
