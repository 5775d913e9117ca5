package adapters

import (
	"github.com/google/wire"
	"github.com/trebuchet-org/stgdeploy/internal/adapters/blockchain"
	internalconfig "github.com/trebuchet-org/stgdeploy/internal/adapters/config"
	"github.com/trebuchet-org/stgdeploy/internal/adapters/forge"
	"github.com/trebuchet-org/stgdeploy/internal/adapters/interactive"
	"github.com/trebuchet-org/stgdeploy/internal/adapters/progress"
	"github.com/trebuchet-org/stgdeploy/internal/adapters/verification"
	"github.com/trebuchet-org/stgdeploy/internal/config"
	"github.com/trebuchet-org/stgdeploy/internal/usecase"
)

// ForgeSet provides forge-based implementations
var ForgeSet = wire.NewSet(
	forge.NewForgeAdapter,
	wire.Bind(new(usecase.Compiler), new(*forge.ForgeAdapter)),

	forge.NewArtifactLoader,
)

// BlockchainSet provides blockchain-based implementations
var BlockchainSet = wire.NewSet(
	blockchain.NewDeployerAdapter,
	wire.Bind(new(usecase.ChainClient), new(*blockchain.DeployerAdapter)),

	blockchain.NewCheckerAdapter,
	wire.Bind(new(verification.ProxyInspector), new(*blockchain.CheckerAdapter)),
)

// VerificationSet provides explorer verification
var VerificationSet = wire.NewSet(
	verification.NewInternalVerifier,
	verification.NewVerifierAdapter,
	wire.Bind(new(usecase.ContractVerifier), new(*verification.VerifierAdapter)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.BroadcastConfirmer), new(*interactive.SelectorAdapter)),
	wire.Bind(new(usecase.NetworkSelector), new(*interactive.SelectorAdapter)),
)

// ConfigSet provides configuration-based implementations
var ConfigSet = wire.NewSet(
	config.ProvideNetworkResolver,
	config.ProvideClassifier,
	internalconfig.NewNetworkResolverAdapter,
	wire.Bind(new(usecase.NetworkResolver), new(*internalconfig.NetworkResolverAdapter)),
)

// ProgressSet provides the progress sink for the current output mode
var ProgressSet = wire.NewSet(
	progress.ProvideProgressSink,
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	ForgeSet,
	BlockchainSet,
	VerificationSet,
	InteractiveSet,
	ConfigSet,
	ProgressSet,
)
