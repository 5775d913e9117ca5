package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/trebuchet-org/stgdeploy/internal/domain"
)

// errDeclined is returned when the operator refuses the broadcast prompt
var errDeclined = errors.New("deployment declined by operator")

// ExecuteDeployment runs compile, gate, resolve, deploy and confirmation for one kind
type ExecuteDeployment struct {
	compiler  Compiler
	chain     ChainClient
	confirmer BroadcastConfirmer
	progress  ProgressSink
}

// NewExecuteDeployment creates the deployment executor
func NewExecuteDeployment(
	compiler Compiler,
	chain ChainClient,
	confirmer BroadcastConfirmer,
	progress ProgressSink,
) *ExecuteDeployment {
	if progress == nil {
		progress = NopProgress{}
	}
	return &ExecuteDeployment{
		compiler:  compiler,
		chain:     chain,
		confirmer: confirmer,
		progress:  progress,
	}
}

// Execute deploys the contract described by spec. It returns domain.ErrNetworkMismatch
// without touching the chain when the network class does not satisfy the kind.
func (e *ExecuteDeployment) Execute(
	ctx context.Context,
	spec *domain.KindSpec,
	params domain.Params,
	network *domain.NetworkContext,
) (*domain.DeploymentResult, error) {
	e.progress.OnProgress(ctx, ProgressEvent{
		Stage:   string(StageCompiling),
		Message: "Compiling contracts",
		Spinner: true,
	})
	if err := e.compiler.Build(ctx); err != nil {
		return nil, &domain.CompilationError{Err: err}
	}

	if !spec.Requirement.Allows(network.Class) {
		return nil, fmt.Errorf("%w: %s cannot be deployed on %s", domain.ErrNetworkMismatch, spec.ContractName, network)
	}

	contractName := spec.ContractName
	args := params.Args()

	if e.confirmer != nil {
		// Stop any animation before prompting
		e.progress.OnProgress(ctx, ProgressEvent{
			Stage:   string(StageCompiling),
			Message: "Contracts compiled",
		})
		ok, err := e.confirmer.ConfirmBroadcast(ctx, spec, network, args)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errDeclined
		}
	}

	e.progress.OnProgress(ctx, ProgressEvent{
		Stage:   string(StageDeploying),
		Message: fmt.Sprintf("Deploying %s to %s", contractName, network.Name),
		Spinner: true,
	})

	var (
		deployed *Deployed
		err      error
	)
	switch spec.Strategy {
	case domain.StrategyProxy:
		deployed, err = e.chain.DeployProxy(ctx, network, contractName, args)
	default:
		deployed, err = e.chain.DeployDirect(ctx, network, contractName, args)
	}
	if err != nil {
		return nil, &domain.ChainSubmissionError{ContractName: contractName, Err: err}
	}

	return &domain.DeploymentResult{
		Kind:            spec.Kind,
		ContractName:    contractName,
		Strategy:        spec.Strategy,
		Address:         deployed.Address,
		Implementation:  deployed.Implementation,
		TransactionHash: deployed.TransactionHash,
		ConstructorArgs: args,
	}, nil
}
