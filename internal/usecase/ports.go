package usecase

import (
	"context"

	"github.com/trebuchet-org/stgdeploy/internal/domain"
)

// Compiler builds the contract set. It must succeed before any deployment step.
type Compiler interface {
	Build(ctx context.Context) error
}

// Deployed is what the chain client returns once a creation transaction is confirmed
type Deployed struct {
	Address string
	// Implementation is set for proxy deployments
	Implementation  string
	TransactionHash string
}

// ChainClient deploys contracts and blocks until the creation is confirmed
type ChainClient interface {
	// DeployDirect creates a contract through its constructor
	DeployDirect(ctx context.Context, network *domain.NetworkContext, contractName string, args []string) (*Deployed, error)
	// DeployProxy creates an upgradeable instance and calls its initializer with initArgs
	DeployProxy(ctx context.Context, network *domain.NetworkContext, contractName string, initArgs []string) (*Deployed, error)
}

// VerifyRequest describes one verification submission
type VerifyRequest struct {
	Address      string
	ContractName string
	Strategy     domain.Strategy
	// ConstructorArgs is nil when the contract is verified by address alone
	ConstructorArgs []string
}

// VerifyResponse is the explorer's answer to a submission
type VerifyResponse struct {
	Verified bool
	URL      string
	Message  string
}

// ContractVerifier submits deployed contracts to a block explorer
type ContractVerifier interface {
	Verify(ctx context.Context, network *domain.NetworkContext, req VerifyRequest) (*VerifyResponse, error)
}

// NetworkResolver resolves network names to classified network contexts
type NetworkResolver interface {
	GetNetworks(ctx context.Context) []string
	ResolveNetwork(ctx context.Context, networkName string) (*domain.NetworkContext, error)
}

// BroadcastConfirmer asks the operator before a transaction is broadcast
type BroadcastConfirmer interface {
	ConfirmBroadcast(ctx context.Context, spec *domain.KindSpec, network *domain.NetworkContext, args []string) (bool, error)
}

// NetworkSelector lets the operator pick a network when none was given
type NetworkSelector interface {
	SelectNetwork(ctx context.Context, networks []string) (string, error)
}

// Progress tracking interfaces

// ExecutionStage represents a stage in the deployment pipeline
type ExecutionStage string

const (
	StageValidating ExecutionStage = "Validating"
	StageCompiling  ExecutionStage = "Compiling"
	StageDeploying  ExecutionStage = "Deploying"
	StageVerifying  ExecutionStage = "Verifying"
	StageCompleted  ExecutionStage = "Completed"
)

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage    string
	Current  int
	Total    int
	Message  string
	Spinner  bool
	Metadata interface{}
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}
