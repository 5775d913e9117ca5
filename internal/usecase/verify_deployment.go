package usecase

import (
	"context"
	"fmt"

	"github.com/trebuchet-org/stgdeploy/internal/domain"
)

// VerifyDeployment re-submits an already deployed contract for verification
type VerifyDeployment struct {
	registry  *domain.Registry
	submitter *SubmitVerification
}

// NewVerifyDeployment creates a new verify deployment use case
func NewVerifyDeployment(registry *domain.Registry, submitter *SubmitVerification) *VerifyDeployment {
	return &VerifyDeployment{
		registry:  registry,
		submitter: submitter,
	}
}

// VerifyOptions contains the input of a manual verification
type VerifyOptions struct {
	Kind    domain.ContractKind
	Address string
	// Args are the constructor arguments used at creation, ignored for proxies
	Args    []string
	Network *domain.NetworkContext
}

// VerifyResult contains the result of verification
type VerifyResult struct {
	Kind         domain.ContractKind        `json:"kind"`
	ContractName string                     `json:"contractName"`
	Address      string                     `json:"address"`
	Network      string                     `json:"network"`
	Outcome      domain.VerificationOutcome `json:"outcome"`
}

// Run verifies the contract of the given kind at the given address
func (v *VerifyDeployment) Run(ctx context.Context, options VerifyOptions) (*VerifyResult, error) {
	spec, err := v.registry.Get(options.Kind)
	if err != nil {
		return nil, err
	}
	if options.Address == "" {
		return nil, &domain.ValidationError{Kind: options.Kind, Field: "address"}
	}
	if options.Network == nil {
		return nil, fmt.Errorf("%w: no network selected", domain.ErrInvalidParams)
	}
	if !options.Network.HasVerifier() {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoVerifier, options.Network)
	}

	args := options.Args
	if args == nil {
		args = []string{}
	}

	outcome := v.submitter.Submit(ctx, &domain.DeploymentResult{
		Kind:            spec.Kind,
		ContractName:    spec.ContractName,
		Strategy:        spec.Strategy,
		Address:         options.Address,
		ConstructorArgs: args,
	}, options.Network)

	result := &VerifyResult{
		Kind:         spec.Kind,
		ContractName: spec.ContractName,
		Address:      options.Address,
		Network:      options.Network.Name,
		Outcome:      outcome,
	}
	if !outcome.Verified {
		return result, fmt.Errorf("%w: %s", domain.ErrVerificationFailed, outcome.Reason)
	}
	return result, nil
}
