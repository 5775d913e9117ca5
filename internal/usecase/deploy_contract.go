package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/trebuchet-org/stgdeploy/internal/domain"
)

// DeployContractParams contains the input of one deployment task
type DeployContractParams struct {
	Kind domain.ContractKind
	// Raw holds the named string parameters as supplied by the operator
	Raw     map[string]string
	Network *domain.NetworkContext
}

// DeployContract orchestrates one contract kind: validate, execute, verify, report
type DeployContract struct {
	registry *domain.Registry
	executor *ExecuteDeployment
	verifier *SubmitVerification
	progress ProgressSink
}

// NewDeployContract creates a new DeployContract use case
func NewDeployContract(
	registry *domain.Registry,
	executor *ExecuteDeployment,
	verifier *SubmitVerification,
	progress ProgressSink,
) *DeployContract {
	if progress == nil {
		progress = NopProgress{}
	}
	return &DeployContract{
		registry: registry,
		executor: executor,
		verifier: verifier,
		progress: progress,
	}
}

// Validate parses and checks the parameters of a kind without any network access.
// On failure it returns a validation-failed report alongside the error.
func (uc *DeployContract) Validate(ctx context.Context, kind domain.ContractKind, raw map[string]string) (domain.Params, *domain.DeployReport, error) {
	spec, err := uc.registry.Get(kind)
	if err != nil {
		return nil, nil, err
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   string(StageValidating),
		Message: fmt.Sprintf("Validating parameters for %s", spec.ContractName),
	})

	typed, err := domain.ParseParams(spec.Kind, raw)
	if err == nil {
		err = typed.Validate()
	}
	if err != nil {
		return nil, &domain.DeployReport{
			Kind:         spec.Kind,
			ContractName: spec.ContractName,
			Status:       domain.ReportStatusValidationFailed,
			Err:          err,
		}, err
	}
	return typed, nil, nil
}

// Run executes the task and always returns a report describing its terminal state.
// The error is non-nil only for validation and deployment failures.
func (uc *DeployContract) Run(ctx context.Context, params DeployContractParams) (*domain.DeployReport, error) {
	spec, err := uc.registry.Get(params.Kind)
	if err != nil {
		return nil, err
	}

	typed, failed, err := uc.Validate(ctx, params.Kind, params.Raw)
	if err != nil {
		if failed != nil && params.Network != nil {
			failed.Network = params.Network.Name
		}
		return failed, err
	}

	report := &domain.DeployReport{
		Kind:         spec.Kind,
		ContractName: spec.ContractName,
	}
	if params.Network != nil {
		report.Network = params.Network.Name
	}

	if params.Network == nil {
		err := fmt.Errorf("%w: no network selected", domain.ErrInvalidParams)
		report.Status = domain.ReportStatusValidationFailed
		report.Err = err
		return report, err
	}

	result, err := uc.executor.Execute(ctx, spec, typed, params.Network)
	switch {
	case errors.Is(err, domain.ErrNetworkMismatch):
		report.Status = domain.ReportStatusSkipped
		report.SkippedReason = spec.SkipMessage
		if report.SkippedReason == "" {
			report.SkippedReason = err.Error()
		}
		return report, nil
	case errors.Is(err, errDeclined):
		report.Status = domain.ReportStatusSkipped
		report.SkippedReason = err.Error()
		return report, nil
	case err != nil:
		report.Status = domain.ReportStatusDeployFailed
		report.Err = err
		return report, err
	}

	report.Address = result.Address
	report.Implementation = result.Implementation

	outcome := uc.verifier.Submit(ctx, result, params.Network)
	report.Verification = &outcome
	if outcome.Submitted {
		verified := outcome.Verified
		report.Verified = &verified
	}
	if outcome.Verified {
		report.Status = domain.ReportStatusDeployedVerified
	} else {
		report.Status = domain.ReportStatusDeployedUnverified
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   string(StageCompleted),
		Message: fmt.Sprintf("%s deployed at %s", spec.ContractName, result.Address),
	})

	return report, nil
}
