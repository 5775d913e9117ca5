package usecase

import (
	"context"
	"fmt"

	"github.com/trebuchet-org/stgdeploy/internal/domain"
)

// SubmitVerification registers a deployed contract with the network's explorer.
// Failures never affect the deployment outcome.
type SubmitVerification struct {
	verifier ContractVerifier
	progress ProgressSink
}

// NewSubmitVerification creates the verification submitter
func NewSubmitVerification(verifier ContractVerifier, progress ProgressSink) *SubmitVerification {
	if progress == nil {
		progress = NopProgress{}
	}
	return &SubmitVerification{
		verifier: verifier,
		progress: progress,
	}
}

// Submit verifies result on network. Networks without a verification backend are
// skipped without calling the verifier.
func (s *SubmitVerification) Submit(
	ctx context.Context,
	result *domain.DeploymentResult,
	network *domain.NetworkContext,
) domain.VerificationOutcome {
	if !network.HasVerifier() {
		return domain.VerificationOutcome{
			Reason: fmt.Sprintf("%s: %s", domain.ErrNoVerifier, network.Name),
		}
	}

	s.progress.OnProgress(ctx, ProgressEvent{
		Stage:   string(StageVerifying),
		Message: fmt.Sprintf("Verifying %s at %s", result.ContractName, result.Address),
		Spinner: true,
	})

	resp, err := s.verifier.Verify(ctx, network, VerifyRequest{
		Address:         result.Address,
		ContractName:    result.ContractName,
		Strategy:        result.Strategy,
		ConstructorArgs: result.VerificationArgs(),
	})
	if err != nil {
		return domain.VerificationOutcome{
			Submitted: true,
			Reason:    err.Error(),
		}
	}

	return domain.VerificationOutcome{
		Submitted: true,
		Verified:  resp.Verified,
		Reason:    resp.Message,
		URL:       resp.URL,
	}
}
