package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for deployment operations
var (
	// ErrUnknownKind is returned when a contract kind is not registered
	ErrUnknownKind = errors.New("unknown contract kind")

	// ErrInvalidParams is returned when a required parameter is missing or unknown
	ErrInvalidParams = errors.New("invalid argument")

	// ErrNetworkMismatch signals that the active network does not host this kind.
	// It is a designed skip, never surfaced as a failure.
	ErrNetworkMismatch = errors.New("network mismatch")

	// ErrCompilationFailed is returned when the contract build fails
	ErrCompilationFailed = errors.New("compilation failed")

	// ErrChainSubmission is returned when a deployment transaction fails or is not confirmed
	ErrChainSubmission = errors.New("chain submission failed")

	// ErrVerificationFailed is returned when an explorer rejects a verification
	ErrVerificationFailed = errors.New("verification failed")

	// ErrNoVerifier is returned when a network has no verification backend
	ErrNoVerifier = errors.New("no verification backend for network")

	// ErrArtifactNotFound is returned when a compiled artifact can't be found
	ErrArtifactNotFound = errors.New("artifact not found")
)

// ValidationError reports a missing or unknown parameter
type ValidationError struct {
	Kind   ContractKind
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "missing required parameter"
	}
	return fmt.Sprintf("%s: %s %q for %s", ErrInvalidParams, reason, e.Field, e.Kind)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidParams }

// CompilationError wraps a failure of the compiler collaborator
type CompilationError struct {
	Err error
}

func (e *CompilationError) Error() string {
	return fmt.Sprintf("%s: %v", ErrCompilationFailed, e.Err)
}

func (e *CompilationError) Unwrap() []error { return []error{ErrCompilationFailed, e.Err} }

// ChainSubmissionError wraps a failure of the chain client collaborator
type ChainSubmissionError struct {
	ContractName string
	Err          error
}

func (e *ChainSubmissionError) Error() string {
	return fmt.Sprintf("%s: deploying %s: %v", ErrChainSubmission, e.ContractName, e.Err)
}

func (e *ChainSubmissionError) Unwrap() []error { return []error{ErrChainSubmission, e.Err} }
