package domain

import (
	"encoding/json"
)

// DeploymentResult is produced once a contract is confirmed on-chain
type DeploymentResult struct {
	Kind         ContractKind `json:"kind"`
	ContractName string       `json:"contractName"`
	Strategy     Strategy     `json:"strategy"`
	Address      string       `json:"address"`
	// Implementation is the logic contract behind a proxy, empty for direct deployments
	Implementation  string   `json:"implementation,omitempty"`
	TransactionHash string   `json:"transactionHash,omitempty"`
	ConstructorArgs []string `json:"constructorArgs"`
}

// VerificationArgs returns the constructor arguments submitted to the explorer.
// Proxies are verified by address alone.
func (r *DeploymentResult) VerificationArgs() []string {
	if r.Strategy == StrategyProxy {
		return nil
	}
	return r.ConstructorArgs
}

// VerificationOutcome is the result of a verification submission
type VerificationOutcome struct {
	Submitted bool   `json:"submitted"`
	Verified  bool   `json:"verified"`
	Reason    string `json:"reason,omitempty"`
	URL       string `json:"url,omitempty"`
}

// ReportStatus is the terminal state of a deployment task
type ReportStatus string

const (
	ReportStatusSkipped            ReportStatus = "skipped"
	ReportStatusValidationFailed   ReportStatus = "validation-failed"
	ReportStatusDeployFailed       ReportStatus = "deploy-failed"
	ReportStatusDeployedUnverified ReportStatus = "deployed-unverified"
	ReportStatusDeployedVerified   ReportStatus = "deployed-verified"
)

// DeployReport summarizes one deployment task
type DeployReport struct {
	Kind           ContractKind         `json:"kind"`
	ContractName   string               `json:"contractName"`
	Network        string               `json:"network"`
	Status         ReportStatus         `json:"status"`
	Address        string               `json:"address,omitempty"`
	Implementation string               `json:"implementation,omitempty"`
	Verified       *bool                `json:"verified,omitempty"`
	Verification   *VerificationOutcome `json:"verification,omitempty"`
	SkippedReason  string               `json:"skippedReason,omitempty"`
	Err            error                `json:"-"`
}

// Deployed reports whether a contract was created
func (r *DeployReport) Deployed() bool {
	return r.Status == ReportStatusDeployedVerified || r.Status == ReportStatusDeployedUnverified
}

// Failed reports whether the task ended in a failure state
func (r *DeployReport) Failed() bool {
	return r.Status == ReportStatusValidationFailed || r.Status == ReportStatusDeployFailed
}

// MarshalJSON adds the error message and deployed flag
func (r *DeployReport) MarshalJSON() ([]byte, error) {
	type alias DeployReport
	out := struct {
		*alias
		Deployed bool   `json:"deployed"`
		Error    string `json:"error,omitempty"`
	}{alias: (*alias)(r), Deployed: r.Deployed()}
	if r.Err != nil {
		out.Error = r.Err.Error()
	}
	return json.Marshal(out)
}
