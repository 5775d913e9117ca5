package verification

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/trebuchet-org/stgdeploy/internal/domain"
	"github.com/trebuchet-org/stgdeploy/internal/domain/config"
)

// CommandRunner executes forge with args in dir and returns its combined output
type CommandRunner func(ctx context.Context, dir string, args []string) ([]byte, error)

func runForge(ctx context.Context, dir string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "forge", args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

// ForgeRequest is one forge verify-contract invocation
type ForgeRequest struct {
	Address string
	// Identifier is path:Name of the compiled contract
	Identifier string
	// ConstructorArgs is the hex encoded constructor calldata, without 0x
	ConstructorArgs string
}

// InternalVerifier submits contracts through forge verify-contract
type InternalVerifier struct {
	log         *slog.Logger
	projectRoot string
	verifier    string
	run         CommandRunner
}

// NewInternalVerifier creates a new internal verifier
func NewInternalVerifier(cfg *config.RuntimeConfig, log *slog.Logger) *InternalVerifier {
	return &InternalVerifier{
		log:         log.With("component", "InternalVerifier"),
		projectRoot: cfg.ProjectRoot,
		verifier:    cfg.Deploy.Verifier,
		run:         runForge,
	}
}

// WithRunner replaces the forge command runner
func (v *InternalVerifier) WithRunner(run CommandRunner) *InternalVerifier {
	v.run = run
	return v
}

// Verify submits req to the network's explorer. Already verified contracts count as success.
func (v *InternalVerifier) Verify(ctx context.Context, network *domain.NetworkContext, req ForgeRequest) error {
	args := v.buildVerifyArgs(network, req)
	v.log.Debug("running forge verify-contract", "command", v.DumpVerifyCommand(network, req))

	output, err := v.run(ctx, v.projectRoot, args)
	outputStr := strings.TrimSpace(string(output))
	if isAlreadyVerified(outputStr) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %s", domain.ErrVerificationFailed, outputStr)
	}
	if strings.Contains(outputStr, "Contract successfully verified") {
		return nil
	}
	return fmt.Errorf("%w: status unclear: %s", domain.ErrVerificationFailed, outputStr)
}

// DumpVerifyCommand returns the forge command that would be run, with the API key hidden
func (v *InternalVerifier) DumpVerifyCommand(network *domain.NetworkContext, req ForgeRequest) string {
	return "forge " + strings.Join(redactKey(v.buildVerifyArgs(network, req)), " ")
}

// buildVerifyArgs builds the forge verify-contract args
func (v *InternalVerifier) buildVerifyArgs(network *domain.NetworkContext, req ForgeRequest) []string {
	args := []string{
		"verify-contract",
		req.Address,
		req.Identifier,
		"--chain-id", fmt.Sprintf("%d", network.ChainID),
		"--watch",
	}

	if v.verifier != "" && v.verifier != "etherscan" {
		args = append(args, "--verifier", v.verifier)
	}
	if network.ExplorerURL != "" {
		args = append(args, "--verifier-url", network.ExplorerURL)
	}
	if network.ExplorerAPIKey != "" {
		args = append(args, "--etherscan-api-key", network.ExplorerAPIKey)
	}
	if req.ConstructorArgs != "" {
		args = append(args, "--constructor-args", strings.TrimPrefix(req.ConstructorArgs, "0x"))
	}

	return args
}

func isAlreadyVerified(output string) bool {
	return strings.Contains(output, "Already Verified") ||
		strings.Contains(output, "is already verified") ||
		strings.Contains(output, "already verified")
}

// redactKey hides the value following --etherscan-api-key
func redactKey(args []string) []string {
	out := make([]string, len(args))
	copy(out, args)
	for i := 0; i < len(out)-1; i++ {
		if out[i] == "--etherscan-api-key" {
			out[i+1] = "***"
		}
	}
	return out
}

// explorerAddressURL builds the explorer page of an address from its API URL
func explorerAddressURL(network *domain.NetworkContext, address string) string {
	if network.ExplorerURL == "" {
		return ""
	}
	base := strings.TrimSuffix(network.ExplorerURL, "/")
	base = strings.TrimSuffix(base, "/api")
	base = strings.Replace(base, "://api.", "://", 1)
	base = strings.Replace(base, "://api-", "://", 1)
	return fmt.Sprintf("%s/address/%s#code", base, address)
}
