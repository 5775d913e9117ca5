package render

import (
	"fmt"
	"io"

	"github.com/trebuchet-org/stgdeploy/internal/usecase"
)

// VerifyRenderer handles rendering of verification results
type VerifyRenderer struct {
	out io.Writer
}

// NewVerifyRenderer creates a new verify renderer
func NewVerifyRenderer(out io.Writer) *VerifyRenderer {
	return &VerifyRenderer{out: out}
}

// Render renders the result of a manual verification
func (r *VerifyRenderer) Render(result *usecase.VerifyResult) error {
	target := fmt.Sprintf("%s at %s on %s", result.ContractName, result.Address, result.Network)
	if !result.Outcome.Verified {
		msg := "Verification failed for " + target
		if result.Outcome.Reason != "" {
			msg += ": " + result.Outcome.Reason
		}
		fmt.Fprintln(r.out, FormatError(msg))
		return nil
	}

	fmt.Fprintln(r.out, FormatSuccess("Verified "+target))
	if result.Outcome.URL != "" {
		fmt.Fprintf(r.out, "  %s %s\n", labelStyle.Sprintf("%-15s", "Explorer:"), result.Outcome.URL)
	}
	if result.Outcome.Reason != "" {
		fmt.Fprintf(r.out, "  %s %s\n", labelStyle.Sprintf("%-15s", "Message:"), result.Outcome.Reason)
	}
	return nil
}

var _ Renderer[*usecase.VerifyResult] = (*VerifyRenderer)(nil)
