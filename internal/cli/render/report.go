package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/trebuchet-org/stgdeploy/internal/domain"
)

var (
	labelStyle       = color.New(color.Bold)
	addressStyle     = color.New(color.FgWhite)
	verifiedStyle    = color.New(color.FgGreen)
	notVerifiedStyle = color.New(color.FgYellow)
	contractStyle    = color.New(color.FgMagenta, color.Bold)
)

// ReportRenderer renders the outcome of one deployment task
type ReportRenderer struct {
	out io.Writer
}

// NewReportRenderer creates a new report renderer
func NewReportRenderer(out io.Writer) *ReportRenderer {
	return &ReportRenderer{out: out}
}

// Render writes the report. A skip is a single informational line.
func (r *ReportRenderer) Render(report *domain.DeployReport) error {
	switch {
	case report.Status == domain.ReportStatusSkipped:
		fmt.Fprintln(r.out, FormatSkip(fmt.Sprintf("Skipping %s on %s: %s", report.ContractName, report.Network, report.SkippedReason)))
		return nil
	case report.Failed():
		msg := string(report.Status)
		if report.Err != nil {
			msg = report.Err.Error()
		}
		fmt.Fprintln(r.out, FormatError(msg))
		return nil
	}

	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Deployed %s on %s", contractStyle.Sprint(report.ContractName), report.Network)))
	r.field("Address", addressStyle.Sprint(report.Address))
	if report.Implementation != "" {
		r.field("Implementation", addressStyle.Sprint(report.Implementation))
	}
	r.field("Status", titleWords(string(report.Status)))
	r.renderVerification(report.Verification)
	return nil
}

func (r *ReportRenderer) renderVerification(outcome *domain.VerificationOutcome) {
	if outcome == nil {
		return
	}
	switch {
	case outcome.Verified:
		line := verifiedStyle.Sprint("verified")
		if outcome.URL != "" {
			line += " - " + outcome.URL
		}
		r.field("Verification", line)
	case outcome.Reason != "":
		r.field("Verification", notVerifiedStyle.Sprint("not verified")+" - "+outcome.Reason)
	default:
		r.field("Verification", notVerifiedStyle.Sprint("not verified"))
	}
}

func (r *ReportRenderer) field(label, value string) {
	fmt.Fprintf(r.out, "  %s %s\n", labelStyle.Sprintf("%-15s", label+":"), value)
}

var _ Renderer[*domain.DeployReport] = (*ReportRenderer)(nil)
