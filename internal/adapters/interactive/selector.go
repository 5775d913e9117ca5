package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"
	"github.com/trebuchet-org/stgdeploy/internal/domain"
	"github.com/trebuchet-org/stgdeploy/internal/domain/config"
	"github.com/trebuchet-org/stgdeploy/internal/usecase"
)

// SelectorAdapter handles operator prompts
type SelectorAdapter struct {
	nonInteractive bool
	// out receives the broadcast summary; stdout carries only command results
	out io.Writer
	// confirm runs the yes/no prompt, replaceable in tests
	confirm func(label string) (bool, error)
}

// NewSelectorAdapter creates a new selector adapter
func NewSelectorAdapter(cfg *config.RuntimeConfig) *SelectorAdapter {
	return &SelectorAdapter{
		nonInteractive: cfg.NonInteractive,
		out:            os.Stderr,
		confirm:        promptConfirm,
	}
}

// ConfirmBroadcast asks before sending transactions to a live network.
// Local networks and non-interactive runs are confirmed without a prompt.
func (s *SelectorAdapter) ConfirmBroadcast(ctx context.Context, spec *domain.KindSpec, network *domain.NetworkContext, args []string) (bool, error) {
	if s.nonInteractive || network.Class == domain.NetworkClassLocal {
		return true, nil
	}

	bold := color.New(color.Bold)
	fmt.Fprintf(s.out, "\n%s %s\n", bold.Sprint("Contract:"), spec.ContractName)
	fmt.Fprintf(s.out, "%s %s\n", bold.Sprint("Strategy:"), strings.ToLower(string(spec.Strategy)))
	fmt.Fprintf(s.out, "%s %s\n", bold.Sprint("Network: "), network)
	for i, p := range spec.Params {
		if i < len(args) {
			fmt.Fprintf(s.out, "%s %s\n", bold.Sprintf("%-9s", p.Name+":"), args[i])
		}
	}

	return s.confirm(fmt.Sprintf("Broadcast deployment to %s", network.Name))
}

// SelectNetwork lets the operator pick one of the configured networks
func (s *SelectorAdapter) SelectNetwork(ctx context.Context, networks []string) (string, error) {
	if s.nonInteractive {
		return "", fmt.Errorf("network is required in non-interactive mode (use --network)")
	}
	if len(networks) == 0 {
		return "", fmt.Errorf("no networks configured in foundry.toml [rpc_endpoints]")
	}
	if len(networks) == 1 {
		return networks[0], nil
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, Enter to select"),
	}

	promptSelect := promptui.Select{
		Label:             "Select network",
		Items:             networks,
		Templates:         templates,
		Size:              10,
		StartInSearchMode: true,
		Searcher:          createFuzzySearchFunc(networks),
		Stdout:            os.Stderr,
	}

	index, _, err := promptSelect.Run()
	if err != nil {
		return "", fmt.Errorf("selection cancelled: %w", err)
	}
	return networks[index], nil
}

func promptConfirm(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
		Stdout:    os.Stderr,
	}
	_, err := prompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, fmt.Errorf("confirmation cancelled: %w", err)
	}
	return true, nil
}

// createFuzzySearchFunc creates a fuzzy search function for promptui
func createFuzzySearchFunc(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		if input == "" {
			return true
		}

		input = strings.ToLower(input)
		item := strings.ToLower(items[index])

		if strings.Contains(item, input) {
			return true
		}

		pattern := fuzzy.Find(input, []string{item})
		return len(pattern) > 0
	}
}

// Ensure the adapter implements the interface
var (
	_ usecase.BroadcastConfirmer = (*SelectorAdapter)(nil)
	_ usecase.NetworkSelector    = (*SelectorAdapter)(nil)
)
