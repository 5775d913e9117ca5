package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/stgdeploy/internal/app"
	"github.com/trebuchet-org/stgdeploy/internal/cli/render"
	"github.com/trebuchet-org/stgdeploy/internal/domain"
	"github.com/trebuchet-org/stgdeploy/internal/usecase"
	"gopkg.in/yaml.v3"
)

// NewDeployCmd creates the command deploying one contract kind
func NewDeployCmd(spec *domain.KindSpec) *cobra.Command {
	var paramsFile string

	cmd := &cobra.Command{
		Use:   spec.Command,
		Short: spec.Description,
		Long:  deployLong(spec),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			raw, err := collectParams(cmd, spec, paramsFile)
			if err != nil {
				return err
			}

			// Parameters are checked before the network is picked or dialed
			if _, failed, err := app.DeployContract.Validate(cmd.Context(), spec.Kind, raw); err != nil {
				stopProgress(app)
				if failed == nil {
					return err
				}
				failed.Network = app.Config.NetworkName
				return renderReport(cmd, app, failed, err)
			}

			network, err := resolveNetwork(cmd, app)
			if err != nil {
				return err
			}

			report, err := app.DeployContract.Run(cmd.Context(), usecase.DeployContractParams{
				Kind:    spec.Kind,
				Raw:     raw,
				Network: network,
			})
			stopProgress(app)
			if report == nil {
				return err
			}
			return renderReport(cmd, app, report, err)
		},
	}

	for _, p := range spec.Params {
		cmd.Flags().String(p.Flag, "", p.Description)
	}
	cmd.Flags().StringVar(&paramsFile, "params-file", "", "YAML file with parameter values, overridden by flags")

	return cmd
}

// renderReport prints a deploy report and marks err as already shown
func renderReport(cmd *cobra.Command, a *app.App, report *domain.DeployReport, err error) error {
	if a.Config.JSON {
		if renderErr := render.RenderJSON(cmd.OutOrStdout(), report); renderErr != nil {
			return renderErr
		}
	} else if renderErr := render.NewReportRenderer(cmd.OutOrStdout()).Render(report); renderErr != nil {
		return renderErr
	}

	if err != nil {
		return &reportedError{err: err}
	}
	return nil
}

func deployLong(spec *domain.KindSpec) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s.\n\n", spec.Description)
	switch spec.Requirement {
	case domain.RequireMainchain:
		b.WriteString("Only deployed on mainchain networks; other networks are skipped.\n")
	case domain.RequireNotMainchain:
		b.WriteString("Only deployed on non-mainchain networks; mainchain networks are skipped.\n")
	}
	if spec.Strategy == domain.StrategyProxy {
		b.WriteString("The contract is deployed behind an ERC1967 proxy and initialized in the same run.\n")
	}
	if len(spec.Params) > 0 {
		b.WriteString("\nRequired parameters, an empty value fails validation before any network access:\n")
		for _, p := range spec.Params {
			fmt.Fprintf(&b, "  --%s  %s\n", p.Flag, p.Description)
		}
	}
	return b.String()
}

// collectParams merges --params-file values with explicitly set flags
func collectParams(cmd *cobra.Command, spec *domain.KindSpec, paramsFile string) (map[string]string, error) {
	raw := make(map[string]string)

	if paramsFile != "" {
		fromFile, err := loadParamsFile(paramsFile, spec.Kind)
		if err != nil {
			return nil, err
		}
		for name, value := range fromFile {
			raw[name] = value
		}
	}

	for _, p := range spec.Params {
		if f := cmd.Flags().Lookup(p.Flag); f != nil && f.Changed {
			raw[p.Name] = f.Value.String()
		}
	}

	return raw, nil
}

// loadParamsFile reads parameters from YAML. The file is either a flat name/value
// map or holds one section per contract kind.
func loadParamsFile(path string, kind domain.ContractKind) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read params file: %w", err)
	}

	var doc map[string]yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse params file %s: %w", path, err)
	}

	raw := make(map[string]string)
	if section, ok := doc[string(kind)]; ok {
		if err := section.Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s section of %s: %w", kind, path, err)
		}
		return raw, nil
	}

	for name, node := range doc {
		// Sections of other kinds
		if node.Kind != yaml.ScalarNode {
			continue
		}
		raw[name] = node.Value
	}
	return raw, nil
}
