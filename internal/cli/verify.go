package cli

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/stgdeploy/internal/cli/render"
	"github.com/trebuchet-org/stgdeploy/internal/domain"
	"github.com/trebuchet-org/stgdeploy/internal/usecase"
)

// NewVerifyCmd creates the verify command
func NewVerifyCmd() *cobra.Command {
	var constructorArgs []string

	kinds := lo.Map(domain.NewRegistry().All(), func(s *domain.KindSpec, _ int) string {
		return string(s.Kind)
	})

	cmd := &cobra.Command{
		Use:   "verify <kind> <address>",
		Short: "Submit a deployed contract for explorer verification",
		Long: fmt.Sprintf(`Submit an already deployed contract to the block explorer of the network.

Deployments verify automatically; use this command to retry a verification that
failed. Proxies are verified through their EIP-1967 implementation.

Kinds: %s`, strings.Join(kinds, ", ")),
		Args:      cobra.ExactArgs(2),
		ValidArgs: kinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			kind := domain.ContractKind(args[0])
			if _, err := app.Registry.Get(kind); err != nil {
				return fmt.Errorf("%w (valid kinds: %s)", err, strings.Join(kinds, ", "))
			}

			network, err := resolveNetwork(cmd, app)
			if err != nil {
				return err
			}

			result, err := app.VerifyDeployment.Run(cmd.Context(), usecase.VerifyOptions{
				Kind:    kind,
				Address: args[1],
				Args:    constructorArgs,
				Network: network,
			})
			stopProgress(app)
			if result == nil {
				return err
			}

			if app.Config.JSON {
				if renderErr := render.RenderJSON(cmd.OutOrStdout(), result); renderErr != nil {
					return renderErr
				}
			} else if renderErr := render.NewVerifyRenderer(cmd.OutOrStdout()).Render(result); renderErr != nil {
				return renderErr
			}

			if err != nil {
				return &reportedError{err: err}
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&constructorArgs, "args", nil, "Constructor arguments used at deployment (direct deployments only)")

	return cmd
}
