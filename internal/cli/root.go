package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/stgdeploy/internal/app"
	"github.com/trebuchet-org/stgdeploy/internal/config"
	"github.com/trebuchet-org/stgdeploy/internal/domain"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "stgdeploy",
		Short: "Deploy and verify the Stargate adapter and integration contracts",
		Long: `stgdeploy compiles, deploys and verifies the Stargate adapter and integration
contracts of a Foundry project. Each contract kind belongs either on the mainchain
(flow, flowTestnet) or on the other chains, and is skipped on the wrong network.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				return err
			}

			v := config.SetupViper(projectRoot, cmd.Flags())

			appInstance, err := app.InitApp(v)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			if appInstance.Config.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				cmd.PostRun = func(cmd *cobra.Command, args []string) {
					cancel()
				}
			}

			cmd.SetContext(ctx)
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network to deploy on, as named in foundry.toml [rpc_endpoints]")
	rootCmd.PersistentFlags().String("profile", "", "Foundry profile used to compile (default \"default\")")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().BoolP("yes", "y", false, "Broadcast without asking for confirmation")
	rootCmd.PersistentFlags().Bool("json", false, "Output results as JSON")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Abort the command after this duration (0 waits for the chain client)")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "deployment",
		Title: "Deployment Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	for _, spec := range domain.NewRegistry().All() {
		deployCmd := NewDeployCmd(spec)
		deployCmd.GroupID = "deployment"
		rootCmd.AddCommand(deployCmd)
	}

	verifyCmd := NewVerifyCmd()
	verifyCmd.GroupID = "management"
	rootCmd.AddCommand(verifyCmd)

	networksCmd := NewNetworksCmd()
	networksCmd.GroupID = "management"
	rootCmd.AddCommand(networksCmd)

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}

// resolveNetwork returns the network named by --network, prompting when it is absent
func resolveNetwork(cmd *cobra.Command, a *app.App) (*domain.NetworkContext, error) {
	ctx := cmd.Context()
	name := a.Config.NetworkName
	if name == "" {
		selected, err := a.Selector.SelectNetwork(ctx, a.Networks.GetNetworks(ctx))
		if err != nil {
			return nil, err
		}
		name = selected
	}
	return a.Networks.ResolveNetwork(ctx, name)
}

// stopProgress halts any animation before the result is printed
func stopProgress(a *app.App) {
	if s, ok := a.Progress.(interface{ Stop() }); ok {
		s.Stop()
	}
}
