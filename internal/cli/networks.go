package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/stgdeploy/internal/cli/render"
	"github.com/trebuchet-org/stgdeploy/internal/usecase"
)

// NewNetworksCmd creates the networks command
func NewNetworksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "networks",
		Short: "List available networks from foundry.toml",
		Long: `List all networks configured in the [rpc_endpoints] section of foundry.toml.

Each network is resolved to its chain ID and shown with its class (mainchain,
sidechain, local or other) and whether a verification backend is configured.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListNetworks.Run(cmd.Context(), usecase.ListNetworksParams{})
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.RenderJSON(cmd.OutOrStdout(), networksJSON(result))
			}
			return render.NewNetworksRenderer(cmd.OutOrStdout()).Render(result)
		},
	}

	return cmd
}

type networkJSON struct {
	Name        string `json:"name"`
	Class       string `json:"class"`
	ChainID     uint64 `json:"chainId,omitempty"`
	HasVerifier bool   `json:"hasVerifier"`
	Error       string `json:"error,omitempty"`
}

func networksJSON(result *usecase.ListNetworksResult) []networkJSON {
	out := make([]networkJSON, 0, len(result.Networks))
	for _, n := range result.Networks {
		entry := networkJSON{
			Name:        n.Name,
			Class:       n.Class,
			ChainID:     n.ChainID,
			HasVerifier: n.HasVerifier,
		}
		if n.Error != nil {
			entry.Error = n.Error.Error()
		}
		out = append(out, entry)
	}
	return out
}
