package cli

import (
	"context"

	"github.com/spf13/cobra"

	"pz-mod-installer/internal/app"
)

func newFlattenCommand() *cobra.Command {
	opts := installerOptions{}
	cmd := &cobra.Command{
		Use:   "flatten",
		Short: "Move downloaded workshop content into the game's mods directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFlatten(cmd.Context(), cmd, opts)
		},
	}
	addInstallerFlags(cmd, &opts)
	return cmd
}

func runFlatten(ctx context.Context, cmd *cobra.Command, opts installerOptions) error {
	service := newAppService()
	result, err := service.Flatten(ctx, app.FlattenRequest{Config: installerConfig(cmd, opts)})
	if err != nil {
		return err
	}
	printFlattenSummary(cmd.OutOrStdout(), result.DestDir, result.Result)
	return nil
}
