package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"pz-mod-installer/internal/app"
)

func newValidateCommand() *cobra.Command {
	opts := installerOptions{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration and spreadsheet without downloading",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd.Context(), cmd, opts)
		},
	}
	addInstallerFlags(cmd, &opts)
	return cmd
}

func runValidate(ctx context.Context, cmd *cobra.Command, opts installerOptions) error {
	cfg := installerConfig(cmd, opts)
	if err := ensureFlagValue(&cfg, nil, cmd.OutOrStdout(), false); err != nil {
		return err
	}
	service := newAppService()
	result, err := service.Validate(ctx, app.ValidateRequest{Config: cfg})
	out := cmd.OutOrStdout()
	for _, warning := range result.Warnings {
		fmt.Fprintf(out, "warning: %s\n", warning)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "validated: %d mods selected\n", result.Requested)
	return nil
}
