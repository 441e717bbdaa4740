package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"pz-mod-installer/internal/app"
)

func newRetryFailedCommand() *cobra.Command {
	opts := installerOptions{}
	cmd := &cobra.Command{
		Use:   "retry-failed",
		Short: "Reinstall the mods recorded in the failure log",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRetryFailed(cmd.Context(), cmd, opts)
		},
	}
	addInstallerFlags(cmd, &opts)
	return cmd
}

func runRetryFailed(ctx context.Context, cmd *cobra.Command, opts installerOptions) error {
	cfg := installerConfig(cmd, opts)
	service := newAppService()
	result, err := service.RetryFailed(ctx, app.RetryFailedRequest{Config: cfg})
	out := cmd.OutOrStdout()
	if len(result.Retried) > 0 {
		fmt.Fprintf(out, "Retrying %d mods from the failure log\n", len(result.Retried))
	}
	if result.Report.Total() > 0 || result.Report.Interrupted {
		printInstallSummary(out, result.Report)
	}
	printFiles(out, result.Files)
	if err != nil {
		return err
	}
	printFlattenSummary(out, cfg.ZomboidModsDir, result.Flatten)
	return nil
}
