package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pz-mod-installer/internal/app"
)

func newListCommand() *cobra.Command {
	opts := installerOptions{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Extract the selected mods from the spreadsheet into mod_list.txt",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd.Context(), cmd, opts)
		},
	}
	addInstallerFlags(cmd, &opts)
	return cmd
}

func runList(ctx context.Context, cmd *cobra.Command, opts installerOptions) error {
	cfg := installerConfig(cmd, opts)
	if err := ensureFlagValue(&cfg, os.Stdin, cmd.OutOrStdout(), stdinIsTerminal()); err != nil {
		return err
	}
	service := newAppService()
	result, err := service.List(ctx, app.ListRequest{Config: cfg})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for idx, id := range result.List.IDs {
		name := ""
		if idx < len(result.List.Names) {
			name = result.List.Names[idx]
		}
		fmt.Fprintf(out, "%s\t%s\n", id, name)
	}
	fmt.Fprintf(out, "found %d unique mods (%d duplicates, %d invalid rows)\n",
		len(result.List.IDs), len(result.List.Duplicates), result.List.Skipped)
	fmt.Fprintf(out, "wrote %s\n", result.ModListPath)
	return nil
}
