package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"pz-mod-installer/internal/app"
	"pz-mod-installer/internal/types"
)

func newResolveCommand() *cobra.Command {
	opts := installerOptions{}
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve workshop dependencies without downloading",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runResolve(cmd.Context(), cmd, opts)
		},
	}
	addInstallerFlags(cmd, &opts)
	return cmd
}

func runResolve(ctx context.Context, cmd *cobra.Command, opts installerOptions) error {
	cfg := installerConfig(cmd, opts)
	if err := ensureFlagValue(&cfg, os.Stdin, cmd.OutOrStdout(), stdinIsTerminal()); err != nil {
		return err
	}
	service := newAppService()
	result, err := service.Resolve(ctx, app.ResolveRequest{Config: cfg})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "requested: %d\n", len(result.Requested))
	fmt.Fprintf(out, "dependencies: %d\n", len(result.Dependencies))
	if len(result.Dependencies) > 0 {
		fmt.Fprintf(out, "  %s\n", strings.Join(types.ModIDStrings(result.Dependencies), ", "))
	}
	printFiles(out, result.Files)
	return nil
}
