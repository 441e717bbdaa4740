package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"pz-mod-installer/internal/app"
	"pz-mod-installer/internal/types"
)

func newInstallCommand() *cobra.Command {
	opts := installerOptions{}
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Resolve, download and install the mods listed in the spreadsheet",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInstall(cmd.Context(), cmd, opts)
		},
	}
	addInstallerFlags(cmd, &opts)
	return cmd
}

func runInstall(ctx context.Context, cmd *cobra.Command, opts installerOptions) error {
	cfg := installerConfig(cmd, opts)
	if err := ensureFlagValue(&cfg, os.Stdin, cmd.OutOrStdout(), stdinIsTerminal()); err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	printConfig(out, configDisplay(cfg))

	service := newAppService()
	result, err := service.Install(ctx, app.InstallRequest{Config: cfg})
	if len(result.Requested) > 0 {
		fmt.Fprintf(out, "Requested mods: %d, dependencies: %d, total: %d\n",
			len(result.Requested), len(result.Dependencies), len(result.InstallList))
	}
	if result.Report.Total() > 0 || result.Report.Interrupted {
		printInstallSummary(out, result.Report)
	}
	printFiles(out, result.Files)
	if err != nil {
		return err
	}
	printFlattenSummary(out, cfg.ZomboidModsDir, result.Flatten)
	if result.Report.Failed > 0 {
		fmt.Fprintf(out, "Some mods failed; run retry-failed to try them again\n")
		return nil
	}
	fmt.Fprintln(out, "All mods installed and organized successfully")
	return nil
}

func configDisplay(cfg types.InstallerConfig) map[string]string {
	return map[string]string{
		"Steamcmd Path":     cfg.SteamCmdPath,
		"Steam User":        cfg.SteamUser,
		"Game Id":           cfg.GameID,
		"Steamcmd Mods Dir": cfg.SteamCmdModsDir,
		"Zomboid Mods Dir":  cfg.ZomboidModsDir,
		"Spreadsheet":       cfg.Spreadsheet,
		"Flag Value":        cfg.FlagValue,
		"Skip Dependencies": strconv.FormatBool(cfg.SkipDependencies),
	}
}
