package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pz-mod-installer/internal/types"
)

const defaultFlagValue = "1"

// installerOptions holds the flags shared by every command that reads the
// installer configuration. Unset flags fall back to the config file and
// environment.
type installerOptions struct {
	SteamCmdPath     string
	SteamUser        string
	GameID           string
	SteamCmdModsDir  string
	ZomboidModsDir   string
	Spreadsheet      string
	ValueColumn      string
	FlagColumn       string
	NameColumn       string
	FlagValue        string
	TimeoutSeconds   int
	MaxAttempts      int
	RetryJitterMin   float64
	RetryJitterMax   float64
	ItemJitterMin    float64
	ItemJitterMax    float64
	LogDir           string
	OutputDir        string
	WorkshopBaseURL  string
	SkipDependencies bool
	MaxDepNodes      int
}

func addInstallerFlags(cmd *cobra.Command, opts *installerOptions) {
	flags := cmd.Flags()
	flags.StringVar(&opts.SteamCmdPath, "steamcmd-path", "", "Path to the steamcmd executable")
	flags.StringVar(&opts.SteamUser, "steam-user", "", "Steam username (anonymous for public items)")
	flags.StringVar(&opts.GameID, "game-id", "", "Workshop app ID")
	flags.StringVar(&opts.SteamCmdModsDir, "steamcmd-mods-dir", "", "SteamCMD working directory")
	flags.StringVar(&opts.ZomboidModsDir, "zomboid-mods-dir", "", "Project Zomboid mods directory")
	flags.StringVar(&opts.Spreadsheet, "spreadsheet", "", "Spreadsheet with the mod list")
	flags.StringVar(&opts.ValueColumn, "value-column", "", "Column holding workshop ids (default D)")
	flags.StringVar(&opts.FlagColumn, "flag-column", "", "Column holding the selection flag (default G)")
	flags.StringVar(&opts.NameColumn, "name-column", "", "Column holding mod names (default B)")
	flags.StringVar(&opts.FlagValue, "flag-value", "", "Flag value that selects a row")
	flags.IntVar(&opts.TimeoutSeconds, "timeout", 0, "Per-attempt steamcmd timeout in seconds (default 600)")
	flags.IntVar(&opts.MaxAttempts, "max-attempts", 0, "Download attempts per mod (default 3)")
	flags.Float64Var(&opts.RetryJitterMin, "retry-jitter-min", 0, "Minimum delay between attempts in seconds")
	flags.Float64Var(&opts.RetryJitterMax, "retry-jitter-max", 0, "Maximum delay between attempts in seconds")
	flags.Float64Var(&opts.ItemJitterMin, "item-jitter-min", 0, "Minimum delay between mods in seconds")
	flags.Float64Var(&opts.ItemJitterMax, "item-jitter-max", 0, "Maximum delay between mods in seconds")
	flags.StringVar(&opts.LogDir, "log-dir", "", "Directory for the failure log (default logs)")
	flags.StringVar(&opts.OutputDir, "output", "", "Directory for report files (default .)")
	flags.StringVar(&opts.WorkshopBaseURL, "workshop-base-url", "", "Steam Community base URL")
	flags.BoolVar(&opts.SkipDependencies, "skip-dependencies", false, "Install only the listed mods")
	flags.IntVar(&opts.MaxDepNodes, "max-dependency-nodes", 0, "Cap on resolved dependencies (0 = unlimited)")

	_ = viper.BindPFlag("steamcmd_path", flags.Lookup("steamcmd-path"))
	_ = viper.BindPFlag("steam_user", flags.Lookup("steam-user"))
	_ = viper.BindPFlag("game_id", flags.Lookup("game-id"))
	_ = viper.BindPFlag("steamcmd_mods_dir", flags.Lookup("steamcmd-mods-dir"))
	_ = viper.BindPFlag("zomboid_mods_dir", flags.Lookup("zomboid-mods-dir"))
	_ = viper.BindPFlag("spreadsheet", flags.Lookup("spreadsheet"))
	_ = viper.BindPFlag("value_column", flags.Lookup("value-column"))
	_ = viper.BindPFlag("flag_column", flags.Lookup("flag-column"))
	_ = viper.BindPFlag("name_column", flags.Lookup("name-column"))
	_ = viper.BindPFlag("flag_value", flags.Lookup("flag-value"))
	_ = viper.BindPFlag("timeout_seconds", flags.Lookup("timeout"))
	_ = viper.BindPFlag("max_attempts", flags.Lookup("max-attempts"))
	_ = viper.BindPFlag("retry_jitter_min", flags.Lookup("retry-jitter-min"))
	_ = viper.BindPFlag("retry_jitter_max", flags.Lookup("retry-jitter-max"))
	_ = viper.BindPFlag("item_jitter_min", flags.Lookup("item-jitter-min"))
	_ = viper.BindPFlag("item_jitter_max", flags.Lookup("item-jitter-max"))
	_ = viper.BindPFlag("log_dir", flags.Lookup("log-dir"))
	_ = viper.BindPFlag("output_dir", flags.Lookup("output"))
	_ = viper.BindPFlag("workshop_base_url", flags.Lookup("workshop-base-url"))
	_ = viper.BindPFlag("skip_dependencies", flags.Lookup("skip-dependencies"))
	_ = viper.BindPFlag("max_dependency_nodes", flags.Lookup("max-dependency-nodes"))
}

// installerConfig merges flags over config file and environment values.
func installerConfig(cmd *cobra.Command, opts installerOptions) types.InstallerConfig {
	return types.InstallerConfig{
		SteamCmdPath:       resolveString(cmd, opts.SteamCmdPath, "steamcmd_path", "steamcmd-path"),
		SteamUser:          resolveString(cmd, opts.SteamUser, "steam_user", "steam-user"),
		GameID:             resolveString(cmd, opts.GameID, "game_id", "game-id"),
		SteamCmdModsDir:    resolveString(cmd, opts.SteamCmdModsDir, "steamcmd_mods_dir", "steamcmd-mods-dir"),
		ZomboidModsDir:     resolveString(cmd, opts.ZomboidModsDir, "zomboid_mods_dir", "zomboid-mods-dir"),
		Spreadsheet:        resolveString(cmd, opts.Spreadsheet, "spreadsheet", "spreadsheet"),
		ValueColumn:        resolveString(cmd, opts.ValueColumn, "value_column", "value-column"),
		FlagColumn:         resolveString(cmd, opts.FlagColumn, "flag_column", "flag-column"),
		NameColumn:         resolveString(cmd, opts.NameColumn, "name_column", "name-column"),
		FlagValue:          resolveString(cmd, opts.FlagValue, "flag_value", "flag-value"),
		TimeoutSeconds:     resolveInt(cmd, opts.TimeoutSeconds, "timeout_seconds", "timeout"),
		MaxAttempts:        resolveInt(cmd, opts.MaxAttempts, "max_attempts", "max-attempts"),
		RetryJitterMin:     resolveFloat(cmd, opts.RetryJitterMin, "retry_jitter_min", "retry-jitter-min"),
		RetryJitterMax:     resolveFloat(cmd, opts.RetryJitterMax, "retry_jitter_max", "retry-jitter-max"),
		ItemJitterMin:      resolveFloat(cmd, opts.ItemJitterMin, "item_jitter_min", "item-jitter-min"),
		ItemJitterMax:      resolveFloat(cmd, opts.ItemJitterMax, "item_jitter_max", "item-jitter-max"),
		LogDir:             resolveString(cmd, opts.LogDir, "log_dir", "log-dir"),
		OutputDir:          resolveString(cmd, opts.OutputDir, "output_dir", "output"),
		WorkshopBaseURL:    resolveString(cmd, opts.WorkshopBaseURL, "workshop_base_url", "workshop-base-url"),
		SkipDependencies:   resolveBool(cmd, opts.SkipDependencies, "skip_dependencies", "skip-dependencies"),
		MaxDependencyNodes: resolveInt(cmd, opts.MaxDepNodes, "max_dependency_nodes", "max-dependency-nodes"),
		LogLevel:           viper.GetString("log_level"),
	}
}

// ensureFlagValue asks for the selection flag when none is configured and
// stdin is a terminal; otherwise rows flagged "1" are selected.
func ensureFlagValue(cfg *types.InstallerConfig, in io.Reader, out io.Writer, interactive bool) error {
	if strings.TrimSpace(cfg.FlagValue) != "" {
		return nil
	}
	if !interactive {
		cfg.FlagValue = defaultFlagValue
		return nil
	}
	fmt.Fprintf(out, "Flag value to select mods [%s]: ", defaultFlagValue)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	cfg.FlagValue = strings.TrimSpace(line)
	if cfg.FlagValue == "" {
		cfg.FlagValue = defaultFlagValue
	}
	return nil
}

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func resolveBool(cmd *cobra.Command, value bool, key string, flagName string) bool {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetBool(key)
}

func resolveInt(cmd *cobra.Command, value int, key string, flagName string) int {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetInt(key)
}

func resolveFloat(cmd *cobra.Command, value float64, key string, flagName string) float64 {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetFloat64(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
