package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"pz-mod-installer/internal/core"
	"pz-mod-installer/internal/types"
)

type initOptions struct {
	Path  string
	Force bool
}

func newInitCommand() *cobra.Command {
	opts := initOptions{}
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter configuration file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := writeStarterConfig(opts.Path, opts.Force)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.Path, "path", configName+".yaml", "Where to write the config file")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Overwrite an existing file")
	return cmd
}

// starterConfig holds the documented defaults; paths are left for the
// user to fill in.
func starterConfig() types.InstallerConfig {
	return types.InstallerConfig{
		SteamCmdPath:    "steamcmd",
		SteamUser:       "anonymous",
		GameID:          "108600",
		SteamCmdModsDir: "",
		ZomboidModsDir:  "",
		Spreadsheet:     "Book1.xlsx",
		ValueColumn:     core.DefaultValueColumn,
		FlagColumn:      core.DefaultFlagColumn,
		NameColumn:      core.DefaultNameColumn,
		TimeoutSeconds:  int(core.DefaultTimeout.Seconds()),
		MaxAttempts:     core.DefaultMaxAttempts,
		RetryJitterMin:  core.DefaultRetryJitter.Min,
		RetryJitterMax:  core.DefaultRetryJitter.Max,
		ItemJitterMin:   core.DefaultItemJitter.Min,
		ItemJitterMax:   core.DefaultItemJitter.Max,
		LogDir:          "logs",
		OutputDir:       ".",
		LogLevel:        "info",
	}
}

func writeStarterConfig(path string, force bool) (string, error) {
	if path == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("config path is empty")
	}
	if _, err := os.Stat(path); err == nil && !force {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeAlreadyExists).
			WithMsg("config file already exists: " + path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to inspect config path").
			WithCause(err)
	}
	data, err := yaml.Marshal(starterConfig())
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode config").
			WithCause(err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to create config directory").
				WithCause(err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write config file").
			WithCause(err)
	}
	return path, nil
}
