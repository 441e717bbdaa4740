package core

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"pz-mod-installer/internal/types"
)

const (
	DefaultTimeout      = 600 * time.Second
	DefaultPollInterval = time.Second
	DefaultValueColumn  = "D"
	DefaultFlagColumn   = "G"
	DefaultNameColumn   = "B"
)

type ConfigKey struct {
	Key         string
	Description string
}

// RequiredConfigKeys lists the keys every install run needs, with the
// hint shown when one is missing.
var RequiredConfigKeys = []ConfigKey{
	{Key: "steamcmd_path", Description: "Path to the steamcmd executable"},
	{Key: "steam_user", Description: "Steam username (anonymous for public items)"},
	{Key: "game_id", Description: "Workshop app ID (108600 for Project Zomboid)"},
	{Key: "steamcmd_mods_dir", Description: "SteamCMD working directory"},
	{Key: "zomboid_mods_dir", Description: "Project Zomboid mods directory"},
}

var FlattenConfigKeys = []ConfigKey{
	RequiredConfigKeys[2],
	RequiredConfigKeys[3],
	RequiredConfigKeys[4],
}

type ConfigCompiler struct{}

// CompiledConfig splits the flat configuration into the pieces each
// component consumes.
type CompiledConfig struct {
	Downloader         types.DownloaderConfig
	Policy             types.RetryPolicy
	Spreadsheet        types.SpreadsheetConfig
	ZomboidModsDir     string
	LogDir             string
	OutputDir          string
	WorkshopBaseURL    string
	SkipDependencies   bool
	MaxDependencyNodes int
}

func NewConfigCompiler() ConfigCompiler {
	return ConfigCompiler{}
}

// ValidateInstall checks everything an install run needs.
func (c ConfigCompiler) ValidateInstall(ctx context.Context, cfg types.InstallerConfig) error {
	if err := requireKeys(cfg, RequiredConfigKeys); err != nil {
		return err
	}
	if err := validateGameID(cfg.GameID); err != nil {
		return err
	}
	if err := c.ValidatePolicy(cfg); err != nil {
		return err
	}
	log.Ctx(ctx).Debug().Str("game_id", cfg.GameID).Msg("configuration validated")
	return nil
}

// ValidateFlatten checks only the keys needed to locate and reorganize an
// existing download.
func (c ConfigCompiler) ValidateFlatten(cfg types.InstallerConfig) error {
	if err := requireKeys(cfg, FlattenConfigKeys); err != nil {
		return err
	}
	return validateGameID(cfg.GameID)
}

// ValidatePolicy checks the retry and throttling knobs only.
func (c ConfigCompiler) ValidatePolicy(cfg types.InstallerConfig) error {
	if cfg.TimeoutSeconds < 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("timeout_seconds must not be negative")
	}
	if cfg.MaxDependencyNodes < 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("max_dependency_nodes must not be negative")
	}
	if cfg.MaxAttempts < 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("max_attempts must not be negative")
	}
	if err := validateJitter("retry_jitter", cfg.RetryJitterMin, cfg.RetryJitterMax); err != nil {
		return err
	}
	return validateJitter("item_jitter", cfg.ItemJitterMin, cfg.ItemJitterMax)
}

// Compile applies defaults and splits cfg per component.
func (c ConfigCompiler) Compile(cfg types.InstallerConfig) CompiledConfig {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	policy := NormalizeRetryPolicy(types.RetryPolicy{
		MaxAttempts: cfg.MaxAttempts,
		RetryJitter: types.JitterRange{Min: cfg.RetryJitterMin, Max: cfg.RetryJitterMax},
		ItemJitter:  types.JitterRange{Min: cfg.ItemJitterMin, Max: cfg.ItemJitterMax},
	})
	logDir := strings.TrimSpace(cfg.LogDir)
	if logDir == "" {
		logDir = "logs"
	}
	outputDir := strings.TrimSpace(cfg.OutputDir)
	if outputDir == "" {
		outputDir = "."
	}
	return CompiledConfig{
		Downloader: types.DownloaderConfig{
			SteamCmdPath:    strings.TrimSpace(cfg.SteamCmdPath),
			SteamUser:       strings.TrimSpace(cfg.SteamUser),
			GameID:          strings.TrimSpace(cfg.GameID),
			SteamCmdModsDir: strings.TrimSpace(cfg.SteamCmdModsDir),
			Timeout:         timeout,
			PollInterval:    DefaultPollInterval,
		},
		Policy: policy,
		Spreadsheet: types.SpreadsheetConfig{
			Path:        strings.TrimSpace(cfg.Spreadsheet),
			ValueColumn: defaultString(cfg.ValueColumn, DefaultValueColumn),
			FlagColumn:  defaultString(cfg.FlagColumn, DefaultFlagColumn),
			NameColumn:  defaultString(cfg.NameColumn, DefaultNameColumn),
			FlagValue:   strings.TrimSpace(cfg.FlagValue),
		},
		ZomboidModsDir:     strings.TrimSpace(cfg.ZomboidModsDir),
		LogDir:             logDir,
		OutputDir:          outputDir,
		WorkshopBaseURL:    strings.TrimSpace(cfg.WorkshopBaseURL),
		SkipDependencies:   cfg.SkipDependencies,
		MaxDependencyNodes: cfg.MaxDependencyNodes,
	}
}

// WorkshopContentPath is where steamcmd places downloaded items for the
// configured game.
func WorkshopContentPath(cfg types.DownloaderConfig) string {
	return filepath.Join(cfg.SteamCmdModsDir, "steamapps", "workshop", "content", cfg.GameID)
}

// MissingConfigKeys returns the required keys that are blank in cfg.
func MissingConfigKeys(cfg types.InstallerConfig) []string {
	return missingKeys(cfg, RequiredConfigKeys)
}

func missingKeys(cfg types.InstallerConfig, required []ConfigKey) []string {
	values := map[string]string{
		"steamcmd_path":     cfg.SteamCmdPath,
		"steam_user":        cfg.SteamUser,
		"game_id":           cfg.GameID,
		"steamcmd_mods_dir": cfg.SteamCmdModsDir,
		"zomboid_mods_dir":  cfg.ZomboidModsDir,
	}
	var missing []string
	for _, entry := range required {
		if strings.TrimSpace(values[entry.Key]) == "" {
			missing = append(missing, entry.Key)
		}
	}
	return missing
}

func requireKeys(cfg types.InstallerConfig, required []ConfigKey) error {
	missing := missingKeys(cfg, required)
	if len(missing) == 0 {
		return nil
	}
	var hints []string
	for _, entry := range required {
		if slices.Contains(missing, entry.Key) {
			hints = append(hints, fmt.Sprintf("%s (%s)", entry.Key, entry.Description))
		}
	}
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg("missing required configuration keys: " + strings.Join(hints, ", "))
}

func validateGameID(gameID string) error {
	if _, err := strconv.ParseUint(strings.TrimSpace(gameID), 10, 64); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("game_id must be numeric: %s", gameID))
	}
	return nil
}

func validateJitter(name string, low float64, high float64) error {
	if low < 0 || high < 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("%s bounds must not be negative", name))
	}
	if high < low {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("%s max must not be below min", name))
	}
	return nil
}

func defaultString(value string, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	return strings.ToUpper(trimmed)
}
