package types

import "time"

// JitterRange is a closed interval of seconds from which a random delay
// is drawn.
type JitterRange struct {
	Min float64 `yaml:"min" json:"min" mapstructure:"min"`
	Max float64 `yaml:"max" json:"max" mapstructure:"max"`
}

// DownloaderConfig carries everything needed to invoke steamcmd.
type DownloaderConfig struct {
	SteamCmdPath    string        `yaml:"steamcmd_path"`
	SteamUser       string        `yaml:"steam_user"`
	GameID          string        `yaml:"game_id"`
	SteamCmdModsDir string        `yaml:"steamcmd_mods_dir"`
	Timeout         time.Duration `yaml:"-"`
	PollInterval    time.Duration `yaml:"-"`
}

// RetryPolicy bounds the per-mod retry loop and the throttling delays.
type RetryPolicy struct {
	MaxAttempts int         `yaml:"max_attempts"`
	RetryJitter JitterRange `yaml:"retry_jitter"`
	ItemJitter  JitterRange `yaml:"item_jitter"`
}

// SpreadsheetConfig selects the columns and filter used to read the
// requested mods.
type SpreadsheetConfig struct {
	Path        string `yaml:"spreadsheet"`
	ValueColumn string `yaml:"value_column"`
	FlagColumn  string `yaml:"flag_column"`
	NameColumn  string `yaml:"name_column"`
	FlagValue   string `yaml:"flag_value"`
}

// InstallerConfig is the on-disk configuration file layout written by
// the init command.
type InstallerConfig struct {
	SteamCmdPath       string  `yaml:"steamcmd_path"`
	SteamUser          string  `yaml:"steam_user"`
	GameID             string  `yaml:"game_id"`
	SteamCmdModsDir    string  `yaml:"steamcmd_mods_dir"`
	ZomboidModsDir     string  `yaml:"zomboid_mods_dir"`
	Spreadsheet        string  `yaml:"spreadsheet"`
	ValueColumn        string  `yaml:"value_column"`
	FlagColumn         string  `yaml:"flag_column"`
	NameColumn         string  `yaml:"name_column"`
	FlagValue          string  `yaml:"flag_value,omitempty"`
	TimeoutSeconds     int     `yaml:"timeout_seconds"`
	MaxAttempts        int     `yaml:"max_attempts"`
	RetryJitterMin     float64 `yaml:"retry_jitter_min"`
	RetryJitterMax     float64 `yaml:"retry_jitter_max"`
	ItemJitterMin      float64 `yaml:"item_jitter_min"`
	ItemJitterMax      float64 `yaml:"item_jitter_max"`
	LogDir             string  `yaml:"log_dir"`
	OutputDir          string  `yaml:"output_dir"`
	WorkshopBaseURL    string  `yaml:"workshop_base_url"`
	SkipDependencies   bool    `yaml:"skip_dependencies"`
	// MaxDependencyNodes caps the resolved closure; zero means unlimited.
	MaxDependencyNodes int     `yaml:"max_dependency_nodes"`
	LogLevel           string  `yaml:"log_level"`
}
