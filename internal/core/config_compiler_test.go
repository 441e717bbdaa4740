package core

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pz-mod-installer/internal/types"
)

func validConfig() types.InstallerConfig {
	return types.InstallerConfig{
		SteamCmdPath:    "/opt/steamcmd/steamcmd.sh",
		SteamUser:       "anonymous",
		GameID:          "108600",
		SteamCmdModsDir: "/srv/steamcmd",
		ZomboidModsDir:  "/srv/zomboid/mods",
	}
}

func TestValidateInstallAcceptsMinimalConfig(t *testing.T) {
	require.NoError(t, NewConfigCompiler().ValidateInstall(t.Context(), validConfig()))
}

func TestValidateInstallErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *types.InstallerConfig)
		expect string
	}{
		{
			name:   "missing steamcmd path",
			mutate: func(cfg *types.InstallerConfig) { cfg.SteamCmdPath = "" },
			expect: "steamcmd_path",
		},
		{
			name: "missing several keys",
			mutate: func(cfg *types.InstallerConfig) {
				cfg.SteamUser = " "
				cfg.ZomboidModsDir = ""
			},
			expect: "steam_user (Steam username (anonymous for public items)), zomboid_mods_dir",
		},
		{
			name:   "non numeric game id",
			mutate: func(cfg *types.InstallerConfig) { cfg.GameID = "zomboid" },
			expect: "game_id must be numeric",
		},
		{
			name:   "negative timeout",
			mutate: func(cfg *types.InstallerConfig) { cfg.TimeoutSeconds = -1 },
			expect: "timeout_seconds must not be negative",
		},
		{
			name: "inverted retry jitter",
			mutate: func(cfg *types.InstallerConfig) {
				cfg.RetryJitterMin = 5
				cfg.RetryJitterMax = 2
			},
			expect: "retry_jitter max must not be below min",
		},
		{
			name:   "negative dependency cap",
			mutate: func(cfg *types.InstallerConfig) { cfg.MaxDependencyNodes = -1 },
			expect: "max_dependency_nodes must not be negative",
		},
		{
			name:   "negative item jitter",
			mutate: func(cfg *types.InstallerConfig) { cfg.ItemJitterMin = -1 },
			expect: "item_jitter bounds must not be negative",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := NewConfigCompiler().ValidateInstall(t.Context(), cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expect)
		})
	}
}

func TestCompileAppliesDefaults(t *testing.T) {
	compiled := NewConfigCompiler().Compile(validConfig())

	assert.Equal(t, DefaultTimeout, compiled.Downloader.Timeout)
	assert.Equal(t, time.Second, compiled.Downloader.PollInterval)
	assert.Equal(t, 3, compiled.Policy.MaxAttempts)
	assert.Equal(t, types.JitterRange{Min: 2, Max: 5}, compiled.Policy.RetryJitter)
	assert.Equal(t, types.JitterRange{Min: 1, Max: 3}, compiled.Policy.ItemJitter)
	assert.Equal(t, "D", compiled.Spreadsheet.ValueColumn)
	assert.Equal(t, "G", compiled.Spreadsheet.FlagColumn)
	assert.Equal(t, "B", compiled.Spreadsheet.NameColumn)
	assert.Equal(t, "logs", compiled.LogDir)
}

func TestCompileKeepsExplicitValues(t *testing.T) {
	cfg := validConfig()
	cfg.TimeoutSeconds = 30
	cfg.MaxAttempts = 5
	cfg.RetryJitterMin = 0.5
	cfg.RetryJitterMax = 1
	cfg.ValueColumn = "c"
	cfg.MaxDependencyNodes = 50
	compiled := NewConfigCompiler().Compile(cfg)

	assert.Equal(t, 30*time.Second, compiled.Downloader.Timeout)
	assert.Equal(t, 5, compiled.Policy.MaxAttempts)
	assert.Equal(t, types.JitterRange{Min: 0.5, Max: 1}, compiled.Policy.RetryJitter)
	assert.Equal(t, "C", compiled.Spreadsheet.ValueColumn)
	assert.Equal(t, 50, compiled.MaxDependencyNodes)
}

func TestWorkshopContentPath(t *testing.T) {
	got := WorkshopContentPath(types.DownloaderConfig{SteamCmdModsDir: "/srv/steamcmd", GameID: "108600"})
	assert.Equal(t, filepath.Join("/srv/steamcmd", "steamapps", "workshop", "content", "108600"), got)
}

func TestValidateFlattenNeedsOnlyPaths(t *testing.T) {
	cfg := types.InstallerConfig{
		GameID:          "108600",
		SteamCmdModsDir: "/srv/steamcmd",
		ZomboidModsDir:  "/srv/zomboid/mods",
	}
	require.NoError(t, NewConfigCompiler().ValidateFlatten(cfg))

	cfg.ZomboidModsDir = ""
	err := NewConfigCompiler().ValidateFlatten(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "zomboid_mods_dir")
	assert.NotContains(t, err.Error(), "steamcmd_path")
}

func TestMissingConfigKeysKeepsDeclaredOrder(t *testing.T) {
	got := MissingConfigKeys(types.InstallerConfig{SteamUser: "anonymous"})
	assert.Equal(t, []string{"steamcmd_path", "game_id", "steamcmd_mods_dir", "zomboid_mods_dir"}, got)
}
