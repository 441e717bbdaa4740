package e2e

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pz-mod-installer/internal/types"
	"pz-mod-installer/tests/testutil"
)

func installArgs(t *testing.T, work string, spreadsheet string, steamcmd string, workshopURL string) []string {
	t.Helper()
	return []string{"run", "./cmd/pz-mod-installer", "install",
		"--spreadsheet", spreadsheet,
		"--steamcmd-path", steamcmd,
		"--steam-user", "anonymous",
		"--game-id", "108600",
		"--steamcmd-mods-dir", filepath.Join(work, "steamcmd"),
		"--zomboid-mods-dir", filepath.Join(work, "Zomboid", "mods"),
		"--log-dir", filepath.Join(work, "logs"),
		"--output", filepath.Join(work, "out"),
		"--workshop-base-url", workshopURL,
		"--flag-value", "1",
		"--max-attempts", "1",
		"--retry-jitter-max", "0.01",
		"--item-jitter-max", "0.01",
		"--timeout", "30",
	}
}

func TestInstallCommandE2E(t *testing.T) {
	root := testutil.RepoRoot(t)
	work := t.TempDir()

	spreadsheet := testutil.WriteWorkbook(t, work, []testutil.SheetRow{
		{Name: "Authentic Z", ID: "2335368829", Flag: 1},
		{Name: "Skipped", ID: "999", Flag: 0},
	})
	steamcmd := testutil.WriteFakeSteamCmd(t, work)
	workshop := testutil.StartWorkshopServer(t, map[types.ModID][]types.ModID{
		"2335368829": {"2169435993"},
		"2169435993": nil,
	})

	cmd := exec.Command("go", installArgs(t, work, spreadsheet, steamcmd, workshop)...)
	cmd.Dir = root
	cmd.Env = append(os.Environ(), "GO111MODULE=on")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))

	assert.Equal(t, []types.ModID{"2335368829", "2169435993"}, testutil.SteamCmdCalls(t, filepath.Join(work, "steamcmd")))
	require.FileExists(t, filepath.Join(work, "Zomboid", "mods", "Mod2335368829", "mod.info"))
	require.FileExists(t, filepath.Join(work, "Zomboid", "mods", "Mod2169435993", "mod.info"))
	require.FileExists(t, filepath.Join(work, "out", "mod_list.txt"))
	require.FileExists(t, filepath.Join(work, "out", "dependencies.txt"))
	require.FileExists(t, filepath.Join(work, "out", "install_summary.txt"))
	assert.NoFileExists(t, filepath.Join(work, "logs", "failed_mods.csv"))
	assert.Contains(t, string(out), "Succeeded: 2")
}

func TestInstallCommandEmptySpreadsheetE2E(t *testing.T) {
	root := testutil.RepoRoot(t)
	work := t.TempDir()

	spreadsheet := testutil.WriteWorkbook(t, work, []testutil.SheetRow{
		{Name: "Not selected", ID: "2335368829", Flag: 0},
	})
	steamcmd := testutil.WriteFakeSteamCmd(t, work)
	workshop := testutil.StartWorkshopServer(t, nil)

	cmd := exec.Command("go", installArgs(t, work, spreadsheet, steamcmd, workshop)...)
	cmd.Dir = root
	cmd.Env = append(os.Environ(), "GO111MODULE=on")
	out, err := cmd.CombinedOutput()
	require.Error(t, err)
	assert.Contains(t, string(out), "no mods found in spreadsheet")
	assert.Contains(t, string(out), "exit status 3")
	assert.Empty(t, testutil.SteamCmdCalls(t, filepath.Join(work, "steamcmd")))
}
