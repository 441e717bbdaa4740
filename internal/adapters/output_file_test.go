package adapters

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pz-mod-installer/internal/types"
)

func readOutput(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestOutputFileAdapterModList(t *testing.T) {
	dir := t.TempDir()
	adapter := NewOutputFileAdapter(dir)

	path, err := adapter.WriteModList([]types.ModID{"300", "100", "300", "200"}, "mod_list.txt", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "mod_list.txt"), path)
	if diff := cmp.Diff("300, 100, 200", readOutput(t, path)); diff != "" {
		t.Fatalf("unexpected mod_list.txt content (-want +got):\n%s", diff)
	}

	path, err = adapter.WriteModList([]types.ModID{"1", "2"}, "ids.txt", ";")
	require.NoError(t, err)
	assert.Equal(t, "1;2", readOutput(t, path))
}

func TestOutputFileAdapterDependencyTree(t *testing.T) {
	dir := t.TempDir()
	tree := types.DependencyTree{
		"300": {"400"},
		"100": {"200", "300"},
	}
	path, err := NewOutputFileAdapter(dir).WriteDependencyTree(tree, "dependency_tree.txt")
	require.NoError(t, err)
	want := "100: 200, 300\n300: 400\n"
	if diff := cmp.Diff(want, readOutput(t, path)); diff != "" {
		t.Fatalf("unexpected dependency tree (-want +got):\n%s", diff)
	}
}

func TestOutputFileAdapterInstallSummary(t *testing.T) {
	dir := t.TempDir()
	started := time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)
	report := types.InstallReport{
		Outcomes: []types.InstallOutcome{
			{ID: "100", Succeeded: true, Attempts: 1},
			{ID: "200", Succeeded: false, Attempts: 3, LastError: "ERROR! Download item 200 failed\n(Failure)"},
		},
		Succeeded:  1,
		Failed:     1,
		FailedIDs:  []types.ModID{"200"},
		StartedAt:  started,
		FinishedAt: started.Add(2 * time.Minute),
	}
	path, err := NewOutputFileAdapter(dir).WriteInstallSummary(report, "install_summary.txt")
	require.NoError(t, err)
	want := "started_at=2024-03-01T18:00:00Z\n" +
		"finished_at=2024-03-01T18:02:00Z\n" +
		"succeeded=1\n" +
		"failed=1\n" +
		"interrupted=false\n" +
		"100,succeeded,1,\n" +
		"200,failed,3,ERROR! Download item 200 failed (Failure)\n"
	if diff := cmp.Diff(want, readOutput(t, path)); diff != "" {
		t.Fatalf("unexpected install summary (-want +got):\n%s", diff)
	}
}

func TestOutputFileAdapterEmptyLines(t *testing.T) {
	path, err := NewOutputFileAdapter(t.TempDir()).WriteLines(nil, "dependencies.txt")
	require.NoError(t, err)
	assert.Equal(t, "", readOutput(t, path))
}

func TestOutputFileAdapterRequiresDir(t *testing.T) {
	_, err := NewOutputFileAdapter("").WriteLines([]string{"x"}, "a.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output directory is empty")

	_, err = NewOutputFileAdapter(t.TempDir()).WriteLines([]string{"x"}, " ")
	require.Error(t, err)
}
