// Package testutil provides shared test helpers used across integration
// and e2e test packages.
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"pz-mod-installer/internal/types"
)

// RepoRoot returns the absolute path to the repository root by walking
// up from the current working directory. It fails the test if the
// working directory cannot be determined.
func RepoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(dir, "..", ".."))
}

// SheetRow is one spreadsheet row in the default column layout: name in
// B, workshop id in D, selection flag in G.
type SheetRow struct {
	Name string
	ID   any
	Flag any
}

// WriteWorkbook saves rows below a header row and returns the file path.
func WriteWorkbook(t *testing.T, dir string, rows []SheetRow) string {
	t.Helper()
	book := excelize.NewFile()
	defer book.Close()
	set := func(ref string, value any) {
		require.NoError(t, book.SetCellValue("Sheet1", ref, value))
	}
	set("B1", "Name")
	set("D1", "Workshop ID")
	set("G1", "Install")
	for idx, row := range rows {
		line := idx + 2
		set(fmt.Sprintf("B%d", line), row.Name)
		if row.ID != nil {
			set(fmt.Sprintf("D%d", line), row.ID)
		}
		if row.Flag != nil {
			set(fmt.Sprintf("G%d", line), row.Flag)
		}
	}
	path := filepath.Join(dir, "Book1.xlsx")
	require.NoError(t, book.SaveAs(path))
	return path
}

// WorkshopPage renders a minimal item page listing deps as required items.
func WorkshopPage(deps ...types.ModID) string {
	var b strings.Builder
	b.WriteString(`<html><body><div class="workshopItemTitle">item</div>`)
	if len(deps) > 0 {
		b.WriteString(`<div class="requiredItemsContainer" id="RequiredItems">`)
		for _, dep := range deps {
			fmt.Fprintf(&b, `<a href="https://steamcommunity.com/workshop/filedetails/?id=%s" target="_blank"><div class="requiredItem">%s</div></a>`, dep, dep)
		}
		b.WriteString(`</div>`)
	}
	b.WriteString(`</body></html>`)
	return b.String()
}

// StartWorkshopServer serves WorkshopPage for every item in graph and 404
// for anything else.
func StartWorkshopServer(t *testing.T, graph map[types.ModID][]types.ModID) string {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deps, ok := graph[types.ModID(r.URL.Query().Get("id"))]
		if r.URL.Path != "/sharedfiles/filedetails/" || !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(WorkshopPage(deps...)))
	}))
	t.Cleanup(server.Close)
	return server.URL
}

const fakeSteamCmdScript = `#!/bin/sh
# args: +force_install_dir DIR +login USER +workshop_download_item GAME ID +quit
dir="$2"
game="$6"
id="$7"
echo "$id" >> "$dir/calls.log"
for failing in %s; do
	if [ "$id" = "$failing" ]; then
		echo "ERROR! Download item $id failed (Failure)." >&2
		exit 8
	fi
done
mkdir -p "$dir/steamapps/workshop/content/$game/$id/mods/Mod$id"
echo "id=Mod$id" > "$dir/steamapps/workshop/content/$game/$id/mods/Mod$id/mod.info"
echo "Success. Downloaded item $id"
`

// WriteFakeSteamCmd writes a shell script that behaves like steamcmd for
// workshop_download_item: it creates the item's content folder, appends
// the id to calls.log in the install dir and fails for failingIDs.
func WriteFakeSteamCmd(t *testing.T, dir string, failingIDs ...types.ModID) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake steamcmd needs a POSIX shell")
	}
	path := filepath.Join(dir, "steamcmd.sh")
	script := fmt.Sprintf(fakeSteamCmdScript, strings.Join(types.ModIDStrings(failingIDs), " "))
	require.NoError(t, os.WriteFile(path, []byte(script), 0755))
	return path
}

// SteamCmdCalls returns the ids the fake steamcmd was invoked with.
func SteamCmdCalls(t *testing.T, installDir string) []types.ModID {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(installDir, "calls.log"))
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	var calls []types.ModID
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line != "" {
			calls = append(calls, types.ModID(line))
		}
	}
	return calls
}
