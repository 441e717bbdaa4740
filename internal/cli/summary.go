package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"pz-mod-installer/internal/ports"
	"pz-mod-installer/internal/types"
)

func printInstallSummary(w io.Writer, report types.InstallReport) {
	fmt.Fprintln(w)
	if report.Interrupted {
		fmt.Fprintln(w, "Installation interrupted; partial summary:")
	}
	fmt.Fprintf(w, "Succeeded: %d\n", report.Succeeded)
	fmt.Fprintf(w, "Failed:    %d\n", report.Failed)
	if len(report.FailedIDs) > 0 {
		fmt.Fprintf(w, "Failed mods: %s\n", strings.Join(types.ModIDStrings(report.FailedIDs), ", "))
	}
	if !report.StartedAt.IsZero() && !report.FinishedAt.IsZero() {
		fmt.Fprintf(w, "Elapsed:   %s\n", report.FinishedAt.Sub(report.StartedAt).Round(time.Second))
	}
}

func printFlattenSummary(w io.Writer, dest string, result ports.FlattenResult) {
	fmt.Fprintf(w, "Reorganized %d mod folders into %s\n", len(result.Moved), dest)
	if len(result.Failed) > 0 {
		fmt.Fprintf(w, "Failed to move: %s\n", strings.Join(result.Failed, ", "))
	}
}

// printConfig shows the effective configuration as aligned "Key: value"
// rows, keys in name order.
func printConfig(w io.Writer, values map[string]string) {
	keys := make([]string, 0, len(values))
	width := 0
	for key := range values {
		keys = append(keys, key)
		if len(key) > width {
			width = len(key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(w, "%*s: %s\n", width, key, values[key])
	}
}

func printFiles(w io.Writer, files []string) {
	for _, file := range files {
		fmt.Fprintf(w, "wrote %s\n", file)
	}
}
