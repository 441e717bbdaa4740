package adapters

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"pz-mod-installer/internal/ports"
	"pz-mod-installer/internal/types"
)

const DefaultModListDelimiter = ", "

type OutputFileAdapter struct {
	Dir string
}

func NewOutputFileAdapter(dir string) OutputFileAdapter {
	return OutputFileAdapter{Dir: dir}
}

// WriteModList writes the unique ids on one line, first occurrence order.
func (a OutputFileAdapter) WriteModList(ids []types.ModID, filename string, delimiter string) (string, error) {
	if delimiter == "" {
		delimiter = DefaultModListDelimiter
	}
	unique := types.ModIDStrings(types.DedupModIDs(ids))
	return a.write(filename, strings.Join(unique, delimiter))
}

func (a OutputFileAdapter) WriteLines(lines []string, filename string) (string, error) {
	content := strings.Join(lines, "\n")
	if len(lines) > 0 {
		content += "\n"
	}
	return a.write(filename, content)
}

// WriteDependencyTree writes "<id>: <dep>, <dep>" per mod, sorted by id.
func (a OutputFileAdapter) WriteDependencyTree(tree types.DependencyTree, filename string) (string, error) {
	keys := make([]types.ModID, 0, len(tree))
	for id := range tree {
		keys = append(keys, id)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})
	var lines []string
	for _, id := range keys {
		deps := types.ModIDStrings(tree[id])
		lines = append(lines, fmt.Sprintf("%s: %s", id, strings.Join(deps, DefaultModListDelimiter)))
	}
	return a.WriteLines(lines, filename)
}

func (a OutputFileAdapter) WriteInstallSummary(report types.InstallReport, filename string) (string, error) {
	lines := []string{
		fmt.Sprintf("started_at=%s", formatReportTime(report.StartedAt)),
		fmt.Sprintf("finished_at=%s", formatReportTime(report.FinishedAt)),
		fmt.Sprintf("succeeded=%d", report.Succeeded),
		fmt.Sprintf("failed=%d", report.Failed),
		fmt.Sprintf("interrupted=%t", report.Interrupted),
	}
	for _, outcome := range report.Outcomes {
		status := string(types.InstallStateSucceeded)
		if !outcome.Succeeded {
			status = string(types.InstallStateFailed)
		}
		lines = append(lines, fmt.Sprintf("%s,%s,%d,%s",
			outcome.ID,
			status,
			outcome.Attempts,
			strings.ReplaceAll(outcome.LastError, "\n", " "),
		))
	}
	return a.WriteLines(lines, filename)
}

func (a OutputFileAdapter) write(filename string, content string) (string, error) {
	path, err := a.ensurePath(filename)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write " + filename).
			WithCause(err)
	}
	return path, nil
}

func (a OutputFileAdapter) ensurePath(filename string) (string, error) {
	if a.Dir == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output directory is empty")
	}
	if strings.TrimSpace(filename) == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output filename is empty")
	}
	if err := os.MkdirAll(a.Dir, 0755); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create output directory").
			WithCause(err)
	}
	return filepath.Join(a.Dir, filename), nil
}

func formatReportTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.UTC().Format(time.RFC3339)
}

var _ ports.OutputPort = OutputFileAdapter{}
