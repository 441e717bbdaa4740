package ports

import "pz-mod-installer/internal/types"

// OutputPort writes the plain-text reports of a run. Each method returns
// the path it wrote.
type OutputPort interface {
	WriteModList(ids []types.ModID, filename string, delimiter string) (string, error)
	WriteLines(lines []string, filename string) (string, error)
	WriteDependencyTree(tree types.DependencyTree, filename string) (string, error)
	WriteInstallSummary(report types.InstallReport, filename string) (string, error)
}
