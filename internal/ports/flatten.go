package ports

// FolderFlattenPort moves per-mod content folders out of the workshop
// download tree into the game's mods directory.
type FolderFlattenPort interface {
	Flatten(workshopPath string, destDir string) (FlattenResult, error)
}

type FlattenResult struct {
	Moved   []string
	Skipped []string
	Failed  []string
}
