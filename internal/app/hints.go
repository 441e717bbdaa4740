package app

import (
	"fmt"
	"os"
	"sort"

	"pz-mod-installer/internal/types"
)

// duplicateHints reports spreadsheet ids listed more than once, most
// frequent first.
func duplicateHints(duplicates map[types.ModID]int) []string {
	ids := make([]types.ModID, 0, len(duplicates))
	for id := range duplicates {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if duplicates[ids[i]] != duplicates[ids[j]] {
			return duplicates[ids[i]] > duplicates[ids[j]]
		}
		return ids[i] < ids[j]
	})
	var hints []string
	for _, id := range ids {
		hints = append(hints, fmt.Sprintf(
			"hint: mod %s is listed %d times in the spreadsheet; it is installed once",
			id, duplicates[id],
		))
	}
	return hints
}

// emitHints writes hint messages to stderr.
func emitHints(hints []string) {
	for _, h := range hints {
		fmt.Fprintln(os.Stderr, h)
	}
}
