package types

import "time"

// DependencyTree maps a mod to the dependencies discovered for it. A
// missing key means no dependencies were found or the mod was never
// visited.
type DependencyTree map[ModID][]ModID

// ModList is the result of reading the requested mods from a spreadsheet.
// Names and IDs are parallel; Duplicates counts every id seen more than
// once (total occurrences).
type ModList struct {
	Names      []string
	IDs        []ModID
	Duplicates map[ModID]int
	Skipped    int
}

// AttemptResult is the outcome of one downloader invocation.
type AttemptResult struct {
	Status   AttemptStatus
	Reason   string
	ExitCode int
	Elapsed  time.Duration
}

func (r AttemptResult) Succeeded() bool {
	return r.Status == AttemptSucceeded
}

type InstallOutcome struct {
	ID        ModID
	Succeeded bool
	Attempts  int
	LastError string
}

type InstallReport struct {
	Outcomes    []InstallOutcome
	Succeeded   int
	Failed      int
	FailedIDs   []ModID
	Interrupted bool
	StartedAt   time.Time
	FinishedAt  time.Time
}

// Total is the number of mods that reached a terminal state.
func (r InstallReport) Total() int {
	return r.Succeeded + r.Failed
}

type FailureRecord struct {
	ID       ModID
	FailedAt time.Time
}
