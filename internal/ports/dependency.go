package ports

import (
	"context"

	"pz-mod-installer/internal/types"
)

// DependencyFetcherPort looks up the direct dependencies of one mod. It is
// best effort: implementations return an empty slice together with the
// error on any network or parse failure.
type DependencyFetcherPort interface {
	FetchDependencies(ctx context.Context, id types.ModID) ([]types.ModID, error)
}
