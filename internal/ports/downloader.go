package ports

import (
	"context"

	"pz-mod-installer/internal/types"
)

// DownloaderPort performs a single download attempt for one mod. Timeouts
// and non-zero exits are reported through the result, not the error path.
type DownloaderPort interface {
	Attempt(ctx context.Context, id types.ModID) types.AttemptResult
}
