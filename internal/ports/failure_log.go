package ports

import (
	"time"

	"pz-mod-installer/internal/types"
)

// FailureLogPort persists mods whose retries were exhausted.
type FailureLogPort interface {
	Append(id types.ModID, at time.Time) error
	Read() ([]types.FailureRecord, error)
}
