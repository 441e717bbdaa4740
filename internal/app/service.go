package app

import (
	"time"

	"pz-mod-installer/internal/adapters"
	"pz-mod-installer/internal/core"
	"pz-mod-installer/internal/ports"
	"pz-mod-installer/internal/types"
)

// Service wires the ports for every use case. Adapters that depend on
// per-run configuration are built through the factory fields.
type Service struct {
	ModList       ports.ModListPort
	Flattener     ports.FolderFlattenPort
	NewFetcher    func(baseURL string) ports.DependencyFetcherPort
	NewDownloader func(cfg types.DownloaderConfig) ports.DownloaderPort
	NewFailureLog func(path string) ports.FailureLogPort
	NewOutput     func(dir string) ports.OutputPort
	Clock         func() time.Time
	Sleep         core.SleepFunc
	Random        func() float64
}

func NewService() Service {
	return Service{
		ModList:   adapters.NewXLSXModListAdapter(),
		Flattener: adapters.NewFolderFlattenAdapter(),
		NewFetcher: func(baseURL string) ports.DependencyFetcherPort {
			return adapters.NewWorkshopScraperAdapter(baseURL, 0)
		},
		NewDownloader: func(cfg types.DownloaderConfig) ports.DownloaderPort {
			return adapters.NewSteamCmdAdapter(cfg)
		},
		NewFailureLog: func(path string) ports.FailureLogPort {
			return adapters.NewFailureLogAdapter(path)
		},
		NewOutput: func(dir string) ports.OutputPort {
			return adapters.NewOutputFileAdapter(dir)
		},
		Clock: time.Now,
		Sleep: core.ContextSleep,
	}
}
