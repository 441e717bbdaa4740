package app

import (
	"context"
	"path/filepath"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"pz-mod-installer/internal/adapters"
	"pz-mod-installer/internal/core"
	"pz-mod-installer/internal/ports"
	"pz-mod-installer/internal/types"
)

// RunContext carries everything scoped to one invocation: the compiled
// configuration, where logs and reports go, and the collaborators built
// from them.
type RunContext struct {
	Config         core.CompiledConfig
	FailureLogPath string
	StartedAt      time.Time
	Logger         zerolog.Logger

	Clock      func() time.Time
	Output     ports.OutputPort
	FailureLog ports.FailureLogPort

	files []string
}

func (s Service) newRunContext(cfg types.InstallerConfig, command string) *RunContext {
	clock := s.Clock
	if clock == nil {
		clock = time.Now
	}
	compiled := core.NewConfigCompiler().Compile(cfg)
	failureLogPath := filepath.Join(compiled.LogDir, adapters.FailureLogFilename)
	startedAt := clock()
	rc := &RunContext{
		Config:         compiled,
		FailureLogPath: failureLogPath,
		StartedAt:      startedAt,
		Logger: log.Logger.With().
			Str("command", command).
			Str("run", startedAt.UTC().Format("20060102T150405Z")).
			Logger(),
		Clock: clock,
	}
	if s.NewOutput != nil {
		rc.Output = s.NewOutput(compiled.OutputDir)
	}
	if s.NewFailureLog != nil {
		rc.FailureLog = s.NewFailureLog(failureLogPath)
	}
	return rc
}

// Attach returns ctx carrying the run logger for log.Ctx lookups.
func (rc *RunContext) Attach(ctx context.Context) context.Context {
	return rc.Logger.WithContext(ctx)
}

// Resolver builds a dependency resolver over the run's fetcher.
func (s Service) resolver(rc *RunContext) core.DependencyResolver {
	var fetcher ports.DependencyFetcherPort
	if s.NewFetcher != nil {
		fetcher = s.NewFetcher(rc.Config.WorkshopBaseURL)
	}
	resolver := core.NewDependencyResolver(fetcher)
	resolver.MaxNodes = rc.Config.MaxDependencyNodes
	return resolver
}

func (s Service) installer(rc *RunContext) (core.BatchInstaller, error) {
	if s.NewDownloader == nil {
		return core.BatchInstaller{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("downloader is not configured")
	}
	downloader := s.NewDownloader(rc.Config.Downloader)
	installer := core.NewBatchInstaller(downloader, rc.FailureLog, rc.Config.Policy)
	installer.Clock = rc.Clock
	if s.Sleep != nil {
		installer.Sleep = s.Sleep
	}
	installer.Random = s.Random
	return installer, nil
}

func (rc *RunContext) requireOutput() error {
	if rc.Output == nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("report writer is not configured")
	}
	return nil
}

func (rc *RunContext) recordFile(path string) {
	if path != "" {
		rc.files = append(rc.files, path)
	}
}

// Files lists the reports written during the run, in write order.
func (rc *RunContext) Files() []string {
	return append([]string(nil), rc.files...)
}
