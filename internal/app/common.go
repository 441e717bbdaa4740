package app

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"pz-mod-installer/internal/core"
	"pz-mod-installer/internal/ports"
	"pz-mod-installer/internal/types"
)

const (
	ModListFilename        = "mod_list.txt"
	DependenciesFilename   = "dependencies.txt"
	DependencyTreeFilename = "dependency_tree.txt"
	InstallSummaryFilename = "install_summary.txt"
)

func (s Service) readModList(rc *RunContext) (types.ModList, error) {
	if s.ModList == nil {
		return types.ModList{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("mod list reader is not configured")
	}
	list, err := s.ModList.ReadModList(rc.Config.Spreadsheet)
	if err != nil {
		return types.ModList{}, err
	}
	rc.Logger.Info().
		Int("mods", len(list.IDs)).
		Int("duplicates", len(list.Duplicates)).
		Int("skipped", list.Skipped).
		Str("spreadsheet", rc.Config.Spreadsheet.Path).
		Msg("mod list read")
	return list, nil
}

func noModsError(rc *RunContext) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg("no mods found in spreadsheet " + rc.Config.Spreadsheet.Path)
}

func (s Service) writeModList(rc *RunContext, ids []types.ModID) error {
	if err := rc.requireOutput(); err != nil {
		return err
	}
	path, err := rc.Output.WriteModList(ids, ModListFilename, "")
	if err != nil {
		return err
	}
	rc.recordFile(path)
	return nil
}

// resolveDependencies expands requested and writes the dependency reports.
func (s Service) resolveDependencies(ctx context.Context, rc *RunContext, requested []types.ModID) (ResolveResult, error) {
	result := ResolveResult{Requested: requested, InstallList: requested}
	if err := rc.requireOutput(); err != nil {
		return result, err
	}
	resolved, err := s.resolver(rc).Resolve(ctx, requested)
	if err != nil {
		return result, err
	}
	result.Dependencies = resolved.Closure
	result.Tree = resolved.Tree
	result.InstallList = core.MergeInstallList(requested, resolved.Closure)
	rc.Logger.Info().
		Int("requested", len(requested)).
		Int("dependencies", len(resolved.Closure)).
		Int("total", len(result.InstallList)).
		Msg("dependencies resolved")

	path, err := rc.Output.WriteLines(types.ModIDStrings(resolved.Closure), DependenciesFilename)
	if err != nil {
		return result, err
	}
	rc.recordFile(path)
	path, err = rc.Output.WriteDependencyTree(resolved.Tree, DependencyTreeFilename)
	if err != nil {
		return result, err
	}
	rc.recordFile(path)
	return result, nil
}

// installBatch runs the installer and always writes the summary, also for
// interrupted runs. A summary write failure is logged, not returned.
func (s Service) installBatch(ctx context.Context, rc *RunContext, ids []types.ModID) (types.InstallReport, error) {
	if err := rc.requireOutput(); err != nil {
		return types.InstallReport{}, err
	}
	installer, err := s.installer(rc)
	if err != nil {
		return types.InstallReport{}, err
	}
	report := installer.InstallAll(ctx, ids)
	if path, err := rc.Output.WriteInstallSummary(report, InstallSummaryFilename); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("failed to write install summary")
	} else {
		rc.recordFile(path)
	}
	if report.Interrupted {
		return report, interruptedError(ctx)
	}
	return report, nil
}

// flattenWorkshop moves the downloaded content into the game's mods
// directory. A missing workshop content folder is fatal.
func (s Service) flattenWorkshop(ctx context.Context, rc *RunContext) (string, ports.FlattenResult, error) {
	workshop := core.WorkshopContentPath(rc.Config.Downloader)
	info, err := os.Stat(workshop)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && !info.IsDir()) {
		return workshop, ports.FlattenResult{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("workshop content folder not found: " + workshop)
	}
	if err != nil {
		return workshop, ports.FlattenResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to inspect workshop content folder").
			WithCause(err)
	}
	if s.Flattener == nil {
		return workshop, ports.FlattenResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("folder flattener is not configured")
	}
	log.Ctx(ctx).Info().
		Str("workshop", workshop).
		Str("dest", rc.Config.ZomboidModsDir).
		Msg("reorganizing mod folders")
	result, err := s.Flattener.Flatten(workshop, rc.Config.ZomboidModsDir)
	return workshop, result, err
}

func interruptedError(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return context.Canceled
}
