package app

import (
	"context"

	"pz-mod-installer/internal/core"
	"pz-mod-installer/internal/types"
)

// Install runs the whole pipeline: read the spreadsheet, resolve
// dependencies, download every mod and flatten the result into the game's
// mods directory. An interrupted run returns the partial result together
// with the context error.
func (s Service) Install(ctx context.Context, req InstallRequest) (InstallResult, error) {
	if err := core.NewConfigCompiler().ValidateInstall(ctx, req.Config); err != nil {
		return InstallResult{}, err
	}
	rc := s.newRunContext(req.Config, "install")
	ctx = rc.Attach(ctx)

	list, err := s.readModList(rc)
	if err != nil {
		return InstallResult{}, err
	}
	requested := types.DedupModIDs(list.IDs)
	result := InstallResult{
		Requested:   requested,
		InstallList: requested,
		Duplicates:  list.Duplicates,
	}
	if len(requested) == 0 {
		return result, noModsError(rc)
	}
	emitHints(duplicateHints(list.Duplicates))
	if err := s.writeModList(rc, requested); err != nil {
		return result, err
	}

	if rc.Config.SkipDependencies {
		rc.Logger.Info().Msg("skipping dependency resolution")
	} else {
		resolved, err := s.resolveDependencies(ctx, rc, requested)
		if err != nil {
			result.Files = rc.Files()
			return result, err
		}
		result.Dependencies = resolved.Dependencies
		result.InstallList = resolved.InstallList
	}

	report, err := s.installBatch(ctx, rc, result.InstallList)
	result.Report = report
	if err != nil {
		result.Files = rc.Files()
		return result, err
	}

	workshop, flattened, err := s.flattenWorkshop(ctx, rc)
	result.WorkshopPath = workshop
	result.Flatten = flattened
	result.Files = rc.Files()
	return result, err
}
