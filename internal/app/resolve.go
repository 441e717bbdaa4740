package app

import (
	"context"

	"pz-mod-installer/internal/types"
)

// Resolve is a dry run of Install: it reads the spreadsheet and writes the
// dependency reports without downloading anything.
func (s Service) Resolve(ctx context.Context, req ResolveRequest) (ResolveResult, error) {
	rc := s.newRunContext(req.Config, "resolve")
	ctx = rc.Attach(ctx)

	list, err := s.readModList(rc)
	if err != nil {
		return ResolveResult{}, err
	}
	requested := types.DedupModIDs(list.IDs)
	if len(requested) == 0 {
		return ResolveResult{Requested: requested}, noModsError(rc)
	}
	if err := s.writeModList(rc, requested); err != nil {
		return ResolveResult{}, err
	}
	result, err := s.resolveDependencies(ctx, rc, requested)
	result.Files = rc.Files()
	return result, err
}
