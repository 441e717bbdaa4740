package app

import (
	"context"

	"pz-mod-installer/internal/core"
)

// Flatten reorganizes an existing workshop download without installing.
func (s Service) Flatten(ctx context.Context, req FlattenRequest) (FlattenResult, error) {
	if err := core.NewConfigCompiler().ValidateFlatten(req.Config); err != nil {
		return FlattenResult{}, err
	}
	rc := s.newRunContext(req.Config, "flatten")
	ctx = rc.Attach(ctx)

	workshop, result, err := s.flattenWorkshop(ctx, rc)
	return FlattenResult{
		WorkshopPath: workshop,
		DestDir:      rc.Config.ZomboidModsDir,
		Result:       result,
	}, err
}
