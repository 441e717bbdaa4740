package app

import (
	"context"

	"pz-mod-installer/internal/types"
)

// List extracts the requested mods and writes mod_list.txt. An empty
// selection is not an error here.
func (s Service) List(ctx context.Context, req ListRequest) (ListResult, error) {
	rc := s.newRunContext(req.Config, "list")
	list, err := s.readModList(rc)
	if err != nil {
		return ListResult{}, err
	}
	if err := rc.requireOutput(); err != nil {
		return ListResult{List: list}, err
	}
	path, err := rc.Output.WriteModList(types.DedupModIDs(list.IDs), ModListFilename, "")
	if err != nil {
		return ListResult{List: list}, err
	}
	rc.Logger.Debug().Str("path", path).Msg("mod list written")
	return ListResult{List: list, ModListPath: path}, nil
}
