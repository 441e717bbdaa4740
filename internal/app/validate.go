package app

import (
	"context"
	"fmt"
	"os/exec"

	"pz-mod-installer/internal/core"
	"pz-mod-installer/internal/types"
)

// Validate checks the configuration and that the spreadsheet yields at
// least one mod, without touching the network or steamcmd.
func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	if err := core.NewConfigCompiler().ValidateInstall(ctx, req.Config); err != nil {
		return ValidateResult{}, err
	}
	rc := s.newRunContext(req.Config, "validate")

	var warnings []string
	if _, err := exec.LookPath(rc.Config.Downloader.SteamCmdPath); err != nil {
		warnings = append(warnings, fmt.Sprintf("steamcmd not found at %s", rc.Config.Downloader.SteamCmdPath))
	}
	list, err := s.readModList(rc)
	if err != nil {
		return ValidateResult{Warnings: warnings}, err
	}
	requested := types.DedupModIDs(list.IDs)
	if len(requested) == 0 {
		return ValidateResult{Warnings: warnings}, noModsError(rc)
	}
	warnings = append(warnings, duplicateHints(list.Duplicates)...)
	return ValidateResult{Requested: len(requested), Warnings: warnings}, nil
}
