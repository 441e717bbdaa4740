package ports

import "pz-mod-installer/internal/types"

// ModListPort reads the requested mods from a spreadsheet.
type ModListPort interface {
	ReadModList(cfg types.SpreadsheetConfig) (types.ModList, error)
}
