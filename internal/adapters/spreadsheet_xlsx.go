package adapters

import (
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"pz-mod-installer/internal/ports"
	"pz-mod-installer/internal/types"
)

// XLSXModListAdapter reads requested mods from the active sheet of an
// .xlsx workbook.
type XLSXModListAdapter struct{}

func NewXLSXModListAdapter() XLSXModListAdapter {
	return XLSXModListAdapter{}
}

func (a XLSXModListAdapter) ReadModList(cfg types.SpreadsheetConfig) (types.ModList, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		return types.ModList{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("spreadsheet path is required")
	}
	valueCol, err := columnIndex(cfg.ValueColumn)
	if err != nil {
		return types.ModList{}, err
	}
	flagCol, err := columnIndex(cfg.FlagColumn)
	if err != nil {
		return types.ModList{}, err
	}
	nameCol := -1
	if strings.TrimSpace(cfg.NameColumn) != "" {
		if nameCol, err = columnIndex(cfg.NameColumn); err != nil {
			return types.ModList{}, err
		}
	}

	book, err := excelize.OpenFile(cfg.Path)
	if err != nil {
		return types.ModList{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to open spreadsheet: " + cfg.Path).
			WithCause(err)
	}
	defer book.Close()

	sheet := book.GetSheetName(book.GetActiveSheetIndex())
	if sheet == "" {
		sheets := book.GetSheetList()
		if len(sheets) == 0 {
			return types.ModList{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("spreadsheet has no sheets: " + cfg.Path)
		}
		sheet = sheets[0]
	}
	rows, err := book.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return types.ModList{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to read sheet " + sheet).
			WithCause(err)
	}
	log.Debug().
		Str("path", cfg.Path).
		Str("sheet", sheet).
		Int("rows", len(rows)).
		Msg("spreadsheet loaded")

	flagValue := strings.TrimSpace(cfg.FlagValue)
	result := types.ModList{Duplicates: map[types.ModID]int{}}
	seen := map[types.ModID]int{}
	for idx, row := range rows {
		if strings.TrimSpace(cell(row, flagCol)) != flagValue {
			continue
		}
		raw := cell(row, valueCol)
		if strings.TrimSpace(raw) == "" {
			continue
		}
		id, err := types.NormalizeModID(raw)
		if err != nil {
			result.Skipped++
			log.Warn().
				Int("row", idx+1).
				Str("value", raw).
				Msg("skipping invalid mod id")
			continue
		}
		seen[id]++
		if seen[id] > 1 {
			result.Duplicates[id] = seen[id]
			log.Debug().Int("row", idx+1).Str("mod_id", id.String()).Msg("duplicate mod id")
			continue
		}
		result.IDs = append(result.IDs, id)
		result.Names = append(result.Names, strings.TrimSpace(cell(row, nameCol)))
	}
	return result, nil
}

func columnIndex(letter string) (int, error) {
	number, err := excelize.ColumnNameToNumber(strings.ToUpper(strings.TrimSpace(letter)))
	if err != nil {
		return 0, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid spreadsheet column: " + letter).
			WithCause(err)
	}
	return number - 1, nil
}

// cell returns "" for columns past the end of a row; trailing empty
// cells are not materialised by the reader.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

var _ ports.ModListPort = XLSXModListAdapter{}
