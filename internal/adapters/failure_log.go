package adapters

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"pz-mod-installer/internal/ports"
	"pz-mod-installer/internal/types"
)

const FailureLogFilename = "failed_mods.csv"

// FailureLogAdapter appends "<mod_id>,<timestamp>" lines to a CSV file.
// The file is opened and closed for every write so that entries survive
// a crash mid-run; it is never truncated.
type FailureLogAdapter struct {
	Path string
}

func NewFailureLogAdapter(path string) FailureLogAdapter {
	return FailureLogAdapter{Path: path}
}

func (a FailureLogAdapter) Append(id types.ModID, at time.Time) error {
	if strings.TrimSpace(a.Path) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failure log path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(a.Path), 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create failure log directory").
			WithCause(err)
	}
	file, err := os.OpenFile(a.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to open failure log").
			WithCause(err)
	}
	writer := csv.NewWriter(file)
	writeErr := writer.Write([]string{id.String(), at.Format(time.RFC3339)})
	writer.Flush()
	if writeErr == nil {
		writeErr = writer.Error()
	}
	closeErr := file.Close()
	if writeErr != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write failure log").
			WithCause(writeErr)
	}
	if closeErr != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to close failure log").
			WithCause(closeErr)
	}
	return nil
}

// Read returns every logged failure in file order. A missing file is an
// empty log. Rows with an unparsable mod id are skipped.
func (a FailureLogAdapter) Read() ([]types.FailureRecord, error) {
	file, err := os.Open(a.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to open failure log").
			WithCause(err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	var records []types.FailureRecord
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to parse failure log").
				WithCause(err)
		}
		if len(row) == 0 {
			continue
		}
		id, err := types.NormalizeModID(row[0])
		if err != nil {
			log.Debug().Str("row", strings.Join(row, ",")).Msg("skipping malformed failure log row")
			continue
		}
		record := types.FailureRecord{ID: id}
		if len(row) > 1 {
			record.FailedAt = parseTimeFlexible(row[1])
		}
		records = append(records, record)
	}
	return records, nil
}

var _ ports.FailureLogPort = FailureLogAdapter{}
