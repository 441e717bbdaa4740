package app

import (
	"context"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"pz-mod-installer/internal/core"
	"pz-mod-installer/internal/types"
)

// RetryFailed reinstalls every mod recorded in the failure log. Dependencies
// are not resolved again; they were part of the original install list.
func (s Service) RetryFailed(ctx context.Context, req RetryFailedRequest) (RetryFailedResult, error) {
	if err := core.NewConfigCompiler().ValidateInstall(ctx, req.Config); err != nil {
		return RetryFailedResult{}, err
	}
	rc := s.newRunContext(req.Config, "retry-failed")
	ctx = rc.Attach(ctx)
	if rc.FailureLog == nil {
		return RetryFailedResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failure log is not configured")
	}

	records, err := rc.FailureLog.Read()
	if err != nil {
		return RetryFailedResult{}, err
	}
	ids := make([]types.ModID, 0, len(records))
	for _, record := range records {
		ids = append(ids, record.ID)
	}
	ids = types.DedupModIDs(ids)
	result := RetryFailedResult{Retried: ids}
	if len(ids) == 0 {
		return result, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("no failed mods recorded in " + rc.FailureLogPath)
	}
	rc.Logger.Info().
		Int("mods", len(ids)).
		Str("failure_log", rc.FailureLogPath).
		Msg("retrying failed mods")

	report, err := s.installBatch(ctx, rc, ids)
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
