package core

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"pz-mod-installer/internal/ports"
	"pz-mod-installer/internal/types"
)

const DefaultMaxAttempts = 3

// BatchInstaller downloads mods one at a time with bounded retries. Each
// mod moves Pending -> Attempting -> Succeeded|Failed; a failure of one
// mod never stops the batch.
type BatchInstaller struct {
	Downloader ports.DownloaderPort
	FailureLog ports.FailureLogPort
	Policy     types.RetryPolicy
	Sleep      SleepFunc
	Random     func() float64
	Clock      func() time.Time
}

func NewBatchInstaller(downloader ports.DownloaderPort, failureLog ports.FailureLogPort, policy types.RetryPolicy) BatchInstaller {
	return BatchInstaller{
		Downloader: downloader,
		FailureLog: failureLog,
		Policy:     NormalizeRetryPolicy(policy),
		Sleep:      ContextSleep,
		Clock:      time.Now,
	}
}

// NormalizeRetryPolicy fills unset fields with the defaults.
func NormalizeRetryPolicy(policy types.RetryPolicy) types.RetryPolicy {
	if policy.MaxAttempts <= 0 {
		policy.MaxAttempts = DefaultMaxAttempts
	}
	if policy.RetryJitter == (types.JitterRange{}) {
		policy.RetryJitter = DefaultRetryJitter
	}
	if policy.ItemJitter == (types.JitterRange{}) {
		policy.ItemJitter = DefaultItemJitter
	}
	return policy
}

// InstallAll installs ids in order. When ctx is cancelled the report
// returned so far is marked Interrupted; the mod in flight is neither
// counted nor logged as failed.
func (b BatchInstaller) InstallAll(ctx context.Context, ids []types.ModID) types.InstallReport {
	policy := NormalizeRetryPolicy(b.Policy)
	clock := b.Clock
	if clock == nil {
		clock = time.Now
	}
	sleep := b.Sleep
	if sleep == nil {
		sleep = ContextSleep
	}

	report := types.InstallReport{StartedAt: clock()}

	log.Info().Int("mods", len(ids)).Msg("starting mod downloads")
	for idx, id := range ids {
		if ctx.Err() != nil {
			report.Interrupted = true
			break
		}
		outcome, interrupted := b.installOne(ctx, idx+1, len(ids), id, policy, sleep)
		if interrupted {
			report.Interrupted = true
			break
		}
		report.Outcomes = append(report.Outcomes, outcome)
		if outcome.Succeeded {
			report.Succeeded++
		} else {
			report.Failed++
			report.FailedIDs = append(report.FailedIDs, id)
			b.recordFailure(id, clock())
		}

		if idx < len(ids)-1 {
			if err := sleep(ctx, JitterDelay(policy.ItemJitter, b.Random)); err != nil {
				report.Interrupted = true
				break
			}
		}
	}
	report.FinishedAt = clock()
	return report
}

func (b BatchInstaller) installOne(ctx context.Context, position int, total int, id types.ModID, policy types.RetryPolicy, sleep SleepFunc) (types.InstallOutcome, bool) {
	outcome := types.InstallOutcome{ID: id}
	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		log.Info().
			Int("mod", position).
			Int("total", total).
			Int("attempt", attempt).
			Int("max_attempts", policy.MaxAttempts).
			Str("mod_id", id.String()).
			Msg("downloading mod")

		result := b.Downloader.Attempt(ctx, id)
		if ctx.Err() != nil {
			return outcome, true
		}
		outcome.Attempts = attempt

		switch result.Status {
		case types.AttemptSucceeded:
			outcome.Succeeded = true
			outcome.LastError = ""
			log.Info().
				Str("mod_id", id.String()).
				Int("attempt", attempt).
				Dur("elapsed", result.Elapsed).
				Msg("mod downloaded")
			return outcome, false
		case types.AttemptTimedOut:
			outcome.LastError = result.Reason
			log.Warn().
				Str("mod_id", id.String()).
				Int("attempt", attempt).
				Dur("elapsed", result.Elapsed).
				Msg("download timed out, process terminated")
		default:
			outcome.LastError = result.Reason
			log.Warn().
				Str("mod_id", id.String()).
				Int("attempt", attempt).
				Int("exit_code", result.ExitCode).
				Str("reason", reasonOrUnknown(result.Reason)).
				Msg("download attempt failed")
		}

		if attempt < policy.MaxAttempts {
			if err := sleep(ctx, JitterDelay(policy.RetryJitter, b.Random)); err != nil {
				return outcome, true
			}
		}
	}
	log.Error().
		Str("mod_id", id.String()).
		Int("attempts", outcome.Attempts).
		Msg("giving up on mod")
	return outcome, false
}

func (b BatchInstaller) recordFailure(id types.ModID, at time.Time) {
	if b.FailureLog == nil {
		return
	}
	if err := b.FailureLog.Append(id, at); err != nil {
		log.Error().
			Err(err).
			Str("mod_id", id.String()).
			Msg("failed to append to failure log")
	}
}

func reasonOrUnknown(reason string) string {
	if reason == "" {
		return "unknown error"
	}
	return reason
}
