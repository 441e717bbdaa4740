package adapters

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"pz-mod-installer/internal/ports"
	"pz-mod-installer/internal/types"
)

const (
	defaultSteamCmdTimeout      = 600 * time.Second
	defaultSteamCmdPollInterval = time.Second
	// steamcmdWaitDelay bounds how long Wait blocks on pipes held open by
	// descendants after the child has exited or been killed.
	steamcmdWaitDelay = 2 * time.Second
	// steamcmdOutputTail is how much of each output stream is kept for
	// failure reasons.
	steamcmdOutputTail = 8 << 10
)

// SteamCmdAdapter downloads one workshop item per call by running steamcmd
// as a child process.
type SteamCmdAdapter struct {
	Config types.DownloaderConfig
	// Env is appended to the current environment of the child process.
	Env []string
}

func NewSteamCmdAdapter(cfg types.DownloaderConfig) SteamCmdAdapter {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultSteamCmdTimeout
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultSteamCmdPollInterval
	}
	return SteamCmdAdapter{Config: cfg}
}

// Args builds the fixed steamcmd argument list for one item.
func (a SteamCmdAdapter) Args(id types.ModID) []string {
	return []string{
		"+force_install_dir", a.Config.SteamCmdModsDir,
		"+login", a.Config.SteamUser,
		"+workshop_download_item", a.Config.GameID, id.String(),
		"+quit",
	}
}

// Attempt runs steamcmd once. Liveness is polled every PollInterval; once
// Timeout has elapsed the process group is killed and the attempt reported
// as timed out. Cancelling ctx also kills the process group.
func (a SteamCmdAdapter) Attempt(ctx context.Context, id types.ModID) types.AttemptResult {
	if err := os.MkdirAll(a.Config.SteamCmdModsDir, 0755); err != nil {
		return types.AttemptResult{
			Status:   types.AttemptFailed,
			ExitCode: -1,
			Reason:   fmt.Sprintf("failed to create steamcmd directory: %v", err),
		}
	}

	stdout := newTailBuffer(steamcmdOutputTail)
	stderr := newTailBuffer(steamcmdOutputTail)
	cmd := exec.Command(a.Config.SteamCmdPath, a.Args(id)...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.WaitDelay = steamcmdWaitDelay
	setProcessGroup(cmd)
	if len(a.Env) > 0 {
		cmd.Env = append(os.Environ(), a.Env...)
	}

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return types.AttemptResult{
			Status:   types.AttemptFailed,
			ExitCode: -1,
			Reason:   fmt.Sprintf("failed to start steamcmd: %v", err),
		}
	}
	log.Debug().
		Str("mod_id", id.String()).
		Int("pid", cmd.Process.Pid).
		Msg("steamcmd started")

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	ticker := time.NewTicker(a.pollInterval())
	defer ticker.Stop()
	for {
		select {
		case err := <-done:
			return exitResult(err, stdout.String(), stderr.String(), time.Since(start))
		case <-ctx.Done():
			a.kill(cmd, done)
			return types.AttemptResult{
				Status:   types.AttemptFailed,
				ExitCode: -1,
				Reason:   "interrupted",
				Elapsed:  time.Since(start),
			}
		case <-ticker.C:
			elapsed := time.Since(start)
			if elapsed <= a.timeout() {
				continue
			}
			a.kill(cmd, done)
			return types.AttemptResult{
				Status:   types.AttemptTimedOut,
				ExitCode: -1,
				Reason:   fmt.Sprintf("steamcmd timed out after %s", a.timeout()),
				Elapsed:  elapsed,
			}
		}
	}
}

func (a SteamCmdAdapter) kill(cmd *exec.Cmd, done <-chan error) {
	if cmd.Process == nil {
		return
	}
	if err := killProcessTree(cmd); err != nil {
		log.Warn().Err(err).Int("pid", cmd.Process.Pid).Msg("failed to kill steamcmd")
	}
	<-done
}

func (a SteamCmdAdapter) timeout() time.Duration {
	if a.Config.Timeout <= 0 {
		return defaultSteamCmdTimeout
	}
	return a.Config.Timeout
}

func (a SteamCmdAdapter) pollInterval() time.Duration {
	if a.Config.PollInterval <= 0 {
		return defaultSteamCmdPollInterval
	}
	return a.Config.PollInterval
}

func exitResult(err error, stdout string, stderr string, elapsed time.Duration) types.AttemptResult {
	// ErrWaitDelay means steamcmd exited cleanly but a descendant kept
	// its output pipes open.
	if err == nil || errors.Is(err, exec.ErrWaitDelay) {
		return types.AttemptResult{Status: types.AttemptSucceeded, Elapsed: elapsed}
	}
	code := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.ExitCode()
	}
	reason := strings.TrimSpace(stderr)
	if reason == "" {
		reason = lastLine(stdout)
	}
	if reason == "" {
		reason = err.Error()
	}
	return types.AttemptResult{
		Status:   types.AttemptFailed,
		ExitCode: code,
		Reason:   reason,
		Elapsed:  elapsed,
	}
}

func lastLine(output string) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}

var _ ports.DownloaderPort = SteamCmdAdapter{}
