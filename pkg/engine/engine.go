// Package engine orchestrates the configured robocopy jobs: preflight
// checks, concurrent execution, progress streaming and post-run log
// archiving.
package engine

import (
	"context"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"pixelgardenlabs.io/pgl-robocopy/pkg/config"
	"pixelgardenlabs.io/pgl-robocopy/pkg/hints"
	"pixelgardenlabs.io/pgl-robocopy/pkg/logarchive"
	"pixelgardenlabs.io/pgl-robocopy/pkg/plog"
	"pixelgardenlabs.io/pgl-robocopy/pkg/preflight"
	"pixelgardenlabs.io/pgl-robocopy/pkg/robocopy"
)

// Engine executes the jobs of one configuration.
type Engine struct {
	config config.Config
	runner *robocopy.Runner
}

// New creates an engine for the given configuration. The runner is injected
// so tests can substitute the process spawner.
func New(cfg config.Config, runner *robocopy.Runner) *Engine {
	return &Engine{config: cfg, runner: runner}
}

// ShowCommands writes the assembled command line of every job to w without
// running anything.
func (e *Engine) ShowCommands(w io.Writer) error {
	for i := range e.config.Jobs {
		job := &e.config.Jobs[i]
		command, err := e.config.Command(job)
		if err != nil {
			return fmt.Errorf("job %q: %w", job.Name, err)
		}
		if _, err := fmt.Fprintln(w, command.String()); err != nil {
			return err
		}
	}
	return nil
}

// ExecuteJobs runs all configured jobs, at most JobWorkers at a time. With
// FailFast set, the first job failure cancels the remaining ones; otherwise
// every job runs and the first error is reported after all have finished.
func (e *Engine) ExecuteJobs(ctx context.Context) error {
	if err := e.runPreflight(); err != nil {
		return err
	}
	return e.executeJobs(ctx)
}

func (e *Engine) executeJobs(ctx context.Context) error {
	group := &errgroup.Group{}
	if e.config.FailFast {
		var groupCtx context.Context
		group, groupCtx = errgroup.WithContext(ctx)
		ctx = groupCtx
	}
	group.SetLimit(e.config.JobWorkers)

	for i := range e.config.Jobs {
		job := &e.config.Jobs[i]
		group.Go(func() error {
			if err := e.runJob(ctx, job); err != nil {
				return fmt.Errorf("job %q: %w", job.Name, err)
			}
			return nil
		})
	}
	return group.Wait()
}

// runPreflight validates the external tool and every job's paths before any
// process is spawned.
func (e *Engine) runPreflight() error {
	if err := preflight.CheckRobocopyAvailable(); err != nil {
		return err
	}
	for i := range e.config.Jobs {
		job := &e.config.Jobs[i]
		if err := preflight.CheckSourceAccessible(job.Source); err != nil {
			return fmt.Errorf("job %q: %w", job.Name, err)
		}
		if err := preflight.CheckDestinationAccessible(job.Destination); err != nil {
			return fmt.Errorf("job %q: %w", job.Name, err)
		}
	}
	return nil
}

func (e *Engine) runJob(ctx context.Context, job *config.JobConfig) error {
	command, err := e.config.Command(job)
	if err != nil {
		return err
	}

	startTime := time.Now()
	process, err := e.runner.Start(ctx, command)
	if err != nil {
		return err
	}

	// Robocopy rewrites its percentage display in place with carriage
	// returns; the scanner turns those updates into individual tokens.
	scanner := robocopy.ProgressScanner(process.Stdout)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			plog.Debug("robocopy output", "job", job.Name, "line", line)
		}
	}

	status, err := process.Wait()
	duration := time.Since(startTime).Round(time.Millisecond)
	if err != nil {
		return err
	}

	plog.Info("Job finished", "job", job.Name, "status", status.String(), "duration", duration)

	return e.archiveLog(ctx, job)
}

// archiveLog compresses the job's robocopy log according to its policy.
// Disabled archiving is a hint, not an error.
func (e *Engine) archiveLog(ctx context.Context, job *config.JobConfig) error {
	archivePath, err := logarchive.Archive(ctx, job.Logging.LogFile, job.ArchivePolicy())
	if err != nil {
		if hints.IsHint(err) {
			plog.Debug("Log archiving skipped", "job", job.Name, "reason", err)
			return nil
		}
		return fmt.Errorf("log archiving failed: %w", err)
	}
	plog.Notice("Log archived", "job", job.Name, "archive", archivePath)
	return nil
}
