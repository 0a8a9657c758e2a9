package robocopy

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"pixelgardenlabs.io/pgl-robocopy/pkg/plog"
)

// robocopyExe is the canonical invocation name of the external tool.
const robocopyExe = "robocopy"

// ErrTerminated reports that the robocopy process was killed by a signal or
// other external means and therefore produced no exit code to classify.
var ErrTerminated = errors.New("robocopy terminated without an exit code")

// SpawnError reports that the robocopy process could not be started at all
// (binary not found, permission denied). It is distinct from an ExitError,
// which means the process ran and reported a failure code.
type SpawnError struct {
	Err error
}

func (e *SpawnError) Error() string {
	return "could not start robocopy: " + e.Err.Error()
}

func (e *SpawnError) Unwrap() error { return e.Err }

// Runner spawns robocopy processes.
type Runner struct {
	// commandContext allows mocking os/exec for testing.
	commandContext func(ctx context.Context, name string, arg ...string) *exec.Cmd
}

// NewRunner creates a Runner. Pass exec.CommandContext outside of tests.
func NewRunner(commandContext func(ctx context.Context, name string, arg ...string) *exec.Cmd) *Runner {
	return &Runner{commandContext: commandContext}
}

// Run spawns the command, blocks until the process terminates and classifies
// its exit code. The returned ExitStatus is valid whenever the process
// produced an exit code, including failure codes; in the failure case the
// error is an *ExitError carrying the same status.
func (r *Runner) Run(ctx context.Context, command *Command) (ExitStatus, error) {
	cmd := r.commandContext(ctx, robocopyExe, command.Tokens()...)
	setSysProcAttr(cmd)

	plog.Info("Running robocopy", "source", command.Source, "destination", command.Destination)
	plog.Debug("Assembled command", "command", command.String())

	err := cmd.Run()
	return r.classifyRunError(ctx, err)
}

// Process is a live robocopy invocation started with Runner.Start. Stdout
// delivers robocopy's progress output while the process runs; call Wait to
// collect and classify the exit code. Killing the child on cancellation is
// handled by the context passed to Start.
type Process struct {
	cmd *exec.Cmd
	ctx context.Context

	// Stdout streams the process's standard output. Wait closes it.
	Stdout io.ReadCloser

	runner *Runner
}

// Start spawns the command and hands back the live process with its standard
// output as a stream, so the caller can read incremental progress before
// waiting for termination.
func (r *Runner) Start(ctx context.Context, command *Command) (*Process, error) {
	cmd := r.commandContext(ctx, robocopyExe, command.Tokens()...)
	setSysProcAttr(cmd)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, &SpawnError{Err: err}
	}

	plog.Info("Starting robocopy", "source", command.Source, "destination", command.Destination)
	plog.Debug("Assembled command", "command", command.String())

	if err := cmd.Start(); err != nil {
		return nil, &SpawnError{Err: err}
	}
	return &Process{cmd: cmd, ctx: ctx, Stdout: stdout, runner: r}, nil
}

// Wait blocks until the process terminates and classifies its exit code. The
// caller should have drained Stdout first; Wait closes the pipe.
func (p *Process) Wait() (ExitStatus, error) {
	err := p.cmd.Wait()
	return p.runner.classifyRunError(p.ctx, err)
}

// classifyRunError translates the outcome of cmd.Run or cmd.Wait into an
// ExitStatus and the matching error kind.
func (r *Runner) classifyRunError(ctx context.Context, err error) (ExitStatus, error) {
	if err == nil {
		return Classify(0), nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		// The process never ran; this is an OS-level failure, not a robocopy result.
		return ExitStatus{}, &SpawnError{Err: err}
	}

	code := exitErr.ExitCode()
	if code < 0 {
		// Killed by a signal or the context: no exit code exists, so nothing
		// may be classified. When the caller canceled, report the context
		// error since that is why the process died.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ExitStatus{}, ctxErr
		}
		return ExitStatus{}, fmt.Errorf("%w: %s", ErrTerminated, exitErr.String())
	}

	status := Classify(code)
	if status.Success() {
		return status, nil
	}
	plog.Warn("Robocopy reported a failure", "status", status.String())
	return status, &ExitError{Status: status}
}

// ProgressScanner wraps robocopy's standard output in a bufio.Scanner that
// splits on carriage returns as well as newlines, so the in-place percentage
// updates robocopy prints while copying arrive as separate tokens.
func ProgressScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Split(scanProgressLines)
	return scanner
}

func scanProgressLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		// Swallow the \n of a \r\n pair so the pair yields one token.
		if data[i] == '\r' && i+1 < len(data) && data[i+1] == '\n' {
			return i + 2, data[:i], nil
		}
		if data[i] == '\r' && i+1 == len(data) && !atEOF {
			// Can't tell yet whether a \n follows; ask for more data.
			return 0, nil, nil
		}
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
