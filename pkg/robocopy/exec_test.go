package robocopy_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"pixelgardenlabs.io/pgl-robocopy/pkg/robocopy"
)

// TestHelperProcess is a helper for testing exec. It prints the configured
// output and exits with the configured code, standing in for robocopy.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	if output := os.Getenv("HELPER_OUTPUT"); output != "" {
		fmt.Print(output)
	}
	code, _ := strconv.Atoi(os.Getenv("HELPER_EXIT_CODE"))
	os.Exit(code)
}

// mockCommandContext builds a commandContext that reruns the test binary as
// the helper process instead of spawning robocopy.
func mockCommandContext(exitCode int, output string) func(ctx context.Context, name string, arg ...string) *exec.Cmd {
	return func(ctx context.Context, name string, arg ...string) *exec.Cmd {
		cs := []string{"-test.run=TestHelperProcess", "--", name}
		cs = append(cs, arg...)
		cmd := exec.CommandContext(ctx, os.Args[0], cs...)
		cmd.Env = []string{
			"GO_WANT_HELPER_PROCESS=1",
			"HELPER_EXIT_CODE=" + strconv.Itoa(exitCode),
			"HELPER_OUTPUT=" + output,
		}
		return cmd
	}
}

func TestRunnerRun(t *testing.T) {
	tests := []struct {
		name        string
		exitCode    int
		wantErr     bool
		wantFatal   bool
		wantFailed  bool
		wantSuccess bool
	}{
		{
			name:        "clean run with copies",
			exitCode:    1,
			wantSuccess: true,
		},
		{
			name:        "extras and mismatches still succeed",
			exitCode:    7,
			wantSuccess: true,
		},
		{
			name:       "copy failures",
			exitCode:   8,
			wantErr:    true,
			wantFailed: true,
		},
		{
			name:      "fatal error",
			exitCode:  16,
			wantErr:   true,
			wantFatal: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			runner := robocopy.NewRunner(mockCommandContext(tc.exitCode, ""))
			command := &robocopy.Command{Source: "src", Destination: "dst"}

			status, err := runner.Run(context.Background(), command)

			if tc.wantErr {
				var exitErr *robocopy.ExitError
				if !errors.As(err, &exitErr) {
					t.Fatalf("Run() error = %v, want *ExitError", err)
				}
			} else if err != nil {
				t.Fatalf("Run() returned unexpected error: %v", err)
			}

			if status.Code != tc.exitCode {
				t.Errorf("status.Code = %d, want %d", status.Code, tc.exitCode)
			}
			if status.Success() != tc.wantSuccess {
				t.Errorf("status.Success() = %v, want %v", status.Success(), tc.wantSuccess)
			}
			if status.FatalError != tc.wantFatal {
				t.Errorf("status.FatalError = %v, want %v", status.FatalError, tc.wantFatal)
			}
			if status.CopyFailed != tc.wantFailed {
				t.Errorf("status.CopyFailed = %v, want %v", status.CopyFailed, tc.wantFailed)
			}
		})
	}
}

func TestRunnerSpawnError(t *testing.T) {
	runner := robocopy.NewRunner(func(ctx context.Context, name string, arg ...string) *exec.Cmd {
		return exec.CommandContext(ctx, "/this/binary/does/not/exist")
	})
	command := &robocopy.Command{Source: "src", Destination: "dst"}

	_, err := runner.Run(context.Background(), command)

	var spawnErr *robocopy.SpawnError
	if !errors.As(err, &spawnErr) {
		t.Fatalf("Run() error = %v, want *SpawnError", err)
	}
}

func TestRunnerStartStreamsOutput(t *testing.T) {
	// Robocopy rewrites percentages in place with bare carriage returns.
	output := "  New File  1024  a.txt\r\n  10%\r  50%\r100%\r\n"
	runner := robocopy.NewRunner(mockCommandContext(1, output))
	command := &robocopy.Command{Source: "src", Destination: "dst"}

	process, err := runner.Start(context.Background(), command)
	if err != nil {
		t.Fatalf("Start() returned unexpected error: %v", err)
	}

	var lines []string
	scanner := robocopy.ProgressScanner(process.Stdout)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scanner error: %v", err)
	}

	status, err := process.Wait()
	if err != nil {
		t.Fatalf("Wait() returned unexpected error: %v", err)
	}
	if !status.FilesCopied {
		t.Errorf("status.FilesCopied = false, want true")
	}

	want := []string{"  New File  1024  a.txt", "  10%", "  50%", "100%"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("streamed lines = %q, want %q", lines, want)
	}
}

func TestProgressScannerSplitsCarriageReturns(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "newlines only",
			input: "one\ntwo\n",
			want:  []string{"one", "two"},
		},
		{
			name:  "carriage returns only",
			input: "10%\r50%\r100%",
			want:  []string{"10%", "50%", "100%"},
		},
		{
			name:  "crlf pairs yield single tokens",
			input: "one\r\ntwo\r\n",
			want:  []string{"one", "two"},
		},
		{
			name:  "mixed",
			input: "header\r\n10%\r100%\rdone\n",
			want:  []string{"header", "10%", "100%", "done"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got []string
			scanner := robocopy.ProgressScanner(strings.NewReader(tc.input))
			for scanner.Scan() {
				got = append(got, scanner.Text())
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("tokens = %q, want %q", got, tc.want)
			}
		})
	}
}
