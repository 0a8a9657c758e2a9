package robocopy_test

import (
	"strings"
	"testing"

	"pixelgardenlabs.io/pgl-robocopy/pkg/robocopy"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		code        int
		wantSuccess bool
		wantStatus  robocopy.ExitStatus
	}{
		{
			name:        "no changes",
			code:        0,
			wantSuccess: true,
			wantStatus:  robocopy.ExitStatus{Code: 0},
		},
		{
			name:        "files copied",
			code:        1,
			wantSuccess: true,
			wantStatus:  robocopy.ExitStatus{Code: 1, FilesCopied: true},
		},
		{
			name:        "extras only",
			code:        2,
			wantSuccess: true,
			wantStatus:  robocopy.ExitStatus{Code: 2, ExtraDetected: true},
		},
		{
			name:        "copied with extras and mismatches",
			code:        7,
			wantSuccess: true,
			wantStatus:  robocopy.ExitStatus{Code: 7, FilesCopied: true, ExtraDetected: true, MismatchesDetected: true},
		},
		{
			name:        "failures only",
			code:        8,
			wantSuccess: false,
			wantStatus:  robocopy.ExitStatus{Code: 8, CopyFailed: true},
		},
		{
			name:        "failures with partial copy",
			code:        9,
			wantSuccess: false,
			wantStatus:  robocopy.ExitStatus{Code: 9, FilesCopied: true, CopyFailed: true},
		},
		{
			name:        "all bits set",
			code:        15,
			wantSuccess: false,
			wantStatus:  robocopy.ExitStatus{Code: 15, FilesCopied: true, ExtraDetected: true, MismatchesDetected: true, CopyFailed: true},
		},
		{
			name:        "fatal error is not a bit pattern",
			code:        16,
			wantSuccess: false,
			wantStatus:  robocopy.ExitStatus{Code: 16, FatalError: true},
		},
		{
			name:        "unknown positive code",
			code:        200,
			wantSuccess: false,
			wantStatus:  robocopy.ExitStatus{Code: 200, Unrecognized: true},
		},
		{
			name:        "negative code",
			code:        -1,
			wantSuccess: false,
			wantStatus:  robocopy.ExitStatus{Code: -1, Unrecognized: true},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := robocopy.Classify(tc.code)
			if got != tc.wantStatus {
				t.Errorf("Classify(%d) = %+v, want %+v", tc.code, got, tc.wantStatus)
			}
			if got.Success() != tc.wantSuccess {
				t.Errorf("Classify(%d).Success() = %v, want %v", tc.code, got.Success(), tc.wantSuccess)
			}
		})
	}
}

func TestExitStatusString(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{0, "no changes (exit code 0)"},
		{3, "files copied, extras detected (exit code 3)"},
		{8, "some copies failed (exit code 8)"},
		{16, "fatal error, no files copied (exit code 16)"},
		{42, "unrecognized exit code 42"},
	}

	for _, tc := range tests {
		if got := robocopy.Classify(tc.code).String(); got != tc.want {
			t.Errorf("Classify(%d).String() = %q, want %q", tc.code, got, tc.want)
		}
	}
}

func TestExitErrorMessage(t *testing.T) {
	err := &robocopy.ExitError{Status: robocopy.Classify(8)}
	if !strings.Contains(err.Error(), "some copies failed") {
		t.Errorf("Error() = %q, want copy failure description", err.Error())
	}
}
