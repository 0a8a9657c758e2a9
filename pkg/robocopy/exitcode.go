package robocopy

import (
	"fmt"
	"strings"
)

// Exit code bit values as documented by robocopy. Codes 0-15 are the
// combination of these four conditions; 16 stands entirely outside the bit
// pattern and means a fatal error with no files copied.
const (
	exitBitCopied   = 1
	exitBitExtra    = 2
	exitBitMismatch = 4
	exitBitFailed   = 8

	exitCodeFatal = 16
)

// ExitStatus is the decoded form of a robocopy exit code. The four condition
// bits are independent; FatalError marks the dedicated code 16 and is never
// derived from the bits (folding it into CopyFailed would collide with plain
// code 8). Unrecognized marks any code outside the documented 0-16 range.
type ExitStatus struct {
	// Code is the raw numeric exit code.
	Code int

	// FilesCopied reports that at least one file or directory was copied.
	FilesCopied bool
	// ExtraDetected reports that extra files or directories were detected in
	// the destination.
	ExtraDetected bool
	// MismatchesDetected reports that mismatched files or directories were
	// detected.
	MismatchesDetected bool
	// CopyFailed reports that some files or directories could not be copied.
	CopyFailed bool

	// FatalError reports a serious error: robocopy did not copy any files
	// (exit code 16).
	FatalError bool
	// Unrecognized reports an exit code outside the documented range.
	Unrecognized bool
}

// Classify decodes a robocopy exit code. Codes 0-15 decompose into the four
// condition bits, 16 maps to the dedicated fatal condition, and anything else
// is reported as unrecognized rather than coerced to a neighboring code.
func Classify(code int) ExitStatus {
	status := ExitStatus{Code: code}
	switch {
	case code >= 0 && code <= 15:
		status.FilesCopied = code&exitBitCopied != 0
		status.ExtraDetected = code&exitBitExtra != 0
		status.MismatchesDetected = code&exitBitMismatch != 0
		status.CopyFailed = code&exitBitFailed != 0
	case code == exitCodeFatal:
		status.FatalError = true
	default:
		status.Unrecognized = true
	}
	return status
}

// Success reports whether the exit code denotes a successful run. Robocopy
// treats every code below 8 as success, including the codes that merely
// report extras or mismatches.
func (s ExitStatus) Success() bool {
	return s.Code >= 0 && s.Code < exitBitFailed
}

// String renders the status in a compact human-readable form.
func (s ExitStatus) String() string {
	if s.Unrecognized {
		return fmt.Sprintf("unrecognized exit code %d", s.Code)
	}
	if s.FatalError {
		return fmt.Sprintf("fatal error, no files copied (exit code %d)", s.Code)
	}

	var parts []string
	if s.FilesCopied {
		parts = append(parts, "files copied")
	}
	if s.ExtraDetected {
		parts = append(parts, "extras detected")
	}
	if s.MismatchesDetected {
		parts = append(parts, "mismatches detected")
	}
	if s.CopyFailed {
		parts = append(parts, "some copies failed")
	}
	if len(parts) == 0 {
		parts = append(parts, "no changes")
	}
	return fmt.Sprintf("%s (exit code %d)", strings.Join(parts, ", "), s.Code)
}

// ExitError reports that robocopy ran to completion but its exit code denotes
// a failure condition.
type ExitError struct {
	Status ExitStatus
}

func (e *ExitError) Error() string {
	return "robocopy: " + e.Status.String()
}
