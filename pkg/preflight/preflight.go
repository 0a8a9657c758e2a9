// Package preflight provides validation checks that run before robocopy jobs
// are started. The checks are stateless and never modify the filesystem;
// their purpose is to produce friendlier errors than robocopy's own exit
// codes for the common misconfigurations.
package preflight

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// CheckRobocopyAvailable verifies that the robocopy executable can be found
// in PATH.
func CheckRobocopyAvailable() error {
	if _, err := exec.LookPath("robocopy"); err != nil {
		return fmt.Errorf("robocopy executable not found in PATH: %w", err)
	}
	return nil
}

// CheckSourceAccessible validates that the source path exists and is a directory.
func CheckSourceAccessible(srcPath string) error {
	srcInfo, err := os.Stat(srcPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("source directory %s does not exist", srcPath)
		}
		return fmt.Errorf("cannot stat source directory %s: %w", srcPath, err)
	}

	if !srcInfo.IsDir() {
		return fmt.Errorf("source path %s is not a directory", srcPath)
	}

	return nil
}

// CheckDestinationAccessible performs pre-flight checks to ensure the
// destination is usable. Robocopy creates missing destination directories
// itself, so a non-existent destination is fine as long as the volume it
// lives on is actually there.
//
// The checks include:
//  1. On Windows, verifies that the drive or network share (e.g., "Z:",
//     "\\Server\Share") exists.
//  2. If the destination path exists, confirms it is a directory.
//  3. If the destination path does not exist, checks the deepest existing
//     ancestor instead. On Unix this detects "ghost" directories on the root
//     filesystem where an external drive should be mounted.
func CheckDestinationAccessible(dstPath string) error {
	info, err := os.Stat(dstPath)
	if os.IsNotExist(err) {
		// Destination doesn't exist. Find the deepest existing ancestor and
		// validate that instead.
		ancestor := filepath.Dir(dstPath)
		for {
			parent := filepath.Dir(ancestor)
			if _, err := os.Stat(ancestor); err == nil || parent == ancestor {
				break
			}
			ancestor = parent
		}
		return platformValidateMountPoint(ancestor)
	} else if err != nil {
		return fmt.Errorf("cannot access destination path: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("destination path exists but is not a directory: %s", dstPath)
	}

	return platformValidateMountPoint(dstPath)
}
