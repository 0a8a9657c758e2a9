//go:build !windows

package preflight_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/sys/unix"

	"pixelgardenlabs.io/pgl-robocopy/pkg/preflight"
)

// onRootDevice reports whether path shares a device with the root filesystem,
// which is what the ghost-mount detection keys on.
func onRootDevice(t *testing.T, path string) bool {
	t.Helper()
	rootInfo, err := os.Stat("/")
	if err != nil {
		t.Fatalf("failed to stat root: %v", err)
	}
	pathInfo, err := os.Stat(path)
	if err != nil {
		t.Fatalf("failed to stat %s: %v", path, err)
	}
	rootStat, ok := rootInfo.Sys().(*unix.Stat_t)
	if !ok {
		t.Skip("unix.Stat_t not available")
	}
	pathStat := pathInfo.Sys().(*unix.Stat_t)
	return pathStat.Dev == rootStat.Dev
}

func underHome(t *testing.T, path string) bool {
	t.Helper()
	homeDir, err := os.UserHomeDir()
	if err != nil || homeDir == "" {
		return false
	}
	return strings.HasPrefix(path, homeDir)
}

func TestCheckDestinationGhostDetection(t *testing.T) {
	dir := t.TempDir()

	// The temp dir may or may not live on the root device, and may be under
	// the home directory which is exempt. Derive the expectation from the
	// same signals the check uses.
	wantErr := onRootDevice(t, dir) && !underHome(t, dir)

	err := preflight.CheckDestinationAccessible(dir)
	if (err != nil) != wantErr {
		t.Errorf("CheckDestinationAccessible(%q) = %v, wantErr %v", dir, err, wantErr)
	}

	// A missing destination is validated through its deepest existing
	// ancestor, so the outcome matches the existing parent.
	missing := filepath.Join(dir, "new", "nested", "dest")
	err = preflight.CheckDestinationAccessible(missing)
	if (err != nil) != wantErr {
		t.Errorf("CheckDestinationAccessible(%q) = %v, wantErr %v", missing, err, wantErr)
	}
}
