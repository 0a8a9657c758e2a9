//go:build windows

package robocopy

import (
	"os/exec"

	"golang.org/x/sys/windows"
)

// setSysProcAttr places the robocopy child in a new process group so that
// canceling the context terminates the entire process tree, not just the
// immediate child.
func setSysProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &windows.SysProcAttr{CreationFlags: windows.CREATE_NEW_PROCESS_GROUP}
}
