//go:build windows

package launcher

import (
	"os/exec"
	"syscall"
)

// Process creation flags, see CreateProcess.
const (
	detachedProcess       = 0x00000008
	createNewProcessGroup = 0x00000200
)

func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: detachedProcess | createNewProcessGroup,
	}
}

// The empty argument is the window title; without it start treats a quoted
// path as the title.
func shellOpenCommand(path string) *exec.Cmd {
	return exec.Command("cmd", "/C", "start", "", path)
}
