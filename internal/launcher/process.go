package launcher

import (
	"os/exec"
	"path/filepath"
)

// OSStarter implements Starter with real, detached child processes.
type OSStarter struct{}

// Spawn runs path with its own directory as the working directory.
func (OSStarter) Spawn(path string) error {
	cmd := exec.Command(path)
	cmd.Dir = filepath.Dir(path)
	return startDetached(cmd)
}

// ShellOpen hands path to the platform opener.
func (OSStarter) ShellOpen(path string) error {
	return startDetached(shellOpenCommand(path))
}

// startDetached starts cmd outside our session with no standard streams and
// reaps it in the background so it never lingers as a zombie.
func startDetached(cmd *exec.Cmd) error {
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	detach(cmd)

	if err := cmd.Start(); err != nil {
		return err
	}

	go func() { _ = cmd.Wait() }()
	return nil
}
