//go:build unix

// File: internal/runner/procgroup_unix.go
package runner

import (
	"os/exec"
	"syscall"
)

// Starts the shell as a process group leader and kills the whole group on cancel,
// so tools forked by the shell line do not outlive the run.
func killProcessGroupOnCancel(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
