//go:build !unix

// File: internal/runner/procgroup_other.go
package runner

import "os/exec"

// No process groups here; exec.CommandContext kills the shell only.
func killProcessGroupOnCancel(cmd *exec.Cmd) {}
