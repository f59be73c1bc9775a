// File: internal/flags/flags.go
package flags

// Centralized definitions for CLI flags used across the application

const (
	// Config flags point at the YAML file mapping labels to directories
	Config      = "config"
	ConfigShort = "c"

	// Workers flags cap the pool size; zero means one worker per CPU
	Workers      = "workers"
	WorkersShort = "w"

	// Command overrides for the external push and notification tools
	PushCommand   = "push-command"
	NotifyCommand = "notify-command"

	// NoNotify disables the desktop notification (messages are still printed)
	NoNotify = "no-notify"

	// Timeout bounds the whole run; zero waits forever
	Timeout = "timeout"

	// Progress replaces plain output with a live terminal view
	Progress = "progress"

	// DryRun prints the plan without spawning anything
	DryRun = "dry-run"

	// Force flags are used to bypass interactive confirmation prompts for destructive operations
	Force      = "force"
	ForceShort = "f"

	// Debug flags are used to enable verbose logging
	Debug      = "debug"
	DebugShort = "d"
)
