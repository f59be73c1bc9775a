// File: cmd/drivesync/app.go
package main

import (
	"io"
	"log/slog"
	"os"

	"drivesync/internal/config"
	"drivesync/internal/logger"
	"drivesync/internal/notify"
	"drivesync/internal/push"
	"drivesync/internal/runner"
	"drivesync/internal/ui/prompt"
	"drivesync/pkg/formatter"

	"github.com/spf13/viper"
)

// appContainer holds all the shared dependencies for the application
// It is filled in after flags are parsed, since settings come from flags, env and defaults
type appContainer struct {
	Viper     *viper.Viper
	Settings  *config.Settings
	Runner    runner.Runner
	Notifier  *notify.Notifier
	Pusher    *push.Pusher
	Pool      *push.Pool
	Formatter *formatter.PushFormatter
	Prompter  prompt.Prompter
	Logger    *slog.Logger

	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
}

func newApp() *appContainer {
	return &appContainer{
		Viper:  config.NewViper(),
		Logger: logger.NewLogger(os.Stderr, false),
		In:     os.Stdin,
		Out:    os.Stdout,
		ErrOut: os.Stderr,
	}
}

// Resolves settings and wires the push pipeline
func (a *appContainer) init() error {
	settings, err := config.LoadSettings(a.Viper)
	if err != nil {
		return err
	}
	a.Settings = settings
	a.Logger = logger.NewLogger(a.ErrOut, settings.Debug)

	if a.Runner == nil {
		a.Runner = runner.NewShellRunner(a.Logger)
	}

	notifyCommand := settings.NotifyCommand
	if !settings.Notify {
		notifyCommand = ""
	}
	// The progress view owns the terminal; messages would tear it
	messageOut := a.Out
	if settings.Progress {
		messageOut = io.Discard
	}

	a.Notifier = notify.NewNotifier(a.Runner, notifyCommand, messageOut, a.Logger)
	a.Pusher = push.NewPusher(a.Runner, a.Notifier, settings.PushCommand, a.Logger)
	a.Pool = push.NewPool(a.Pusher, a.Logger, push.WithWorkers(settings.Workers))
	a.Formatter = formatter.NewPushFormatter()
	a.Prompter = prompt.NewStandardPrompter(a.In, a.Out)

	return nil
}
