// File: cmd/drivesync/push_cmd.go
package main

import (
	"context"
	"fmt"
	"time"

	"drivesync/internal/config"
	"drivesync/internal/flags"
	"drivesync/internal/notify"
	"drivesync/internal/push"
	"drivesync/internal/ui/progress"

	"github.com/spf13/cobra"
)

func newPushCmd(app *appContainer) *cobra.Command {
	var dryRun bool

	pushCmd := &cobra.Command{
		Use:   "push",
		Short: "Push every configured directory",
		Long: `Runs the push command inside every directory listed in the config file,
using at most one worker per CPU (or --workers). Each directory is pushed once;
a failed push does not stop the others. The exit status is non-zero if the
config cannot be loaded or any push fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPush(cmd, app, dryRun)
		},
	}
	pushCmd.Flags().BoolVar(&dryRun, flags.DryRun, false, "Print the directories and worker count without pushing")

	return pushCmd
}

func runPush(cmd *cobra.Command, app *appContainer, dryRun bool) error {
	ctx := cmd.Context()
	settings := app.Settings

	if !dryRun {
		app.Notifier.Notify(ctx, notify.StartedMessage(time.Now()))
	}

	dirs, err := config.LoadDirectories(settings.ConfigFile)
	if err != nil {
		return fmt.Errorf("error loading directories: %w", err)
	}
	dirs, err = dirs.Resolve()
	if err != nil {
		return err
	}
	app.Logger.Debug("Loaded directories", "config", settings.ConfigFile, "directories", dirs)

	jobs := push.JobsFrom(dirs)

	if dryRun {
		fmt.Fprintln(app.Out, app.Formatter.FormatPlan(jobs, app.Pool.Workers(len(jobs)), settings.PushCommand))
		return nil
	}

	if settings.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, settings.Timeout)
		defer cancel()
	}

	var outcomes []push.Outcome
	if settings.Progress {
		outcomes, err = progress.Run(ctx, app.In, app.Out, jobs, app.Pool.Run)
	} else {
		outcomes, err = app.Pool.Run(ctx, jobs, nil)
	}

	fmt.Fprintln(app.Out, app.Formatter.FormatOutcomes(outcomes))
	return err
}
