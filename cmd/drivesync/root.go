// File: cmd/drivesync/root.go
package main

import (
	"drivesync/internal/config"
	"drivesync/internal/flags"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newRootCmd(app *appContainer) *cobra.Command {
	var dryRun bool

	rootCmd := &cobra.Command{
		Use:   "drivesync",
		Short: "drivesync pushes several local directories to Google Drive in parallel.",
		Long: `drivesync reads a YAML file mapping labels to local directories and runs
'drive push' inside each of them, several at a time. A desktop notification is
sent as each push completes. Running drivesync without a subcommand pushes.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.init()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPush(cmd, app, dryRun)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringP(flags.Config, flags.ConfigShort, config.DefaultFileName, "YAML file mapping labels to directories")
	pf.BoolP(flags.Debug, flags.DebugShort, false, "Enable debug logging")
	pf.IntP(flags.Workers, flags.WorkersShort, 0, "Maximum concurrent pushes (0 = number of CPUs)")
	pf.String(flags.PushCommand, config.DefaultPushCommand, "Shell command run inside each directory")
	pf.String(flags.NotifyCommand, config.DefaultNotifyCommand, "Shell command receiving each status message as $1")
	pf.Bool(flags.NoNotify, false, "Print status messages without sending desktop notifications")
	pf.Duration(flags.Timeout, 0, "Abort the run after this long (0 = no limit)")
	pf.Bool(flags.Progress, false, "Show a live progress view instead of plain messages")

	bindFlags(app, pf)

	rootCmd.Flags().BoolVar(&dryRun, flags.DryRun, false, "Print the directories and worker count without pushing")

	rootCmd.AddCommand(newPushCmd(app))
	rootCmd.AddCommand(newConfigCmd(app))
	return rootCmd
}

// Layers flag values over DRIVESYNC_* env and defaults
func bindFlags(app *appContainer, pf *pflag.FlagSet) {
	bindings := map[string]string{
		config.KeyConfig:        flags.Config,
		config.KeyDebug:         flags.Debug,
		config.KeyWorkers:       flags.Workers,
		config.KeyPushCommand:   flags.PushCommand,
		config.KeyNotifyCommand: flags.NotifyCommand,
		config.KeyTimeout:       flags.Timeout,
		config.KeyProgress:      flags.Progress,
	}
	for key, name := range bindings {
		// Lookup never fails: every name was registered above
		_ = app.Viper.BindPFlag(key, pf.Lookup(name))
	}

	// --no-notify inverts the "notify" setting
	_ = app.Viper.BindFlagValue(config.KeyNotify, invertedFlag{pf.Lookup(flags.NoNotify)})
}

// Presents a boolean --no-X flag as the positive setting X
type invertedFlag struct {
	flag *pflag.Flag
}

func (f invertedFlag) HasChanged() bool  { return f.flag.Changed }
func (f invertedFlag) Name() string      { return config.KeyNotify }
func (f invertedFlag) ValueType() string { return "bool" }

func (f invertedFlag) ValueString() string {
	if f.flag.Value.String() == "true" {
		return "false"
	}
	return "true"
}
