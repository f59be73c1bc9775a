// File: cmd/drivesync/config_cmd.go
package main

import (
	"errors"
	"fmt"
	"strings"

	"drivesync/internal/config"
	"drivesync/internal/flags"

	"github.com/spf13/cobra"
)

func newConfigCmd(app *appContainer) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the directories file",
		Long:  `List, add, and remove the label/directory pairs in the config file (default ./config.yml).`,
	}

	configListCmd := &cobra.Command{
		Use:   "list",
		Short: "List configured directories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dirs, err := config.LoadDirectories(app.Settings.ConfigFile)
			if err != nil {
				return err
			}
			fmt.Fprintln(app.Out, app.Formatter.FormatDirectories(dirs))
			return nil
		},
	}

	var addForce bool
	configAddCmd := &cobra.Command{
		Use:   "add [label] [directory]",
		Short: "Add a directory under a label",
		Long:  `Adds a directory to the config file, creating the file if needed. For example: 'drivesync config add personal ~/GoogleDrive/personal'`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			label := strings.TrimSpace(args[0])
			dir := strings.TrimSpace(args[1])
			path := app.Settings.ConfigFile

			dirs, err := config.LoadDirectories(path)
			switch {
			case errors.Is(err, config.ErrNotFound), errors.Is(err, config.ErrNoDirectories):
				dirs = config.Directories{}
			case err != nil:
				return err
			}

			if existing, ok := dirs[label]; ok && !addForce {
				return fmt.Errorf("label '%s' already points to %s. Use --%s to replace it", label, existing, flags.Force)
			}
			dirs[label] = dir

			if err := dirs.Validate(); err != nil {
				return err
			}
			if err := config.SaveDirectories(path, dirs); err != nil {
				return err
			}

			fmt.Fprintf(app.Out, "Directory added: %s = %s\n", label, dir)
			return nil
		},
	}
	configAddCmd.Flags().BoolVarP(&addForce, flags.Force, flags.ForceShort, false, "Replace an existing label")

	var removeForce bool
	configRemoveCmd := &cobra.Command{
		Use:   "remove [label]",
		Short: "Remove a directory by label",
		Long:  `Removes a label from the config file after confirmation. The directory itself is left untouched.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			label := args[0]
			path := app.Settings.ConfigFile

			dirs, err := config.LoadDirectories(path)
			if err != nil {
				return err
			}

			dir, ok := dirs[label]
			if !ok {
				return fmt.Errorf("label '%s' not found in %s", label, path)
			}

			if !removeForce {
				message := fmt.Sprintf("Remove '%s' (%s) from %s?", label, dir, path)
				confirmed, err := app.Prompter.Confirm(message, label)
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(app.Out, "Aborted.")
					return nil
				}
			}

			delete(dirs, label)
			if err := config.SaveDirectories(path, dirs); err != nil {
				return err
			}

			fmt.Fprintf(app.Out, "Label '%s' removed\n", label)
			return nil
		},
	}
	configRemoveCmd.Flags().BoolVarP(&removeForce, flags.Force, flags.ForceShort, false, "Skip the confirmation prompt")

	configCmd.AddCommand(configListCmd, configAddCmd, configRemoveCmd)
	return configCmd
}
