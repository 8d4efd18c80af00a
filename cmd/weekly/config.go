package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"weekly-reports/internal/store"
)

func newConfigCmd(root *rootOptions) *cobra.Command {
	var prefsPath string

	open := func() (*store.Preferences, error) {
		path := prefsPath
		if path == "" {
			if err := loadEnv(root.envFile); err != nil {
				return nil, err
			}
			var err error
			if path, err = store.PrefsPathFromEnv(); err != nil {
				return nil, err
			}
		}
		return store.OpenPreferences(path)
	}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage user preferences",
		Long:  "Manage user preferences stored as JSON (default ~/.weekly)",
	}
	cmd.PersistentFlags().StringVar(&prefsPath, "prefs", "", "Preference file (defaults to $WEEKLY_PREFS or ~/.weekly)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stored preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, err := open()
			if err != nil {
				return err
			}
			for _, k := range prefs.Keys() {
				v, _ := prefs.Get(k)
				fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", k, v)
			}
			return nil
		},
	}

	getCmd := &cobra.Command{
		Use:   "get KEY",
		Short: "Print one preference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, err := open()
			if err != nil {
				return err
			}
			v, ok := prefs.Get(args[0])
			if !ok {
				cmd.SilenceUsage = true
				return fmt.Errorf("configuration key not found: '%s'", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}

	setCmd := &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Store a preference",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, err := open()
			if err != nil {
				return err
			}
			cmd.SilenceUsage = true
			if err := prefs.Set(args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("Updated configuration: '%s' = '%s'", args[0], args[1]))
			return nil
		},
	}

	unsetCmd := &cobra.Command{
		Use:   "unset KEY",
		Short: "Remove a preference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, err := open()
			if err != nil {
				return err
			}
			cmd.SilenceUsage = true
			removed, err := prefs.Delete(args[0])
			if err != nil {
				return err
			}
			if !removed {
				fmt.Fprintln(cmd.OutOrStdout(), color.YellowString("Configuration key not found: '%s'", args[0]))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("Removed configuration key: '%s'", args[0]))
			return nil
		},
	}

	cmd.AddCommand(listCmd, getCmd, setCmd, unsetCmd)
	return cmd
}
