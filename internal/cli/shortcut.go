package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newShortcutCommand(flags *globalFlags, opts Options) *cobra.Command {
	var remove bool
	shortcutCmd := &cobra.Command{
		Use:   "shortcut",
		Short: "Create or remove a desktop shortcut",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := flags.environment(cmd, opts, true)
			if err != nil {
				return err
			}
			defer env.Close()

			out := cmd.OutOrStdout()
			if remove {
				if err := env.Platform.RemoveShortcut(DisplayName); err != nil {
					return err
				}
				fmt.Fprintln(out, "Shortcut removed")
				return nil
			}

			execPath, err := executablePath()
			if err != nil {
				return err
			}
			path, err := env.Platform.CreateShortcut(DisplayName, execPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Shortcut created at %s\n", path)
			return nil
		},
	}
	shortcutCmd.Flags().BoolVar(&remove, "remove", false, "remove the shortcut instead")
	return shortcutCmd
}

func executablePath() (string, error) {
	execPath, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("resolve executable path: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(execPath); err == nil {
		execPath = resolved
	}
	return execPath, nil
}
