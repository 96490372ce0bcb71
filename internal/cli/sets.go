package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"chordtrainer/internal/storage"

	"github.com/spf13/cobra"
)

func newSetsCommand(flags *globalFlags, opts Options) *cobra.Command {
	setsCmd := &cobra.Command{
		Use:   "sets",
		Short: "Manage chord sets",
	}

	setsCmd.AddCommand(newSetsListCommand(flags, opts))
	setsCmd.AddCommand(newSetsCreateCommand(flags, opts))
	setsCmd.AddCommand(newSetsDeleteCommand(flags, opts))
	setsCmd.AddCommand(newSetsShowCommand(flags, opts))
	setsCmd.AddCommand(newSetsEditCommand(flags, opts))
	return setsCmd
}

func newSetsListCommand(flags *globalFlags, opts Options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List chord sets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := flags.environment(cmd, opts, true)
			if err != nil {
				return err
			}
			defer env.Close()

			names, err := env.Sets.List()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(names) == 0 {
				fmt.Fprintf(out, "No chord sets in %s\n", env.Sets.Dir())
				return nil
			}
			for _, name := range names {
				marker := " "
				if name == env.Settings.LastSet {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %s\n", marker, name)
			}
			return nil
		},
	}
}

func newSetsCreateCommand(flags *globalFlags, opts Options) *cobra.Command {
	var force bool
	createCmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create an empty chord set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := flags.environment(cmd, opts, true)
			if err != nil {
				return err
			}
			defer env.Close()

			id, err := env.Sets.Create(args[0], force)
			if errors.Is(err, storage.ErrAlreadyExists) {
				return fmt.Errorf("%w (use --force to overwrite)", err)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", env.Sets.Path(id))
			return nil
		},
	}
	createCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing set")
	return createCmd
}

func newSetsDeleteCommand(flags *globalFlags, opts Options) *cobra.Command {
	var yes bool
	deleteCmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a chord set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := flags.environment(cmd, opts, true)
			if err != nil {
				return err
			}
			defer env.Close()

			id := storage.SetID(args[0])
			out := cmd.OutOrStdout()
			if !yes {
				fmt.Fprintf(out, "Delete %s? [y/N] ", id)
				answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if !strings.EqualFold(strings.TrimSpace(answer), "y") {
					fmt.Fprintln(out, "Cancelled")
					return nil
				}
			}

			if _, err := env.Sets.Delete(id); err != nil {
				return err
			}
			if env.Settings.LastSet == id {
				env.Settings.LastSet = ""
				if err := env.SaveSettings(); err != nil {
					return err
				}
			}
			fmt.Fprintf(out, "Deleted %s\n", id)
			return nil
		},
	}
	deleteCmd.Flags().BoolVarP(&yes, "yes", "y", false, "delete without asking")
	return deleteCmd
}

func newSetsShowCommand(flags *globalFlags, opts Options) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Print the chords of a set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := flags.environment(cmd, opts, true)
			if err != nil {
				return err
			}
			defer env.Close()

			set, err := env.Sets.Load(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if set.Len() == 0 {
				fmt.Fprintf(out, "%s has no chords\n", set.Name)
				return nil
			}

			global := env.Settings.Interval()
			entries := set.Entries()
			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				seconds := strconv.Itoa(entry.Interval)
				if !entry.HasInterval() {
					seconds = fmt.Sprintf("%d (global)", global)
				}
				rows = append(rows, []string{entry.Name, seconds})
			}
			fmt.Fprintln(out, renderTable([]string{"Chord", "Seconds"}, rows))
			return nil
		},
	}
}

func newSetsEditCommand(flags *globalFlags, opts Options) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <name>",
		Short: "Open a chord set in the system editor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := flags.environment(cmd, opts, true)
			if err != nil {
				return err
			}
			defer env.Close()

			id := storage.SetID(args[0])
			if _, err := env.Sets.Load(id); err != nil {
				return err
			}
			path := env.Sets.Path(id)
			if err := env.Platform.OpenFile(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Opened %s\n", path)
			return nil
		},
	}
}
