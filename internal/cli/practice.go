package cli

import (
	"chordtrainer/internal/tui"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newPracticeCommand(flags *globalFlags, opts Options) *cobra.Command {
	return &cobra.Command{
		Use:   "practice [set]",
		Short: "Practice in the terminal",
		Long: `Runs a practice session in the terminal.
Without arguments the last used set is practiced, falling back to the default set.
Keys: s start/stop, n or space next chord, q quit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := flags.environment(cmd, opts, false)
			if err != nil {
				return err
			}
			defer env.Close()

			preferred := ""
			if len(args) == 1 {
				preferred = args[0]
			}
			id, err := env.SelectInitialSet(preferred)
			if err != nil {
				return err
			}
			if err := env.RememberSet(id); err != nil {
				log.Warn().Err(err).Msg("last used set not remembered")
			}

			return tui.Run(cmd.Context(), env.Trainer, tui.Options{
				SetName:  id,
				Interval: env.Settings.Interval(),
				Input:    cmd.InOrStdin(),
				Output:   cmd.OutOrStdout(),
			})
		},
	}
}
