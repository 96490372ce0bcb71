// Package cli wires the chord trainer commands.
package cli

import (
	"errors"
	"fmt"
	"os"

	"chordtrainer/internal/core/model"
	"chordtrainer/internal/platform"

	"github.com/spf13/cobra"
)

// ErrNoDesktop is returned by the root command when no desktop runner is set.
var ErrNoDesktop = errors.New("desktop interface not available")

// Options injects the front ends that live outside this package.
type Options struct {
	// RunGUI runs the desktop app until it exits.
	RunGUI func(env *Environment) error
	// Platform overrides the OS helpers.
	Platform platform.Service
}

type globalFlags struct {
	configDir string
	setsDir   string
	logFile   string
	logLevel  string
	interval  int
	verbose   bool
}

// NewRootCommand creates the root command
func NewRootCommand(opts Options) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:           AppName,
		Short:         "Practice chord changes against a timer",
		Long:          `chordtrainer shows random chords from a chord set, counts each one down and logs every practice session.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.RunGUI == nil {
				return ErrNoDesktop
			}
			env, err := flags.environment(cmd, opts, false)
			if err != nil {
				return err
			}
			defer env.Close()
			return opts.RunGUI(env)
		},
	}

	persistent := rootCmd.PersistentFlags()
	persistent.StringVar(&flags.configDir, "config-dir", "", "directory holding settings.yaml and diagnostics")
	persistent.StringVar(&flags.setsDir, "sets-dir", "", "directory holding chord set files")
	persistent.StringVar(&flags.logFile, "log-file", "", "session log CSV file")
	persistent.IntVar(&flags.interval, "interval", 0, "global interval in seconds for chords without their own")
	persistent.StringVar(&flags.logLevel, "log-level", "", "diagnostics level: debug, info, warn, error")
	persistent.BoolVarP(&flags.verbose, "verbose", "v", false, "mirror diagnostics to stderr")

	rootCmd.AddCommand(newPracticeCommand(flags, opts))
	rootCmd.AddCommand(newSetsCommand(flags, opts))
	rootCmd.AddCommand(newProgressCommand(flags, opts))
	rootCmd.AddCommand(newShortcutCommand(flags, opts))

	return rootCmd
}

// Execute runs the root command
func Execute(opts Options) {
	rootCmd := NewRootCommand(opts)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func (flags *globalFlags) environment(cmd *cobra.Command, opts Options, console bool) (*Environment, error) {
	changed := cmd.Flags().Changed
	cfg := environmentConfig{
		configDir: flags.configDir,
		console:   console || flags.verbose,
		platform:  opts.Platform,
		overrides: func(settings *model.Settings) {
			if changed("sets-dir") {
				settings.SetsDir = flags.setsDir
			}
			if changed("log-file") {
				settings.LogFile = flags.logFile
			}
			if changed("interval") {
				settings.GlobalInterval = flags.interval
			}
			if changed("log-level") {
				settings.LogLevel = flags.logLevel
			}
		},
	}
	cfg.logConfig.Pretty = true
	cfg.logConfig.Stderr = cmd.ErrOrStderr()
	return newEnvironment(cfg)
}
