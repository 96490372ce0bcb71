// Package shell runs the desktop trainer: the practice window, the set
// picker, the progress viewer, preferences and the system tray.
package shell

import (
	"errors"
	"fmt"

	"chordtrainer/internal/cli"
	"chordtrainer/internal/core/model"
	"chordtrainer/internal/core/practice"
	"chordtrainer/internal/core/trainer"
	"chordtrainer/internal/platform"
	"chordtrainer/internal/storage"
	"chordtrainer/internal/ui/chordview"
	"chordtrainer/internal/ui/preferences"
	"chordtrainer/internal/ui/progress"
	"chordtrainer/internal/ui/sets"
	"chordtrainer/internal/ui/tray"
	"chordtrainer/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog/log"
)

const appID = "com.chordtrainer.app"

// Shell owns the desktop windows and routes user actions to the trainer.
type Shell struct {
	env      *cli.Environment
	app      fyne.App
	main     *chordview.Window
	picker   *sets.Picker
	progress *progress.Window
	prefs    *preferences.Window
	tray     *tray.Manager
}

// Run shows the desktop trainer and blocks until the user quits.
func Run(env *cli.Environment) error {
	guard, err := platform.AcquireSingleInstance(cli.AppName)
	if err != nil {
		return fmt.Errorf("start desktop trainer: %w", err)
	}
	defer func() {
		_ = guard.Release()
	}()

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.MustIcon(resources.Logo))
	shell := New(fyneApp, env)

	watcher, err := storage.NewSetWatcher(storage.SetWatcherConfig{
		Dir:      env.Sets.Dir(),
		OnChange: shell.handleSetChanged,
	})
	if err == nil {
		err = watcher.Start()
	}
	if err != nil {
		log.Warn().Err(err).Str("dir", env.Sets.Dir()).Msg("edits to chord sets will not reload automatically")
		watcher = nil
	}

	hook := platform.NewShutdownHook(func() {
		if watcher != nil {
			_ = watcher.Stop()
		}
		env.Trainer.Shutdown()
	}, func() {
		fyne.Do(fyneApp.Quit)
	})
	defer hook.Close()

	shell.listen(env.Trainer.Subscribe(32))
	shell.restoreLastSet()
	shell.main.Show()
	fyneApp.Run()

	hook.Run()
	return nil
}

// New builds the windows for env without showing them.
func New(fyneApp fyne.App, env *cli.Environment) *Shell {
	shell := &Shell{env: env, app: fyneApp}

	shell.main = chordview.New(fyneApp, cli.DisplayName, env.Settings.Interval(), chordview.Callbacks{
		OnStart:       shell.start,
		OnStop:        shell.stop,
		OnNext:        env.Trainer.Skip,
		OnSelectSet:   shell.showPicker,
		OnEditSet:     shell.editSet,
		OnProgress:    shell.showProgress,
		OnPreferences: shell.showPreferences,
	})
	shell.picker = sets.New(fyneApp, env.Sets, sets.Callbacks{
		OnSelect:  shell.selectSet,
		OnDeleted: shell.setDeleted,
	})
	shell.progress = progress.New(fyneApp, env.Progress)
	shell.prefs = preferences.New(fyneApp, env.Settings, shell.saveSettings)
	shell.prefs.SetDiagnosticsPath(env.DiagnosticsPath())

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayWindow := fyneApp.NewWindow(cli.DisplayName)
		trayWindow.SetContent(widget.NewLabel("Chord Trainer is running in the system tray."))
		trayWindow.SetCloseIntercept(trayWindow.Hide)
		trayWindow.Hide()
		desktopApp.SetSystemTrayWindow(trayWindow)

		shell.tray = tray.New(desktopApp, cli.DisplayName, tray.Icons{
			Active: resources.MustIcon(resources.TrayActive),
			Idle:   resources.MustIcon(resources.TrayIdle),
		}, tray.Callbacks{
			OnShow:        shell.main.Show,
			OnToggle:      shell.toggle,
			OnNext:        env.Trainer.Skip,
			OnSelectSet:   shell.showPicker,
			OnProgress:    shell.showProgress,
			OnPreferences: shell.showPreferences,
			OnQuit:        shell.quit,
		})
		shell.main.SetCloseIntercept(shell.main.Window().Hide)
	} else {
		log.Info().Msg("system tray unsupported on this platform")
		shell.main.SetCloseIntercept(shell.quit)
	}
	return shell
}

func (shell *Shell) listen(events <-chan practice.Event) {
	go func() {
		for event := range events {
			fyne.Do(func() {
				shell.handleEvent(event)
			})
		}
	}()
}

func (shell *Shell) handleEvent(event practice.Event) {
	switch event.Type {
	case practice.EventStarted:
		shell.main.SetRunning(event.At)
		if shell.tray != nil {
			shell.tray.SetRunning(true)
		}
	case practice.EventChord:
		shell.main.SetChord(event.Chord, event.Interval)
		shell.setTrayStatus(event.Chord, event.Interval)
	case practice.EventTick:
		shell.main.SetChord(event.Chord, event.Remaining)
		shell.setTrayStatus(event.Chord, event.Remaining)
	case practice.EventSkipped:
		shell.main.SetSkipping()
	case practice.EventStopped:
		shell.main.SetIdle()
		if event.Record != nil {
			shell.main.SetSessionEnded(*event.Record)
		}
		if shell.tray != nil {
			shell.tray.SetRunning(false)
		}
	}
}

func (shell *Shell) setTrayStatus(chord string, remaining int) {
	if shell.tray != nil {
		shell.tray.SetStatus(fmt.Sprintf("%s (%ds)", chord, remaining))
	}
}

func (shell *Shell) restoreLastSet() {
	id, err := shell.env.SelectInitialSet("")
	if err != nil {
		log.Info().Err(err).Msg("no chord set restored")
		shell.showPicker()
		return
	}
	shell.main.SetSetName(id)
}

func (shell *Shell) toggle() {
	if shell.env.Trainer.Running() {
		shell.stop()
		return
	}
	shell.start()
}

func (shell *Shell) start() {
	interval := shell.main.Interval()
	if interval != shell.env.Settings.GlobalInterval {
		shell.env.Settings.GlobalInterval = interval
		shell.prefs.UpdateSettings(shell.env.Settings)
		if err := shell.env.SaveSettings(); err != nil {
			log.Warn().Err(err).Msg("global interval not saved")
		}
	}

	err := shell.env.Trainer.Start(interval)
	switch {
	case err == nil:
	case errors.Is(err, trainer.ErrNoSetSelected):
		shell.showPicker()
	case errors.Is(err, practice.ErrEmptySet):
		id, _ := shell.env.Trainer.ActiveSet()
		dialog.ShowInformation("Empty Practice File",
			fmt.Sprintf("%s has no chords yet. Use Edit Current Notes to add some.", id),
			shell.main.Window())
	default:
		dialog.ShowError(err, shell.main.Window())
	}
}

func (shell *Shell) stop() {
	if _, _, err := shell.env.Trainer.Stop(); err != nil {
		dialog.ShowError(err, shell.main.Window())
	}
}

func (shell *Shell) selectSet(id string) {
	if _, err := shell.env.Trainer.SelectSet(id); err != nil {
		dialog.ShowError(fmt.Errorf("could not load notes: %w", err), shell.main.Window())
		return
	}
	shell.main.SetSetName(id)
	if err := shell.env.RememberSet(id); err != nil {
		log.Warn().Err(err).Msg("last used set not remembered")
	}
	shell.main.Show()
}

func (shell *Shell) setDeleted(id string) {
	active, _ := shell.env.Trainer.ActiveSet()
	shell.env.Trainer.ClearActive(id)
	if active != "" && storage.SetID(active) == storage.SetID(id) {
		shell.main.SetSetName("")
	}
	if shell.env.Settings.LastSet == id {
		if err := shell.env.RememberSet(""); err != nil {
			log.Warn().Err(err).Msg("deleted set still remembered")
		}
	}
}

func (shell *Shell) editSet() {
	id, _ := shell.env.Trainer.ActiveSet()
	if id == "" {
		shell.showPicker()
		return
	}
	path := shell.env.Sets.Path(id)
	err := shell.env.Platform.OpenFile(path)
	switch {
	case err == nil:
	case errors.Is(err, platform.ErrUnsupported):
		dialog.ShowInformation("Edit Practice File", "Open this file in a text editor:\n"+path, shell.main.Window())
	default:
		dialog.ShowError(err, shell.main.Window())
	}
}

func (shell *Shell) handleSetChanged(name string) {
	shell.env.Trainer.HandleSetChanged(name)
	fyne.Do(shell.picker.Refresh)
}

func (shell *Shell) saveSettings(updated model.Settings) {
	updated.LastSet = shell.env.Settings.LastSet
	shell.env.Settings = updated
	shell.main.SetInterval(updated.Interval())
	if err := shell.env.SaveSettings(); err != nil {
		dialog.ShowError(err, shell.main.Window())
	}
}

func (shell *Shell) showPicker() {
	shell.picker.Show()
}

func (shell *Shell) showProgress() {
	shell.progress.Show()
}

func (shell *Shell) showPreferences() {
	shell.prefs.UpdateSettings(shell.env.Settings)
	shell.prefs.Show()
}

func (shell *Shell) quit() {
	shell.env.Trainer.Shutdown()
	shell.app.Quit()
}
