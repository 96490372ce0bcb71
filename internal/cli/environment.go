package cli

import (
	"fmt"
	"path/filepath"
	"slices"

	"chordtrainer/internal/core/model"
	"chordtrainer/internal/core/practice"
	"chordtrainer/internal/core/trainer"
	"chordtrainer/internal/logger"
	"chordtrainer/internal/platform"
	"chordtrainer/internal/storage"

	"github.com/rs/zerolog/log"
)

const (
	// AppName names the config directory and the single-instance lock.
	AppName = "chordtrainer"
	// DisplayName is shown in windows and desktop shortcuts.
	DisplayName = "Chord Trainer"

	diagnosticsFileName = "chordtrainer.log"
)

// Environment is the wired application shared by every front end.
type Environment struct {
	ConfigDir    string
	SettingsPath string
	Settings     model.Settings
	Sets         *storage.SetStore
	Progress     *storage.ProgressLog
	Engine       *practice.Engine
	Trainer      *trainer.Trainer
	Platform     platform.Service

	logger *logger.Logger
}

type environmentConfig struct {
	configDir string
	overrides func(*model.Settings)
	console   bool
	logConfig logger.Config
	platform  platform.Service
}

// NewEnvironment wires an Environment rooted at configDir. Diagnostics go to
// the log file only.
func NewEnvironment(configDir string, service platform.Service) (*Environment, error) {
	return newEnvironment(environmentConfig{configDir: configDir, platform: service})
}

func newEnvironment(cfg environmentConfig) (*Environment, error) {
	service := cfg.platform
	if service == nil {
		service = platform.NewService()
	}

	configDir := cfg.configDir
	if configDir == "" {
		base, err := service.GetConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir: %w", err)
		}
		configDir = filepath.Join(base, AppName)
	}

	settingsPath := storage.ResolveConfigPath(configDir)
	settings, err := storage.LoadSettingsFile(settingsPath)
	if err != nil {
		return nil, err
	}
	if cfg.overrides != nil {
		cfg.overrides(&settings)
	}

	logConfig := cfg.logConfig
	logConfig.Level = settings.LogLevel
	logConfig.File = diagnosticsPath(configDir)
	logConfig.Console = cfg.console
	appLogger, err := logger.New(logConfig)
	if err != nil {
		return nil, err
	}

	resolved := settings.Resolve(configDir)
	sets := storage.NewSetStore(resolved.SetsDir)
	if _, err := sets.EnsureDefault(); err != nil {
		_ = appLogger.Close()
		return nil, err
	}

	progress := storage.NewProgressLog(resolved.LogFile)
	engine := practice.New(practice.Config{})
	log.Debug().
		Str("config_dir", configDir).
		Str("sets_dir", resolved.SetsDir).
		Str("log_file", resolved.LogFile).
		Msg("environment ready")

	return &Environment{
		ConfigDir:    configDir,
		SettingsPath: settingsPath,
		Settings:     settings,
		Sets:         sets,
		Progress:     progress,
		Engine:       engine,
		Trainer:      trainer.New(engine, sets, progress),
		Platform:     service,
		logger:       appLogger,
	}, nil
}

// SelectInitialSet activates preferred, then the last used set, then the
// default set, then the first set on disk.
func (env *Environment) SelectInitialSet(preferred string) (string, error) {
	if preferred != "" {
		id := storage.SetID(preferred)
		if _, err := env.Trainer.SelectSet(id); err != nil {
			return "", err
		}
		return id, nil
	}

	names, err := env.Sets.List()
	if err != nil {
		return "", err
	}
	candidates := []string{env.Settings.LastSet, storage.DefaultSetName}
	if len(names) > 0 {
		candidates = append(candidates, names[0])
	}
	for _, id := range candidates {
		if id == "" || !slices.Contains(names, id) {
			continue
		}
		if _, err := env.Trainer.SelectSet(id); err != nil {
			log.Warn().Err(err).Str("set", id).Msg("chord set could not be loaded")
			continue
		}
		return id, nil
	}
	return "", trainer.ErrNoSetSelected
}

// RememberSet records id as the last used set.
func (env *Environment) RememberSet(id string) error {
	if env.Settings.LastSet == id {
		return nil
	}
	env.Settings.LastSet = id
	return env.SaveSettings()
}

// SaveSettings writes the current settings file.
func (env *Environment) SaveSettings() error {
	if err := storage.SaveSettingsFile(env.SettingsPath, env.Settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// DiagnosticsPath returns the zerolog file location.
func (env *Environment) DiagnosticsPath() string {
	return diagnosticsPath(env.ConfigDir)
}

func diagnosticsPath(configDir string) string {
	return filepath.Join(configDir, diagnosticsFileName)
}

// Close flushes any running session and releases resources.
func (env *Environment) Close() error {
	env.Trainer.Shutdown()
	env.Engine.Close()
	return env.logger.Close()
}
