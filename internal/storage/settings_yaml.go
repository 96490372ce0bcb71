package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"chordtrainer/internal/core/model"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	GlobalIntervalSeconds int    `yaml:"global_interval_seconds"`
	SetsDir               string `yaml:"sets_dir"`
	LogFile               string `yaml:"log_file"`
	LastSet               string `yaml:"last_set,omitempty"`
	LogLevel              string `yaml:"log_level"`
}

// LoadSettingsFile reads user preferences from an explicit path.
func LoadSettingsFile(configPath string) (model.Settings, error) {
	settings := model.DefaultSettings()

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettingsFile writes user preferences to an explicit path.
func SaveSettingsFile(configPath string, settings model.Settings) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlSettings{
		GlobalIntervalSeconds: settings.GlobalInterval,
		SetsDir:               settings.SetsDir,
		LogFile:               settings.LogFile,
		LastSet:               settings.LastSet,
		LogLevel:              settings.LogLevel,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

// ResolveConfigPath returns the settings file inside configDir.
func ResolveConfigPath(configDir string) string {
	return filepath.Join(configDir, settingsFileName)
}

func applyYamlSettings(settings *model.Settings, fileData yamlSettings) {
	if fileData.GlobalIntervalSeconds > 0 {
		settings.GlobalInterval = fileData.GlobalIntervalSeconds
	}
	if fileData.SetsDir != "" {
		settings.SetsDir = fileData.SetsDir
	}
	if fileData.LogFile != "" {
		settings.LogFile = fileData.LogFile
	}
	if fileData.LogLevel != "" {
		settings.LogLevel = fileData.LogLevel
	}
	settings.LastSet = fileData.LastSet
}
