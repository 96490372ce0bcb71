//go:build darwin

package platform

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

func (service *platformService) CreateShortcut(appName, execPath string) (string, error) {
	if execPath == "" {
		return "", fmt.Errorf("create shortcut: exec path is empty")
	}

	desktopDir, err := service.GetDesktopDir()
	if err != nil {
		return "", fmt.Errorf("create shortcut: %w", err)
	}

	scriptPath := filepath.Join(desktopDir, shortcutBaseName(appName)+".command")
	if err := os.WriteFile(scriptPath, []byte(buildLauncherScript(execPath)), 0o755); err != nil {
		return "", fmt.Errorf("create shortcut: write launcher: %w", err)
	}

	return scriptPath, nil
}

func (service *platformService) RemoveShortcut(appName string) error {
	desktopDir, err := service.GetDesktopDir()
	if err != nil {
		return fmt.Errorf("remove shortcut: %w", err)
	}

	scriptPath := filepath.Join(desktopDir, shortcutBaseName(appName)+".command")
	if err := os.Remove(scriptPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove shortcut: %w", err)
	}

	return nil
}

func (service *platformService) OpenFile(path string) error {
	if err := exec.Command("open", "-t", path).Start(); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	return nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "Library", "Application Support")
}

func buildLauncherScript(execPath string) string {
	return fmt.Sprintf("#!/bin/sh\ncd %s && exec %s\n", shellQuote(filepath.Dir(execPath)), shellQuote(execPath))
}

func shellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", `'\''`) + "'"
}
