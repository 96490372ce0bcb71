//go:build windows

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

	shortcutPath := filepath.Join(desktopDir, shortcutBaseName(appName)+".lnk")
	command := exec.Command(
		"powershell",
		"-NoProfile",
		"-NonInteractive",
		"-Command",
		buildShortcutScript(shortcutPath, execPath),
	)
	output, err := command.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("create shortcut: powershell failed: %w: %s", err, strings.TrimSpace(string(output)))
	}

	return shortcutPath, nil
}

func (service *platformService) RemoveShortcut(appName string) error {
	desktopDir, err := service.GetDesktopDir()
	if err != nil {
		return fmt.Errorf("remove shortcut: %w", err)
	}

	shortcutPath := filepath.Join(desktopDir, shortcutBaseName(appName)+".lnk")
	if err := os.Remove(shortcutPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove shortcut: %w", err)
	}

	return nil
}

func (service *platformService) OpenFile(path string) error {
	if err := exec.Command("notepad.exe", path).Start(); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	return nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "AppData", "Roaming")
}

func buildShortcutScript(shortcutPath, execPath string) string {
	return fmt.Sprintf(
		`$shell = New-Object -ComObject WScript.Shell; `+
			`$link = $shell.CreateShortcut(%s); `+
			`$link.TargetPath = %s; `+
			`$link.WorkingDirectory = %s; `+
			`$link.IconLocation = %s; `+
			`$link.Save()`,
		quotePowerShell(shortcutPath),
		quotePowerShell(execPath),
		quotePowerShell(filepath.Dir(execPath)),
		quotePowerShell(execPath),
	)
}

func quotePowerShell(value string) string {
	trimmed := strings.Trim(value, `"`)
	return "'" + strings.ReplaceAll(trimmed, "'", "''") + "'"
}
