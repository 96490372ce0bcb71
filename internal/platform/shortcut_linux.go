//go:build linux

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
	if err := os.MkdirAll(desktopDir, 0o755); err != nil {
		return "", fmt.Errorf("create shortcut: create desktop dir: %w", err)
	}

	desktopFilePath := filepath.Join(desktopDir, desktopFileName(appName))
	if err := os.WriteFile(desktopFilePath, []byte(buildDesktopEntry(shortcutBaseName(appName), execPath)), 0o755); err != nil {
		return "", fmt.Errorf("create shortcut: write desktop entry: %w", err)
	}

	return desktopFilePath, nil
}

func (service *platformService) RemoveShortcut(appName string) error {
	desktopDir, err := service.GetDesktopDir()
	if err != nil {
		return fmt.Errorf("remove shortcut: %w", err)
	}

	desktopFilePath := filepath.Join(desktopDir, desktopFileName(appName))
	if err := os.Remove(desktopFilePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove shortcut: remove desktop entry: %w", err)
	}

	return nil
}

func (service *platformService) OpenFile(path string) error {
	opener, err := exec.LookPath("xdg-open")
	if err != nil {
		return fmt.Errorf("open %s: xdg-open: %w", path, ErrUnsupported)
	}
	if err := exec.Command(opener, path).Start(); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	return nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config")
}

func desktopFileName(appName string) string {
	name := strings.ToLower(shortcutBaseName(appName))
	name = strings.ReplaceAll(name, " ", "-")
	return name + ".desktop"
}

func buildDesktopEntry(appName, execPath string) string {
	execLine := execPath
	if strings.Contains(execLine, " ") && !strings.HasPrefix(execLine, `"`) {
		execLine = `"` + execLine + `"`
	}

	return fmt.Sprintf(
		`[Desktop Entry]
Type=Application
Name=%s
Exec=%s
Path=%s
Terminal=false
Categories=Music;Education;
`,
		appName,
		execLine,
		filepath.Dir(execPath),
	)
}
