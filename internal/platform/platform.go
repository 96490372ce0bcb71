package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupported indicates the helper has no implementation on this system.
var ErrUnsupported = errors.New("unsupported on this platform")

// Service defines OS-specific helpers needed by the application.
type Service interface {
	GetConfigDir() (string, error)
	GetDesktopDir() (string, error)
	CreateShortcut(appName, execPath string) (string, error)
	RemoveShortcut(appName string) error
	OpenFile(path string) error
}

type platformService struct{}

// NewService returns a platform-specific implementation.
func NewService() Service {
	return &platformService{}
}

// GetConfigDir returns the OS-standard configuration directory.
func (service *platformService) GetConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return configDir, nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}

	return fallbackConfigDir(homeDir), nil
}

// GetDesktopDir returns the current user's desktop directory.
func (service *platformService) GetDesktopDir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv("XDG_DESKTOP_DIR")); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get desktop dir: %w", err)
	}
	return filepath.Join(homeDir, "Desktop"), nil
}

func shortcutBaseName(appName string) string {
	name := strings.TrimSpace(appName)
	if name == "" {
		name = "chordtrainer"
	}
	return name
}
