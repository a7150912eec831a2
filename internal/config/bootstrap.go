package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// EnsureUserConfig returns the path of the active config file inside dataDir,
// seeding it from the bundled default on the first run. An existing file is
// never overwritten, even when the bundled default has since changed.
func EnsureUserConfig(dataDir string, defaultPath string) (string, error) {
	userPath := filepath.Join(dataDir, "config.yml")

	_, err := os.Stat(userPath)
	if err == nil {
		return userPath, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	def, err := os.ReadFile(defaultPath)
	if err != nil {
		return "", fmt.Errorf("read bundled config: %w", err)
	}
	if err := os.WriteFile(userPath, def, 0o644); err != nil {
		return "", fmt.Errorf("seed user config: %w", err)
	}
	return userPath, nil
}
