package file

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

const appName = "newsum"

// DefaultConfigDir returns the XDG config directory for newsum.
func DefaultConfigDir() string {
	return filepath.Join(xdg.ConfigHome, appName)
}

// DefaultDataDir returns the XDG data directory for newsum.
func DefaultDataDir() string {
	return filepath.Join(xdg.DataHome, appName)
}
