package sqlite

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

func defaultDataDir() string {
	return filepath.Join(xdg.DataHome, "newsum")
}
