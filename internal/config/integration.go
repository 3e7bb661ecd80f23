package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Organization and application identifiers that namespace per-user directories.
const (
	Organization = "justadataconstruct"
	Application  = "xiv_quote"
)

// AppDirName is the per-application directory name, e.g. "justadataconstruct.xiv_quote".
func AppDirName() string {
	return Organization + "." + Application
}

// GetConfigDir returns the xivquote configuration directory: $XIVQUOTE_HOME if set,
// otherwise <user config dir>/justadataconstruct.xiv_quote.
func GetConfigDir() (string, error) {
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}

	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(base, AppDirName()), nil
}
