package config

import (
	"os"
	"path/filepath"
)

const fileName = "neora.toml"

func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "neora")
	}
	return filepath.Join(home, ".config", "neora")
}

// ConfigFilePath prefers a neora.toml next to the executable, so an
// installer can ship its step list alongside the binary.
func ConfigFilePath() string {
	exe, err := os.Executable()
	if err == nil {
		adjacent := filepath.Join(filepath.Dir(exe), fileName)
		if _, err := os.Stat(adjacent); err == nil {
			return adjacent
		}
	}
	return filepath.Join(ConfigDir(), fileName)
}

func LogFilePath() string {
	return filepath.Join(ConfigDir(), "neora.log")
}
