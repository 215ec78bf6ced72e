package paths

import (
	"os"
	"path/filepath"
)

func home() string {
	h, _ := os.UserHomeDir()
	return h
}

// AppDir returns ~/.coach-admin, or $COACH_ADMIN_HOME when set.
func AppDir() string {
	if dir := os.Getenv("COACH_ADMIN_HOME"); dir != "" {
		return dir
	}
	return filepath.Join(home(), ".coach-admin")
}

// ConfigFile returns ~/.coach-admin/config.yaml.
func ConfigFile() string {
	return filepath.Join(AppDir(), "config.yaml")
}

// LogFile returns ~/.coach-admin/coach-admin.log.
func LogFile() string {
	return filepath.Join(AppDir(), "coach-admin.log")
}

// EnvFile returns the .env file looked up in the working directory.
func EnvFile() string {
	return ".env"
}
