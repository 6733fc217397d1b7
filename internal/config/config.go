// Package config resolves runtime settings from the environment.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	Backend              string
	DataPath             string
	StorageKey           string
	DarkMode             bool
	DesktopNotifications bool
	DueReminderHour      int
	SchedulerBuffer      int
	LogFile              string
}

func Default() Config {
	return Config{
		Backend:              "json",
		DataPath:             DefaultDataPath(),
		StorageKey:           "tasks",
		DarkMode:             false,
		DesktopNotifications: false,
		DueReminderHour:      9,
		SchedulerBuffer:      64,
		LogFile:              "",
	}
}

// DefaultDataPath follows the XDG base directory layout and falls back to
// the working directory when no home directory is known.
func DefaultDataPath() string {
	if xdg := strings.TrimSpace(os.Getenv("XDG_DATA_HOME")); xdg != "" {
		return filepath.Join(xdg, "todo")
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".todo"
	}
	return filepath.Join(home, ".local", "share", "todo")
}

func FromEnv(base Config) Config {
	cfg := base
	if v, ok := getEnvString("TODO_BACKEND"); ok {
		cfg.Backend = strings.ToLower(v)
	}
	if v, ok := getEnvString("TODO_DATA_PATH"); ok {
		cfg.DataPath = v
	}
	if v, ok := getEnvString("TODO_STORAGE_KEY"); ok {
		cfg.StorageKey = v
	}
	if v, ok := getEnvBool("TODO_DARK_MODE"); ok {
		cfg.DarkMode = v
	}
	if v, ok := getEnvBool("TODO_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvInt("TODO_DUE_REMINDER_HOUR"); ok && v >= 0 && v < 24 {
		cfg.DueReminderHour = v
	}
	if v, ok := getEnvInt("TODO_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	if v, ok := getEnvString("TODO_LOG_FILE"); ok {
		cfg.LogFile = v
	}
	return cfg
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	return raw, raw != ""
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
