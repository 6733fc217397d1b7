package config

import (
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg")
	cfg := Default()
	if cfg.Backend != "json" || cfg.StorageKey != "tasks" {
		t.Fatalf("unexpected storage defaults: %+v", cfg)
	}
	if cfg.DueReminderHour != 9 || cfg.SchedulerBuffer != 64 {
		t.Fatalf("unexpected runtime defaults: %+v", cfg)
	}
	if cfg.DarkMode || cfg.DesktopNotifications || cfg.LogFile != "" {
		t.Fatalf("unexpected toggles: %+v", cfg)
	}
	if cfg.DataPath != filepath.Join("/tmp/xdg", "todo") {
		t.Fatalf("unexpected data path: %q", cfg.DataPath)
	}
}

func TestDefaultDataPathWithoutXDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("HOME", "/home/someone")
	if got := DefaultDataPath(); got != filepath.Join("/home/someone", ".local", "share", "todo") {
		t.Fatalf("unexpected data path: %q", got)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("TODO_BACKEND", "SQLite")
	t.Setenv("TODO_DATA_PATH", "state/data")
	t.Setenv("TODO_STORAGE_KEY", "work")
	t.Setenv("TODO_DARK_MODE", "yes")
	t.Setenv("TODO_DESKTOP_NOTIFICATIONS", "true")
	t.Setenv("TODO_DUE_REMINDER_HOUR", "7")
	t.Setenv("TODO_SCHEDULER_BUFFER", "128")
	t.Setenv("TODO_LOG_FILE", "debug.log")

	cfg := FromEnv(Default())
	if cfg.Backend != "sqlite" || cfg.DataPath != "state/data" || cfg.StorageKey != "work" {
		t.Fatalf("unexpected storage overrides: %+v", cfg)
	}
	if !cfg.DarkMode || !cfg.DesktopNotifications {
		t.Fatalf("expected toggles on from env: %+v", cfg)
	}
	if cfg.DueReminderHour != 7 || cfg.SchedulerBuffer != 128 || cfg.LogFile != "debug.log" {
		t.Fatalf("unexpected runtime overrides: %+v", cfg)
	}
}

func TestFromEnvIgnoresInvalidValues(t *testing.T) {
	t.Setenv("TODO_DARK_MODE", "maybe")
	t.Setenv("TODO_DUE_REMINDER_HOUR", "25")
	t.Setenv("TODO_SCHEDULER_BUFFER", "-1")

	base := Default()
	cfg := FromEnv(base)
	if cfg.DarkMode != base.DarkMode || cfg.DueReminderHour != 9 || cfg.SchedulerBuffer != 64 {
		t.Fatalf("invalid env values should be ignored: %+v", cfg)
	}
}
