package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")
	defer func() { Logger = nil }()

	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	logDir := filepath.Join(configDir, "logs")
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("Log directory was not created: %s", logDir)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}
	if Logger.GetLevel() != log.InfoLevel {
		t.Errorf("expected info level, got %v", Logger.GetLevel())
	}

	Info("habit recorded", "habit", "h1")
	if _, err := os.Stat(LogFile(configDir)); err != nil {
		t.Errorf("log file was not written: %v", err)
	}
}

func TestInitDebugMode(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")
	defer func() { Logger = nil }()

	if err := Init(Config{Debug: true, ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger in debug mode: %v", err)
	}
	if Logger.GetLevel() != log.DebugLevel {
		t.Errorf("expected debug level, got %v", Logger.GetLevel())
	}
}

func TestUseCapturesOutput(t *testing.T) {
	var buf bytes.Buffer
	prev := Use(&buf, log.WarnLevel)
	defer func() { Logger = prev }()

	Info("not shown")
	Warn("corrupt state", "key", "habit-storage")

	out := buf.String()
	if strings.Contains(out, "not shown") {
		t.Errorf("info message should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "corrupt state") || !strings.Contains(out, "habit-storage") {
		t.Errorf("expected warning with key, got %q", out)
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	prev := Logger
	Logger = nil
	defer func() { Logger = prev }()

	Debug("debug")
	Info("info")
	Warn("warn")
	Error("error")
}
