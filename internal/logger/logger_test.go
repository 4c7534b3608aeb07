package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	logDir := filepath.Join(configDir, "logs")
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("Log directory was not created: %s", logDir)
	}
	if want := filepath.Join(logDir, "labcita.log"); Path() != want {
		t.Errorf("Path() = %q, want %q", Path(), want)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}

	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}

func TestInitDebugMode(t *testing.T) {
	if err := Init(Config{Debug: true, ConfigDir: t.TempDir()}); err != nil {
		t.Fatalf("Failed to initialize logger in debug mode: %v", err)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}

	Debug("Test debug message in debug mode")
	Info("Test info message in debug mode")
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(Config{Writer: &buf}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	Info("appointment created", "id", "a1")
	Warn("backup rotation failed", "error", "permission denied")

	out := buf.String()
	if strings.Contains(out, "appointment created") {
		t.Errorf("info message should be filtered at the default warn level: %q", out)
	}
	if !strings.Contains(out, "backup rotation failed") {
		t.Errorf("warn message missing from output: %q", out)
	}
	if !strings.Contains(out, "labcita") {
		t.Errorf("expected prefix in output: %q", out)
	}
}

func TestExplicitLevel(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(Config{Writer: &buf, Level: "info"}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	Info("appointment confirmed", "id", "a1")
	if !strings.Contains(buf.String(), "appointment confirmed") {
		t.Errorf("info message missing with level=info: %q", buf.String())
	}

	if err := Init(Config{Writer: &buf, Level: "loud"}); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	// These should not panic when Logger is nil
	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}
