package shared

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewLogger(t *testing.T) {
	t.Run("Defaults To Stderr", func(t *testing.T) {
		if logger := NewLogger(nil); logger == nil {
			t.Fatal("expected logger")
		}
	})

	t.Run("Writes To Provided Writer", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		logger.Info("hello")
		if buf.Len() == 0 {
			t.Error("expected log output")
		}
	})
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if a == "" || a == b {
		t.Errorf("expected unique non-empty ids, got %q and %q", a, b)
	}
}

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Backend.BaseURL == "" {
			t.Error("default backend URL should be set")
		}
		if config.Backend.PollIntervalDuration() != 5*time.Second {
			t.Errorf("expected 5s poll interval, got %v", config.Backend.PollIntervalDuration())
		}
		if len(config.Upload.AllowedExtensions) == 0 {
			t.Error("default upload extensions should be set")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.toml")
		content := `
[backend]
base_url = "http://example.test:9000"
poll_interval_seconds = 2

[database]
path = "cache.db"

[upload]
allowed_extensions = [".mp4"]
max_size_mb = 10
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}
		if config.Backend.BaseURL != "http://example.test:9000" {
			t.Errorf("unexpected base URL: %s", config.Backend.BaseURL)
		}
		if config.Backend.PollIntervalDuration() != 2*time.Second {
			t.Errorf("expected 2s poll interval, got %v", config.Backend.PollIntervalDuration())
		}
	})

	t.Run("LoadConfig Missing File", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
			t.Error("expected error for missing config file")
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(path); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}
		if err := CreateConfigFile(path); err == nil {
			t.Error("expected error when config file already exists")
		}
	})

	t.Run("AllowsExtension", func(t *testing.T) {
		upload := UploadConfig{AllowedExtensions: []string{".mp4", ".mov"}}

		tests := []struct {
			filename string
			allowed  bool
		}{
			{"clip.mp4", true},
			{"CLIP.MP4", true},
			{"clip.mov", true},
			{"clip.avi", false},
			{"clip.mp4.exe", false},
		}
		for _, tt := range tests {
			if got := upload.AllowsExtension(tt.filename); got != tt.allowed {
				t.Errorf("AllowsExtension(%q) = %v, want %v", tt.filename, got, tt.allowed)
			}
		}
	})
}
