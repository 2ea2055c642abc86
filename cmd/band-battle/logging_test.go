package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// chdirTemp runs the test inside a fresh directory so logs/ never touches the repo
func chdirTemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Failed to chdir: %v", err)
	}
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		os.Chdir(wd)
	})
}

func TestSetupLogging_DiscardWithoutDebug(t *testing.T) {
	chdirTemp(t)

	if f := setupLogging(false); f != nil {
		f.Close()
		t.Fatal("Expected nil log file when debug=false")
	}
	if log.Writer() != io.Discard {
		t.Errorf("Expected log output io.Discard, got %v", log.Writer())
	}
	if _, err := os.Stat(logDir); !os.IsNotExist(err) {
		t.Error("Expected no logs directory without debug")
	}
}

func TestSetupLogging_WritesFile(t *testing.T) {
	chdirTemp(t)

	f := setupLogging(true)
	if f == nil {
		t.Fatal("Expected log file when debug=true")
	}
	defer f.Close()

	out := log.Writer()
	if out == os.Stdout || out == os.Stderr {
		t.Error("Log output must not reach the terminal")
	}

	log.Println("match started")

	data, err := os.ReadFile(filepath.Join(logDir, logFileName))
	if err != nil {
		t.Fatalf("Failed to read log: %v", err)
	}
	if !strings.Contains(string(data), "band-battle started") {
		t.Error("Expected startup banner in log")
	}
	if !strings.Contains(string(data), "match started") {
		t.Error("Expected logged line in file")
	}
}

func TestSetupLogging_Rotation(t *testing.T) {
	chdirTemp(t)

	tests := []struct {
		name    string
		size    int
		rotated bool
	}{
		{"under limit", 1024, false},
		{"over limit", maxLogSize + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.RemoveAll(logDir)
			if err := os.MkdirAll(logDir, 0755); err != nil {
				t.Fatalf("Failed to create logs directory: %v", err)
			}
			logPath := filepath.Join(logDir, logFileName)
			if err := os.WriteFile(logPath, make([]byte, tt.size), 0644); err != nil {
				t.Fatalf("Failed to seed log: %v", err)
			}

			f := setupLogging(true)
			if f == nil {
				t.Fatal("Expected log file")
			}
			f.Close()

			entries, err := os.ReadDir(logDir)
			if err != nil {
				t.Fatalf("Failed to read logs directory: %v", err)
			}
			found := false
			for _, e := range entries {
				if e.Name() != logFileName && strings.HasPrefix(e.Name(), "band-battle-") {
					found = true
				}
			}
			if found != tt.rotated {
				t.Errorf("Expected rotated=%v, got %v", tt.rotated, found)
			}

			info, err := os.Stat(logPath)
			if err != nil {
				t.Fatalf("Failed to stat log: %v", err)
			}
			if tt.rotated && info.Size() > maxLogSize {
				t.Errorf("Expected fresh log after rotation, got %d bytes", info.Size())
			}
			if !tt.rotated && info.Size() <= int64(tt.size) {
				t.Errorf("Expected append to existing log, got %d bytes", info.Size())
			}
		})
	}
}
