package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewDefaults(t *testing.T) {
	cfg := New()
	if cfg.ServerURL != "http://localhost:5000" {
		t.Errorf("ServerURL = %q", cfg.ServerURL)
	}
	if !cfg.Session.Remember {
		t.Error("Remember should default to true")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerURL != "http://localhost:5000" {
		t.Errorf("ServerURL = %q", cfg.ServerURL)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")

	cfg := New()
	cfg.ServerURL = "https://colbuilder.example.org"
	cfg.Session.CookieFile = "/tmp/colbuild-session"
	cfg.Session.Remember = false

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.ServerURL != cfg.ServerURL {
		t.Errorf("ServerURL = %q", loaded.ServerURL)
	}
	if loaded.Session.CookieFile != cfg.Session.CookieFile {
		t.Errorf("CookieFile = %q", loaded.Session.CookieFile)
	}
	if loaded.Session.Remember {
		t.Error("Remember = true, want false")
	}
}

func TestSaveFilePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	if err := Save(New(), path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("permissions = %o, want 0600", perm)
	}
}

func TestSaveCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "config")
	if err := Save(New(), path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config not written: %v", err)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	if err := os.WriteFile(path, []byte("[unterminated\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for a malformed config file")
	}
}

func TestValidate(t *testing.T) {
	cfg := New()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
	cfg.ServerURL = "  "
	if err := cfg.Validate(); err != ErrMissingServerURL {
		t.Errorf("err = %v, want ErrMissingServerURL", err)
	}
}

func TestCookieFilePathExplicit(t *testing.T) {
	cfg := New()
	cfg.Session.CookieFile = "/tmp/custom-session"
	path, err := cfg.CookieFilePath()
	if err != nil {
		t.Fatalf("CookieFilePath: %v", err)
	}
	if path != "/tmp/custom-session" {
		t.Errorf("path = %q", path)
	}
}
