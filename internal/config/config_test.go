package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	resetViper(t)
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() error = %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Chdir() error = %v", err)
	}
	t.Cleanup(func() { os.Chdir(oldwd) })
	Init()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %q, want %q", cfg.LogFormat, "text")
	}
}

func TestLoad_ExplicitFile(t *testing.T) {
	resetViper(t)
	Init()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "log_level: debug\ndata_dir: /custom/somno\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.DataDir != "/custom/somno" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	resetViper(t)
	Init()

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for explicitly requested missing file")
	}
}

func TestRoots_Overrides(t *testing.T) {
	cfg := &Config{
		DataDir: "/override/data",
		DevRoot: "/override/src",
	}

	roots := cfg.Roots()
	if roots.UserDataDir != "/override/data" {
		t.Errorf("UserDataDir = %q", roots.UserDataDir)
	}
	if roots.DevRoot != "/override/src" {
		t.Errorf("DevRoot = %q", roots.DevRoot)
	}
}

func TestRoots_DefaultsWhenEmpty(t *testing.T) {
	cfg := &Config{}
	roots := cfg.Roots()
	if roots.UserDataDir == "" {
		t.Error("UserDataDir should fall back to the platform default")
	}
}
