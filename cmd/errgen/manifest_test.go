package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "errgen.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestFindErrgenTomlWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	want := writeManifest(t, root, "[package]\nname = \"demo\"\n")

	got, ok, err := findErrgenToml(nested)
	if err != nil {
		t.Fatalf("findErrgenToml: %v", err)
	}
	if !ok {
		t.Fatalf("manifest not found from nested dir")
	}
	if got != want {
		t.Fatalf("found %s, want %s", got, want)
	}
}

func TestFindErrgenTomlMissing(t *testing.T) {
	// an isolated temp dir has no manifest anywhere up to the fs root
	_, ok, err := findErrgenToml(t.TempDir())
	if err != nil {
		t.Fatalf("findErrgenToml: %v", err)
	}
	if ok {
		t.Fatalf("unexpected manifest hit")
	}
}

func TestLoadProjectConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `[package]
name = "demo"

[process]
dir = "errors"
write = true
jobs = 4
`)

	cfg, err := loadProjectConfig(path)
	if err != nil {
		t.Fatalf("loadProjectConfig: %v", err)
	}
	if cfg.Package.Name != "demo" {
		t.Fatalf("unexpected package name: %q", cfg.Package.Name)
	}
	if cfg.Process.Dir != "errors" || !cfg.Process.Write || cfg.Process.Jobs != 4 {
		t.Fatalf("unexpected process config: %+v", cfg.Process)
	}
}

func TestLoadProjectConfigMissingName(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "[package]\n")

	_, err := loadProjectConfig(path)
	if err == nil || !strings.Contains(err.Error(), "missing [package].name") {
		t.Fatalf("expected missing name error, got %v", err)
	}
}

func TestLoadProjectConfigBadToml(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "not toml at all [")

	_, err := loadProjectConfig(path)
	if err == nil {
		t.Fatalf("expected parse error")
	}
}
