package targets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadTargetsYAML(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "targets.yaml")
	content := `
targets:
  - id: docs
    url: https://example.com/docs/index.html
    path: ./mirror/index.html
  - id: feed
    url: https://example.com/feed.xml
    path: ./mirror/feed.xml
    content_check: true
`
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatalf("write targets file: %v", err)
	}

	loaded, err := Load(file)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 targets, got %d", len(loaded))
	}
	if loaded[0].ID != "docs" || loaded[0].Path != "./mirror/index.html" {
		t.Fatalf("unexpected first target: %+v", loaded[0])
	}
	if !loaded[1].ContentCheck {
		t.Fatalf("expected content_check for feed target")
	}
}

func TestLoadTargetsJSON(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "targets.json")
	content := `{"targets":[{"id":"one","url":"https://example.com/a","path":"a.txt"}]}`
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatalf("write targets file: %v", err)
	}

	loaded, err := Load(file)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(loaded) != 1 || loaded[0].ID != "one" {
		t.Fatalf("unexpected targets: %+v", loaded)
	}
}

func TestLoadTargetsDuplicateID(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "targets.yaml")
	content := `
targets:
  - id: duplicate
    url: https://one.example/a
    path: a.txt
  - id: duplicate
    url: https://two.example/b
    path: b.txt
`
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatalf("write targets file: %v", err)
	}

	if _, err := Load(file); err == nil {
		t.Fatalf("expected duplicate target error, got nil")
	}
}

func TestLoadTargetsRejectsRelativeURL(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "targets.yaml")
	content := `
targets:
  - id: bad
    url: /just/a/path
    path: out.txt
`
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatalf("write targets file: %v", err)
	}

	if _, err := Load(file); err == nil {
		t.Fatalf("expected invalid url error, got nil")
	}
}

func TestLoadTargetsEmptyManifest(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "targets.yaml")
	if err := os.WriteFile(file, []byte("targets: []\n"), 0o644); err != nil {
		t.Fatalf("write targets file: %v", err)
	}

	if _, err := Load(file); err == nil {
		t.Fatalf("expected empty manifest error, got nil")
	}
}
