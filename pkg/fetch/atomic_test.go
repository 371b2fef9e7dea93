package fetch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAtomicWriterCommit(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "out.txt")

	w, err := newAtomicWriter(target)
	if err != nil {
		t.Fatalf("newAtomicWriter: %v", err)
	}
	if _, err := w.Write([]byte("first half ")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := w.Write([]byte("second half")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	got, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read target: %v", err)
	}
	if string(got) != "first half second half" {
		t.Fatalf("unexpected content: %q", got)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "out.txt" {
		t.Fatalf("temp file leaked: %v", entries)
	}
}

func TestAtomicWriterStagesInTargetDirectory(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "staged.txt")

	w, err := newAtomicWriter(target)
	if err != nil {
		t.Fatalf("newAtomicWriter: %v", err)
	}
	defer w.Abort()

	if got := filepath.Dir(w.tmp.Name()); got != dir {
		t.Fatalf("temp file staged in %s, want %s", got, dir)
	}
	if base := filepath.Base(w.tmp.Name()); !strings.HasPrefix(base, ".staged.txt.tmp-") {
		t.Fatalf("unexpected temp name: %s", base)
	}
}

func TestAtomicWriterAbortRemovesTemp(t *testing.T) {
	dir := t.TempDir()

	w, err := newAtomicWriter(filepath.Join(dir, "never.txt"))
	if err != nil {
		t.Fatalf("newAtomicWriter: %v", err)
	}
	if _, err := w.Write([]byte("doomed")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	w.Abort()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty dir after abort, found %v", entries)
	}
}

func TestAtomicWriterAbortAfterCommitKeepsFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "kept.txt")

	w, err := newAtomicWriter(target)
	if err != nil {
		t.Fatalf("newAtomicWriter: %v", err)
	}
	if _, err := w.Write([]byte("keep me")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	w.Abort()

	if _, err := os.Stat(target); err != nil {
		t.Fatalf("committed file should survive Abort: %v", err)
	}
}

func TestAtomicWriterCommitReplacesExistingFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "replace.txt")
	if err := os.WriteFile(target, []byte("old version"), 0o644); err != nil {
		t.Fatalf("seed target: %v", err)
	}

	w, err := newAtomicWriter(target)
	if err != nil {
		t.Fatalf("newAtomicWriter: %v", err)
	}
	if _, err := w.Write([]byte("new version")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	got, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read target: %v", err)
	}
	if string(got) != "new version" {
		t.Fatalf("unexpected content: %q", got)
	}
}

func TestAtomicWriterMissingDirectory(t *testing.T) {
	_, err := newAtomicWriter(filepath.Join(t.TempDir(), "absent", "out.txt"))
	if err == nil {
		t.Fatalf("expected error when target directory is missing")
	}
	fsErr, ok := err.(*FilesystemError)
	if !ok {
		t.Fatalf("expected *FilesystemError, got %T", err)
	}
	if fsErr.Op != "create" {
		t.Fatalf("unexpected op: %q", fsErr.Op)
	}
}
