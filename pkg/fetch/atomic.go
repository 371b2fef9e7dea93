package fetch

import (
	"os"
	"path/filepath"
)

// atomicWriter stages a file next to its target and renames it into
// place on Commit. The temp file lives in the target's directory so
// the final rename stays on one filesystem and is atomic.
type atomicWriter struct {
	target    string
	tmp       *os.File
	committed bool
}

func newAtomicWriter(target string) (*atomicWriter, error) {
	dir := filepath.Dir(target)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(target)+".tmp-*")
	if err != nil {
		return nil, &FilesystemError{Op: "create", Path: target, Err: err}
	}
	return &atomicWriter{target: target, tmp: tmp}, nil
}

func (w *atomicWriter) Write(p []byte) (int, error) {
	n, err := w.tmp.Write(p)
	if err != nil {
		err = &FilesystemError{Op: "write", Path: w.tmp.Name(), Err: err}
	}
	return n, err
}

// Commit closes the temp file and renames it over the target,
// replacing any existing file there. On failure the temp file is
// removed so nothing stale stays behind.
func (w *atomicWriter) Commit() error {
	if w.committed {
		return nil
	}
	if err := w.tmp.Close(); err != nil {
		os.Remove(w.tmp.Name())
		return &FilesystemError{Op: "close", Path: w.tmp.Name(), Err: err}
	}
	if err := os.Rename(w.tmp.Name(), w.target); err != nil {
		os.Remove(w.tmp.Name())
		return &FilesystemError{Op: "rename", Path: w.target, Err: err}
	}
	w.committed = true
	return nil
}

// Abort discards the staged file. Safe to call after Commit, where it
// does nothing, so callers can defer it on every path.
func (w *atomicWriter) Abort() {
	if w.committed {
		return
	}
	w.tmp.Close()
	os.Remove(w.tmp.Name())
}
