package codec

import (
	"os"
	"path/filepath"

	"github.com/segmentio/ksuid"

	"github.com/ssargent/ghostwriter/pkg/ghost"
)

// WriteFile persists data at path atomically. The bytes go to a fresh temp
// file in the same directory in a single write, are synced, and the temp file
// is renamed over path. On failure the temp file is removed and path is left
// untouched. Errors are *ghost.WriteError.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return &ghost.WriteError{Path: path, Err: err}
	}

	tmp := filepath.Join(dir, "."+filepath.Base(path)+"."+ksuid.New().String()+".tmp")
	file, err := os.OpenFile(tmp, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return &ghost.WriteError{Path: path, Err: err}
	}

	fail := func(err error) error {
		_ = file.Close()
		_ = os.Remove(tmp)
		return &ghost.WriteError{Path: path, Err: err}
	}

	if _, err := file.Write(data); err != nil {
		return fail(err)
	}
	if err := file.Sync(); err != nil {
		return fail(err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(tmp)
		return &ghost.WriteError{Path: path, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return &ghost.WriteError{Path: path, Err: err}
	}

	return nil
}
