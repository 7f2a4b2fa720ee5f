package driver

import (
	"os"
	"path/filepath"
)

// writeFileAtomic writes data via a temp file and rename so readers never
// observe a partial output.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".dartforge-*")
	if err != nil {
		return err
	}
	defer func() {
		// No-op after a successful rename.
		_ = os.Remove(f.Name())
	}()
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}
