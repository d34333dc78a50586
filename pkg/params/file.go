package params

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileBackend stores each key in its own file under a directory, so that
// other processes can read a single value without parsing a whole document.
type FileBackend struct {
	dir string
}

// NewFileBackend creates the directory when needed.
func NewFileBackend(dir string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create params dir: %w", err)
	}
	return &FileBackend{dir: dir}, nil
}

// Dir returns the backing directory.
func (f *FileBackend) Dir() string {
	return f.dir
}

func (f *FileBackend) Read(key string) (string, error) {
	data, err := os.ReadFile(filepath.Join(f.dir, key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", err
	}
	return string(data), nil
}

// Write replaces the value atomically: readers see either the old or the
// new file, never a partial write.
func (f *FileBackend) Write(key, value string) error {
	tmp, err := os.CreateTemp(f.dir, ".tmp_"+key+"_*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, filepath.Join(f.dir, key))
}

func (f *FileBackend) Delete(key string) error {
	err := os.Remove(filepath.Join(f.dir, key))
	if errors.Is(err, os.ErrNotExist) {
		return ErrNotFound
	}
	return err
}

func (f *FileBackend) Close() error {
	return nil
}
