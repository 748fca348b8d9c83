package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/voyagen/iptvindex/internal/models"
)

// FileStore keeps the dataset as a JSON array in a single file.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore backed by path. The file is not touched
// until Load or Publish is called.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the data file location.
func (f *FileStore) Path() string { return f.path }

func (f *FileStore) String() string { return f.path }

// Load reads and decodes the whole data file.
func (f *FileStore) Load(_ context.Context) ([]models.Channel, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	var channels []models.Channel
	if err := json.Unmarshal(data, &channels); err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.path, err)
	}
	if channels == nil {
		channels = []models.Channel{}
	}
	return channels, nil
}

// Publish writes channels to a temporary file next to the data file and
// renames it into place, so readers see either the old or the new dataset.
func (f *FileStore) Publish(_ context.Context, channels []models.Channel) error {
	data, err := EncodeChannels(channels)
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, f.fileMode()); err != nil {
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("rename %s: %w", f.path, err)
	}
	return nil
}

// fileMode returns the permissions of the current data file, or 0644 when
// there is none yet.
func (f *FileStore) fileMode() os.FileMode {
	info, err := os.Stat(f.path)
	if err != nil {
		return 0o644
	}
	return info.Mode().Perm()
}

// Close is a no-op.
func (f *FileStore) Close() error { return nil }

// EncodeChannels serialises channels as a JSON array indented with four
// spaces. A nil slice encodes as [].
func EncodeChannels(channels []models.Channel) ([]byte, error) {
	if channels == nil {
		channels = []models.Channel{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(channels); err != nil {
		return nil, fmt.Errorf("encode channels: %w", err)
	}
	return buf.Bytes(), nil
}
