package apiclient

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// FileKV persists keys as a single JSON document on disk, so a CLI keeps its
// session across invocations. Writes go through a temp file and rename to
// avoid tearing the document on a crash.
type FileKV struct {
	mu   sync.Mutex
	path string
	data map[string]string
}

// NewFileKV loads (or initializes) the KV document at path. The parent
// directory is created if missing.
func NewFileKV(path string) (*FileKV, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, errors.Wrap(err, "create kv directory")
	}

	kv := &FileKV{path: path, data: make(map[string]string)}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return kv, nil
		}

		return nil, errors.Wrap(err, "read kv file")
	}

	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &kv.data); err != nil {
			return nil, errors.Wrap(err, "parse kv file")
		}
	}

	return kv, nil
}

// Get returns the value for key, or ErrKeyNotFound.
func (f *FileKV) Get(key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	value, ok := f.data[key]
	if !ok {
		return "", ErrKeyNotFound
	}

	return value, nil
}

// Set stores value under key and flushes the document to disk.
func (f *FileKV) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.data[key] = value

	return f.flush()
}

// Remove deletes key and flushes the document to disk.
func (f *FileKV) Remove(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.data, key)

	return f.flush()
}

func (f *FileKV) flush() error {
	raw, err := json.Marshal(f.data)
	if err != nil {
		return errors.Wrap(err, "encode kv file")
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return errors.Wrap(err, "write kv file")
	}

	return errors.Wrap(os.Rename(tmp, f.path), "replace kv file")
}
