package session

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// FileStore keeps credentials in a JSON file under the state directory, the
// CLI's stand-in for the browser's local storage.
type FileStore struct {
	path string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, "session.json")}
}

func (f *FileStore) Load() (Saved, error) {
	var saved Saved
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Saved{}, nil
		}
		return Saved{}, err
	}
	if err := json.Unmarshal(data, &saved); err != nil {
		return Saved{}, err
	}
	return saved, nil
}

func (f *FileStore) Save(saved Saved) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0750); err != nil {
		return err
	}
	data, err := json.MarshalIndent(saved, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, data, 0600)
}

func (f *FileStore) Clear() error {
	err := os.Remove(f.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// MemoryStore holds credentials for the process lifetime only. Tests use it.
type MemoryStore struct {
	saved Saved
}

func (m *MemoryStore) Load() (Saved, error) { return m.saved, nil }
func (m *MemoryStore) Save(s Saved) error   { m.saved = s; return nil }
func (m *MemoryStore) Clear() error         { m.saved = Saved{}; return nil }
