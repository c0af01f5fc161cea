package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/oukeidos/watchly-config/internal/files"
)

// FileStore keeps the credential in a private JSON file, for systems without
// a usable keychain.
type FileStore struct {
	Path string
}

func (f *FileStore) Load() (Credential, error) {
	if err := files.RejectSymlinkPath(f.Path); err != nil {
		return Credential{}, err
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Credential{}, ErrNoCredential
		}
		return Credential{}, err
	}
	var c Credential
	if err := json.Unmarshal(data, &c); err != nil {
		return Credential{}, fmt.Errorf("session file is corrupt: %w", err)
	}
	return c, nil
}

func (f *FileStore) Save(c Credential) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return files.AtomicWrite(f.Path, data, 0600)
}

func (f *FileStore) Clear() error {
	if err := os.Remove(f.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
