package tokenstore

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/MTN-Developers/mtn-academy-dashboard/internal/apierrors"
)

// FileStore persists the token pair as a small JSON document. Writes go
// through a temp file and a rename so a reader never observes one credential
// without the other.
type FileStore struct {
	path string
	lock sync.Mutex
}

var _ Store = (*FileStore)(nil)

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Get() Tokens {
	s.lock.Lock()
	defer s.lock.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return Tokens{}
	}
	var tokens Tokens
	if err := json.Unmarshal(data, &tokens); err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("Unreadable token file, treating as absent")
		return Tokens{}
	}
	return tokens
}

func (s *FileStore) Set(tokens Tokens) error {
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		return errors.Wrap(apierrors.ErrIncompleteTokenPair, "[FileStore.Set]")
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return errors.Wrap(err, "[FileStore.Set] MkdirAll")
	}

	data, err := json.Marshal(tokens)
	if err != nil {
		return errors.Wrap(err, "[FileStore.Set] Marshal")
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".tokens-*")
	if err != nil {
		return errors.Wrap(err, "[FileStore.Set] CreateTemp")
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return errors.Wrap(err, "[FileStore.Set] Chmod")
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "[FileStore.Set] Write")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "[FileStore.Set] Close")
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return errors.Wrap(err, "[FileStore.Set] Rename")
	}
	return nil
}

func (s *FileStore) Clear() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Wrap(err, "[FileStore.Clear] Remove")
	}
	return nil
}
