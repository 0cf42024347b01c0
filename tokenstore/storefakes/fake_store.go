package storefakes

import (
	"sync"

	"github.com/MTN-Developers/mtn-academy-dashboard/tokenstore"
)

var _ tokenstore.Store = (*FakeStore)(nil)

type FakeStore struct {
	tokens tokenstore.Tokens
	lock   sync.RWMutex

	SetCalls   int
	ClearCalls int
	SetErr     error
}

func NewFakeStore() *FakeStore {
	return &FakeStore{}
}

func (fs *FakeStore) Get() tokenstore.Tokens {
	fs.lock.RLock()
	defer fs.lock.RUnlock()
	return fs.tokens
}

func (fs *FakeStore) Set(tokens tokenstore.Tokens) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	fs.SetCalls++
	if fs.SetErr != nil {
		return fs.SetErr
	}
	fs.tokens = tokens
	return nil
}

func (fs *FakeStore) Clear() error {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	fs.ClearCalls++
	fs.tokens = tokenstore.Tokens{}
	return nil
}
