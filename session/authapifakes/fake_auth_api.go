package authapifakes

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/MTN-Developers/mtn-academy-dashboard/authapi"
	"github.com/MTN-Developers/mtn-academy-dashboard/session"
)

var _ session.AuthAPI = (*FakeAuthAPI)(nil)

type FakeAuthAPI struct {
	lock sync.Mutex

	LoginResult *authapi.LoginResult
	LoginErr    error
	LoginCalls  int

	RefreshAccessToken string
	RefreshErr         error
	RefreshCalls       int

	MeResult *authapi.MeResult
	MeErr    error
	MeCalls  int

	LogoutCalls int
}

func NewFakeAuthAPI() *FakeAuthAPI {
	return &FakeAuthAPI{}
}

func (f *FakeAuthAPI) Login(_ context.Context, _, _ string) (*authapi.LoginResult, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.LoginCalls++
	if f.LoginErr != nil {
		return nil, f.LoginErr
	}
	if f.LoginResult == nil {
		return nil, errors.New("no login result configured")
	}
	return f.LoginResult, nil
}

func (f *FakeAuthAPI) Refresh(_ context.Context, _ string) (string, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.RefreshCalls++
	if f.RefreshErr != nil {
		return "", f.RefreshErr
	}
	return f.RefreshAccessToken, nil
}

func (f *FakeAuthAPI) Me(_ context.Context) (*authapi.MeResult, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.MeCalls++
	if f.MeErr != nil {
		return nil, f.MeErr
	}
	if f.MeResult == nil {
		return nil, errors.New("no me result configured")
	}
	return f.MeResult, nil
}

func (f *FakeAuthAPI) Logout(_ context.Context) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.LogoutCalls++
	return nil
}
