// Package gateway wraps outgoing API calls with the session's credentials.
// Every request gets the current access token attached; a 401 triggers a
// single token refresh shared by all concurrently failing requests, after
// which each of them is replayed exactly once.
package gateway

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"

	"github.com/MTN-Developers/mtn-academy-dashboard/internal/apierrors"
	"github.com/MTN-Developers/mtn-academy-dashboard/tokenstore"
)

// Refresher exchanges a refresh token for a new access token. It must run
// over a bare HTTP client: routing the refresh call through this transport
// would feed it back into the 401 path it exists to resolve.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

// Transport is an http.RoundTripper that attaches the access token and
// coordinates refresh-and-retry on 401 responses. Non-401 failures pass
// through untouched.
type Transport struct {
	store          tokenstore.Store
	refresher      Refresher
	refreshTimeout time.Duration
	base           http.RoundTripper
	bearer         http.RoundTripper
	group          singleflight.Group
	onExpired      func()
}

var _ http.RoundTripper = (*Transport)(nil)

// TransportOption modifies the Transport instance.
type TransportOption func(*Transport)

// WithBase sets the underlying RoundTripper (default http.DefaultTransport).
func WithBase(base http.RoundTripper) TransportOption {
	return func(t *Transport) {
		t.base = base
	}
}

// NewTransport builds the gateway transport. refreshTimeout bounds the
// refresh call so a hung refresh cannot strand the requests queued behind it.
func NewTransport(store tokenstore.Store, refresher Refresher, refreshTimeout time.Duration, options ...TransportOption) (*Transport, error) {
	if store == nil {
		return nil, errors.New("[NewTransport] token store is required")
	}
	if refresher == nil {
		return nil, errors.New("[NewTransport] refresher is required")
	}
	if refreshTimeout <= 0 {
		refreshTimeout = 15 * time.Second
	}

	t := &Transport{
		store:          store,
		refresher:      refresher,
		refreshTimeout: refreshTimeout,
		base:           http.DefaultTransport,
	}
	for _, opt := range options {
		opt(t)
	}
	t.bearer = &oauth2.Transport{Source: &storeTokenSource{store: store}, Base: t.base}
	return t, nil
}

// NewClient returns an *http.Client pre-wired with the gateway behaviour.
// Collaborators use it for all domain calls.
func NewClient(store tokenstore.Store, refresher Refresher, refreshTimeout time.Duration, options ...TransportOption) (*http.Client, error) {
	t, err := NewTransport(store, refresher, refreshTimeout, options...)
	if err != nil {
		return nil, err
	}
	return &http.Client{Transport: t}, nil
}

// OnSessionExpired installs the hook fired after a terminal refresh failure,
// once the token store has been cleared. Install it before serving traffic.
func (t *Transport) OnSessionExpired(hook func()) {
	t.onExpired = hook
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = stampRequestID(req)

	resp, err := t.send(req)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}

	// Streaming bodies cannot be replayed; the 401 stands.
	if req.Body != nil && req.GetBody == nil {
		return resp, nil
	}

	if _, refreshErr := t.refreshAccessToken(); refreshErr != nil {
		log.Warn().Err(refreshErr).Str("url", req.URL.String()).Msg("Token refresh failed, session is over")
		return resp, nil
	}

	drain(resp)

	retry, err := rewind(req)
	if err != nil {
		return nil, errors.Wrap(err, "[Transport.RoundTrip] rewind")
	}

	// One retry per original request. A second 401 propagates to the caller.
	return t.send(retry)
}

// send routes through the bearer-attaching transport when a token exists,
// matching the browser client that only set the header when storage had one.
func (t *Transport) send(req *http.Request) (*http.Response, error) {
	if t.store.Get().AccessToken == "" {
		return t.base.RoundTrip(req)
	}
	return t.bearer.RoundTrip(req)
}

// refreshAccessToken performs the single-flight refresh. Every caller that
// arrives while one is in flight waits for that result instead of starting
// its own; the group forgets the key afterwards so a later 401 starts fresh.
func (t *Transport) refreshAccessToken() (string, error) {
	token, err, _ := t.group.Do("refresh", func() (any, error) {
		tokens := t.store.Get()
		if tokens.RefreshToken == "" {
			t.expireSession()
			return "", errors.Wrap(apierrors.ErrNoRefreshToken, "[Transport.refreshAccessToken]")
		}

		// Detached from any single caller's context: the result is shared
		// by every queued request.
		ctx, cancel := context.WithTimeout(context.Background(), t.refreshTimeout)
		defer cancel()

		accessToken, err := t.refresher.Refresh(ctx, tokens.RefreshToken)
		if err != nil {
			t.expireSession()
			return "", errors.Wrap(err, "[Transport.refreshAccessToken] Refresh")
		}

		// The refresh endpoint leaves the refresh token unchanged.
		if err := t.store.Set(tokenstore.Tokens{AccessToken: accessToken, RefreshToken: tokens.RefreshToken}); err != nil {
			t.expireSession()
			return "", errors.Wrap(err, "[Transport.refreshAccessToken] store.Set")
		}

		log.Debug().Msg("Access token refreshed")
		return accessToken, nil
	})
	if err != nil {
		return "", err
	}
	return token.(string), nil
}

func (t *Transport) expireSession() {
	if err := t.store.Clear(); err != nil {
		log.Warn().Err(err).Msg("Failed to clear token store after refresh failure")
	}
	if t.onExpired != nil {
		t.onExpired()
	}
}

// rewind clones the request with a fresh body so it can be sent again.
func rewind(req *http.Request) (*http.Request, error) {
	clone := req.Clone(req.Context())
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		clone.Body = body
	}
	return clone, nil
}

// stampRequestID gives the request an X-Request-ID if the caller did not set
// one. RoundTrippers must not mutate their argument, so the request is cloned.
func stampRequestID(req *http.Request) *http.Request {
	if req.Header.Get("X-Request-ID") != "" {
		return req
	}
	clone := req.Clone(req.Context())
	clone.Header.Set("X-Request-ID", uuid.New().String())
	return clone
}

func drain(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
