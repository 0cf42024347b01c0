// Package authapi is the typed client for the academy API's auth endpoints.
// Login and Refresh must run over a bare HTTP client: routing them through
// the gateway would re-enter the 401 retry path they exist to serve.
package authapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/MTN-Developers/mtn-academy-dashboard/internal/apierrors"
)

type Client struct {
	baseURL string
	client  *http.Client
	session *http.Client
}

// New creates an auth API client over a bare HTTP client. Login and Refresh
// always use it; Me and Logout use the session client once one is installed.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: baseURL, client: httpClient, session: httpClient}
}

// SetSessionClient installs the gateway-wired client used for the endpoints
// that carry the access token. Wiring is two-phase on purpose: the gateway
// needs Refresh from this client, and Me needs the gateway.
func (c *Client) SetSessionClient(httpClient *http.Client) {
	if httpClient != nil {
		c.session = httpClient
	}
}

// Login exchanges credentials for a token pair and the principal's role.
// Non-2xx responses surface as ErrInvalidCredentials with the server's
// message attached.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var out LoginResult
	err := c.postJSON(ctx, c.client, "/auth/login", loginRequest{Email: email, Password: password}, &out)
	if err != nil {
		var statusErr *statusError
		if errors.As(err, &statusErr) && statusErr.code < http.StatusInternalServerError {
			return nil, errors.Wrap(apierrors.ErrInvalidCredentials, statusErr.message)
		}
		return nil, errors.Wrap(err, "[Client.Login]")
	}
	return &out, nil
}

// Refresh exchanges the refresh token for a new access token. The refresh
// token itself is not reissued.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (string, error) {
	var out refreshResult
	if err := c.postJSON(ctx, c.client, "/auth/refresh", refreshRequest{RefreshToken: refreshToken}, &out); err != nil {
		return "", errors.Wrap(err, "[Client.Refresh]")
	}
	if out.AccessToken == "" {
		return "", errors.Wrap(apierrors.ErrRefreshFailed, "[Client.Refresh] empty access token in response")
	}
	return out.AccessToken, nil
}

// Me returns the authenticated principal and its role. The request only
// succeeds through a client that attaches the access token.
func (c *Client) Me(ctx context.Context) (*MeResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/me", nil)
	if err != nil {
		return nil, errors.Wrap(err, "[Client.Me] NewRequest")
	}
	var out MeResult
	if err := c.doWith(c.session, req, &out); err != nil {
		return nil, errors.Wrap(err, "[Client.Me]")
	}
	return &out, nil
}

// Logout tells the server to drop the session. Best effort: the caller's
// session is gone regardless of what the server says.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.postJSON(ctx, c.session, "/auth/logout", struct{}{}, nil); err != nil {
		log.Debug().Err(err).Msg("Logout call failed, ignoring")
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, client *http.Client, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(err, "Marshal")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "NewRequest")
	}
	req.Header.Set("Content-Type", "application/json")
	return c.doWith(client, req, out)
}

func (c *Client) doWith(client *http.Client, req *http.Request, out any) error {
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return newStatusError(resp)
	}
	if out == nil {
		return nil
	}

	var wrapper envelope[json.RawMessage]
	if err := json.NewDecoder(resp.Body).Decode(&wrapper); err != nil {
		return errors.Wrap(err, "Decode envelope")
	}
	if err := json.Unmarshal(wrapper.Data, out); err != nil {
		return errors.Wrap(err, "Decode data")
	}
	return nil
}

// statusError carries the HTTP status and the envelope message of a non-2xx
// response.
type statusError struct {
	code    int
	message string
}

func newStatusError(resp *http.Response) *statusError {
	var wrapper envelope[json.RawMessage]
	message := resp.Status
	if err := json.NewDecoder(resp.Body).Decode(&wrapper); err == nil && wrapper.Message != "" {
		message = wrapper.Message
	}
	return &statusError{code: resp.StatusCode, message: message}
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected response status %d: %s", e.code, e.message)
}

func (e *statusError) Unwrap() error {
	return apierrors.ErrUnexpectedStatus
}

// StatusCode extracts the HTTP status from an API error, or 0 when the error
// did not come from a response.
func StatusCode(err error) int {
	var statusErr *statusError
	if errors.As(err, &statusErr) {
		return statusErr.code
	}
	return 0
}
