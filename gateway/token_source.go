package gateway

import (
	"golang.org/x/oauth2"

	"github.com/MTN-Developers/mtn-academy-dashboard/tokenstore"
)

// storeTokenSource feeds oauth2.Transport from the token store so every
// outgoing request carries whatever access token is current at send time.
// It performs no refreshing of its own; expiry is discovered through 401s
// and handled by Transport.
type storeTokenSource struct {
	store tokenstore.Store
}

var _ oauth2.TokenSource = (*storeTokenSource)(nil)

func (s *storeTokenSource) Token() (*oauth2.Token, error) {
	return &oauth2.Token{AccessToken: s.store.Get().AccessToken}, nil
}
