package tokenstore

// Tokens is the access/refresh credential pair issued by the academy API.
// The two values are always stored and cleared together; the access token is
// the only one replaced during a refresh.
type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// IsZero reports whether neither credential is present.
func (t Tokens) IsZero() bool {
	return t.AccessToken == "" && t.RefreshToken == ""
}

// Store is the single source of truth for the credential pair. No other
// component touches the persistence medium directly.
type Store interface {
	// Get returns the stored pair, zero-valued if absent. It never fails
	// from the caller's point of view.
	Get() Tokens
	// Set persists both values; subsequent Gets see both or neither.
	Set(tokens Tokens) error
	// Clear removes both values.
	Clear() error
}
