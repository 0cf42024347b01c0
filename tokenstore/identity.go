package tokenstore

import (
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"github.com/MTN-Developers/mtn-academy-dashboard/internal/apierrors"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Identity is the read-only projection of the authenticated principal,
// sourced either from decoded token claims or from the /auth/me payload.
type Identity struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	RoleID string `json:"role_id"`
}

// DecodeIdentity extracts the principal from an access token without
// verifying the signature. Verification is the server's job; the client only
// reads the claims it was handed.
func DecodeIdentity(accessToken string) (*Identity, error) {
	claims, err := decodeClaims(accessToken)
	if err != nil {
		return nil, err
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, errors.Wrap(apierrors.ErrMalformedToken, "[DecodeIdentity] missing sub claim")
	}
	name, _ := claims["name"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	roleID, _ := claims["role_id"].(string)

	return &Identity{
		ID:     sub,
		Name:   name,
		Email:  email,
		Role:   role,
		RoleID: roleID,
	}, nil
}

// Expiry returns the access token's exp claim. A zero time means the token
// carries no expiry.
func Expiry(accessToken string) (time.Time, error) {
	claims, err := decodeClaims(accessToken)
	if err != nil {
		return time.Time{}, err
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return time.Time{}, nil
	}
	return time.Unix(int64(exp), 0), nil
}

// Expired reports whether the access token's exp claim is in the past.
// Tokens without an expiry never report expired; the server still rejects
// them if it disagrees.
func Expired(accessToken string) bool {
	exp, err := Expiry(accessToken)
	if err != nil || exp.IsZero() {
		return false
	}
	return NowTimeFunc().After(exp)
}

func decodeClaims(accessToken string) (jwtlib.MapClaims, error) {
	if strings.TrimSpace(accessToken) == "" {
		return nil, errors.Wrap(apierrors.ErrMalformedToken, "[decodeClaims] empty token")
	}

	token, _, err := jwtlib.NewParser().ParseUnverified(accessToken, jwtlib.MapClaims{})
	if err != nil {
		return nil, errors.Wrap(err, "[decodeClaims] ParseUnverified")
	}

	claims, ok := token.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, errors.Wrap(apierrors.ErrMalformedToken, "[decodeClaims] error extracting claims")
	}
	return claims, nil
}
