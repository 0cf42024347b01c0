package config

import (
	"strings"
	"time"
)

const (
	refreshTimeoutVar  = "REFRESH_TIMEOUT"
	disallowedRolesVar = "DISALLOWED_ROLES"
)

type SessionConfig interface {
	GetRefreshTimeout() time.Duration
	GetDisallowedRoles() []string
}

type Session struct{}

var _ SessionConfig = Session{}

// GetRefreshTimeout bounds the /auth/refresh call. The remote API does not
// time the call out itself, so a hung refresh would otherwise strand every
// request queued behind it.
func (Session) GetRefreshTimeout() time.Duration {
	raw := GetEnv(refreshTimeoutVar, "15s")
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 15 * time.Second
	}
	return d
}

// GetDisallowedRoles lists roles barred from the admin surface. End-user
// accounts authenticate fine against /auth/login but must not get a session
// here.
func (Session) GetDisallowedRoles() []string {
	raw := GetEnv(disallowedRolesVar, "user")
	parts := strings.Split(raw, ",")
	roles := make([]string, 0, len(parts))
	for _, p := range parts {
		if r := strings.TrimSpace(p); r != "" {
			roles = append(roles, r)
		}
	}
	return roles
}
