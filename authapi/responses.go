package authapi

import (
	"github.com/MTN-Developers/mtn-academy-dashboard/permissions"
	"github.com/MTN-Developers/mtn-academy-dashboard/tokenstore"
)

// envelope is the wrapper every academy API response arrives in.
type envelope[T any] struct {
	Data    T      `json:"data"`
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// RoleWithPermissions carries the role name and the per-module capability
// list for the authenticated principal.
type RoleWithPermissions struct {
	RoleName    string                   `json:"role_name"`
	Permissions []permissions.Permission `json:"permissions"`
}

// LoginResult is the /auth/login payload: a fresh token pair plus the
// principal and its role.
type LoginResult struct {
	AccessToken  string              `json:"access_token"`
	RefreshToken string              `json:"refresh_token"`
	User         tokenstore.Identity `json:"user"`
	Role         RoleWithPermissions `json:"roleWithPermissions"`
}

// MeResult is the /auth/me payload.
type MeResult struct {
	User tokenstore.Identity `json:"user"`
	Role RoleWithPermissions `json:"roleWithPermissions"`
}

type refreshResult struct {
	AccessToken string `json:"access_token"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}
