package permissions

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/MTN-Developers/mtn-academy-dashboard/internal/apierrors"
)

// Action is one of the four capability flags a module carries.
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Permission is the per-module capability record returned inside the login
// payload's roleWithPermissions list.
type Permission struct {
	Module    string `json:"module"`
	CanCreate bool   `json:"can_create"`
	CanRead   bool   `json:"can_read"`
	CanUpdate bool   `json:"can_update"`
	CanDelete bool   `json:"can_delete"`
}

// Set holds one Permission per module. It is built once at session creation
// and read-only afterwards.
type Set map[string]Permission

// NewSet validates and indexes the raw permission list. Entries without a
// module name and duplicate modules are rejected up front rather than left
// to surface as surprises in permission checks later.
func NewSet(perms []Permission) (Set, error) {
	set := make(Set, len(perms))
	for i, p := range perms {
		if p.Module == "" {
			return nil, errors.Wrap(apierrors.ErrMalformedPermissions, fmt.Sprintf("[NewSet] entry %d has no module", i))
		}
		if _, exists := set[p.Module]; exists {
			return nil, errors.Wrap(apierrors.ErrMalformedPermissions, fmt.Sprintf("[NewSet] duplicate module %q", p.Module))
		}
		set[p.Module] = p
	}
	return set, nil
}

// Can answers "may this session perform action on module". Missing modules
// and unknown actions are denied.
func (s Set) Can(module string, action Action) bool {
	p, ok := s[module]
	if !ok {
		return false
	}
	switch action {
	case ActionCreate:
		return p.CanCreate
	case ActionRead:
		return p.CanRead
	case ActionUpdate:
		return p.CanUpdate
	case ActionDelete:
		return p.CanDelete
	default:
		return false
	}
}

// CanAny reports whether the module grants at least one capability. Used to
// show or hide whole navigation entries.
func (s Set) CanAny(module string) bool {
	p, ok := s[module]
	if !ok {
		return false
	}
	return p.CanCreate || p.CanRead || p.CanUpdate || p.CanDelete
}
