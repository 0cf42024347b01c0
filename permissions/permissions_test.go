package permissions_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MTN-Developers/mtn-academy-dashboard/internal/apierrors"
	"github.com/MTN-Developers/mtn-academy-dashboard/permissions"
)

func testSet(t *testing.T) permissions.Set {
	t.Helper()
	set, err := permissions.NewSet([]permissions.Permission{
		{Module: "user", CanRead: true, CanUpdate: true},
		{Module: "course", CanCreate: true, CanRead: true, CanUpdate: true, CanDelete: true},
		{Module: "note"},
	})
	require.NoError(t, err)
	return set
}

func TestCanMatchesGrantedFlags(t *testing.T) {
	set := testSet(t)

	require.True(t, set.Can("user", permissions.ActionRead))
	require.True(t, set.Can("user", permissions.ActionUpdate))
	require.False(t, set.Can("user", permissions.ActionCreate))
	require.False(t, set.Can("user", permissions.ActionDelete))

	require.True(t, set.Can("course", permissions.ActionDelete))
}

func TestCanDefaultsToDeny(t *testing.T) {
	set := testSet(t)

	// Unknown module
	require.False(t, set.Can("payroll", permissions.ActionRead))
	// Unknown action
	require.False(t, set.Can("user", permissions.Action("publish")))
	// Nil set
	require.False(t, permissions.Set(nil).Can("user", permissions.ActionRead))
}

func TestCanAny(t *testing.T) {
	set := testSet(t)

	require.True(t, set.CanAny("user"))
	require.False(t, set.CanAny("note")) // entry exists, nothing granted
	require.False(t, set.CanAny("payroll"))
}

func TestNewSetRejectsEmptyModule(t *testing.T) {
	_, err := permissions.NewSet([]permissions.Permission{{CanRead: true}})
	require.ErrorIs(t, err, apierrors.ErrMalformedPermissions)
}

func TestNewSetRejectsDuplicateModule(t *testing.T) {
	_, err := permissions.NewSet([]permissions.Permission{
		{Module: "user", CanRead: true},
		{Module: "user", CanDelete: true},
	})
	require.ErrorIs(t, err, apierrors.ErrMalformedPermissions)
}

func TestNewSetAcceptsEmptyList(t *testing.T) {
	set, err := permissions.NewSet(nil)
	require.NoError(t, err)
	require.Empty(t, set)
	require.False(t, set.Can("user", permissions.ActionRead))
}
