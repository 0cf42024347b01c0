package tokenstore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MTN-Developers/mtn-academy-dashboard/internal/apierrors"
	"github.com/MTN-Developers/mtn-academy-dashboard/tokenstore"
)

func newTestStore(t *testing.T) (*tokenstore.FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tokens.json")
	return tokenstore.NewFileStore(path), path
}

func TestGetOnMissingFileReturnsZero(t *testing.T) {
	store, _ := newTestStore(t)
	require.True(t, store.Get().IsZero())
}

func TestSetThenGetReturnsBoth(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.Set(tokenstore.Tokens{AccessToken: "A1", RefreshToken: "R1"}))

	tokens := store.Get()
	require.Equal(t, "A1", tokens.AccessToken)
	require.Equal(t, "R1", tokens.RefreshToken)
}

func TestSetRejectsIncompletePair(t *testing.T) {
	store, _ := newTestStore(t)

	err := store.Set(tokenstore.Tokens{AccessToken: "A1"})
	require.ErrorIs(t, err, apierrors.ErrIncompleteTokenPair)

	err = store.Set(tokenstore.Tokens{RefreshToken: "R1"})
	require.ErrorIs(t, err, apierrors.ErrIncompleteTokenPair)

	// Nothing was persisted by the rejected writes.
	require.True(t, store.Get().IsZero())
}

func TestClearRemovesBoth(t *testing.T) {
	store, path := newTestStore(t)
	require.NoError(t, store.Set(tokenstore.Tokens{AccessToken: "A1", RefreshToken: "R1"}))

	require.NoError(t, store.Clear())

	require.True(t, store.Get().IsZero())
	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err))
}

func TestClearOnEmptyStoreIsFine(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Clear())
}

func TestTokensSurviveReopen(t *testing.T) {
	store, path := newTestStore(t)
	require.NoError(t, store.Set(tokenstore.Tokens{AccessToken: "A1", RefreshToken: "R1"}))

	reopened := tokenstore.NewFileStore(path)
	tokens := reopened.Get()
	require.Equal(t, "A1", tokens.AccessToken)
	require.Equal(t, "R1", tokens.RefreshToken)
}

func TestCorruptFileTreatedAsAbsent(t *testing.T) {
	store, path := newTestStore(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	require.True(t, store.Get().IsZero())
}

func TestSetCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "tokens.json")
	store := tokenstore.NewFileStore(path)

	require.NoError(t, store.Set(tokenstore.Tokens{AccessToken: "A1", RefreshToken: "R1"}))
	require.Equal(t, "A1", store.Get().AccessToken)
}
