package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "state", "wl-ignore-mail.db")
	s, err := Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	return s, dbPath
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	_, err := Open("  ")
	require.Error(t, err)
}

func TestGetMissingKey(t *testing.T) {
	s, _ := newTestStore(t)

	value, ok, err := s.Get("wl-ignore-mail")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestSetOverwrites(t *testing.T) {
	s, _ := newTestStore(t)

	require.NoError(t, s.Set("wl-ignore-mail", `{"ignored":[1]}`))
	require.NoError(t, s.Set("wl-ignore-mail", `{"ignored":[1,2]}`))

	value, ok, err := s.Get("wl-ignore-mail")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"ignored":[1,2]}`, value)
}

func TestValuesSurviveReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "wl-ignore-mail.db")
	s, err := Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, s.Set("k", "v"))
	require.NoError(t, s.Close())

	reopened, err := Open(dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	value, ok, err := reopened.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v", value)
}

func TestEmptyKeyIsRejected(t *testing.T) {
	s, _ := newTestStore(t)

	_, _, err := s.Get("")
	require.ErrorIs(t, err, ErrEmptyKey)
	require.ErrorIs(t, s.Set("", "v"), ErrEmptyKey)
}
