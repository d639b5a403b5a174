package watchlist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_MissingFileIsCreated(t *testing.T) {
	home := filepath.Join(t.TempDir(), "share")
	s := NewStore(home, false)

	got, err := s.Read()
	require.NoError(t, err)
	assert.Empty(t, got)

	path := filepath.Join(home, "stox", "saved-stocks.yaml")
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	dirInfo, err := os.Stat(home)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o700), dirInfo.Mode().Perm())
}

func TestStore_RoundTrip(t *testing.T) {
	s := NewStore(t.TempDir(), false)
	require.NoError(t, s.Write([]string{"AAPL", "MSFT"}))

	got, err := s.Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "MSFT"}, got)
}

func TestStore_UnknownVersion(t *testing.T) {
	s := NewStore(t.TempDir(), false)
	path, err := s.Path()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("version: 2\nsymbols: [AAPL]\n"), 0o600))

	_, err = s.Read()
	assert.ErrorIs(t, err, ErrUnknownVersion)
}

func TestStore_Disabled(t *testing.T) {
	home := filepath.Join(t.TempDir(), "share")
	s := NewStore(home, true)

	require.NoError(t, s.Write([]string{"AAPL"}))
	got, err := s.Read()
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = os.Stat(home)
	assert.True(t, os.IsNotExist(err))
}

func TestManager_AddRemove(t *testing.T) {
	s := NewStore(t.TempDir(), false)
	m := NewManager(s)
	require.NoError(t, m.LoadError())

	require.NoError(t, m.Add(" aapl "))
	require.NoError(t, m.Add("MSFT"))
	require.NoError(t, m.Add("AAPL"))
	assert.Equal(t, []string{"AAPL", "MSFT"}, m.List())
	assert.True(t, m.Contains("aapl"))

	require.NoError(t, m.Remove("aapl"))
	require.NoError(t, m.Remove("NOPE"))
	assert.Equal(t, []string{"MSFT"}, m.List())

	// persisted
	reloaded := NewManager(s)
	assert.Equal(t, []string{"MSFT"}, reloaded.List())

	assert.Error(t, m.Add("  "))
}

func TestManager_LoadFailureDisablesSaving(t *testing.T) {
	s := NewStore(t.TempDir(), false)
	path, err := s.Path()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("version: [broken"), 0o600))

	m := NewManager(s)
	require.Error(t, m.LoadError())
	assert.Empty(t, m.List())
	assert.ErrorIs(t, m.Add("AAPL"), ErrSavingDisabled)
	assert.ErrorIs(t, m.Remove("AAPL"), ErrSavingDisabled)

	// the broken file is left untouched
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "version: [broken", string(data))
}

func TestManager_NormalizesLoadedSymbols(t *testing.T) {
	s := NewStore(t.TempDir(), false)
	require.NoError(t, s.Write([]string{"aapl", "AAPL", " ", "msft"}))

	assert.Equal(t, []string{"AAPL", "MSFT"}, NewManager(s).List())
}
