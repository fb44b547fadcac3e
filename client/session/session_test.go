package session

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carcandyx/baby-steps-client/client/internal/types"
)

func TestStore_RoundTrip(t *testing.T) {
	t.Parallel()
	users := []*types.User{
		{ID: "u1", FirstName: "Ana", LastName: "Lee", Email: "a@b.com"},
		{ID: "ü-2", FirstName: "José", LastName: "Ñúñez", Email: "j@x.es"},
		nil,
	}
	for _, u := range users {
		s := New(NewMemoryStorage())
		require.NoError(t, s.SetSession("tok123", u))

		tok, ok := s.Token()
		assert.True(t, ok)
		assert.Equal(t, "tok123", tok)
		assert.Equal(t, u, s.User())
		assert.True(t, s.IsAuthenticated())

		s.Clear()
		_, ok = s.Token()
		assert.False(t, ok)
		assert.Nil(t, s.User())
		assert.False(t, s.IsAuthenticated())
	}
}

func TestStore_EmptyTokenIsNotAuthenticated(t *testing.T) {
	t.Parallel()
	s := New(nil)
	require.NoError(t, s.SetSession("", &types.User{ID: "u1"}))
	assert.False(t, s.IsAuthenticated())
}

func TestStore_MalformedUser(t *testing.T) {
	t.Parallel()
	st := NewMemoryStorage()
	require.NoError(t, st.Set(TokenKey, "tok"))
	require.NoError(t, st.Set(UserKey, "{not json"))
	s := New(st)
	assert.Nil(t, s.User())
	assert.True(t, s.IsAuthenticated())
}

func TestStore_ReplacingSessionDropsOldUser(t *testing.T) {
	t.Parallel()
	s := New(nil)
	require.NoError(t, s.SetSession("a", &types.User{ID: "u1"}))
	require.NoError(t, s.SetSession("b", nil))
	assert.Nil(t, s.User())
}

type brokenStorage struct{}

func (brokenStorage) Get(string) (string, bool, error) { return "", false, errors.New("io") }
func (brokenStorage) Set(string, string) error         { return errors.New("io") }
func (brokenStorage) Delete(string) error              { return errors.New("io") }

func TestStore_StorageFailures(t *testing.T) {
	t.Parallel()
	s := New(brokenStorage{})
	assert.Error(t, s.SetSession("tok", nil))
	assert.False(t, s.IsAuthenticated())
	assert.Nil(t, s.User())
	s.Clear()
}

// userWriteFails stores the token but refuses to store the profile.
type userWriteFails struct{ *MemoryStorage }

func (u userWriteFails) Set(key, value string) error {
	if key == UserKey {
		return errors.New("disk full")
	}
	return u.MemoryStorage.Set(key, value)
}

func TestStore_PartialWriteLeavesNoSession(t *testing.T) {
	t.Parallel()
	mem := NewMemoryStorage()
	s := New(mem)
	require.NoError(t, s.SetSession("tok1", &types.User{ID: "alice"}))

	s.storage = userWriteFails{mem}
	err := s.SetSession("tok2", &types.User{ID: "bob"})
	require.EqualError(t, err, "disk full")

	_, ok := s.Token()
	assert.False(t, ok, "new token must not survive a failed profile write")
	assert.Nil(t, s.User(), "previous profile must not survive either")
	assert.False(t, s.IsAuthenticated())
}

func TestStore_ConcurrentAccess(t *testing.T) {
	t.Parallel()
	s := New(nil)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(3)
		go func() { defer wg.Done(); _ = s.SetSession("tok", &types.User{ID: "u"}) }()
		go func() { defer wg.Done(); _, _ = s.Token(); _ = s.User() }()
		go func() { defer wg.Done(); s.Clear() }()
	}
	wg.Wait()
}

func TestFileStorage_PersistsAcrossInstances(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	first := New(NewFileStorage(path))
	require.NoError(t, first.SetSession("tok123", &types.User{ID: "u1", Email: "a@b.com"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	second := New(NewFileStorage(path))
	tok, ok := second.Token()
	assert.True(t, ok)
	assert.Equal(t, "tok123", tok)
	assert.Equal(t, "a@b.com", second.User().Email)

	second.Clear()
	assert.False(t, New(NewFileStorage(path)).IsAuthenticated())
}

func TestFileStorage_MissingAndCorruptFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	missing := NewFileStorage(filepath.Join(dir, "none.json"))
	_, ok, err := missing.Get(TokenKey)
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, missing.Delete(TokenKey))

	corruptPath := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(corruptPath, []byte("[oops"), 0o600))
	corrupt := NewFileStorage(corruptPath)
	_, _, err = corrupt.Get(TokenKey)
	assert.Error(t, err)
	assert.False(t, New(corrupt).IsAuthenticated())
}
