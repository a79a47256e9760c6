package session

import (
	"context"
	"net/http/cookiejar"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/sessionkeeper/internal/client/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNopStorage(t *testing.T) {
	ctx := context.Background()
	var s NopStorage

	require.NoError(t, s.Set(ctx, "k", "v"))
	v, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
	require.NoError(t, s.Delete(ctx, "k"))
}

func TestMemoryStorage(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage()

	require.NoError(t, s.SetMany(ctx, map[string]string{"a": "1", "b": "2"}))
	require.NoError(t, s.Set(ctx, "a", "3"))

	v, ok, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "3", v)

	require.NoError(t, s.Delete(ctx, "b"))
	_, ok, _ = s.Get(ctx, "b")
	assert.False(t, ok)
}

func newSQLStorage(t *testing.T) *SQLStorage {
	t.Helper()
	db, err := repositories.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLStorage(db)
}

func TestSQLStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newSQLStorage(t)

	require.NoError(t, s.SetMany(ctx, map[string]string{"auth_token": "tok", "auth_user": `{"id":1}`}))

	v, ok, err := s.Get(ctx, "auth_token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok", v)

	require.NoError(t, s.Set(ctx, "auth_token", "tok-2"))
	v, _, _ = s.Get(ctx, "auth_token")
	assert.Equal(t, "tok-2", v)

	require.NoError(t, s.Delete(ctx, "auth_token"))
	_, ok, err = s.Get(ctx, "auth_token")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLStorage_SetManyFailsWhenClosed(t *testing.T) {
	ctx := context.Background()
	s := newSQLStorage(t)
	require.NoError(t, s.db.Close())

	require.Error(t, s.SetMany(ctx, map[string]string{"a": "1"}))
}

func newCookieStorage(t *testing.T, keys ...string) *CookieStorage {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	s, err := NewCookieStorage(jar, "http://localhost:3000", keys...)
	require.NoError(t, err)
	return s
}

func TestCookieStorage(t *testing.T) {
	ctx := context.Background()
	s := newCookieStorage(t, "auth_token")

	require.NoError(t, s.Set(ctx, "auth_token", "a b;c"))
	require.NoError(t, s.Set(ctx, "auth_user", "ignored"))

	v, ok, err := s.Get(ctx, "auth_token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "a b;c", v)

	_, ok, _ = s.Get(ctx, "auth_user")
	assert.False(t, ok)

	u, _ := url.Parse("http://localhost:3000/dashboard")
	cookies := s.Jar().Cookies(u)
	require.Len(t, cookies, 1)
	assert.Equal(t, "auth_token", cookies[0].Name)

	require.NoError(t, s.Delete(ctx, "auth_token"))
	_, ok, _ = s.Get(ctx, "auth_token")
	assert.False(t, ok)
}

func TestNewCookieStorage_RejectsRelativeURL(t *testing.T) {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	_, err = NewCookieStorage(jar, "/login")
	require.Error(t, err)
}

func TestMirrorStorage_WritesEverywhereReadsPrimary(t *testing.T) {
	ctx := context.Background()
	primary := NewMemoryStorage()
	mirror := newFlaky()
	s := NewMirrorStorage(primary, mirror)

	require.NoError(t, s.SetMany(ctx, map[string]string{"auth_token": "tok"}))
	assert.Equal(t, "tok", mirror.values["auth_token"])

	mirror.values["auth_token"] = "drifted"
	v, _, err := s.Get(ctx, "auth_token")
	require.NoError(t, err)
	assert.Equal(t, "tok", v)

	require.NoError(t, s.Delete(ctx, "auth_token"))
	_, ok := mirror.values["auth_token"]
	assert.False(t, ok)
	_, ok, _ = primary.Get(ctx, "auth_token")
	assert.False(t, ok)
}

func TestMirrorStorage_PrimaryFailureStops(t *testing.T) {
	ctx := context.Background()
	primary := newFlaky()
	primary.failSet["k"] = true
	mirror := newFlaky()
	s := NewMirrorStorage(primary, mirror)

	require.ErrorIs(t, s.Set(ctx, "k", "v"), errBoom)
	assert.Empty(t, mirror.setCalls)
}

func TestMirrorStorage_MirrorFailureReported(t *testing.T) {
	ctx := context.Background()
	primary := NewMemoryStorage()
	bad := newFlaky()
	bad.failSet["k"] = true
	good := newFlaky()
	s := NewMirrorStorage(primary, bad, good)

	err := s.Set(ctx, "k", "v")
	require.ErrorIs(t, err, errBoom)
	assert.Contains(t, err.Error(), "mirror 0")
	assert.Equal(t, "v", good.values["k"])
}
