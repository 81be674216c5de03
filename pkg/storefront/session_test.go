package storefront

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionFixture(handler http.Handler) (*Session, *MemoryStorage, *httptest.Server) {
	srv := httptest.NewServer(handler)
	var sleeps []time.Duration
	client := newTestClient(srv.URL, &sleeps, WithRetry(0, time.Millisecond, time.Millisecond))
	storage := NewMemoryStorage()
	session := NewSession(client, storage,
		WithRestoreRetry(2, time.Millisecond),
		withSessionSleep(func(time.Duration) {}),
	)
	return session, storage, srv
}

func storeToken(t *testing.T, storage *MemoryStorage, token string) {
	t.Helper()
	require.NoError(t, storage.Save(sessionKey, persistedSession{Token: token}))
}

func TestRestore_NoPersistedToken(t *testing.T) {
	session, _, srv := newSessionFixture(http.NotFoundHandler())
	defer srv.Close()

	require.NoError(t, session.Restore(context.Background()))
	_, ok := session.User()
	assert.False(t, ok)
	assert.Empty(t, session.Token())
}

func TestRestore_ValidToken(t *testing.T) {
	session, storage, srv := newSessionFixture(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"id":"u-1","email":"a@b.com","firstName":"A","lastName":"B"}`))
	}))
	defer srv.Close()
	storeToken(t, storage, "tok-1")

	require.NoError(t, session.Restore(context.Background()))

	user, ok := session.User()
	require.True(t, ok)
	assert.Equal(t, "a@b.com", user.Email)
	assert.Equal(t, "tok-1", session.Token())
}

func TestRestore_RetriesTransientFailure(t *testing.T) {
	var calls atomic.Int32
	session, storage, srv := newSessionFixture(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"id":"u-1","email":"a@b.com"}`))
	}))
	defer srv.Close()
	storeToken(t, storage, "tok-1")

	require.NoError(t, session.Restore(context.Background()))
	_, ok := session.User()
	assert.True(t, ok)
	assert.Equal(t, int32(3), calls.Load())
}

func TestRestore_AuthFailureClearsImmediately(t *testing.T) {
	var calls atomic.Int32
	session, storage, srv := newSessionFixture(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()
	storeToken(t, storage, "expired")

	require.NoError(t, session.Restore(context.Background()))

	assert.Equal(t, int32(1), calls.Load(), "auth failures are terminal, never retried")
	assert.Empty(t, session.Token())
	var persisted persistedSession
	ok, err := storage.Load(sessionKey, &persisted)
	require.NoError(t, err)
	assert.False(t, ok, "persisted token must be cleared")
}

func TestRestore_GivesUpButKeepsPersistedToken(t *testing.T) {
	session, storage, srv := newSessionFixture(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()
	storeToken(t, storage, "tok-1")

	err := session.Restore(context.Background())
	require.Error(t, err)

	_, ok := session.User()
	assert.False(t, ok)
	var persisted persistedSession
	found, err := storage.Load(sessionKey, &persisted)
	require.NoError(t, err)
	assert.True(t, found, "transient failure must not discard the token")
}

func TestLoginAndLogout(t *testing.T) {
	session, storage, srv := newSessionFixture(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"token":"tok-9","user":{"id":"u-1","email":"a@b.com"}}`))
	}))
	defer srv.Close()

	user, err := session.Login(context.Background(), "a@b.com", "Aa1!aaaa")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", user.Email)
	assert.Equal(t, "tok-9", session.Token())

	var persisted persistedSession
	ok, err := storage.Load(sessionKey, &persisted)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "tok-9", persisted.Token)

	require.NoError(t, session.Logout())
	assert.Empty(t, session.Token())
	_, loggedIn := session.User()
	assert.False(t, loggedIn)
	ok, err = storage.Load(sessionKey, &persisted)
	require.NoError(t, err)
	assert.False(t, ok)
}
