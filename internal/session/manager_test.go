package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiralabs/kira/pkg/client"
	"github.com/kiralabs/kira/pkg/domain"
)

// authStub is a configurable stand-in for the KIRA backend.
type authStub struct {
	loginStatus    int    // 0 means success
	loginDetail    string
	token          string
	registerStatus int // 0 means 201
	meStatus       int // 0 means success
	meUser         domain.User
	meDelay        time.Duration
	meCalls        atomic.Int32
	meFailFirstN   int32 // first N /users/me calls fail with meFailStatus
	meFailStatus   int
}

func (s *authStub) handler(t *testing.T) http.Handler {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		if s.loginStatus != 0 {
			w.WriteHeader(s.loginStatus)
			json.NewEncoder(w).Encode(map[string]string{"detail": s.loginDetail}) //nolint:errcheck
			return
		}
		json.NewEncoder(w).Encode(client.Token{Access: s.token, Type: "bearer"}) //nolint:errcheck
	})
	mux.HandleFunc("/register", func(w http.ResponseWriter, r *http.Request) {
		if s.registerStatus != 0 {
			w.WriteHeader(s.registerStatus)
			json.NewEncoder(w).Encode(map[string]string{"detail": "registration refused"}) //nolint:errcheck
			return
		}
		w.WriteHeader(http.StatusCreated)
	})
	mux.HandleFunc("/users/me", func(w http.ResponseWriter, r *http.Request) {
		n := s.meCalls.Add(1)
		if s.meDelay > 0 {
			time.Sleep(s.meDelay)
		}
		if s.meFailFirstN > 0 && n <= s.meFailFirstN {
			w.WriteHeader(s.meFailStatus)
			return
		}
		if s.meStatus != 0 {
			w.WriteHeader(s.meStatus)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Could not validate credentials"}) //nolint:errcheck
			return
		}
		json.NewEncoder(w).Encode(s.meUser) //nolint:errcheck
	})
	return mux
}

func newTestManager(t *testing.T, stub *authStub) (*Manager, *FileStore) {
	t.Helper()
	srv := httptest.NewServer(stub.handler(t))
	t.Cleanup(srv.Close)

	store := NewFileStore(t.TempDir())
	api := client.New(srv.URL, client.Token{})
	m := NewManager(store, api, zerolog.Nop())
	m.SetLookupTimeout(200 * time.Millisecond)
	return m, store
}

func TestInitializeWithoutToken(t *testing.T) {
	m, _ := newTestManager(t, &authStub{meUser: domain.User{Username: "alice"}})

	snap := m.Initialize(context.Background())

	assert.Equal(t, StatusUnauthenticated, snap.Status)
	assert.Nil(t, snap.User)
}

func TestInitializeWithValidToken(t *testing.T) {
	stub := &authStub{meUser: domain.User{Username: "alice", Email: "alice@example.com"}}
	m, store := newTestManager(t, stub)
	require.NoError(t, store.Save(client.Token{Access: "abc", Type: "bearer"}))

	snap := m.Initialize(context.Background())

	assert.Equal(t, StatusAuthenticated, snap.Status)
	require.NotNil(t, snap.User)
	assert.Equal(t, "alice", snap.User.Username)
}

func TestInitializeRejectedTokenIsCleared(t *testing.T) {
	stub := &authStub{meStatus: http.StatusUnauthorized}
	m, store := newTestManager(t, stub)
	require.NoError(t, store.Save(client.Token{Access: "expired"}))

	snap := m.Initialize(context.Background())

	assert.Equal(t, StatusUnauthenticated, snap.Status)
	assert.Nil(t, snap.User)
	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoToken, "rejected token must be removed from storage")
}

func TestInitializeUnreachableKeepsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused

	store := NewFileStore(t.TempDir())
	require.NoError(t, store.Save(client.Token{Access: "abc"}))
	m := NewManager(store, client.New(srv.URL, client.Token{}), zerolog.Nop())
	m.SetLookupTimeout(200 * time.Millisecond)

	snap := m.Initialize(context.Background())

	assert.Equal(t, StatusUnreachable, snap.Status)
	tok, err := store.Load()
	require.NoError(t, err, "a transient outage must not log the user out")
	assert.Equal(t, "abc", tok.Access)
}

func TestInitializeRetriesTransientFailureOnce(t *testing.T) {
	stub := &authStub{
		meUser:       domain.User{Username: "alice"},
		meFailFirstN: 1,
		meFailStatus: http.StatusInternalServerError,
	}
	m, store := newTestManager(t, stub)
	require.NoError(t, store.Save(client.Token{Access: "abc"}))

	snap := m.Initialize(context.Background())

	assert.Equal(t, StatusAuthenticated, snap.Status)
	assert.Equal(t, int32(2), stub.meCalls.Load())
}

func TestInitializePersistentServerErrorStopsAfterTwoAttempts(t *testing.T) {
	stub := &authStub{meStatus: http.StatusInternalServerError}
	m, store := newTestManager(t, stub)
	require.NoError(t, store.Save(client.Token{Access: "abc"}))

	snap := m.Initialize(context.Background())

	assert.Equal(t, StatusUnreachable, snap.Status)
	assert.Equal(t, int32(2), stub.meCalls.Load())
	_, err := store.Load()
	assert.NoError(t, err, "5xx is transient; token stays")
}

func TestInitializeTimeoutIsTransient(t *testing.T) {
	stub := &authStub{
		meUser:  domain.User{Username: "alice"},
		meDelay: time.Second,
	}
	m, store := newTestManager(t, stub)
	m.SetLookupTimeout(50 * time.Millisecond)
	require.NoError(t, store.Save(client.Token{Access: "abc"}))

	snap := m.Initialize(context.Background())

	assert.Equal(t, StatusUnreachable, snap.Status)
	_, err := store.Load()
	assert.NoError(t, err)
}

func TestLoginSuccess(t *testing.T) {
	stub := &authStub{token: "abc", meUser: domain.User{Username: "alice"}}
	m, store := newTestManager(t, stub)

	user, err := m.Login(context.Background(), "alice", "correctpw")

	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	snap := m.Snapshot()
	assert.Equal(t, StatusAuthenticated, snap.Status)
	require.NotNil(t, snap.User)

	tok, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc", tok.Access, "persisted token must equal the server's")
	assert.Equal(t, "bearer", tok.Type)
}

func TestLoginBadCredentials(t *testing.T) {
	stub := &authStub{loginStatus: http.StatusUnauthorized, loginDetail: "Invalid credentials"}
	m, store := newTestManager(t, stub)

	_, err := m.Login(context.Background(), "alice", "wrongpw")

	require.Error(t, err)
	assert.EqualError(t, err, "Invalid credentials")
	assert.True(t, IsKind(err, KindBadCredentials))
	assert.Nil(t, m.Snapshot().User, "user stays null after a failed login")
	_, loadErr := store.Load()
	assert.ErrorIs(t, loadErr, ErrNoToken, "no token persisted on failure")
}

func TestLoginIdentityFailureDoesNotPersistToken(t *testing.T) {
	stub := &authStub{token: "abc", meStatus: http.StatusInternalServerError}
	m, store := newTestManager(t, stub)

	_, err := m.Login(context.Background(), "alice", "correctpw")

	require.Error(t, err)
	assert.True(t, IsKind(err, KindServer))
	_, loadErr := store.Load()
	assert.ErrorIs(t, loadErr, ErrNoToken, "unconfirmed token must not be stored")
	assert.Equal(t, StatusResolving, m.Snapshot().Status, "session state untouched")
}

func TestLoginValidationSkipsNetwork(t *testing.T) {
	m, _ := newTestManager(t, &authStub{token: "abc"})

	_, err := m.Login(context.Background(), "", "")

	require.Error(t, err)
	assert.True(t, IsKind(err, KindValidation))
	assert.EqualError(t, err, "Please fill in all fields")
}

func TestLoginUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()
	m := NewManager(NewFileStore(t.TempDir()), client.New(srv.URL, client.Token{}), zerolog.Nop())

	_, err := m.Login(context.Background(), "alice", "pw")

	assert.True(t, IsKind(err, KindNetwork))
}

func TestLoginMalformedTokenResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"token_type": "bearer"}) //nolint:errcheck
	}))
	t.Cleanup(srv.Close)
	m := NewManager(NewFileStore(t.TempDir()), client.New(srv.URL, client.Token{}), zerolog.Nop())

	_, err := m.Login(context.Background(), "alice", "pw")

	assert.True(t, IsKind(err, KindMalformed))
}

func TestRegisterSuccessDoesNotAuthenticate(t *testing.T) {
	m, store := newTestManager(t, &authStub{})

	err := m.Register(context.Background(), "bob", "bob@x.com", "pw123")

	require.NoError(t, err)
	snap := m.Snapshot()
	assert.Nil(t, snap.User, "registration never auto-authenticates")
	_, loadErr := store.Load()
	assert.ErrorIs(t, loadErr, ErrNoToken)
}

func TestRegisterConflict(t *testing.T) {
	m, store := newTestManager(t, &authStub{registerStatus: http.StatusConflict})

	err := m.Register(context.Background(), "bob", "bob@x.com", "pw123")

	require.Error(t, err)
	assert.True(t, IsKind(err, KindConflict))
	_, loadErr := store.Load()
	assert.ErrorIs(t, loadErr, ErrNoToken)
}

func TestRegisterFailureKinds(t *testing.T) {
	tests := []struct {
		status int
		kind   ErrorKind
	}{
		{http.StatusConflict, KindConflict},
		{http.StatusUnprocessableEntity, KindValidation},
		{http.StatusInternalServerError, KindServer},
	}

	for _, tc := range tests {
		m, _ := newTestManager(t, &authStub{registerStatus: tc.status})
		err := m.Register(context.Background(), "bob", "bob@x.com", "pw123")
		assert.True(t, IsKind(err, tc.kind), "status %d should map to kind %d, got %v", tc.status, tc.kind, err)
	}
}

func TestRegisterValidation(t *testing.T) {
	m, _ := newTestManager(t, &authStub{})

	err := m.Register(context.Background(), "bo", "bob@x.com", "pw123")

	assert.True(t, IsKind(err, KindValidation))
	assert.EqualError(t, err, "Username must be between 3 and 50 characters")
}

func TestLogoutIdempotent(t *testing.T) {
	stub := &authStub{token: "abc", meUser: domain.User{Username: "alice"}}
	m, store := newTestManager(t, stub)

	_, err := m.Login(context.Background(), "alice", "pw")
	require.NoError(t, err)

	m.Logout()
	snap := m.Snapshot()
	assert.Equal(t, StatusUnauthenticated, snap.Status)
	assert.Nil(t, snap.User)
	_, loadErr := store.Load()
	assert.ErrorIs(t, loadErr, ErrNoToken)

	// Logging out again must not panic or error.
	m.Logout()
	assert.Nil(t, m.Snapshot().User)
}

func TestSessionSurvivesRestart(t *testing.T) {
	stub := &authStub{token: "abc", meUser: domain.User{Username: "alice", Email: "alice@example.com"}}
	srv := httptest.NewServer(stub.handler(t))
	t.Cleanup(srv.Close)

	dir := t.TempDir()

	// First process: log in.
	first := NewManager(NewFileStore(dir), client.New(srv.URL, client.Token{}), zerolog.Nop())
	user, err := first.Login(context.Background(), "alice", "pw")
	require.NoError(t, err)

	// Simulated restart: fresh manager and client, same storage.
	second := NewManager(NewFileStore(dir), client.New(srv.URL, client.Token{}), zerolog.Nop())
	snap := second.Initialize(context.Background())

	assert.Equal(t, StatusAuthenticated, snap.Status)
	require.NotNil(t, snap.User)
	assert.Equal(t, *user, *snap.User)
}
