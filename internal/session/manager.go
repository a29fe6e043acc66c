// Package session owns the authenticated identity for the whole
// application: it persists the bearer token, rehydrates the session at
// startup, and runs the login/register/logout flows against the API.
// Consumers receive the Manager by explicit injection; there is no package
// global.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/kiralabs/kira/pkg/client"
	"github.com/kiralabs/kira/pkg/domain"
)

// Status is the resolution state of the session.
type Status int

const (
	// StatusResolving: rehydration has not completed. Initial state.
	StatusResolving Status = iota
	// StatusAuthenticated: a token was confirmed against the identity endpoint.
	StatusAuthenticated
	// StatusUnauthenticated: no token, or the token was rejected and cleared.
	StatusUnauthenticated
	// StatusUnreachable: rehydration failed transiently. The token is kept
	// so the caller can offer a retry instead of silently logging out.
	StatusUnreachable
)

func (s Status) String() string {
	switch s {
	case StatusResolving:
		return "resolving"
	case StatusAuthenticated:
		return "authenticated"
	case StatusUnauthenticated:
		return "unauthenticated"
	case StatusUnreachable:
		return "unreachable"
	default:
		return "unknown"
	}
}

// Snapshot is a point-in-time copy of the session state.
type Snapshot struct {
	Status Status
	User   *domain.User
}

// defaultLookupTimeout bounds one identity-lookup attempt during Initialize.
const defaultLookupTimeout = 10 * time.Second

// Manager is the single source of truth for "who is logged in". It never
// talks to the network itself beyond delegating to the API client, and it
// is the only writer of the token store.
type Manager struct {
	store         TokenStore
	api           *client.Client
	log           zerolog.Logger
	lookupTimeout time.Duration

	mu     sync.Mutex
	status Status
	user   *domain.User
}

// NewManager wires the session manager. The manager starts in
// StatusResolving until Initialize runs.
func NewManager(store TokenStore, api *client.Client, log zerolog.Logger) *Manager {
	return &Manager{
		store:         store,
		api:           api,
		log:           log,
		lookupTimeout: defaultLookupTimeout,
		status:        StatusResolving,
	}
}

// SetLookupTimeout overrides the per-attempt bound on the rehydration
// identity lookup.
func (m *Manager) SetLookupTimeout(d time.Duration) {
	if d > 0 {
		m.lookupTimeout = d
	}
}

// Snapshot returns the current session state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{Status: m.status, User: m.user}
}

// Initialize rehydrates the session from the persisted token.
//
// No token: unauthenticated. Token present: confirm it against the identity
// endpoint, each attempt bounded by the lookup timeout. A rejection (401 or
// 403) is permanent — the token is cleared. Network failures, 5xx responses
// and timeouts are transient: the lookup is retried once and, if it still
// fails, the token is kept and the status becomes StatusUnreachable so the
// caller can retry later. A transient outage must not log the user out.
//
// Initialize may be called again after StatusUnreachable.
func (m *Manager) Initialize(ctx context.Context) Snapshot {
	tok, err := m.store.Load()
	if err != nil {
		if !errors.Is(err, ErrNoToken) {
			// Unreadable storage is treated like no session.
			m.log.Warn().Err(err).Msg("token store unreadable")
		}
		return m.become(StatusUnauthenticated, nil)
	}

	m.api.SetToken(tok)

	user, lookupErr := m.lookup(ctx)
	if lookupErr != nil && transient(lookupErr) {
		m.log.Debug().Err(lookupErr).Msg("identity lookup failed, retrying once")
		user, lookupErr = m.lookup(ctx)
	}

	switch {
	case lookupErr == nil:
		m.log.Info().Str("username", user.Username).Msg("session rehydrated")
		return m.become(StatusAuthenticated, user)
	case transient(lookupErr):
		m.log.Warn().Err(lookupErr).Msg("identity endpoint unreachable, keeping token")
		return m.become(StatusUnreachable, nil)
	default:
		// Rejected or malformed: the token is no good.
		m.log.Info().Err(lookupErr).Msg("persisted token rejected, clearing")
		if err := m.store.Clear(); err != nil {
			m.log.Warn().Err(err).Msg("clear token store")
		}
		m.api.SetToken(client.Token{})
		return m.become(StatusUnauthenticated, nil)
	}
}

func (m *Manager) lookup(ctx context.Context) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, m.lookupTimeout)
	defer cancel()
	return m.api.Me(ctx)
}

// transient reports whether an identity-lookup failure might succeed on
// retry: the server never answered, or it failed internally.
func transient(err error) bool {
	if errors.Is(err, client.ErrUnreachable) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	return client.StatusOf(err) >= 500
}

// Login runs the full sign-in chain: validate, exchange credentials for a
// token, confirm the token against the identity endpoint, and only then
// persist it and populate the user. A token the identity endpoint will not
// honor is never stored.
func (m *Manager) Login(ctx context.Context, username, password string) (*domain.User, error) {
	creds := domain.LoginCredentials{Username: username, Password: password}
	if err := creds.Validate(); err != nil {
		return nil, validationError(err)
	}

	tok, err := m.api.Login(ctx, username, password)
	if err != nil {
		m.log.Debug().Err(err).Str("username", username).Msg("login rejected")
		return nil, classifyLogin(err)
	}

	m.api.SetToken(tok)
	user, err := m.api.Me(ctx)
	if err != nil {
		m.api.SetToken(client.Token{})
		m.log.Warn().Err(err).Msg("token granted but identity lookup failed")
		return nil, classifyLogin(err)
	}

	if err := m.store.Save(tok); err != nil {
		// The session is still valid in memory; it just won't survive a restart.
		m.log.Warn().Err(err).Msg("persist token")
	}
	m.become(StatusAuthenticated, user)
	m.log.Info().Str("username", user.Username).Msg("logged in")
	return user, nil
}

// Register creates a new account. Registration never auto-authenticates:
// on success the caller sends the user to the login form.
func (m *Manager) Register(ctx context.Context, username, email, password string) error {
	creds := domain.RegisterCredentials{Username: username, Email: email, Password: password}
	if err := creds.Validate(); err != nil {
		return validationError(err)
	}

	if err := m.api.Register(ctx, username, email, password); err != nil {
		m.log.Debug().Err(err).Str("username", username).Msg("registration rejected")
		return classifyRegister(err)
	}
	m.log.Info().Str("username", username).Msg("account registered")
	return nil
}

// Logout drops the session: persisted token, in-memory user and the API
// client's credentials. Client-side only — the server keeps honoring the
// token until it expires. Idempotent.
func (m *Manager) Logout() {
	if err := m.store.Clear(); err != nil {
		m.log.Warn().Err(err).Msg("clear token store")
	}
	m.api.SetToken(client.Token{})
	m.become(StatusUnauthenticated, nil)
	m.log.Info().Msg("logged out")
}

func (m *Manager) become(status Status, user *domain.User) Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status = status
	m.user = user
	return Snapshot{Status: status, User: user}
}
