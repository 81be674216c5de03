package storefront

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const sessionKey = "session"

const (
	defaultRestoreRetries = 2
	defaultRestoreDelay   = time.Second
)

// persistedSession is the storage shape for a session.
type persistedSession struct {
	Token string `json:"token"`
}

// Session holds the current user and token. A persisted token is validated
// against the backend on restore; the server decides whether it still
// counts, not the token's expiry claims alone.
type Session struct {
	client  *Client
	storage Storage
	logger  *slog.Logger

	retries int
	delay   time.Duration
	sleep   func(time.Duration)

	mu    sync.RWMutex
	token string
	user  *User
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithRestoreRetry bounds the validation retries on transient failure
// during restore; delay is fixed, not exponential.
func WithRestoreRetry(retries int, delay time.Duration) SessionOption {
	return func(s *Session) {
		if retries >= 0 {
			s.retries = retries
		}
		if delay > 0 {
			s.delay = delay
		}
	}
}

func withSessionSleep(sleep func(time.Duration)) SessionOption {
	return func(s *Session) {
		if sleep != nil {
			s.sleep = sleep
		}
	}
}

// NewSession wires a session onto the client: the session becomes the
// client's token source, so every call carries the current token.
func NewSession(client *Client, storage Storage, opts ...SessionOption) *Session {
	s := &Session{
		client:  client,
		storage: storage,
		logger:  client.logger,
		retries: defaultRestoreRetries,
		delay:   defaultRestoreDelay,
		sleep:   time.Sleep,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	client.tokens = s
	return s
}

// Token implements TokenSource.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the current user, if authenticated.
func (s *Session) User() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

// Restore loads a persisted token and validates it against the backend.
// Transient failures are retried a bounded number of times with a fixed
// delay; an authentication failure clears the session immediately, with no
// retry, because it will not heal on its own. No persisted token is not an
// error: the session simply stays anonymous.
func (s *Session) Restore(ctx context.Context) error {
	var persisted persistedSession
	ok, err := s.storage.Load(sessionKey, &persisted)
	if err != nil {
		return err
	}
	if !ok || persisted.Token == "" {
		return nil
	}

	s.mu.Lock()
	s.token = persisted.Token
	s.mu.Unlock()

	for attempt := 0; ; attempt++ {
		user, err := s.client.ValidateToken(ctx)
		if err == nil {
			s.mu.Lock()
			s.user = &user
			s.mu.Unlock()
			return nil
		}

		switch KindOf(err) {
		case KindUnauthorized, KindForbidden, KindNotFound:
			s.logger.InfoContext(ctx, "stored session rejected, clearing", "error", err)
			return s.clear()
		}
		if attempt >= s.retries {
			// Backend unreachable: give up for now but keep the persisted
			// token so the next start can try again.
			s.mu.Lock()
			s.token = ""
			s.mu.Unlock()
			return err
		}
		s.logger.WarnContext(ctx, "session validation retry", "attempt", attempt+1, "error", err)
		s.sleep(s.delay)
	}
}

// Register creates an account and starts a session with it.
func (s *Session) Register(ctx context.Context, params RegisterParams) (User, error) {
	result, err := s.client.Register(ctx, params)
	if err != nil {
		return User{}, err
	}
	return result.User, s.establish(result)
}

// Login replaces any current session with a fresh one.
func (s *Session) Login(ctx context.Context, email, password string) (User, error) {
	result, err := s.client.Login(ctx, email, password)
	if err != nil {
		return User{}, err
	}
	return result.User, s.establish(result)
}

// Logout clears the token and user, in memory and in storage.
func (s *Session) Logout() error {
	return s.clear()
}

func (s *Session) establish(result AuthResult) error {
	s.mu.Lock()
	s.token = result.Token
	user := result.User
	s.user = &user
	s.mu.Unlock()
	return s.storage.Save(sessionKey, persistedSession{Token: result.Token})
}

func (s *Session) clear() error {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()
	return s.storage.Delete(sessionKey)
}
