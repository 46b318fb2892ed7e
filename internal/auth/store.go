// Package auth keeps the single storefront session and checks logins against
// a fixed allow-list.
package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Skotchmaster/vivero/internal/events"
	"github.com/Skotchmaster/vivero/internal/storage"
	"github.com/Skotchmaster/vivero/pkg/hash"
	"github.com/Skotchmaster/vivero/pkg/logging"
)

const DefaultDelay = 500 * time.Millisecond

var ErrInvalidCredentials = errors.New("invalid username or password")

type EventKind string

const (
	LoggedIn  EventKind = "user_logged_in"
	LoggedOut EventKind = "user_logged_out"
)

type Event struct {
	Kind EventKind `json:"type"`
	User User      `json:"user"`
}

type Options struct {
	// Delay is waited before every credential check.
	Delay    time.Duration
	Accounts []Account
	// HashCost is the bcrypt cost used for the allow-list; 0 means default.
	HashCost int
	Events   *events.Bus[Event]
}

type credential struct {
	user User
	hash string
}

type Store struct {
	mu      sync.RWMutex
	current *User

	creds   map[string]credential
	delay   time.Duration
	storage storage.Storage
	events  *events.Bus[Event]
}

func NewStore(ctx context.Context, s storage.Storage, opts Options) (*Store, error) {
	accounts := opts.Accounts
	if accounts == nil {
		accounts = DefaultAccounts()
	}

	st := &Store{
		creds:   make(map[string]credential, len(accounts)),
		delay:   opts.Delay,
		storage: s,
		events:  opts.Events,
	}
	for _, a := range accounts {
		var (
			h   string
			err error
		)
		if opts.HashCost > 0 {
			h, err = hash.HashPasswordCost(a.Password, opts.HashCost)
		} else {
			h, err = hash.HashPassword(a.Password)
		}
		if err != nil {
			return nil, fmt.Errorf("hash password for %s: %w", a.Username, err)
		}
		st.creds[a.Username] = credential{user: a.User, hash: h}
	}

	var u *User
	_, err := storage.LoadJSON(ctx, s, storage.KeyUser, &u)
	switch {
	case errors.Is(err, storage.ErrCorrupt):
		logging.FromContext(ctx).Warn("session_load_corrupt", "key", storage.KeyUser, "error", err)
	case err != nil:
		return nil, fmt.Errorf("load session: %w", err)
	case u == nil:
	default:
		if known, ok := st.allowListed(*u); ok {
			st.current = &known
		} else {
			logging.FromContext(ctx).Warn("session_load_rejected", "key", storage.KeyUser, "user_id", u.ID, "role", u.Role)
		}
	}
	return st, nil
}

// allowListed returns the allow-list entry u was issued for. A restored
// session must name a known account with its id and role.
func (s *Store) allowListed(u User) (User, bool) {
	c, ok := s.creds[u.Username]
	if !ok || c.user.ID != u.ID || c.user.Role != u.Role {
		return User{}, false
	}
	switch c.user.Role {
	case RoleAdmin, RoleUser:
		return c.user, true
	}
	return User{}, false
}

func (s *Store) Events() *events.Bus[Event] { return s.events }

// Login waits the configured delay, then checks the pair against the
// allow-list. A failed attempt leaves any existing session in place.
// Once started a login runs to completion even if ctx is cancelled.
func (s *Store) Login(ctx context.Context, username, password string) (User, error) {
	ctx = context.WithoutCancel(ctx)
	if s.delay > 0 {
		time.Sleep(s.delay)
	}

	c, ok := s.creds[username]
	if !ok || !hash.CheckPassword(c.hash, password) {
		return User{}, ErrInvalidCredentials
	}

	u := c.user
	s.mu.Lock()
	s.current = &u
	err := storage.SaveJSON(ctx, s.storage, storage.KeyUser, u)
	s.mu.Unlock()

	s.events.Publish(ctx, Event{Kind: LoggedIn, User: u})
	if err != nil {
		return u, fmt.Errorf("persist session: %w", err)
	}
	return u, nil
}

func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	prev := s.current
	s.current = nil
	err := s.storage.Remove(ctx, storage.KeyUser)
	s.mu.Unlock()

	if prev != nil {
		s.events.Publish(ctx, Event{Kind: LoggedOut, User: *prev})
	}
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *Store) Current() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return User{}, false
	}
	return *s.current, true
}

func (s *Store) IsAuthenticated() bool {
	_, ok := s.Current()
	return ok
}

func (s *Store) IsAdmin() bool {
	u, ok := s.Current()
	return ok && u.IsAdmin()
}

// HoldsSession reports whether userID is the user currently logged in.
func (s *Store) HoldsSession(userID string) bool {
	u, ok := s.Current()
	return ok && u.ID == userID
}
