package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/mahalaxmi-storefront/internal/auth"
	pkgauth "github.com/angelmondragon/mahalaxmi-storefront/pkg/auth"
	pkgerrors "github.com/angelmondragon/mahalaxmi-storefront/pkg/errors"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/redis"
	"github.com/google/uuid"
	"go.uber.org/multierr"
)

// ErrNoToken is returned when login or register succeeds without a token in the body.
var ErrNoToken = pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication response carried no token")

type credentialStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	SessionKey(sessionID string) string
}

// Forgetter drops per-session state owned by another store.
type Forgetter interface {
	Forget(ctx context.Context, sessionID string) error
}

// ForgetFunc adapts a function to Forgetter.
type ForgetFunc func(ctx context.Context, sessionID string) error

func (f ForgetFunc) Forget(ctx context.Context, sessionID string) error {
	return f(ctx, sessionID)
}

// Store is the auth store: credentials per browser session, kept in Redis.
type Store struct {
	kv        credentialStore
	ceiling   time.Duration
	dependent []Forgetter
	now       func() time.Time
}

// NewStore builds the auth store. Dependents are cleared together with the credentials on logout.
func NewStore(kv credentialStore, ceiling time.Duration, dependents ...Forgetter) (*Store, error) {
	if kv == nil {
		return nil, fmt.Errorf("credential store is required")
	}
	if ceiling <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	return &Store{kv: kv, ceiling: ceiling, dependent: dependents, now: time.Now}, nil
}

// NewID mints a browser session identifier.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether raw looks like an identifier minted by NewID.
func ValidID(raw string) bool {
	_, err := uuid.Parse(raw)
	return err == nil
}

// Initialize restores the auth state of a session after a page load.
func (s *Store) Initialize(ctx context.Context, sessionID string) (State, error) {
	state := State{SessionID: sessionID}
	raw, err := s.kv.Get(ctx, s.kv.SessionKey(sessionID))
	if errors.Is(err, redis.Nil) {
		return state, nil
	}
	if err != nil {
		return state, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load session")
	}
	var creds Credentials
	if err := json.Unmarshal([]byte(raw), &creds); err != nil || strings.TrimSpace(creds.Token) == "" {
		return state, nil
	}
	state.Credentials = &creds
	return state, nil
}

// Login moves the session to authenticated when the backend handed back a token.
func (s *Store) Login(ctx context.Context, sessionID string, resp auth.AuthResponse) (State, error) {
	return s.authenticate(ctx, sessionID, resp)
}

// Register behaves like Login; the backend signs new accounts in directly.
func (s *Store) Register(ctx context.Context, sessionID string, resp auth.AuthResponse) (State, error) {
	return s.authenticate(ctx, sessionID, resp)
}

func (s *Store) authenticate(ctx context.Context, sessionID string, resp auth.AuthResponse) (State, error) {
	if strings.TrimSpace(resp.Token) == "" {
		return State{SessionID: sessionID}, ErrNoToken
	}
	creds := credentialsFrom(resp)
	ttl := pkgauth.SessionTTL(creds.Token, s.now(), s.ceiling)
	if ttl <= 0 {
		return State{SessionID: sessionID}, pkgerrors.New(pkgerrors.CodeUnauthorized, "backend token already expired")
	}
	if err := s.save(ctx, sessionID, creds, ttl); err != nil {
		return State{SessionID: sessionID}, err
	}
	return State{SessionID: sessionID, Credentials: creds}, nil
}

// UpdateUser rewrites the stored profile after a successful profile save.
func (s *Store) UpdateUser(ctx context.Context, state State, user auth.User) (State, error) {
	if !state.Authenticated() {
		return state, pkgerrors.New(pkgerrors.CodeUnauthorized, "not signed in")
	}
	creds := *state.Credentials
	creds.User.FirstName = user.FirstName
	creds.User.LastName = user.LastName
	if user.Email != "" {
		creds.User.Email = user.Email
	}
	if err := s.save(ctx, state.SessionID, &creds, redis.KeepTTL); err != nil {
		return state, err
	}
	state.Credentials = &creds
	return state, nil
}

// Logout drops the credentials and every dependent per-session store.
func (s *Store) Logout(ctx context.Context, sessionID string) error {
	err := s.kv.Del(ctx, s.kv.SessionKey(sessionID))
	for _, dep := range s.dependent {
		err = multierr.Append(err, dep.Forget(ctx, sessionID))
	}
	return err
}

// ClearUnauthorized is the forced logout used when the backend rejects the token.
func (s *Store) ClearUnauthorized(ctx context.Context, sessionID string) error {
	return s.Logout(ctx, sessionID)
}

func (s *Store) save(ctx context.Context, sessionID string, creds *Credentials, ttl time.Duration) error {
	payload, err := json.Marshal(creds)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode session")
	}
	if err := s.kv.Set(ctx, s.kv.SessionKey(sessionID), string(payload), ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store session")
	}
	return nil
}
