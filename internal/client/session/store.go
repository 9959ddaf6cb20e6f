package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/dmitrijs2005/billio/internal/client/models"
	"github.com/dmitrijs2005/billio/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/billio/internal/logging"
)

// Store is the single source of truth for "is there a logged-in user, and who".
// It is safe for concurrent use.
type Store struct {
	repo metadata.Repository
	log  logging.Logger
	now  func() time.Time

	initOnce sync.Once
	initErr  error

	mu         sync.RWMutex
	loading    bool
	token      string
	user       *models.User
	rememberMe bool
	redirect   string
}

type Option func(*Store)

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.log = l }
}

func NewStore(repo metadata.Repository, opts ...Option) *Store {
	s := &Store{
		repo:    repo,
		log:     logging.Discard(),
		now:     time.Now,
		loading: true,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Initialize restores a persisted session. It runs its body once; later calls
// return the first result. A corrupted record is discarded and leaves the
// store logged out without an error. Loading becomes false after the attempt
// whatever its outcome.
func (s *Store) Initialize(ctx context.Context) error {
	s.initOnce.Do(func() {
		s.initErr = s.restore(ctx)

		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	})
	return s.initErr
}

func (s *Store) restore(ctx context.Context) error {
	token, err := s.repo.Get(ctx, KeyAuthToken)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	rawUser, err := s.repo.Get(ctx, KeyUser)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}

	if token == nil && rawUser == nil {
		s.log.Debug(ctx, "no persisted session")
		return nil
	}

	user, err := parseUser(rawUser)
	if err == nil && strings.TrimSpace(string(token)) == "" {
		err = errors.New("token missing")
	}
	if err != nil {
		s.log.Warn(ctx, "discarding corrupted session record", "error", err)
		return s.deleteKeys(ctx, KeyAuthToken, KeyUser, KeyRememberMe)
	}

	rememberMe, err := s.repo.Get(ctx, KeyRememberMe)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}

	s.mu.Lock()
	s.token = string(token)
	s.user = &user
	s.rememberMe = string(rememberMe) == "true"
	s.mu.Unlock()

	if _, ok, err := s.LastActivity(ctx); err != nil {
		return err
	} else if !ok {
		if err := s.TouchActivity(ctx); err != nil {
			return err
		}
	}

	s.log.Info(ctx, "session restored", "user_id", user.ID)
	return nil
}

func parseUser(raw []byte) (models.User, error) {
	var u models.User
	if raw == nil {
		return u, errors.New("user missing")
	}
	if err := json.Unmarshal(raw, &u); err != nil {
		return u, fmt.Errorf("user record: %w", err)
	}
	if strings.TrimSpace(u.ID) == "" || strings.TrimSpace(u.Email) == "" {
		return u, errors.New("user record lacks id or email")
	}
	return u, nil
}

// Login persists token, user, rememberMe and a fresh activity marker, then
// marks the store authenticated. Either all four keys are written or none
// remain: on ErrInvalidCredential or a storage failure every key is removed
// and the store is left logged out.
func (s *Store) Login(ctx context.Context, token string, user models.User, rememberMe bool) error {
	if err := validateCredential(token, user); err != nil {
		s.abortLogin(ctx)
		return err
	}

	rawUser, err := json.Marshal(user)
	if err != nil {
		s.abortLogin(ctx)
		return fmt.Errorf("encode user: %w", err)
	}

	now := s.now()
	err = s.repo.InTx(ctx, func(ctx context.Context, repo metadata.Repository) error {
		if err := repo.Set(ctx, KeyAuthToken, []byte(token)); err != nil {
			return err
		}
		if err := repo.Set(ctx, KeyUser, rawUser); err != nil {
			return err
		}
		if err := repo.Set(ctx, KeyRememberMe, []byte(strconv.FormatBool(rememberMe))); err != nil {
			return err
		}
		return repo.Set(ctx, KeyLastActivity, formatMillis(now))
	})
	if err != nil {
		s.abortLogin(ctx)
		return fmt.Errorf("persist session: %w", err)
	}

	s.mu.Lock()
	s.token = token
	s.user = &user
	s.rememberMe = rememberMe
	s.redirect = ""
	s.mu.Unlock()

	s.log.Info(ctx, "logged in", "user_id", user.ID, "remember_me", rememberMe)
	return nil
}

func (s *Store) abortLogin(ctx context.Context) {
	if err := s.deleteKeys(ctx, allKeys...); err != nil {
		s.log.Error(ctx, "rollback of failed login incomplete", "error", err)
	}
	s.reset()
}

func validateCredential(token string, user models.User) error {
	if strings.TrimSpace(token) == "" {
		return fmt.Errorf("%w: empty token", ErrInvalidCredential)
	}
	if strings.IndexFunc(token, func(r rune) bool { return unicode.IsSpace(r) || unicode.IsControl(r) }) >= 0 {
		return fmt.Errorf("%w: malformed token", ErrInvalidCredential)
	}
	if strings.TrimSpace(user.ID) == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidCredential)
	}
	if strings.TrimSpace(user.Email) == "" {
		return fmt.Errorf("%w: user email is required", ErrInvalidCredential)
	}
	return nil
}

// Logout removes every persisted key, resets the store and schedules one
// navigation to LoginLocation (see ConsumeRedirect). It cannot fail: storage
// errors are logged and the in-memory state is reset regardless.
func (s *Store) Logout(ctx context.Context) {
	if err := s.deleteKeys(ctx, allKeys...); err != nil {
		s.log.Error(ctx, "clearing persisted session failed", "error", err)
	}

	s.mu.Lock()
	s.clearLocked()
	s.redirect = LoginLocation
	s.mu.Unlock()

	s.log.Info(ctx, "logged out")
}

// ForceClear is the lighter teardown used when the API rejects the token:
// only the token and user keys are removed and no navigation is scheduled,
// since the caller navigates itself.
func (s *Store) ForceClear(ctx context.Context) error {
	err := s.deleteKeys(ctx, KeyAuthToken, KeyUser)
	s.reset()
	return err
}

// ConsumeRedirect returns the pending navigation target once.
func (s *Store) ConsumeRedirect() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	to := s.redirect
	s.redirect = ""
	return to, to != ""
}

// TouchActivity stamps the activity marker with the current time.
func (s *Store) TouchActivity(ctx context.Context) error {
	if err := s.repo.Set(ctx, KeyLastActivity, formatMillis(s.now())); err != nil {
		return fmt.Errorf("touch activity: %w", err)
	}
	return nil
}

// LastActivity reads the activity marker. ok is false when the marker is
// absent or unreadable.
func (s *Store) LastActivity(ctx context.Context) (t time.Time, ok bool, err error) {
	raw, err := s.repo.Get(ctx, KeyLastActivity)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("read activity: %w", err)
	}
	if raw == nil {
		return time.Time{}, false, nil
	}
	ms, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil {
		return time.Time{}, false, nil
	}
	return time.UnixMilli(ms), true, nil
}

func (s *Store) User() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// RememberMe is stored and restored but has no effect on session lifetime.
func (s *Store) RememberMe() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rememberMe
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Store) reset() {
	s.mu.Lock()
	s.clearLocked()
	s.mu.Unlock()
}

func (s *Store) clearLocked() {
	s.token = ""
	s.user = nil
	s.rememberMe = false
}

func (s *Store) deleteKeys(ctx context.Context, keys ...string) error {
	var errs []error
	for _, k := range keys {
		if err := s.repo.Delete(ctx, k); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func formatMillis(t time.Time) []byte {
	return []byte(strconv.FormatInt(t.UnixMilli(), 10))
}
