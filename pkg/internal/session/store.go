package session

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"github.com/campus-connect/campusctl/pkg/internal/models"
)

const (
	tokenFile = "token"
	roleFile  = "last_role"
)

// Store holds the signed-in identity for the lifetime of the process.
// It has a single writer (the post-login identity fetch) and many
// readers. Only the bearer token and the last known role survive
// between runs.
type Store struct {
	mu   sync.RWMutex
	user *models.User

	token    string
	lastRole models.UserRole

	dir string
}

func New(dir string) *Store {
	s := &Store{dir: dir}
	if raw, err := os.ReadFile(filepath.Join(dir, tokenFile)); err == nil {
		s.token = strings.TrimSpace(string(raw))
	}
	if raw, err := os.ReadFile(filepath.Join(dir, roleFile)); err == nil {
		s.lastRole = strings.TrimSpace(string(raw))
	}
	return s
}

func (s *Store) SetUser(user models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &user
}

func (s *Store) User() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// LastRole reports the role of the previous session. It is only used
// to pick the sign-in route to suggest, never for authorization.
func (s *Store) LastRole() models.UserRole {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastRole == "" {
		return models.RoleStudent
	}
	return s.lastRole
}

func (s *Store) SetToken(token string, role models.UserRole) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.lastRole = role

	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.dir, tokenFile), []byte(token), 0o600); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, roleFile), []byte(role), 0o600)
}

// Clear drops the in-memory identity and the persisted token. The last
// known role is kept so the next sign-in hint still points at the
// right route.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.token = ""
	if err := os.Remove(filepath.Join(s.dir, tokenFile)); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("An error occurred when removing the saved token.")
	}
}

// Claims decodes the bearer token without verifying it. Verification
// belongs to the backend; the client only wants the subject and expiry
// for display.
func (s *Store) Claims() (subject string, expiresAt time.Time, ok bool) {
	raw := strings.TrimPrefix(s.Token(), "Bearer ")
	if raw == "" {
		return "", time.Time{}, false
	}

	token, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return "", time.Time{}, false
	}

	claims, _ := token.Claims.(jwt.MapClaims)
	subject, _ = claims.GetSubject()
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		expiresAt = exp.Time
	}
	return subject, expiresAt, true
}
