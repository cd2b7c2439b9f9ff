package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"condo_ledger/internal/metrics"
	"condo_ledger/internal/models"
	"condo_ledger/internal/repository"
)

const defaultSessionTTL = 12 * time.Hour

type AuthConfig struct {
	SigningKey string
	SessionTTL time.Duration
}

// Session is the result of a successful login.
type Session struct {
	Identity  models.Identity
	Token     string
	ExpiresAt time.Time
}

// SessionStatus answers "is this caller logged in" without failing.
type SessionStatus struct {
	LoggedIn bool        `json:"logged_in"`
	Username string      `json:"username,omitempty"`
	Role     models.Role `json:"role,omitempty"`
}

// Claims defines JWT claims. The registered ID (jti) is the session row id.
type Claims struct {
	jwt.RegisteredClaims
	UserID int `json:"user_id"`
}

// defaultAccounts are created by Bootstrap when missing.
var defaultAccounts = []struct {
	username string
	password string
	role     models.Role
}{
	{"admin", "admin123", models.RoleAdmin},
	{"tesorero", "tesorero123", models.RoleTreasurer},
}

// AuthService handles user auth logic
type AuthService struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	events   *eventRecorder

	signingKey []byte
	ttl        time.Duration
	now        func() time.Time
}

func NewAuthService(users repository.UserRepository, sessions repository.SessionRepository, events *eventRecorder, cfg AuthConfig, now func() time.Time) *AuthService {
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	if now == nil {
		now = time.Now
	}
	return &AuthService{
		users:      users,
		sessions:   sessions,
		events:     events,
		signingKey: []byte(cfg.SigningKey),
		ttl:        ttl,
		now:        now,
	}
}

// Login verifies credentials, stores a session row and returns a token bound to it.
func (s *AuthService) Login(ctx context.Context, username, password string) (Session, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return Session{}, storeErr("get user", err)
	}

	if u == nil {
		// spend the same bcrypt work as a real comparison
		_ = verifyPassword(dummyHash(), password)
		s.loginFailed(ctx, username)
		return Session{}, ErrInvalidCredentials
	}
	if err := verifyPassword(u.PasswordHash, password); err != nil {
		s.loginFailed(ctx, username)
		return Session{}, ErrInvalidCredentials
	}

	now := s.now().UTC()
	if _, err := s.sessions.DeleteExpired(ctx, now); err != nil {
		return Session{}, storeErr("purge sessions", err)
	}

	sess := models.Session{
		ID:        uuid.NewString(),
		UserID:    u.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return Session{}, storeErr("create session", err)
	}

	token, err := s.issueToken(*u, sess)
	if err != nil {
		return Session{}, err
	}

	metrics.ObserveLogin(true)
	s.events.record(ctx, models.EventLogin, u.Username, "user logged in", map[string]any{"role": u.Role})

	return Session{
		Identity: models.Identity{
			UserID:    u.ID,
			Username:  u.Username,
			Role:      u.Role,
			SessionID: sess.ID,
		},
		Token:     token,
		ExpiresAt: sess.ExpiresAt,
	}, nil
}

func (s *AuthService) loginFailed(ctx context.Context, username string) {
	metrics.ObserveLogin(false)
	s.events.record(ctx, models.EventLoginFailed, "", "invalid credentials", map[string]any{"username": username})
}

// Logout revokes the caller's session. Tokens bound to it stop working at once.
func (s *AuthService) Logout(ctx context.Context, id models.Identity) error {
	if id.SessionID == "" {
		return ErrAuthRequired
	}
	if err := s.sessions.Delete(ctx, id.SessionID); err != nil {
		return storeErr("delete session", err)
	}
	s.events.record(ctx, models.EventLogout, id.Username, "user logged out", nil)
	return nil
}

// CheckSession reports whether token belongs to a live session.
func (s *AuthService) CheckSession(ctx context.Context, token string) SessionStatus {
	id, err := s.Authenticate(ctx, token)
	if err != nil {
		return SessionStatus{}
	}
	return SessionStatus{LoggedIn: true, Username: id.Username, Role: id.Role}
}

// Authenticate resolves a token to the identity of its session owner.
func (s *AuthService) Authenticate(ctx context.Context, token string) (models.Identity, error) {
	if strings.TrimSpace(token) == "" {
		return models.Identity{}, ErrAuthRequired
	}

	claims, err := s.parseToken(token)
	if err != nil {
		return models.Identity{}, ErrAuthRequired
	}

	sess, err := s.sessions.Get(ctx, claims.ID)
	if err != nil {
		return models.Identity{}, storeErr("get session", err)
	}
	if sess == nil || sess.UserID != claims.UserID {
		return models.Identity{}, ErrAuthRequired
	}
	if !s.now().Before(sess.ExpiresAt) {
		return models.Identity{}, ErrAuthRequired
	}

	u, err := s.users.GetByID(ctx, sess.UserID)
	if err != nil {
		return models.Identity{}, storeErr("get user", err)
	}
	if u == nil {
		return models.Identity{}, ErrAuthRequired
	}

	return models.Identity{
		UserID:    u.ID,
		Username:  u.Username,
		Role:      u.Role,
		SessionID: sess.ID,
	}, nil
}

// Bootstrap creates the default administrator and treasurer accounts when
// they do not exist yet. It returns the usernames it created.
func (s *AuthService) Bootstrap(ctx context.Context) ([]string, error) {
	var created []string
	for _, acc := range defaultAccounts {
		existing, err := s.users.GetByUsername(ctx, acc.username)
		if err != nil {
			return created, storeErr("get user", err)
		}
		if existing != nil {
			continue
		}

		u := models.User{Username: acc.username, Role: acc.role}
		u.PasswordHash, err = hashPassword(acc.password)
		if err != nil {
			return created, err
		}
		if _, err := s.users.Create(ctx, u); err != nil {
			return created, storeErr("create user", err)
		}
		created = append(created, u.Username)
	}
	return created, nil
}

// CreateUser hashes password and creates a new account.
func (s *AuthService) CreateUser(ctx context.Context, username, password string, role models.Role) (models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return models.User{}, invalid("username", msgRequired)
	}
	if !role.Valid() {
		return models.User{}, invalid("role", fmt.Sprintf("debe ser %q o %q", models.RoleAdmin, models.RoleTreasurer))
	}
	if strings.TrimSpace(password) == "" {
		return models.User{}, invalid("password", msgRequired)
	}

	existing, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return models.User{}, storeErr("get user", err)
	}
	if existing != nil {
		return models.User{}, ErrUserExists
	}

	hash, err := hashPassword(password)
	if err != nil {
		return models.User{}, err
	}
	u := models.User{Username: username, PasswordHash: hash, Role: role}
	u.ID, err = s.users.Create(ctx, u)
	if err != nil {
		return models.User{}, storeErr("create user", err)
	}
	return u, nil
}

func (s *AuthService) issueToken(u models.User, sess models.Session) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sess.ID,
			Subject:   u.Username,
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(sess.CreatedAt),
		},
		UserID: u.ID,
	})
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *AuthService) parseToken(accessToken string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.ID == "" {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

var dummyHash = sync.OnceValue(func() string {
	h, _ := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)
	return string(h)
})
