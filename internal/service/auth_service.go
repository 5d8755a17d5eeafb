package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"parking_monitor/internal/logger"
	"parking_monitor/internal/metrics"
	"parking_monitor/internal/models"
	"parking_monitor/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultTokenTTL       = 24 * time.Hour
	defaultMinPasswordLen = 6
)

// AuthOptions configures token issuance and the registration policy.
type AuthOptions struct {
	SigningKey       string
	TokenTTL         time.Duration
	MinPasswordLen   int
	DefaultRole      string
	MaxLoginFailures int           // 0 disables throttling
	LoginLockout     time.Duration // window in which failures are counted
}

// AuthService handles admin account logic.
type AuthService struct {
	authRepo repository.Authorization
	opts     AuthOptions
	guard    *LoginGuard
	log      *logger.Logger
	now      func() time.Time
}

func NewAuthService(repo repository.Authorization, opts AuthOptions, log *logger.Logger) *AuthService {
	if log == nil {
		log = logger.Nop()
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = defaultTokenTTL
	}
	if opts.MinPasswordLen <= 0 {
		opts.MinPasswordLen = defaultMinPasswordLen
	}
	if opts.DefaultRole == "" {
		opts.DefaultRole = models.RoleAdmin
	}
	return &AuthService{
		authRepo: repo,
		opts:     opts,
		guard:    NewLoginGuard(opts.MaxLoginFailures, opts.LoginLockout),
		log:      log,
		now:      time.Now,
	}
}

// Claims defines JWT claims
type Claims struct {
	jwt.RegisteredClaims
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Register validates the policy, hashes the password and creates the account.
func (s *AuthService) Register(ctx context.Context, p RegisterParams) (models.AdminUser, error) {
	username := strings.TrimSpace(p.Username)
	email := strings.ToLower(strings.TrimSpace(p.Email))
	if username == "" || p.Password == "" {
		return models.AdminUser{}, ErrUsernameRequired
	}
	if len(p.Password) < s.opts.MinPasswordLen {
		return models.AdminUser{}, fmt.Errorf("%w: minimum %d characters", ErrPasswordTooShort, s.opts.MinPasswordLen)
	}

	role := s.opts.DefaultRole
	if p.AssignRole {
		if r := strings.ToLower(strings.TrimSpace(p.Role)); r != "" {
			role = r
		}
	}
	if !models.ValidRole(role) {
		return models.AdminUser{}, ErrInvalidRole
	}

	for _, ident := range []string{username, email} {
		if ident == "" {
			continue
		}
		existing, err := s.authRepo.GetByIdentifier(ctx, ident)
		if err != nil {
			return models.AdminUser{}, err
		}
		if existing != nil {
			return models.AdminUser{}, ErrUserExists
		}
	}

	hash, err := hashPassword(p.Password)
	if err != nil {
		return models.AdminUser{}, err
	}

	u := models.AdminUser{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    s.now().UTC(),
	}
	id, err := s.authRepo.Create(ctx, u)
	if errors.Is(err, repository.ErrDuplicateUser) {
		// lost a race with a concurrent registration
		return models.AdminUser{}, ErrUserExists
	}
	if err != nil {
		return models.AdminUser{}, err
	}
	u.ID = id
	return u, nil
}

// Authenticate validates credentials (username or email) and returns a signed JWT.
func (s *AuthService) Authenticate(ctx context.Context, identifier, password, clientIP string) (Token, error) {
	key := loginKey(identifier, clientIP)
	if s.guard.Blocked(key) {
		metrics.LoginAttempts.WithLabelValues("throttled").Inc()
		return Token{}, ErrTooManyAttempts
	}

	u, err := s.authRepo.GetByIdentifier(ctx, identifier)
	if err != nil {
		return Token{}, err
	}
	if u == nil || verifyPassword(u.PasswordHash, password) != nil {
		s.guard.Fail(key)
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		return Token{}, ErrInvalidCredentials
	}

	s.guard.Reset(key)
	tok, exp, err := s.issueToken(*u)
	if err != nil {
		return Token{}, err
	}
	metrics.LoginAttempts.WithLabelValues("success").Inc()
	return Token{Token: tok, ExpiresAt: exp, User: *u}, nil
}

// Verify parses a JWT and returns its claims.
func (s *AuthService) Verify(accessToken string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.opts.SigningKey), nil
	})
	if err != nil {
		// parser detail stays in the log, clients only see ErrInvalidToken
		s.log.Debugw("token_rejected", "err", err)
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// EnsureAdmin creates the bootstrap admin when it does not exist yet.
// Returns true when an account was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return false, nil
	}
	_, err := s.Register(ctx, RegisterParams{Username: username, Password: password, Role: models.RoleAdmin, AssignRole: true})
	if errors.Is(err, ErrUserExists) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", ErrUsernameRequired
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

// helper: issue a signed JWT carrying identity and role
func (s *AuthService) issueToken(u models.AdminUser) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.opts.TokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.Username,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:   u.ID,
		Username: u.Username,
		Role:     u.Role,
	})
	signed, err := token.SignedString([]byte(s.opts.SigningKey))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp.UTC(), nil
}
