package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/smartshelf/inventory-system/internal/core/domain"
	"github.com/smartshelf/inventory-system/internal/core/ports"
)

// AuthService implements registration and login.
type AuthService struct {
	repo      ports.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
	now       func() time.Time
}

func NewAuthService(repo ports.UserRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL, now: time.Now}
}

// Register creates a USER account. A requested role other than USER is
// rejected with ErrForbidden; elevated accounts come from EnsureAdmin and
// from an admin changing roles afterwards.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if strings.TrimSpace(in.Role) != "" {
		role, err := domain.ParseRole(strings.ToUpper(strings.TrimSpace(in.Role)))
		if err != nil {
			return nil, err
		}
		if role != domain.RoleUser {
			return nil, fmt.Errorf("%w: cannot self-register as %s", domain.ErrForbidden, role)
		}
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	return s.create(ctx, in, email, domain.RoleUser)
}

// EnsureAdmin creates an ADMIN account for email unless one with that email
// already exists. The existing account is returned untouched, so restarting
// with the same settings is a no-op. created reports whether a new account
// was written.
func (s *AuthService) EnsureAdmin(ctx context.Context, in ports.RegisterInput) (user *domain.User, created bool, err error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, false, domain.ErrInvalidCredentials
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, false, err
	}

	if in.FullName == "" {
		in.FullName = "Administrator"
	}
	user, err = s.create(ctx, in, email, domain.RoleAdmin)
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}

func (s *AuthService) create(ctx context.Context, in ports.RegisterInput, email string, role domain.Role) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	user := &domain.User{
		FullName:     in.FullName,
		Email:        email,
		PasswordHash: string(hash),
		Contact:      in.Contact,
		Location:     in.Location,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return s.repo.Create(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		// Unknown accounts look the same as a wrong password.
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":  user.Email,
		"uid":  user.ID,
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
