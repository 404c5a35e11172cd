package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/slicehub/pizza-service/internal/auth"
	"github.com/slicehub/pizza-service/internal/models"
	"github.com/slicehub/pizza-service/internal/store"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrMissingFields    = errors.New("name, email, and password are required")
	ErrEmailTaken       = errors.New("email already registered")
	ErrUnknownUser      = errors.New("unknown user")
	ErrUpdateUserDenied = errors.New("unauthorized")
)

type AuthService struct {
	store  store.Store
	tokens *auth.TokenService
}

func NewAuthService(st store.Store, tokens *auth.TokenService) *AuthService {
	return &AuthService{store: st, tokens: tokens}
}

// Register creates a diner account and issues a session token.
func (s *AuthService) Register(name, email, password string) (*models.User, string, error) {
	if name == "" || email == "" || password == "" {
		return nil, "", ErrMissingFields
	}

	email = strings.ToLower(email)
	if _, err := s.store.GetUserByEmail(email); err == nil {
		return nil, "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:       uuid.New(),
		Name:     name,
		Email:    email,
		Password: string(hash),
		Roles:    []models.UserRole{{Role: models.RoleDiner}},
	}
	if err := s.store.CreateUser(&user); err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.Issue(&user)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	if email == "" || password == "" {
		return nil, "", ErrMissingFields
	}

	user, err := s.store.GetUserByEmail(strings.ToLower(email))
	if err != nil {
		return nil, "", ErrUnknownUser
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrUnknownUser
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// UpdateUser lets a user change their own email or password; admins may
// update anyone.
func (s *AuthService) UpdateUser(p *auth.Principal, targetID uuid.UUID, email, password string) (*models.User, error) {
	if !auth.CanUpdateUser(p, targetID) {
		return nil, ErrUpdateUserDenied
	}

	user, err := s.store.GetUserByID(targetID)
	if err != nil {
		return nil, err
	}

	if email != "" {
		user.Email = strings.ToLower(email)
	}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hash)
	}

	if err := s.store.UpdateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Logout revokes the presented token. Revoking an already-revoked token
// is treated as success so logging out twice never errors.
func (s *AuthService) Logout(rawToken string) error {
	err := s.tokens.Revoke(rawToken)
	if errors.Is(err, auth.ErrTokenRevoked) {
		return nil
	}
	return err
}

// EnsureAdmin seeds the configured global admin account if it does not
// exist yet.
func (s *AuthService) EnsureAdmin(name, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	email = strings.ToLower(email)
	if _, err := s.store.GetUserByEmail(email); err == nil {
		return nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.store.CreateUser(&models.User{
		ID:       uuid.New(),
		Name:     name,
		Email:    email,
		Password: string(hash),
		Roles:    []models.UserRole{{Role: models.RoleAdmin}},
	})
}
