package services

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/uniem/uniem-api/internal/constants"
	"github.com/uniem/uniem-api/internal/logger"
	"github.com/uniem/uniem-api/internal/models"
	"github.com/uniem/uniem-api/internal/repository"
)

var (
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidEmail         = errors.New("a valid .edu.tr email address is required")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrAccountDeactivated   = errors.New("account is deactivated")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// AuthService handles signup and login.
type AuthService struct {
	userRepo repository.UserRepository
	logRepo  repository.LogRepository
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, logRepo repository.LogRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		logRepo:  logRepo,
	}
}

// SignupInput represents the required information to create a new user.
type SignupInput struct {
	Name     string
	Email    string
	Password string
}

// Signup registers a student account. Only university addresses are
// accepted.
func (s *AuthService) Signup(input SignupInput) (*models.User, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if !strings.Contains(email, "@") || !strings.HasSuffix(email, constants.EmailDomainSuffix) {
		return nil, ErrInvalidEmail
	}

	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         models.RoleUser,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.audit(user.ID, "signup", fmt.Sprintf("%s registered", user.Email))

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and returns the authenticated user.
func (s *AuthService) Login(input LoginInput) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrAccountDeactivated
	}

	s.audit(user.ID, "login", fmt.Sprintf("%s logged in", user.Email))

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// audit writes an audit-log row; failures are logged and swallowed so they
// never break the primary flow.
func (s *AuthService) audit(userID uint64, action, message string) {
	if s.logRepo == nil {
		return
	}
	entry := &models.AuditLog{
		Action:  action,
		Message: message,
		UserID:  userID,
	}
	if err := s.logRepo.Create(entry); err != nil {
		logger.Warning("audit log %s: %v", action, err)
	}
}
