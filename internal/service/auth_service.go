package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"course_platform/internal/model"
	"course_platform/internal/repository"
	"course_platform/internal/utils"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrUserAlreadyExists  = errors.New("user with this email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidOldPassword = errors.New("old password is incorrect")

	ErrEmptyPasswordField = errors.New("all password fields are required")
	ErrPasswordMismatch   = errors.New("new password and confirmation do not match")
	ErrPasswordTooShort   = errors.New("new password must be at least 8 characters")
	ErrPasswordUnchanged  = errors.New("new password must differ from the old password")
)

const minPasswordLength = 8

// AuthService provides authentication related services
type AuthService interface {
	Register(ctx context.Context, name, email, password string, phone *string) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword, confirmPassword string) error
	ForgotPassword(ctx context.Context, email string) error
}

type authService struct {
	userRepo          repository.UserRepository
	jwtUtil           *utils.JWTUtil
	initialAdminEmail string
	log               zerolog.Logger
}

// NewAuthService creates a new AuthService. A registration matching
// initialAdminEmail is elevated to the admin role.
func NewAuthService(userRepo repository.UserRepository, jwtUtil *utils.JWTUtil, initialAdminEmail string, log zerolog.Logger) AuthService {
	return &authService{
		userRepo:          userRepo,
		jwtUtil:           jwtUtil,
		initialAdminEmail: NormalizeEmail(initialAdminEmail),
		log:               log,
	}
}

// NormalizeEmail lowercases and trims an email so lookups and uniqueness
// are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new local user account and issues a session token
func (s *authService) Register(ctx context.Context, name, email, password string, phone *string) (*model.User, string, error) {
	email = NormalizeEmail(email)

	existingUser, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, "", ErrUserAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	userRole := model.RoleUser // Default role
	if s.initialAdminEmail != "" && email == s.initialAdminEmail {
		userRole = model.RoleAdmin
		s.log.Info().Str("email", email).Msg("registering initial admin account")
	}

	user := model.NewLocalUser(email, name, phone, hashedPassword, userRole)

	if err := s.userRepo.Create(ctx, user); err != nil {
		// A concurrent registration can slip past the pre-check; the unique
		// constraint is the authority.
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, "", ErrUserAlreadyExists
		}
		return nil, "", fmt.Errorf("failed to create user in repository: %w", err)
	}

	token, err := s.jwtUtil.GenerateToken(user.ID, user.Role)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID.String()).Msg("user created but token generation failed")
		return user, "", fmt.Errorf("user created, but failed to generate token: %w", err)
	}

	return user, token, nil
}

// Login authenticates a user and returns a JWT token. Absent accounts and
// wrong passwords fail identically so callers cannot probe for emails.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, "", fmt.Errorf("error finding user by email: %w", err)
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials // User not found
	}

	// Federated accounts without a password fail the same way
	if !user.HasPassword() || !utils.CheckPasswordHash(password, *user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwtUtil.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

// ChangePassword verifies the old password and atomically swaps in the new
// hash. The repository update compares against the hash read here, so two
// interleaved changes cannot corrupt the stored credential.
func (s *authService) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword, confirmPassword string) error {
	if oldPassword == "" || newPassword == "" || confirmPassword == "" {
		return ErrEmptyPasswordField
	}
	if newPassword != confirmPassword {
		return ErrPasswordMismatch
	}
	if len(newPassword) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if oldPassword == newPassword {
		return ErrPasswordUnchanged
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}

	if !user.HasPassword() || !utils.CheckPasswordHash(oldPassword, *user.PasswordHash) {
		return ErrInvalidOldPassword
	}

	newHash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	updatedAt, err := s.userRepo.UpdatePassword(ctx, userID, *user.PasswordHash, newHash)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if updatedAt == nil {
		// Either the record vanished or another change landed first.
		current, err := s.userRepo.FindByID(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to re-check user: %w", err)
		}
		if current == nil {
			return ErrUserNotFound
		}
		return ErrInvalidOldPassword
	}

	s.log.Info().Str("user_id", userID.String()).Msg("password changed")
	return nil
}

// ForgotPassword accepts a reset request without revealing whether the email
// is registered. Delivery of the reset link is handled elsewhere.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return fmt.Errorf("error finding user by email: %w", err)
	}
	if user != nil {
		s.log.Info().Str("user_id", user.ID.String()).Msg("password reset requested")
	}
	return nil
}
