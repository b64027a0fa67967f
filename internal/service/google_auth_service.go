package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"course_platform/internal/model"
	"course_platform/internal/oauth"
	"course_platform/internal/repository"
	"course_platform/internal/utils"

	"github.com/rs/zerolog"
)

var (
	ErrMissingGoogleInput = errors.New("exactly one of id token or verified claim is required")
	ErrGoogleTokenInvalid = errors.New("google token verification failed")
	ErrMissingEmailClaim  = errors.New("google identity has no email")
)

// federatedTokenTTL is the session lifetime for federated logins.
const federatedTokenTTL = 7 * 24 * time.Hour

// VerifiedClaim is a Google identity already verified by a trusted caller.
type VerifiedClaim struct {
	Subject string
	Email   string
	Name    string
	Picture string
}

// GoogleLoginInput carries exactly one of a raw ID token to verify or a
// pre-verified claim. Validate enforces the exactly-one rule at the boundary.
type GoogleLoginInput struct {
	IDToken string
	Claim   *VerifiedClaim
}

// Validate rejects inputs that carry neither variant or both.
func (in GoogleLoginInput) Validate() error {
	if (in.IDToken == "") == (in.Claim == nil) {
		return ErrMissingGoogleInput
	}
	return nil
}

// GoogleTokenVerifier validates a Google-issued ID token.
type GoogleTokenVerifier interface {
	Verify(ctx context.Context, rawToken string) (*oauth.GoogleClaims, error)
}

// GoogleAuthService handles login via Google identity federation
type GoogleAuthService interface {
	Login(ctx context.Context, input GoogleLoginInput) (*model.User, string, error)
}

type googleAuthService struct {
	userRepo repository.UserRepository
	verifier GoogleTokenVerifier
	jwtUtil  *utils.JWTUtil
	log      zerolog.Logger
}

// NewGoogleAuthService creates a new GoogleAuthService
func NewGoogleAuthService(userRepo repository.UserRepository, verifier GoogleTokenVerifier, jwtUtil *utils.JWTUtil, log zerolog.Logger) GoogleAuthService {
	return &googleAuthService{
		userRepo: userRepo,
		verifier: verifier,
		jwtUtil:  jwtUtil,
		log:      log,
	}
}

// Login resolves the Google identity to a local user, creating one on first
// sight, and issues a locally-signed session token. Existing records are
// reused as-is; claim fields are not synced back.
func (s *googleAuthService) Login(ctx context.Context, input GoogleLoginInput) (*model.User, string, error) {
	if err := input.Validate(); err != nil {
		return nil, "", err
	}

	claim := input.Claim
	if input.IDToken != "" {
		googleClaims, err := s.verifier.Verify(ctx, input.IDToken)
		if err != nil {
			s.log.Warn().Err(err).Msg("google id token rejected")
			return nil, "", fmt.Errorf("%w: %w", ErrGoogleTokenInvalid, err)
		}
		claim = &VerifiedClaim{
			Subject: googleClaims.Subject,
			Email:   googleClaims.Email,
			Name:    googleClaims.Name,
			Picture: googleClaims.Picture,
		}
	}

	if claim.Email == "" {
		return nil, "", ErrMissingEmailClaim
	}
	email := NormalizeEmail(claim.Email)

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("error finding user by email: %w", err)
	}

	if user == nil {
		var picture *string
		if claim.Picture != "" {
			picture = &claim.Picture
		}
		user = model.NewGoogleUser(email, claim.Name, claim.Subject, picture)
		if err := s.userRepo.Create(ctx, user); err != nil {
			if errors.Is(err, repository.ErrDuplicateEmail) {
				// Lost a race with a concurrent first login; reuse the winner
				user, err = s.userRepo.FindByEmail(ctx, email)
				if err != nil || user == nil {
					return nil, "", fmt.Errorf("failed to load user after duplicate create: %w", err)
				}
			} else {
				return nil, "", fmt.Errorf("failed to create federated user: %w", err)
			}
		} else {
			s.log.Info().Str("user_id", user.ID.String()).Msg("created federated user")
		}
	}

	token, err := s.jwtUtil.GenerateTokenWithTTL(user.ID, user.Role, federatedTokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}
