package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"chronotask/internal/auth"
	"chronotask/internal/config"
	apperrors "chronotask/internal/errors"
	"chronotask/internal/mail"
	"chronotask/internal/model"
	"chronotask/internal/repository"
)

// AuthService orchestrates the account lifecycle: signup, email confirmation,
// login and password recovery.
type AuthService interface {
	// Signup creates an unconfirmed account and mails a confirmation link.
	// No session is issued until the email is confirmed.
	Signup(ctx context.Context, name, email, password string) (*model.User, error)
	// ConfirmEmail redeems a confirmation token and returns a fresh session.
	ConfirmEmail(ctx context.Context, token string) (string, *model.User, error)
	// Login authenticates and returns a multi-day session token.
	Login(ctx context.Context, email, password string) (string, *model.User, error)
	// ForgotPassword issues a reset token and mails it. On delivery failure
	// the stored token is cleared so no unusable token stays valid.
	ForgotPassword(ctx context.Context, email string) error
	// ResetPassword redeems a reset token, sets the new password and returns
	// a short-lived session.
	ResetPassword(ctx context.Context, token, password string) (string, *model.User, error)
}

type authService struct {
	users  repository.UserRepository
	jwt    *auth.JWTService
	mailer mail.Mailer
	cfg    *config.Config
}

// NewAuthService creates the account lifecycle service.
func NewAuthService(users repository.UserRepository, jwtService *auth.JWTService, mailer mail.Mailer, cfg *config.Config) AuthService {
	return &authService{
		users:  users,
		jwt:    jwtService,
		mailer: mailer,
		cfg:    cfg,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) Signup(ctx context.Context, name, email, password string) (*model.User, error) {
	email = normalizeEmail(email)

	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrUserAlreadyExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	user := &model.User{
		Name:  name,
		Email: email,
		Photo: "default.jpg",
	}
	if err := s.users.Create(ctx, user, password); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	token, err := s.jwt.GenerateConfirmationToken(email, s.cfg.ConfirmTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("generate confirmation token: %w", err)
	}

	url := s.cfg.AppBaseURL + "/confirmEmail/" + token
	if err := s.mailer.SendConfirmation(user, url); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrEmailDelivery, err)
	}

	return user, nil
}

func (s *authService) ConfirmEmail(ctx context.Context, token string) (string, *model.User, error) {
	email, err := s.jwt.ValidateConfirmationToken(token)
	if err != nil {
		return "", nil, err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, apperrors.ErrInvalidToken
	}

	// Idempotent: confirming an already confirmed account just re-issues a session.
	if !user.Confirmed {
		if err := s.users.MarkConfirmed(ctx, user.ID); err != nil {
			return "", nil, fmt.Errorf("confirm user: %w", err)
		}
		user.Confirmed = true
	}

	session, err := s.jwt.GenerateSessionToken(user.ID, s.cfg.SessionTTL)
	if err != nil {
		return "", nil, fmt.Errorf("generate session token: %w", err)
	}
	return session, user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	if email == "" || password == "" {
		return "", nil, apperrors.ErrMissingCredentials
	}

	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		// Same error as a wrong password, to avoid account enumeration.
		return "", nil, apperrors.ErrInvalidCredentials
	}

	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	if !user.Confirmed {
		return "", nil, apperrors.ErrNotConfirmed
	}

	session, err := s.jwt.GenerateSessionToken(user.ID, s.cfg.SessionTTL)
	if err != nil {
		return "", nil, fmt.Errorf("generate session token: %w", err)
	}
	return session, user, nil
}

func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return apperrors.ErrUserNotFound
	}

	if !user.Confirmed {
		return apperrors.ErrNotConfirmed
	}

	plaintext, digest, expires, err := auth.NewResetToken()
	if err != nil {
		return err
	}

	if err := s.users.SetResetToken(ctx, user.ID, digest, expires); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	url := s.cfg.AppBaseURL + "/resetPassword/" + plaintext
	if err := s.mailer.SendPasswordReset(user, url); err != nil {
		// The user never received the token; leave nothing redeemable behind.
		_ = s.users.ClearResetToken(ctx, user.ID)
		return fmt.Errorf("%w: %v", apperrors.ErrEmailDelivery, err)
	}

	return nil
}

func (s *authService) ResetPassword(ctx context.Context, token, password string) (string, *model.User, error) {
	digest := auth.HashResetToken(token)

	user, err := s.users.FindByResetTokenDigest(ctx, digest, time.Now())
	if err != nil {
		return "", nil, apperrors.ErrInvalidResetToken
	}

	// Single write: new hash, password_changed_at stamp, reset fields cleared.
	if err := s.users.ResetPassword(ctx, user.ID, password, time.Now()); err != nil {
		return "", nil, fmt.Errorf("reset password: %w", err)
	}

	// Short session: the credential just changed, so keep the window tight.
	session, err := s.jwt.GenerateSessionToken(user.ID, auth.ResetSessionTTL)
	if err != nil {
		return "", nil, fmt.Errorf("generate session token: %w", err)
	}
	return session, user, nil
}
