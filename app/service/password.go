package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskforge/taskforge/app/entity"
	"github.com/taskforge/taskforge/config"
)

type sessionIssuer interface {
	IssueSession(user *entity.User) (*SessionResult, error)
}

type PasswordService interface {
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, password, confirmPassword string) (*SessionResult, error)
	UpdatePassword(ctx context.Context, userID uint64, oldPassword, newPassword, confirmPassword string) (*SessionResult, error)
}

type passwordService struct {
	userRepo userRepository
	notifier Notifier
	sessions sessionIssuer
	cfg      *config.Config
}

func NewPasswordService(userRepo userRepository, notifier Notifier, sessions sessionIssuer, cfg *config.Config) PasswordService {
	return &passwordService{
		userRepo: userRepo,
		notifier: notifier,
		sessions: sessions,
		cfg:      cfg,
	}
}

func (s *passwordService) ForgotPassword(ctx context.Context, email string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrUserNotFound
	}

	token, err := generateResetToken()
	if err != nil {
		return "", err
	}

	now := time.Now()
	user.ResetPasswordToken = sql.NullString{String: token, Valid: true}
	user.ResetPasswordExpiresAt = sql.NullTime{Time: now.Add(resetTokenTTL), Valid: true}

	if err = s.userRepo.Update(ctx, user); err != nil {
		return "", err
	}

	resetURL := fmt.Sprintf("%s/password/reset/%s", s.cfg.FrontendURL, token)

	if err = s.notifier.SendPasswordResetEmail(ctx, user.Email, resetURL); err != nil {
		// The user must never hold a token that was never delivered, so the
		// pair is cleared before the failure surfaces.
		user.ResetPasswordToken = sql.NullString{}
		user.ResetPasswordExpiresAt = sql.NullTime{}
		if clearErr := s.userRepo.Update(ctx, user); clearErr != nil {
			logrus.WithError(clearErr).WithField("user_id", user.ID).Error("Failed to clear undelivered reset token")
		}
		return "", fmt.Errorf("%w: %s", ErrDeliveryFailure, err.Error())
	}

	return fmt.Sprintf("Email sent to %s successfully", user.Email), nil
}

func (s *passwordService) ResetPassword(ctx context.Context, token, password, confirmPassword string) (*SessionResult, error) {
	user, err := s.userRepo.FindByResetToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidResetToken
	}

	if !user.ResetPasswordExpiresAt.Valid || !user.ResetPasswordExpiresAt.Time.After(time.Now()) {
		return nil, ErrInvalidResetToken
	}

	if password != confirmPassword {
		return nil, ErrPasswordConfirmMismatch
	}

	if err = s.cfg.PasswordPolicy.Validate(password); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrWeakPassword, err.Error())
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = string(hashedPassword)
	user.ResetPasswordToken = sql.NullString{}
	user.ResetPasswordExpiresAt = sql.NullTime{}

	if err = s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	logrus.WithField("user_id", user.ID).Info("Password reset")
	return s.sessions.IssueSession(user)
}

func (s *passwordService) UpdatePassword(ctx context.Context, userID uint64, oldPassword, newPassword, confirmPassword string) (*SessionResult, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return nil, ErrPasswordMismatch
	}

	if newPassword != confirmPassword {
		return nil, ErrPasswordConfirmMismatch
	}

	if err = s.cfg.PasswordPolicy.Validate(newPassword); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrWeakPassword, err.Error())
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = string(hashedPassword)
	if err = s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return s.sessions.IssueSession(user)
}

// generateResetToken returns 20 cryptographically random bytes as a
// 40-character hex string.
func generateResetToken() (string, error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
