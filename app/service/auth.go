package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskforge/taskforge/app/entity"
	"github.com/taskforge/taskforge/app/repository"
	"github.com/taskforge/taskforge/config"
)

var (
	ErrContactTaken            = errors.New("phone or email is already registered")
	ErrInvalidCredentials      = errors.New("invalid email or password")
	ErrAccountNotVerified      = errors.New("account not verified")
	ErrInvalidOrExpiredOTP     = errors.New("invalid or expired otp")
	ErrInvalidResetToken       = errors.New("reset password token is invalid or has expired")
	ErrUserNotFound            = errors.New("user not found")
	ErrPasswordMismatch        = errors.New("old password is incorrect")
	ErrPasswordConfirmMismatch = errors.New("password does not match")
	ErrWeakPassword            = errors.New("password does not meet policy requirements")
	ErrDeliveryFailure         = errors.New("failed to send verification code")
	ErrInvalidToken            = errors.New("invalid token")
	ErrTokenExpired            = errors.New("token has expired")
)

const (
	verificationCodeTTL = 5 * time.Minute
	resetTokenTTL       = time.Hour
)

// Method is the channel a verification code is delivered through.
type Method string

const (
	MethodEmail Method = "email"
	MethodSMS   Method = "sms"
	MethodPhone Method = "phone"
)

// ParseMethod rejects anything outside the closed set of delivery channels.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodEmail, MethodSMS, MethodPhone:
		return Method(s), nil
	default:
		return "", fmt.Errorf("invalid verification method %q", s)
	}
}

type Claims struct {
	UserID uint64 `json:"user_id"`
	jwt.RegisteredClaims
}

type userRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindVerifiedByContact(ctx context.Context, email, phoneNumber string) (*entity.User, error)
	FindUnverifiedByContact(ctx context.Context, email, phoneNumber string) (*entity.User, error)
	FindUnverifiedByCode(ctx context.Context, email, phoneNumber string, code int64, now time.Time) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByID(ctx context.Context, id uint64) (*entity.User, error)
	FindByResetToken(ctx context.Context, token string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
}

// Notifier delivers codes and reset links through an external channel. It is
// a boundary collaborator; failures are surfaced to the caller without retry.
type Notifier interface {
	SendVerificationCode(ctx context.Context, method Method, user *entity.User, code int64) error
	SendPasswordResetEmail(ctx context.Context, email, resetURL string) error
}

type RegisterInput struct {
	Name        string
	Email       string
	Password    string
	PhoneNumber string
	Method      Method
}

// SessionResult is a freshly minted bearer credential plus the record it is
// bound to. The token is handed to the client both as an HTTP-only cookie
// and in the response body.
type SessionResult struct {
	Token           string
	User            *entity.User
	CookieExpiresAt time.Time
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (string, error)
	VerifyOTP(ctx context.Context, email, phoneNumber string, code int64) (*SessionResult, error)
	Login(ctx context.Context, email, password string) (*SessionResult, error)
	IssueSession(user *entity.User) (*SessionResult, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
}

type authService struct {
	userRepo userRepository
	notifier Notifier
	cfg      *config.Config
}

func NewAuthService(userRepo userRepository, notifier Notifier, cfg *config.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		notifier: notifier,
		cfg:      cfg,
	}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (string, error) {
	if err := s.cfg.PasswordPolicy.Validate(in.Password); err != nil {
		return "", fmt.Errorf("%w: %s", ErrWeakPassword, err.Error())
	}

	existing, err := s.userRepo.FindVerifiedByContact(ctx, in.Email, in.PhoneNumber)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", ErrContactTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	code, err := generateVerificationCode()
	if err != nil {
		return "", err
	}

	now := time.Now()

	// A pending registration for the same contact is overwritten in place so
	// that repeated signup attempts never pile up duplicate records.
	user, err := s.userRepo.FindUnverifiedByContact(ctx, in.Email, in.PhoneNumber)
	if err != nil {
		return "", err
	}

	if user != nil {
		user.Name = in.Name
		user.Email = in.Email
		user.PhoneNumber = in.PhoneNumber
		user.PasswordHash = string(hashedPassword)
		setVerificationCode(user, code, now)

		if err = s.userRepo.Update(ctx, user); err != nil {
			return "", err
		}
	} else {
		user = &entity.User{
			Name:         in.Name,
			Email:        in.Email,
			PhoneNumber:  in.PhoneNumber,
			PasswordHash: string(hashedPassword),
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		setVerificationCode(user, code, now)

		if err = s.userRepo.Create(ctx, user); err != nil {
			return "", err
		}
	}

	logrus.WithFields(logrus.Fields{
		"user_id": user.ID,
		"method":  in.Method,
	}).Info("Verification code issued")

	if err = s.notifier.SendVerificationCode(ctx, in.Method, user, code); err != nil {
		return "", fmt.Errorf("%w: %s", ErrDeliveryFailure, err.Error())
	}

	switch in.Method {
	case MethodSMS:
		return "OTP sent successfully", nil
	case MethodPhone:
		return "Verification code sent successfully", nil
	default:
		return fmt.Sprintf("Verification code sent successfully %s", in.Name), nil
	}
}

func (s *authService) VerifyOTP(ctx context.Context, email, phoneNumber string, code int64) (*SessionResult, error) {
	// Single lookup covers contact, code and strict expiry, so the caller
	// cannot tell a wrong code from an expired one.
	user, err := s.userRepo.FindUnverifiedByCode(ctx, email, phoneNumber, code, time.Now())
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidOrExpiredOTP
	}

	user.AccountVerified = true
	user.VerificationCode = sql.NullInt64{}
	user.VerificationCodeExpiresAt = sql.NullTime{}

	if err = s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			// Lost the race against a concurrent verification of the same
			// contact; the uniqueness index is the final arbiter.
			return nil, ErrContactTaken
		}
		return nil, err
	}

	return s.IssueSession(user)
}

func (s *authService) Login(ctx context.Context, email, password string) (*SessionResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if !user.AccountVerified {
		return nil, ErrAccountNotVerified
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.IssueSession(user)
}

func (s *authService) IssueSession(user *entity.User) (*SessionResult, error) {
	now := time.Now()
	claims := &Claims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   user.Email,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	return &SessionResult{
		Token:           signed,
		User:            user,
		CookieExpiresAt: now.Add(s.cfg.CookieTTL),
	}, nil
}

func (s *authService) ValidateAccessToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func setVerificationCode(user *entity.User, code int64, now time.Time) {
	user.VerificationCode = sql.NullInt64{Int64: code, Valid: true}
	user.VerificationCodeExpiresAt = sql.NullTime{Time: now.Add(verificationCodeTTL), Valid: true}
}

// generateVerificationCode draws a uniform six-digit code whose leading digit
// is never zero, so the value is always in [100000, 999999].
func generateVerificationCode() (int64, error) {
	first, err := rand.Int(rand.Reader, big.NewInt(9))
	if err != nil {
		return 0, err
	}
	rest, err := rand.Int(rand.Reader, big.NewInt(100000))
	if err != nil {
		return 0, err
	}
	return (first.Int64()+1)*100000 + rest.Int64(), nil
}
