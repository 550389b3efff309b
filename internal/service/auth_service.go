package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pitchdrop/auth-core/internal/domain"
	"github.com/pitchdrop/auth-core/internal/repository"
	"gorm.io/gorm"
)

// SMSSender delivers one-time passcodes out of band. Implementations
// live outside this core; any returned error aborts the request-OTP
// flow without rolling back the issued code.
type SMSSender interface {
	SendOTP(ctx context.Context, mobileNumber, code string) error
}

// RateLimiter guards the two credential-guessing surfaces. A nil
// limiter disables the check, for callers that rate-limit externally.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// AuthService orchestrates the user-facing authentication flows and
// owns the error-hiding policy: unknown identities and wrong
// credentials are indistinguishable to callers.
type AuthService struct {
	users    repository.UserRepository
	registry *IdentityRegistry
	hasher   *PasswordHasher
	otps     *OneTimePasscodeStore
	sessions *SessionStore
	sms      SMSSender
	limiter  RateLimiter
	otpTTL   time.Duration
}

func NewAuthService(
	users repository.UserRepository,
	registry *IdentityRegistry,
	hasher *PasswordHasher,
	otps *OneTimePasscodeStore,
	sessions *SessionStore,
	sms SMSSender,
	limiter RateLimiter,
	otpTTL time.Duration,
) *AuthService {
	return &AuthService{
		users:    users,
		registry: registry,
		hasher:   hasher,
		otps:     otps,
		sessions: sessions,
		sms:      sms,
		limiter:  limiter,
		otpTTL:   otpTTL,
	}
}

func (s *AuthService) RegisterWithCredentials(ctx context.Context, username, password string) (*domain.User, error) {
	return s.registry.RegisterWithCredentials(ctx, username, password)
}

func (s *AuthService) RegisterWithMobile(ctx context.Context, mobileNumber string) (*domain.User, error) {
	return s.registry.RegisterWithMobile(ctx, mobileNumber)
}

// RequestOTP issues a passcode for the mobile identity and hands it to
// the SMS collaborator. An unknown number fails exactly like any other
// credential failure. If delivery fails the code stays issued; a retry
// supersedes it.
func (s *AuthService) RequestOTP(ctx context.Context, mobileNumber string) error {
	if err := s.checkLimit(ctx, "otp:"+mobileNumber); err != nil {
		return err
	}

	user, err := s.lookupByMobile(ctx, mobileNumber)
	if err != nil {
		return err
	}

	code, err := s.otps.Issue(ctx, user.ID, s.otpTTL)
	if err != nil {
		slog.ErrorContext(ctx, "otp issue failed", "error", err)
		return domain.NewAuthError("Failed to send OTP", domain.CodeOTPSendFailed, http.StatusInternalServerError)
	}

	if err := s.sms.SendOTP(ctx, mobileNumber, code); err != nil {
		slog.ErrorContext(ctx, "otp delivery failed", "error", err)
		return domain.NewAuthError("Failed to send OTP", domain.CodeOTPSendFailed, http.StatusInternalServerError)
	}
	return nil
}

// VerifyOTP consumes a passcode and mints a session. Expired codes are
// reported as such so the caller can suggest a resend; every other
// failure is the invalid-code error.
func (s *AuthService) VerifyOTP(ctx context.Context, mobileNumber, code string) (*domain.Session, error) {
	user, err := s.lookupByMobile(ctx, mobileNumber)
	if err != nil {
		return nil, err
	}

	result, err := s.otps.Validate(ctx, user.ID, code)
	if err != nil {
		slog.ErrorContext(ctx, "otp validation failed", "error", err)
		return nil, domain.ErrAuthenticationFailed()
	}
	if !result.Valid {
		if strings.Contains(result.Reason, "expired") {
			return nil, domain.NewAuthError("OTP has expired", domain.CodeOTPExpired, http.StatusUnauthorized)
		}
		return nil, domain.NewAuthError("Invalid OTP", domain.CodeOTPInvalid, http.StatusUnauthorized)
	}

	// Single use: consume before handing out a session.
	if err := s.otps.Invalidate(ctx, result.OTPID); err != nil {
		slog.ErrorContext(ctx, "otp invalidation failed", "error", err)
		return nil, domain.ErrAuthenticationFailed()
	}

	return s.createSession(ctx, user.ID)
}

// LoginWithCredentials authenticates a username/password identity.
// Unknown username, mobile-only identity, and wrong password return
// byte-for-byte identical errors.
func (s *AuthService) LoginWithCredentials(ctx context.Context, username, password string) (*domain.Session, error) {
	if err := s.checkLimit(ctx, "login:"+username); err != nil {
		return nil, err
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			slog.ErrorContext(ctx, "user lookup failed", "error", err)
		}
		return nil, domain.ErrAuthenticationFailed()
	}
	if user.PasswordHash == nil {
		return nil, domain.ErrAuthenticationFailed()
	}

	ok, err := s.hasher.Verify(password, *user.PasswordHash)
	if err != nil {
		slog.ErrorContext(ctx, "password verification failed", "error", err, "user_id", user.ID)
		return nil, domain.ErrAuthenticationFailed()
	}
	if !ok {
		return nil, domain.ErrAuthenticationFailed()
	}

	return s.createSession(ctx, user.ID)
}

// Logout revokes a single session; unknown tokens are a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) (bool, error) {
	return s.sessions.Invalidate(ctx, token)
}

// LogoutEverywhere revokes every session the user holds.
func (s *AuthService) LogoutEverywhere(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.sessions.InvalidateAllForUser(ctx, userID)
}

func (s *AuthService) lookupByMobile(ctx context.Context, mobileNumber string) (*domain.User, error) {
	user, err := s.users.GetByMobileNumber(ctx, mobileNumber)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			slog.ErrorContext(ctx, "user lookup failed", "error", err)
		}
		return nil, domain.ErrAuthenticationFailed()
	}
	return user, nil
}

func (s *AuthService) createSession(ctx context.Context, userID uuid.UUID) (*domain.Session, error) {
	session, err := s.sessions.Create(ctx, userID)
	if err != nil {
		slog.ErrorContext(ctx, "session creation failed", "error", err, "user_id", userID)
		return nil, domain.ErrAuthenticationFailed()
	}
	return session, nil
}

func (s *AuthService) checkLimit(ctx context.Context, key string) error {
	if s.limiter == nil {
		return nil
	}
	allowed, err := s.limiter.Allow(ctx, key)
	if err != nil {
		// Fail open: a broken limiter must not lock everyone out.
		slog.ErrorContext(ctx, "rate limiter failure", "error", err)
		return nil
	}
	if !allowed {
		return domain.NewAuthError("Too many attempts", domain.CodeRateLimited, http.StatusTooManyRequests)
	}
	return nil
}
