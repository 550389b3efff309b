package service

import (
	"github.com/pitchdrop/auth-core/internal/config"
	"github.com/pitchdrop/auth-core/internal/repository"
)

type Services struct {
	Hasher   *PasswordHasher
	OTPs     *OneTimePasscodeStore
	Sessions *SessionStore
	Registry *IdentityRegistry
	Auth     *AuthService
}

func NewServices(repos *repository.Repositories, cfg *config.Config, sms SMSSender, limiter RateLimiter) *Services {
	hasher := NewPasswordHasher(cfg.BcryptCost)
	otps := NewOneTimePasscodeStore(repos.OTP)
	sessions := NewSessionStore(repos.Session, cfg.SessionTTL)
	registry := NewIdentityRegistry(repos.User, hasher)

	return &Services{
		Hasher:   hasher,
		OTPs:     otps,
		Sessions: sessions,
		Registry: registry,
		Auth:     NewAuthService(repos.User, registry, hasher, otps, sessions, sms, limiter, cfg.OTPTTL),
	}
}
