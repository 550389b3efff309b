package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/pitchdrop/auth-core/internal/domain"
	"github.com/pitchdrop/auth-core/internal/repository"
)

// IdentityRegistry creates user identities. Uniqueness is enforced by
// the storage constraint alone — there is no lookup before the insert,
// so concurrent registrations of the same identity cannot race past
// each other.
type IdentityRegistry struct {
	users  repository.UserRepository
	hasher *PasswordHasher
}

func NewIdentityRegistry(users repository.UserRepository, hasher *PasswordHasher) *IdentityRegistry {
	return &IdentityRegistry{users: users, hasher: hasher}
}

func (r *IdentityRegistry) RegisterWithCredentials(ctx context.Context, username, password string) (*domain.User, error) {
	if !domain.ValidUsername(username) {
		return nil, domain.NewAuthError("Invalid username", domain.CodeValidationError, http.StatusBadRequest)
	}

	hash, err := r.hasher.Hash(password)
	if err != nil {
		slog.ErrorContext(ctx, "password hashing failed", "error", err)
		return nil, domain.NewAuthError("Failed to hash password", domain.CodeHashingError, http.StatusInternalServerError)
	}

	user := domain.NewUser(domain.Credentials{Username: username, PasswordHash: hash})
	return r.insert(ctx, user, "Username")
}

func (r *IdentityRegistry) RegisterWithMobile(ctx context.Context, mobileNumber string) (*domain.User, error) {
	if !domain.ValidMobileNumber(mobileNumber) {
		return nil, domain.NewAuthError("Invalid mobile number", domain.CodeValidationError, http.StatusBadRequest)
	}

	user := domain.NewUser(domain.Mobile{Number: mobileNumber})
	return r.insert(ctx, user, "Mobile number")
}

func (r *IdentityRegistry) insert(ctx context.Context, user *domain.User, field string) (*domain.User, error) {
	if err := r.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, domain.NewDuplicateError(field)
		}
		slog.ErrorContext(ctx, "user registration failed", "error", err)
		return nil, domain.NewAuthError("Failed to register user", domain.CodeRegistrationFailed, http.StatusInternalServerError)
	}
	return user, nil
}
