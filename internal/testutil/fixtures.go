package testutil

import (
	"encoding/base64"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pitchdrop/auth-core/internal/domain"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern. By default it
// builds a credential identity; WithMobileNumber switches it to a
// mobile identity.
type UserBuilder struct {
	username     string
	password     string
	mobileNumber string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		username: fmt.Sprintf("testuser_%s", uuid.New().String()[:8]),
		password: "testpassword123",
	}
}

// WithUsername sets the username
func (b *UserBuilder) WithUsername(name string) *UserBuilder {
	b.username = name
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// WithMobileNumber makes this a mobile identity instead of a
// credential one
func (b *UserBuilder) WithMobileNumber(number string) *UserBuilder {
	b.mobileNumber = number
	return b
}

// Build creates the user in the database and returns the user with the
// raw password (empty for mobile identities)
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	var user *domain.User
	if b.mobileNumber != "" {
		user = domain.NewUser(domain.Mobile{Number: b.mobileNumber})
	} else {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.MinCost)
		if err != nil {
			t.Fatalf("failed to hash password: %v", err)
		}
		user = domain.NewUser(domain.Credentials{
			Username:     b.username,
			PasswordHash: string(hashedPassword),
		})
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	if b.mobileNumber != "" {
		return user, ""
	}
	return user, b.password
}

// CreateOTP inserts a passcode row directly, bypassing the store, for
// shaping expiry and used flags in tests.
func CreateOTP(t *testing.T, db *gorm.DB, userID uuid.UUID, code string, expiresAt time.Time, used bool) *domain.OneTimePasscode {
	t.Helper()

	otp := &domain.OneTimePasscode{
		ID:        uuid.New(),
		UserID:    userID,
		Code:      code,
		ExpiresAt: expiresAt,
		IsUsed:    used,
		CreatedAt: time.Now(),
	}
	if err := db.Create(otp).Error; err != nil {
		t.Fatalf("failed to create otp: %v", err)
	}
	return otp
}

// CreateSession inserts a session row directly with a unique token.
func CreateSession(t *testing.T, db *gorm.DB, userID uuid.UUID, expiresAt time.Time) *domain.Session {
	t.Helper()

	session := &domain.Session{
		ID:        uuid.New(),
		UserID:    userID,
		Token:     base64.RawURLEncoding.EncodeToString([]byte(uuid.New().String())),
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	if err := db.Create(session).Error; err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	return session
}
