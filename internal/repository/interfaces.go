package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pitchdrop/auth-core/internal/domain"
)

// ErrDuplicateKey is returned by Create when a unique constraint
// rejected the row. Callers decide which identity field it names.
var ErrDuplicateKey = errors.New("duplicate key")

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByMobileNumber(ctx context.Context, number string) (*domain.User, error)
}

type OTPRepository interface {
	// CreateSuperseding marks every unused, unexpired passcode owned by
	// otp.UserID as used and inserts otp, as a single transaction.
	CreateSuperseding(ctx context.Context, otp *domain.OneTimePasscode) error
	// GetLatestByUserAndCode returns the most recently created unused
	// passcode matching (userID, code), expired or not.
	GetLatestByUserAndCode(ctx context.Context, userID uuid.UUID, code string) (*domain.OneTimePasscode, error)
	MarkUsed(ctx context.Context, id uuid.UUID) error
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	// GetByToken returns the session with its owning user preloaded.
	GetByToken(ctx context.Context, token string) (*domain.Session, error)
	DeleteByToken(ctx context.Context, token string) (int64, error)
	DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type Repositories struct {
	User    UserRepository
	OTP     OTPRepository
	Session SessionRepository
}
