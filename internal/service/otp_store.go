package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/pitchdrop/auth-core/internal/domain"
	"github.com/pitchdrop/auth-core/internal/repository"
	"gorm.io/gorm"
)

// Validation reasons surfaced by OneTimePasscodeStore.Validate. An
// already-used code and a wrong code produce the same reason so a
// caller cannot probe validity history; only expiry is distinguishable.
const (
	OTPReasonInvalid = "invalid code"
	OTPReasonExpired = "expired"
)

var otpCodeSpace = big.NewInt(1000000)

// OneTimePasscodeStore manages short-lived numeric login codes.
// At most one unused, unexpired code exists per user at any instant;
// issuing a new one supersedes the rest.
type OneTimePasscodeStore struct {
	otps repository.OTPRepository
}

func NewOneTimePasscodeStore(otps repository.OTPRepository) *OneTimePasscodeStore {
	return &OneTimePasscodeStore{otps: otps}
}

// GenerateCode returns 6 ASCII digits drawn uniformly from
// [000000, 999999]. The code carries no secret material; its security
// rests on the short TTL, single use, and external rate limiting.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, otpCodeSpace)
	if err != nil {
		return "", fmt.Errorf("generate otp code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// Issue supersedes the user's active codes and stores a fresh one in a
// single transaction. The plaintext code is returned for delivery and
// never persisted anywhere else.
func (s *OneTimePasscodeStore) Issue(ctx context.Context, userID uuid.UUID, ttl time.Duration) (string, error) {
	code, err := GenerateCode()
	if err != nil {
		return "", err
	}

	now := time.Now()
	otp := &domain.OneTimePasscode{
		ID:        uuid.New(),
		UserID:    userID,
		Code:      code,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}

	if err := s.otps.CreateSuperseding(ctx, otp); err != nil {
		return "", fmt.Errorf("issue otp: %w", err)
	}
	return code, nil
}

// OTPValidation is the outcome of a Validate call. OTPID is set only
// when Valid is true.
type OTPValidation struct {
	Valid  bool
	OTPID  uuid.UUID
	Reason string
}

// Validate checks code against the user's most recent unused passcode.
// Comparison is exact string equality on the zero-padded form; "1" and
// "000001" are different codes. Validate does not consume the code —
// the caller invalidates after a successful check.
func (s *OneTimePasscodeStore) Validate(ctx context.Context, userID uuid.UUID, code string) (OTPValidation, error) {
	otp, err := s.otps.GetLatestByUserAndCode(ctx, userID, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OTPValidation{Reason: OTPReasonInvalid}, nil
		}
		return OTPValidation{}, fmt.Errorf("validate otp: %w", err)
	}

	if otp.Expired(time.Now()) {
		return OTPValidation{Reason: OTPReasonExpired}, nil
	}
	return OTPValidation{Valid: true, OTPID: otp.ID}, nil
}

// Invalidate marks the passcode used. Idempotent.
func (s *OneTimePasscodeStore) Invalidate(ctx context.Context, otpID uuid.UUID) error {
	return s.otps.MarkUsed(ctx, otpID)
}
