package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pitchdrop/auth-core/internal/domain"
	"github.com/pitchdrop/auth-core/internal/repository/postgres"
	"github.com/pitchdrop/auth-core/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newOTP(userID uuid.UUID, code string, expiresAt time.Time) *domain.OneTimePasscode {
	now := time.Now()
	return &domain.OneTimePasscode{
		ID:        uuid.New(),
		UserID:    userID,
		Code:      code,
		ExpiresAt: expiresAt,
		CreatedAt: now,
	}
}

func TestOTPRepository_CreateSuperseding(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewOTPRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().WithMobileNumber("+15550010000").Build(t, testDB.DB)
	other, _ := testutil.NewUserBuilder().WithMobileNumber("+15550010001").Build(t, testDB.DB)

	active := testutil.CreateOTP(t, testDB.DB, user.ID, "111111", time.Now().Add(5*time.Minute), false)
	expired := testutil.CreateOTP(t, testDB.DB, user.ID, "222222", time.Now().Add(-5*time.Minute), false)
	otherActive := testutil.CreateOTP(t, testDB.DB, other.ID, "333333", time.Now().Add(5*time.Minute), false)

	require.NoError(t, repo.CreateSuperseding(ctx, newOTP(user.ID, "444444", time.Now().Add(5*time.Minute))))

	var reloaded domain.OneTimePasscode
	require.NoError(t, testDB.DB.First(&reloaded, "id = ?", active.ID).Error)
	assert.True(t, reloaded.IsUsed, "active code should be superseded")

	// Already-expired rows are left alone; they cannot validate anyway.
	require.NoError(t, testDB.DB.First(&reloaded, "id = ?", expired.ID).Error)
	assert.False(t, reloaded.IsUsed)

	// Other users' codes are untouched.
	require.NoError(t, testDB.DB.First(&reloaded, "id = ?", otherActive.ID).Error)
	assert.False(t, reloaded.IsUsed)
}

func TestOTPRepository_GetLatestByUserAndCode(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewOTPRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().WithMobileNumber("+15550010002").Build(t, testDB.DB)

	older := &domain.OneTimePasscode{
		ID:        uuid.New(),
		UserID:    user.ID,
		Code:      "555555",
		ExpiresAt: time.Now().Add(5 * time.Minute),
		CreatedAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, testDB.DB.Create(older).Error)
	newer := testutil.CreateOTP(t, testDB.DB, user.ID, "555555", time.Now().Add(5*time.Minute), false)

	got, err := repo.GetLatestByUserAndCode(ctx, user.ID, "555555")
	require.NoError(t, err)
	assert.Equal(t, newer.ID, got.ID)

	// Used rows never match.
	require.NoError(t, repo.MarkUsed(ctx, newer.ID))
	got, err = repo.GetLatestByUserAndCode(ctx, user.ID, "555555")
	require.NoError(t, err)
	assert.Equal(t, older.ID, got.ID)

	require.NoError(t, repo.MarkUsed(ctx, older.ID))
	_, err = repo.GetLatestByUserAndCode(ctx, user.ID, "555555")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
