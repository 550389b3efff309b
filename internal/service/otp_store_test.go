package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/pitchdrop/auth-core/internal/repository/postgres"
	"github.com/pitchdrop/auth-core/internal/service"
	"github.com/pitchdrop/auth-core/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCode(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := service.GenerateCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		for _, c := range code {
			require.True(t, c >= '0' && c <= '9', "non-digit %q in code %q", c, code)
		}
	}
}

func TestOneTimePasscodeStore_FullCycle(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	store := service.NewOneTimePasscodeStore(repos.OTP)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().WithMobileNumber("+14155550100").Build(t, testDB.DB)

	code, err := store.Issue(ctx, user.ID, 5*time.Minute)
	require.NoError(t, err)
	require.Len(t, code, 6)

	result, err := store.Validate(ctx, user.ID, code)
	require.NoError(t, err)
	require.True(t, result.Valid)

	require.NoError(t, store.Invalidate(ctx, result.OTPID))

	// Consumed codes are indistinguishable from wrong ones.
	result, err = store.Validate(ctx, user.ID, code)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, service.OTPReasonInvalid, result.Reason)

	// Invalidate is idempotent.
	require.NoError(t, store.Invalidate(ctx, result.OTPID))
}

func TestOneTimePasscodeStore_SingleActivePerUser(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	store := service.NewOneTimePasscodeStore(repos.OTP)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().WithMobileNumber("+14155550101").Build(t, testDB.DB)

	first, err := store.Issue(ctx, user.ID, 5*time.Minute)
	require.NoError(t, err)

	second, err := store.Issue(ctx, user.ID, 5*time.Minute)
	require.NoError(t, err)
	for second == first {
		second, err = store.Issue(ctx, user.ID, 5*time.Minute)
		require.NoError(t, err)
	}

	// The superseded code no longer validates.
	result, err := store.Validate(ctx, user.ID, first)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, service.OTPReasonInvalid, result.Reason)

	result, err = store.Validate(ctx, user.ID, second)
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestOneTimePasscodeStore_Validate(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	store := service.NewOneTimePasscodeStore(repos.OTP)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().WithMobileNumber("+14155550102").Build(t, testDB.DB)

	t.Run("expired code reports expiry, not invalidity", func(t *testing.T) {
		testutil.CreateOTP(t, testDB.DB, user.ID, "123456", time.Now().Add(-time.Minute), false)

		result, err := store.Validate(ctx, user.ID, "123456")
		require.NoError(t, err)
		assert.False(t, result.Valid)
		assert.Equal(t, service.OTPReasonExpired, result.Reason)
	})

	t.Run("codes compare as zero-padded strings", func(t *testing.T) {
		testDB.Truncate(t)
		user, _ = testutil.NewUserBuilder().WithMobileNumber("+14155550103").Build(t, testDB.DB)
		testutil.CreateOTP(t, testDB.DB, user.ID, "000001", time.Now().Add(5*time.Minute), false)

		result, err := store.Validate(ctx, user.ID, "1")
		require.NoError(t, err)
		assert.False(t, result.Valid)
		assert.Equal(t, service.OTPReasonInvalid, result.Reason)

		result, err = store.Validate(ctx, user.ID, "000001")
		require.NoError(t, err)
		assert.True(t, result.Valid)
	})

	t.Run("unknown code is invalid", func(t *testing.T) {
		result, err := store.Validate(ctx, user.ID, "999999")
		require.NoError(t, err)
		assert.False(t, result.Valid)
		assert.Equal(t, service.OTPReasonInvalid, result.Reason)
	})
}
