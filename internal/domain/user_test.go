package domain_test

import (
	"testing"

	"github.com/pitchdrop/auth-core/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		want     bool
	}{
		{name: "simple", username: "alice", want: true},
		{name: "with underscore and digits", username: "alice_42", want: true},
		{name: "minimum length", username: "abc", want: true},
		{name: "too short", username: "ab", want: false},
		{name: "too long", username: "a123456789012345678901234567890", want: false},
		{name: "spaces", username: "alice smith", want: false},
		{name: "punctuation", username: "alice!", want: false},
		{name: "empty", username: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ValidUsername(tt.username))
		})
	}
}

func TestValidMobileNumber(t *testing.T) {
	tests := []struct {
		name   string
		number string
		want   bool
	}{
		{name: "us number", number: "+14155552671", want: true},
		{name: "short country", number: "+4915112345678", want: true},
		{name: "missing plus", number: "14155552671", want: false},
		{name: "leading zero", number: "+04155552671", want: false},
		{name: "letters", number: "+1415555abcd", want: false},
		{name: "too long", number: "+1234567890123456", want: false},
		{name: "empty", number: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ValidMobileNumber(tt.number))
		})
	}
}

func TestNewUser_IdentityProjection(t *testing.T) {
	t.Run("credentials identity", func(t *testing.T) {
		user := domain.NewUser(domain.Credentials{Username: "alice", PasswordHash: "hashed"})

		require.NotNil(t, user.Username)
		require.NotNil(t, user.PasswordHash)
		assert.Equal(t, "alice", *user.Username)
		assert.Equal(t, "hashed", *user.PasswordHash)
		assert.Nil(t, user.MobileNumber)
		assert.False(t, user.CreatedAt.IsZero())
	})

	t.Run("mobile identity", func(t *testing.T) {
		user := domain.NewUser(domain.Mobile{Number: "+14155552671"})

		require.NotNil(t, user.MobileNumber)
		assert.Equal(t, "+14155552671", *user.MobileNumber)
		assert.Nil(t, user.Username)
		assert.Nil(t, user.PasswordHash)
	})
}
