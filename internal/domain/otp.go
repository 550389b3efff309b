package domain

import (
	"time"

	"github.com/google/uuid"
)

// OneTimePasscode is a short-lived numeric login code. Rows are never
// deleted; a code stops working when it is used, superseded, or
// expired.
type OneTimePasscode struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;not null;index"`
	Code      string    `json:"-" gorm:"size:6;not null"`
	ExpiresAt time.Time `json:"expiresAt" gorm:"not null"`
	IsUsed    bool      `json:"isUsed" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"createdAt"`
}

func (o *OneTimePasscode) Expired(now time.Time) bool {
	return !o.ExpiresAt.After(now)
}
