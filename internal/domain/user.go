package domain

import (
	"regexp"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Username     *string   `json:"username,omitempty" gorm:"uniqueIndex"`
	PasswordHash *string   `json:"-"`
	MobileNumber *string   `json:"mobileNumber,omitempty" gorm:"uniqueIndex"`
	Email        string    `json:"email,omitempty"`
	Name         string    `json:"name,omitempty"`
	IsAdmin      bool      `json:"isAdmin" gorm:"not null;default:false"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Identity is the proof method a user registers with. Exactly one
// variant is projected onto the row by NewUser, so a user holding both
// credentials and a mobile number cannot be constructed.
type Identity interface {
	apply(u *User)
}

type Credentials struct {
	Username     string
	PasswordHash string
}

type Mobile struct {
	Number string
}

func (c Credentials) apply(u *User) {
	u.Username = &c.Username
	u.PasswordHash = &c.PasswordHash
}

func (m Mobile) apply(u *User) {
	u.MobileNumber = &m.Number
}

// NewUser builds a user row from an identity proof.
func NewUser(identity Identity) *User {
	now := time.Now()
	user := &User{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	identity.apply(user)
	return user
}

var (
	usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]{3,30}$`)
	mobileRe   = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)
)

// ValidUsername reports whether s is 3-30 alphanumeric or underscore
// characters.
func ValidUsername(s string) bool {
	return usernameRe.MatchString(s)
}

// ValidMobileNumber reports whether s is an E.164 number, e.g.
// "+14155552671".
func ValidMobileNumber(s string) bool {
	return mobileRe.MatchString(s)
}
