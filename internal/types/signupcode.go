package types

import (
	"time"

	"github.com/google/uuid"
)

// AccountRequest is a pending registration: the emailed verification code a
// visitor must echo back before a User row is created. One per email,
// replaced wholesale on re-request.
type AccountRequest struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email            string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	VerificationCode string    `gorm:"not null;column:verification_code" json:"-"`
	CreatedAt        time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time `gorm:"not null" json:"updated_at"`
}

func (AccountRequest) TableName() string {
	return "account_request"
}
