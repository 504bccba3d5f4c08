package types

import (
	"time"

	"github.com/google/uuid"
)

// PasswordResetRequest holds the emailed reset code for an existing account.
// One per email, replaced wholesale on re-request.
type PasswordResetRequest struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	ResetCode string    `gorm:"not null;column:reset_code" json:"-"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (PasswordResetRequest) TableName() string {
	return "password_reset_request"
}
