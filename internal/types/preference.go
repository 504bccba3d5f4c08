package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Valid preference status tags. The empty string clears the tag.
const (
	StatusNone  = ""
	StatusAvoid = "Avoid"
	StatusWatch = "Watch"
	StatusOwn   = "Own"
	StatusHold  = "Hold"
)

func ValidStatus(status string) bool {
	switch status {
	case StatusNone, StatusAvoid, StatusWatch, StatusOwn, StatusHold:
		return true
	}
	return false
}

// PreferenceComment is one user-authored note on a symbol. Comments are
// append/remove only; there is no in-place edit.
type PreferenceComment struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserStockPreference is the per-(user, symbol) status tag plus comment list.
// At most one row per pair; writes upsert.
type UserStockPreference struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"not null;uniqueIndex:idx_user_symbol" json:"user_id"`
	User      *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	Symbol    string         `gorm:"not null;uniqueIndex:idx_user_symbol;column:symbol" json:"symbol"`
	Status    string         `gorm:"not null;default:'';column:status" json:"status"`
	Comments  datatypes.JSON `gorm:"type:jsonb;column:comments" json:"comments"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
}

func (UserStockPreference) TableName() string {
	return "user_stock_preference"
}
