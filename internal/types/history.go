package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ScoreSnapshot is one recorded value-score document for a symbol. Doc keeps
// whatever shape the recorder wrote; the history extractor resolves dates and
// values from it with candidate fallthrough.
type ScoreSnapshot struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Symbol     string         `gorm:"index;column:symbol" json:"symbol"`
	Doc        datatypes.JSON `gorm:"type:jsonb;column:doc" json:"doc"`
	RecordedAt time.Time      `gorm:"index;column:recorded_at" json:"recorded_at"`
	CreatedAt  time.Time      `gorm:"not null" json:"created_at"`
}

func (ScoreSnapshot) TableName() string {
	return "stock_score_history"
}

// RatingSnapshot is one recorded AI-rating document for a symbol.
type RatingSnapshot struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Symbol     string         `gorm:"index;column:symbol" json:"symbol"`
	Doc        datatypes.JSON `gorm:"type:jsonb;column:doc" json:"doc"`
	RecordedAt time.Time      `gorm:"index;column:recorded_at" json:"recorded_at"`
	CreatedAt  time.Time      `gorm:"not null" json:"created_at"`
}

func (RatingSnapshot) TableName() string {
	return "stock_rating_history"
}
