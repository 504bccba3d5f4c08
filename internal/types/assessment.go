package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// StockAssessment stores one AI assessment document per tracked security.
// Doc is the raw, schemaless payload as ingested; Symbol, Name and
// AIRatingScore are denormalized copies used only for filtering and sort
// order. Display code never trusts the columns — it projects Doc through the
// valuescore package field by field.
type StockAssessment struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Symbol        string         `gorm:"index;column:symbol" json:"symbol"`
	Name          string         `gorm:"column:name" json:"name"`
	AIRatingScore float64        `gorm:"column:ai_rating_score" json:"ai_rating_score"`
	Doc           datatypes.JSON `gorm:"type:jsonb;column:doc" json:"doc"`
	CreatedAt     time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null" json:"updated_at"`
}

func (StockAssessment) TableName() string {
	return "stock_assessment"
}
