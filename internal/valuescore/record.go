package valuescore

import (
	"fmt"
	"time"
)

// Record is the canonical display shape of a stock assessment. Every field
// except ID is optional; raw documents carry no schema guarantees, so each
// field is extracted defensively and omitted on type mismatch.
type Record struct {
	ID               string         `json:"_id"`
	Symbol           string         `json:"symbol,omitempty"`
	Name             string         `json:"name,omitempty"`
	AIRating         string         `json:"aiRating,omitempty"`
	AIRatingScore    *float64       `json:"aiRatingScore,omitempty"`
	Assessment       string         `json:"assessment,omitempty"`
	Industry         string         `json:"industry,omitempty"`
	Sector           string         `json:"sector,omitempty"`
	Country          string         `json:"country,omitempty"`
	ValueSearchScore map[string]any `json:"valueSearchScore,omitempty"`
}

func asString(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return ""
}

// identityString stringifies a document identity field. Supported shapes are
// strings, stringers (uuid.UUID), numbers and times; anything else yields "".
func identityString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case float64:
		return fmt.Sprintf("%v", v)
	case int:
		return fmt.Sprintf("%d", v)
	case int64:
		return fmt.Sprintf("%d", v)
	case time.Time:
		return v.UTC().Format(time.RFC3339)
	default:
		return ""
	}
}

// ProjectRecord maps a raw stored document to a Record. The policy is
// degrade-field-by-field: a wrong-typed field is dropped, the record itself
// never fails, so one corrupt document cannot take down a listing. The
// nested score object goes through NormalizeScore.
func ProjectRecord(doc map[string]any) Record {
	rec := Record{}
	if doc == nil {
		return rec
	}
	id := identityString(doc["_id"])
	if id == "" {
		id = identityString(doc["id"])
	}
	rec.ID = id
	rec.Symbol = asString(doc["symbol"])
	rec.Name = asString(doc["name"])
	rec.AIRating = asString(doc["aiRating"])
	if score, ok := doc["aiRatingScore"].(float64); ok {
		rec.AIRatingScore = &score
	}
	rec.Assessment = asString(doc["assessment"])
	rec.Industry = asString(doc["industry"])
	rec.Sector = asString(doc["sector"])
	rec.Country = asString(doc["country"])
	if rawScore, ok := doc["valueSearchScore"].(map[string]any); ok {
		rec.ValueSearchScore = NormalizeScore(rawScore)
	}
	return rec
}
