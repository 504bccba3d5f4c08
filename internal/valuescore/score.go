package valuescore

import (
	"math"
	"strconv"
	"strings"
)

// Score field names shared by the normalizer and the history extractor.
const (
	fieldCalculatedScorePercentage = "calculatedScorePercentage"
	fieldTotalPossiblePoints       = "totalPossiblePoints"
)

// toNumber coerces a raw document value to a float64. Accepted inputs are
// numeric types and non-empty numeric strings; everything else is skipped.
func toNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		if math.IsNaN(v) {
			return 0, false
		}
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil || math.IsNaN(parsed) {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// NormalizeScore validates the nested value-search score object of a raw
// assessment document. It coerces totalPossiblePoints and
// calculatedScorePercentage to numbers; if totalPossiblePoints is not
// positive or the percentage is not numeric the score is treated as absent
// and nil is returned. All other keys (the per-criterion breakdown) pass
// through untouched; consumers read them by name.
//
// Malformed input never raises: a record with a corrupt score simply shows
// no score. Normalizing an already-normalized score is a no-op.
func NormalizeScore(raw map[string]any) map[string]any {
	if raw == nil {
		return nil
	}
	totalPossible, ok := toNumber(raw[fieldTotalPossiblePoints])
	if !ok || totalPossible <= 0 {
		return nil
	}
	percentage, ok := toNumber(raw[fieldCalculatedScorePercentage])
	if !ok {
		return nil
	}
	normalized := make(map[string]any, len(raw))
	for k, v := range raw {
		normalized[k] = v
	}
	normalized[fieldTotalPossiblePoints] = totalPossible
	normalized[fieldCalculatedScorePercentage] = percentage
	return normalized
}
