package valuescore

import (
	"strings"
	"time"
)

// HistoryKind selects the value-resolution rules for a historical snapshot.
type HistoryKind string

const (
	KindScore  HistoryKind = "score"
	KindRating HistoryKind = "rating"
)

// MaxHistoryPoints bounds each assembled series; the backing query orders
// ascending by recording time and stops after this many documents.
const MaxHistoryPoints = 365

// HistoryPoint is one entry of a score or rating time series. Label carries
// the categorical rating name and is only set for rating points.
type HistoryPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
	Label string  `json:"label,omitempty"`
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// normalizeDate resolves one raw date candidate to an RFC3339 UTC string.
// Accepted shapes: time.Time, parseable strings, unix-ish float seconds and
// extended-JSON style {"$date": "..."} objects. Unparseable candidates are
// skipped so the caller can fall through to the next one.
func normalizeDate(value any) (string, bool) {
	switch v := value.(type) {
	case time.Time:
		if v.IsZero() {
			return "", false
		}
		return v.UTC().Format(time.RFC3339), true
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return "", false
		}
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, trimmed); err == nil {
				return parsed.UTC().Format(time.RFC3339), true
			}
		}
		return "", false
	case map[string]any:
		if inner, ok := v["$date"].(string); ok {
			return normalizeDate(inner)
		}
		return "", false
	default:
		return "", false
	}
}

// firstValidDate walks the date candidates in priority order: explicit
// timestamp, then date, then creation time, then an identity field that
// encodes a creation time.
func firstValidDate(doc map[string]any) (string, bool) {
	for _, key := range []string{"timestamp", "date", "createdAt", "_id"} {
		if date, ok := normalizeDate(doc[key]); ok {
			return date, true
		}
	}
	return "", false
}

// scoreValue resolves the numeric score of a snapshot. Nested
// valueSearchScore fields win over top-level fallbacks; each candidate is
// coerced via toNumber (number or numeric string, else skip).
func scoreValue(doc map[string]any) (float64, bool) {
	if nested, ok := doc["valueSearchScore"].(map[string]any); ok {
		for _, key := range []string{"calculatedScorePercentage", "calculatedScore", "score", "percentage"} {
			if num, ok := toNumber(nested[key]); ok {
				return num, true
			}
		}
	}
	for _, key := range []string{"calculatedScorePercentage", "valueScorePercentage", "valueScore", "score"} {
		if num, ok := toNumber(doc[key]); ok {
			return num, true
		}
	}
	return 0, false
}

// ExtractPoint turns one raw historical snapshot into a HistoryPoint. A
// document with no resolvable date or value contributes nothing and is
// dropped silently.
//
// Score values inside [0,1] (inclusive) are treated as ratios and scaled to
// percentages; values outside pass through unchanged. The boundary rule
// cannot distinguish a genuine sub-1% score from a ratio — this ambiguity is
// inherited from the upstream data convention and deliberately not "fixed".
func ExtractPoint(doc map[string]any, kind HistoryKind) (HistoryPoint, bool) {
	if doc == nil {
		return HistoryPoint{}, false
	}
	date, ok := firstValidDate(doc)
	if !ok {
		return HistoryPoint{}, false
	}
	switch kind {
	case KindRating:
		value, ok := toNumber(doc["aiRatingScore"])
		if !ok {
			return HistoryPoint{}, false
		}
		point := HistoryPoint{Date: date, Value: value}
		if label, isStr := doc["aiRating"].(string); isStr && strings.TrimSpace(label) != "" {
			point.Label = label
		}
		return point, true
	default:
		value, ok := scoreValue(doc)
		if !ok {
			return HistoryPoint{}, false
		}
		if value >= 0 && value <= 1 {
			value *= 100
		}
		return HistoryPoint{Date: date, Value: value}, true
	}
}

// AssembleSeries filters raw snapshots into a series, preserving the order
// delivered by the backing query (ascending by recording time). It never
// re-sorts and never errors; unresolvable documents are skipped.
func AssembleSeries(docs []map[string]any, kind HistoryKind) []HistoryPoint {
	points := make([]HistoryPoint, 0, len(docs))
	for _, doc := range docs {
		if point, ok := ExtractPoint(doc, kind); ok {
			points = append(points, point)
		}
	}
	return points
}
