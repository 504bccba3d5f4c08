package valuescore

import (
	"testing"

	"github.com/google/uuid"
)

func TestProjectRecord_FullDocument(t *testing.T) {
	doc := map[string]any{
		"_id":           "abc123",
		"symbol":        "AAPL",
		"name":          "Apple Inc.",
		"aiRating":      "BUY",
		"aiRatingScore": 1.8,
		"assessment":    "Strong fundamentals",
		"industry":      "Consumer Electronics",
		"sector":        "Technology",
		"country":       "USA",
		"valueSearchScore": map[string]any{
			"totalPossiblePoints":       17.0,
			"calculatedScorePercentage": 64.7,
		},
	}

	rec := ProjectRecord(doc)
	if rec.ID != "abc123" || rec.Symbol != "AAPL" || rec.Name != "Apple Inc." {
		t.Fatalf("identity fields wrong: %+v", rec)
	}
	if rec.AIRating != "BUY" || rec.AIRatingScore == nil || *rec.AIRatingScore != 1.8 {
		t.Fatalf("rating fields wrong: %+v", rec)
	}
	if rec.ValueSearchScore == nil {
		t.Fatalf("expected normalized score")
	}
}

func TestProjectRecord_IDFallback(t *testing.T) {
	rec := ProjectRecord(map[string]any{"id": "fallback"})
	if rec.ID != "fallback" {
		t.Fatalf("expected id fallback, got %q", rec.ID)
	}

	rowID := uuid.New()
	rec = ProjectRecord(map[string]any{"_id": rowID})
	if rec.ID != rowID.String() {
		t.Fatalf("expected stringer id, got %q", rec.ID)
	}
}

func TestProjectRecord_WrongTypesDropSilently(t *testing.T) {
	doc := map[string]any{
		"_id":           "x",
		"symbol":        42,
		"name":          []string{"not", "a", "string"},
		"aiRatingScore": "1.8",
		"valueSearchScore": map[string]any{
			"totalPossiblePoints": "zero",
		},
	}

	rec := ProjectRecord(doc)
	if rec.Symbol != "" || rec.Name != "" {
		t.Fatalf("wrong-typed strings should drop: %+v", rec)
	}
	// aiRatingScore requires a genuine number; numeric strings do not count
	// here, unlike in the history extractor.
	if rec.AIRatingScore != nil {
		t.Fatalf("string aiRatingScore should drop, got %v", *rec.AIRatingScore)
	}
	if rec.ValueSearchScore != nil {
		t.Fatalf("invalid score should normalize to absent")
	}
}

func TestProjectRecord_NilAndEmpty(t *testing.T) {
	if rec := ProjectRecord(nil); rec.ID != "" {
		t.Fatalf("nil doc should give zero record")
	}
	if rec := ProjectRecord(map[string]any{}); rec.ID != "" || rec.AIRatingScore != nil {
		t.Fatalf("empty doc should give zero record")
	}
}
