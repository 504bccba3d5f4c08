package valuescore

import (
	"testing"
	"time"
)

func TestExtractPoint_ScoreRatioScalesToPercentage(t *testing.T) {
	cases := []struct {
		name  string
		score float64
		want  float64
	}{
		{"ratio midpoint", 0.5, 50},
		{"ratio lower bound", 0, 0},
		{"ratio upper bound", 1, 100},
		{"just above one passes through", 1.5, 1.5},
		{"percentage passes through", 64.7, 64.7},
		{"negative passes through", -2, -2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := map[string]any{
				"date":             "2025-06-01",
				"valueSearchScore": map[string]any{"calculatedScorePercentage": tc.score},
			}
			point, ok := ExtractPoint(doc, KindScore)
			if !ok {
				t.Fatalf("expected a point")
			}
			if point.Value != tc.want {
				t.Fatalf("value = %v, want %v", point.Value, tc.want)
			}
		})
	}
}

func TestExtractPoint_RatingNoTransform(t *testing.T) {
	doc := map[string]any{
		"timestamp":     "2025-06-01T12:00:00Z",
		"aiRating":      "SELL",
		"aiRatingScore": -1.5,
	}
	point, ok := ExtractPoint(doc, KindRating)
	if !ok {
		t.Fatalf("expected a point")
	}
	// Rating values are never rescaled, even inside [0,1].
	if point.Value != -1.5 {
		t.Fatalf("value = %v, want -1.5", point.Value)
	}
	if point.Label != "SELL" {
		t.Fatalf("label = %q, want SELL", point.Label)
	}

	doc["aiRatingScore"] = 0.5
	point, _ = ExtractPoint(doc, KindRating)
	if point.Value != 0.5 {
		t.Fatalf("rating 0.5 must pass through, got %v", point.Value)
	}
}

func TestExtractPoint_DateCandidateFallthrough(t *testing.T) {
	cases := []struct {
		name string
		doc  map[string]any
		want string
	}{
		{
			"timestamp wins over date",
			map[string]any{"timestamp": "2025-01-02", "date": "2024-01-01", "score": 10.0},
			"2025-01-02T00:00:00Z",
		},
		{
			"bad timestamp falls to date",
			map[string]any{"timestamp": "not-a-date", "date": "2024-01-01", "score": 10.0},
			"2024-01-01T00:00:00Z",
		},
		{
			"createdAt as time value",
			map[string]any{"createdAt": time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC), "score": 10.0},
			"2024-05-06T07:08:09Z",
		},
		{
			"extended json date object",
			map[string]any{"date": map[string]any{"$date": "2024-03-04T00:00:00Z"}, "score": 10.0},
			"2024-03-04T00:00:00Z",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			point, ok := ExtractPoint(tc.doc, KindScore)
			if !ok {
				t.Fatalf("expected a point")
			}
			if point.Date != tc.want {
				t.Fatalf("date = %q, want %q", point.Date, tc.want)
			}
		})
	}
}

func TestExtractPoint_DropsUnresolvable(t *testing.T) {
	cases := []struct {
		name string
		doc  map[string]any
		kind HistoryKind
	}{
		{"nil doc", nil, KindScore},
		{"no date", map[string]any{"score": 10.0}, KindScore},
		{"no value", map[string]any{"date": "2024-01-01"}, KindScore},
		{"rating without numeric score", map[string]any{"date": "2024-01-01", "aiRating": "BUY"}, KindRating},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, ok := ExtractPoint(tc.doc, tc.kind); ok {
				t.Fatalf("expected doc to be dropped")
			}
		})
	}
}

func TestExtractPoint_ScoreValuePriority(t *testing.T) {
	doc := map[string]any{
		"date":  "2024-01-01",
		"score": 99.0,
		"valueSearchScore": map[string]any{
			"calculatedScorePercentage": 42.0,
			"score":                     7.0,
		},
	}
	point, ok := ExtractPoint(doc, KindScore)
	if !ok || point.Value != 42.0 {
		t.Fatalf("nested calculatedScorePercentage must win, got %v", point.Value)
	}

	// Without the nested object, top-level fallbacks apply in order.
	doc = map[string]any{"date": "2024-01-01", "valueScore": 12.0, "score": 99.0}
	point, ok = ExtractPoint(doc, KindScore)
	if !ok || point.Value != 12.0 {
		t.Fatalf("valueScore outranks score, got %v", point.Value)
	}
}

func TestAssembleSeries_PreservesOrderAndSkips(t *testing.T) {
	docs := []map[string]any{
		{"date": "2024-01-01", "score": 0.2},
		{"score": 30.0}, // no date, dropped
		{"date": "2024-02-01", "score": 40.0},
		nil, // dropped
		{"date": "2024-03-01", "score": 50.0},
	}
	points := AssembleSeries(docs, KindScore)
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}
	if points[0].Value != 20.0 || points[1].Value != 40.0 || points[2].Value != 50.0 {
		t.Fatalf("order or values wrong: %+v", points)
	}
	if points[0].Date != "2024-01-01T00:00:00Z" {
		t.Fatalf("date not normalized: %q", points[0].Date)
	}
}

func TestAssembleSeries_EmptyInput(t *testing.T) {
	points := AssembleSeries(nil, KindRating)
	if points == nil || len(points) != 0 {
		t.Fatalf("expected empty non-nil series, got %v", points)
	}
}
