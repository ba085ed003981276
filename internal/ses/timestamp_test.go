package ses

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input  string
		expect time.Time
	}{
		{"2024-01-15T09:30:00", time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)},
		{"2024-01-15T09:30:00.250000", time.Date(2024, 1, 15, 9, 30, 0, 250000000, time.UTC)},
		{"2024-01-15T09:30:00Z", time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)},
		{"2024-01-15 09:30:00", time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)},
		{"2024-01-15", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := ParseTimestamp(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.expect) {
				t.Fatalf("expected %s, got %s", tt.expect, got.Time)
			}
		})
	}

	if _, err := ParseTimestamp("15/01/2024"); err == nil {
		t.Fatalf("expected error for unsupported layout")
	}
}

func TestTimestampJSON(t *testing.T) {
	var payload struct {
		At    Timestamp  `json:"at"`
		Maybe *Timestamp `json:"maybe"`
		Empty Timestamp  `json:"empty"`
	}

	if err := json.Unmarshal([]byte(`{"at":"2024-03-01T08:00:00","maybe":null,"empty":""}`), &payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if payload.At.Date() != "2024-03-01" || payload.At.Month() != "2024-03" {
		t.Fatalf("unexpected date: %s", payload.At.Time)
	}
	if payload.Maybe != nil {
		t.Fatalf("expected nil pointer for null")
	}
	if !payload.Empty.IsZero() || payload.Empty.Date() != "" {
		t.Fatalf("expected zero timestamp for empty string")
	}

	encoded, err := json.Marshal(payload.At)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(encoded) != `"2024-03-01T08:00:00"` {
		t.Fatalf("unexpected encoding: %s", encoded)
	}

	zoned, err := ParseTimestamp("2024-01-15T01:00:00+09:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	encoded, err = json.Marshal(zoned)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(encoded) != `"2024-01-14T16:00:00"` {
		t.Fatalf("expected the instant in UTC, got %s", encoded)
	}

	zero, _ := json.Marshal(Timestamp{})
	if string(zero) != "null" {
		t.Fatalf("expected null for zero value, got %s", zero)
	}
}
