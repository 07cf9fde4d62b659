package golf

import (
	"testing"
	"time"
)

func Test_ParseScore(t *testing.T) {
	// A fixed "now" keeps year resolution deterministic: May 10 2024, Eastern.
	now := time.Date(2024, time.May, 10, 9, 30, 0, 0, Eastern)

	tests := []struct {
		name        string
		content     string
		wantOK      bool
		wantDate    string
		wantStrokes int
		wantRoute   string
	}{
		{
			name:        "shorthand with colon",
			content:     "Apr 5: 13",
			wantOK:      true,
			wantDate:    "2024-04-05",
			wantStrokes: 13,
		},
		{
			name:        "full month with dash",
			content:     "April 5 - 13",
			wantOK:      true,
			wantDate:    "2024-04-05",
			wantStrokes: 13,
		},
		{
			name:        "fixed prefix template",
			content:     "Coffee Golf - May 9 11 Strokes",
			wantOK:      true,
			wantDate:    "2024-05-09",
			wantStrokes: 11,
		},
		{
			name:        "mixed case month",
			content:     "aPr 5: 9",
			wantOK:      true,
			wantDate:    "2024-04-05",
			wantStrokes: 9,
		},
		{
			name:        "route glyphs collected in order",
			content:     "May 10: 12\n🟦🟨🟩",
			wantOK:      true,
			wantDate:    "2024-05-10",
			wantStrokes: 12,
			wantRoute:   "🟦🟨🟩",
		},
		{
			name:     "future date rolls back a year",
			content:  "Dec 25: 8",
			wantOK:   true,
			wantDate: "2023-12-25",

			wantStrokes: 8,
		},
		{
			name:    "no stroke fragment",
			content: "Apr 5 was a nice day",
			wantOK:  false,
		},
		{
			name:    "no date fragment",
			content: "13 strokes today!",
			wantOK:  false,
		},
		{
			name:    "unknown month word",
			content: "Foo 5: 13",
			wantOK:  false,
		},
		{
			name:    "impossible calendar date both years",
			content: "Feb 30: 13",
			wantOK:  false,
		},
		{
			name:    "plain chatter",
			content: "gg everyone",
			wantOK:  false,
		},
		{
			name:    "empty message",
			content: "",
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseScore(tt.content, "42", "player", "msg-1", now)
			if ok != tt.wantOK {
				t.Fatalf("ParseScore() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got.Date != tt.wantDate {
				t.Errorf("ParseScore() date = %q, want %q", got.Date, tt.wantDate)
			}
			if got.Strokes != tt.wantStrokes {
				t.Errorf("ParseScore() strokes = %d, want %d", got.Strokes, tt.wantStrokes)
			}
			if got.Route != tt.wantRoute {
				t.Errorf("ParseScore() route = %q, want %q", got.Route, tt.wantRoute)
			}
			if got.Timestamp != now.UnixMilli() {
				t.Errorf("ParseScore() timestamp = %d, want %d", got.Timestamp, now.UnixMilli())
			}
			if _, err := ParseDate(got.Date); err != nil {
				t.Errorf("ParseScore() date %q does not round-trip: %v", got.Date, err)
			}
		})
	}
}

func Test_ParseScore_identity(t *testing.T) {
	now := time.Date(2024, time.May, 10, 9, 30, 0, 0, Eastern)
	got, ok := ParseScore("May 10: 7", "123", "mags", "msg-77", now)
	if !ok {
		t.Fatal("expected a score")
	}
	if got.PlayerID != "123" || got.PlayerName != "mags" || got.MessageID != "msg-77" {
		t.Errorf("identity fields not carried through: %+v", got)
	}
}
