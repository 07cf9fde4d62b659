package golf

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// The supported submission grammar: a month name (abbreviated or full,
// case-insensitive) followed by a day number, an optional ":" or "-"
// separator, then a one- or two-digit stroke count. Surrounding text is
// ignored, so "Apr 5: 13", "April 5 - 13" and "Coffee Golf - Apr 5 13
// Strokes" all match. Older message templates are deliberately not
// recognized; anything that doesn't match is silently not a score.
var scorePattern = regexp.MustCompile(`(?i)\b([a-z]{3,9})\.?\s+(\d{1,2})\s*(?::|-)?\s*(\d{1,2})\b`)

// ParseScore extracts a Score from raw message content. The bool reports
// whether the message was a score submission at all; there is no error
// state, malformed-but-almost text is simply not a score.
func ParseScore(content, playerID, playerName, messageID string, sentAt time.Time) (Score, bool) {
	for _, match := range scorePattern.FindAllStringSubmatch(content, -1) {
		month, ok := MonthFromName(match[1])
		if !ok {
			continue // digits after a word that isn't a month
		}
		day, err := strconv.Atoi(match[2])
		if err != nil || day < 1 || day > 31 {
			continue
		}
		strokes, err := strconv.Atoi(match[3])
		if err != nil || strokes < 1 {
			continue
		}
		date, ok := ResolveDate(month, day, sentAt)
		if !ok {
			continue
		}

		return Score{
			PlayerID:   playerID,
			PlayerName: playerName,
			Date:       date,
			Strokes:    strokes,
			MessageID:  messageID,
			Timestamp:  sentAt.UnixMilli(),
			Route:      extractRoute(content),
		}, true
	}
	return Score{}, false
}

// extractRoute collects the emoji glyphs players paste to show the path they
// took through the course, in order of appearance.
func extractRoute(content string) string {
	var b strings.Builder
	for _, r := range content {
		if isRouteGlyph(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isRouteGlyph(r rune) bool {
	switch {
	case r >= 0x1F300 && r <= 0x1FAFF: // pictographs, incl. colored squares
		return true
	case r >= 0x2600 && r <= 0x27BF: // misc symbols, dingbats
		return true
	case r >= 0x2B00 && r <= 0x2BFF: // arrows, black/white squares
		return true
	default:
		return false
	}
}
