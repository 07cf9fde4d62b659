package golf

// ScoringType selects which of a player's daily attempts count.
type ScoringType string

const (
	// ScoringFirst counts only the earliest attempt of the day.
	ScoringFirst ScoringType = "first"
	// ScoringBest counts the best attempt among the first N, where N is the
	// daily attempt cap.
	ScoringBest ScoringType = "best"
	// ScoringUnlimited counts the best attempt of the day regardless of cap.
	ScoringUnlimited ScoringType = "unlimited"
)

// AllScoringTypes in display order.
var AllScoringTypes = []ScoringType{ScoringFirst, ScoringBest, ScoringUnlimited}

// ScoringTypeFromString normalizes user input to a known scoring type.
// Unknown values fall back to first-attempt scoring.
func ScoringTypeFromString(s string) ScoringType {
	switch ScoringType(s) {
	case ScoringBest:
		return ScoringBest
	case ScoringUnlimited:
		return ScoringUnlimited
	default:
		return ScoringFirst
	}
}

// Display returns the human-readable name used in embed titles.
func (t ScoringType) Display() string {
	switch t {
	case ScoringFirst:
		return "First Attempt Only"
	case ScoringBest:
		return "Best of Three Attempts"
	case ScoringUnlimited:
		return "Unlimited Attempts"
	default:
		return "Unknown Scoring Type"
	}
}

// Color returns the embed accent color for this scoring type.
func (t ScoringType) Color() int {
	switch t {
	case ScoringFirst:
		return 0x3498DB
	case ScoringBest:
		return 0x2ECC71
	case ScoringUnlimited:
		return 0x9B59B6
	default:
		return 0x0099FF
	}
}

// EffectiveScore applies a scoring policy to one player's attempts for one
// day and returns the attempt that counts. Attempts must be in submission
// order, which the store guarantees. Pure; ok=false on an empty list.
func EffectiveScore(attempts []Score, mode ScoringType, cap int) (Score, bool) {
	if len(attempts) == 0 {
		return Score{}, false
	}

	switch mode {
	case ScoringBest:
		eligible := attempts
		if cap > 0 && len(eligible) > cap {
			eligible = eligible[:cap]
		}
		return lowest(eligible), true
	case ScoringUnlimited:
		return lowest(attempts), true
	default: // ScoringFirst
		first := attempts[0]
		for _, a := range attempts[1:] {
			if a.Timestamp < first.Timestamp {
				first = a
			}
		}
		return first, true
	}
}

func lowest(attempts []Score) Score {
	best := attempts[0]
	for _, a := range attempts[1:] {
		if a.Strokes < best.Strokes {
			best = a
		}
	}
	return best
}
