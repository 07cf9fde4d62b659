package golf

import (
	"fmt"
	"math"
	"sort"
)

// averageEpsilon bounds float comparison when detecting rank ties on
// averages, so 6.0 and 18.0/3 don't land in different tie groups.
const averageEpsilon = 1e-4

// Entry is one row of a single-day leaderboard.
type Entry struct {
	Position   string
	PlayerID   string
	PlayerName string
	Strokes    int
	Route      string
}

// RangeEntry is one row of a multi-day cumulative leaderboard.
type RangeEntry struct {
	Position     string
	PlayerID     string
	PlayerName   string
	TotalStrokes int
	Rounds       int
	Average      float64
}

// DailyBoard ranks effective scores for a single day, lowest strokes first.
// Tied players share a T-n label; unique top-3 ranks get medals.
func DailyBoard(scores []Score) []Entry {
	sorted := make([]Score, len(scores))
	copy(sorted, scores)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Strokes != sorted[j].Strokes {
			return sorted[i].Strokes < sorted[j].Strokes
		}
		return sorted[i].Timestamp < sorted[j].Timestamp
	})

	entries := make([]Entry, len(sorted))
	for i, s := range sorted {
		entries[i] = Entry{
			PlayerID:   s.PlayerID,
			PlayerName: s.PlayerName,
			Strokes:    s.Strokes,
			Route:      s.Route,
		}
	}
	assignPositions(len(entries),
		func(i, j int) bool { return sorted[i].Strokes == sorted[j].Strokes },
		func(i int, pos string) { entries[i].Position = pos },
	)
	return entries
}

// RangeBoard ranks players over a date range by average strokes per round,
// ascending. Equal averages are broken by rounds played: the player who
// showed up more often ranks higher. Only a tie on both average and rounds
// shares a rank label.
func RangeBoard(perPlayer map[string][]Score) []RangeEntry {
	entries := make([]RangeEntry, 0, len(perPlayer))
	for playerID, scores := range perPlayer {
		if len(scores) == 0 {
			continue
		}
		total := 0
		name := scores[0].PlayerName
		for _, s := range scores {
			total += s.Strokes
			name = s.PlayerName
		}
		entries = append(entries, RangeEntry{
			PlayerID:     playerID,
			PlayerName:   name,
			TotalStrokes: total,
			Rounds:       len(scores),
			Average:      float64(total) / float64(len(scores)),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if math.Abs(entries[i].Average-entries[j].Average) > averageEpsilon {
			return entries[i].Average < entries[j].Average
		}
		if entries[i].Rounds != entries[j].Rounds {
			return entries[i].Rounds > entries[j].Rounds
		}
		return entries[i].PlayerID < entries[j].PlayerID
	})

	assignPositions(len(entries),
		func(i, j int) bool {
			return math.Abs(entries[i].Average-entries[j].Average) <= averageEpsilon &&
				entries[i].Rounds == entries[j].Rounds
		},
		func(i int, pos string) { entries[i].Position = pos },
	)
	return entries
}

// assignPositions walks an already-sorted board, groups rows whose sort keys
// compare equal, and writes the position label for each row. The label for a
// tie group is T-n where n is the rank its first member would occupy.
func assignPositions(n int, equal func(i, j int) bool, set func(i int, pos string)) {
	for start := 0; start < n; {
		end := start + 1
		for end < n && equal(start, end) {
			end++
		}
		rank := start + 1
		for i := start; i < end; i++ {
			set(i, positionLabel(rank, end-start > 1))
		}
		start = end
	}
}

func positionLabel(rank int, tied bool) string {
	if tied {
		return fmt.Sprintf("T-%d", rank)
	}
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return fmt.Sprintf("%d.", rank)
	}
}
