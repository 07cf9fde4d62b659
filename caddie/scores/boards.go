package scores

import (
	"context"
	"fmt"

	"github.com/coffeegolfbot/caddie/caddie/golf"
)

// The leaderboard side of the store only reads. Rendered boards are cached
// per key; the cache is purged whenever an attempt is recorded and whenever
// the document is re-read from storage, so a board requested right after a
// submission always reflects it and cross-process writes surface once the
// document TTL lapses.

// refresh revalidates the cached document before a board cache lookup. When
// the TTL has lapsed this re-reads storage, which purges stale boards.
func (s *Store) refresh(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load(ctx)
}

// DailyLeaderboard ranks effective scores for one date under one mode.
func (s *Store) DailyLeaderboard(ctx context.Context, date string, mode golf.ScoringType) []golf.Entry {
	s.refresh(ctx)

	key := fmt.Sprintf("daily|%s|%s", date, mode)
	if cached, ok := s.boards.Get(key); ok {
		return cached.([]golf.Entry)
	}

	var effective []golf.Score
	for _, attempts := range s.AttemptsFor(ctx, date) {
		if best, ok := golf.EffectiveScore(attempts, mode, s.cap); ok {
			effective = append(effective, best)
		}
	}

	board := golf.DailyBoard(effective)
	s.boards.Add(key, board)
	return board
}

// RangeLeaderboard ranks players cumulatively over [start, end] inclusive,
// by average strokes per round. Players without a score on a given day are
// simply absent that day.
func (s *Store) RangeLeaderboard(ctx context.Context, start, end string, mode golf.ScoringType) []golf.RangeEntry {
	s.refresh(ctx)

	key := fmt.Sprintf("range|%s|%s|%s", start, end, mode)
	if cached, ok := s.boards.Get(key); ok {
		return cached.([]golf.RangeEntry)
	}

	perPlayer := make(map[string][]golf.Score)
	for _, date := range golf.DatesBetween(start, end) {
		for playerID, attempts := range s.AttemptsFor(ctx, date) {
			if best, ok := golf.EffectiveScore(attempts, mode, s.cap); ok {
				perPlayer[playerID] = append(perPlayer[playerID], best)
			}
		}
	}

	board := golf.RangeBoard(perPlayer)
	s.boards.Add(key, board)
	return board
}
