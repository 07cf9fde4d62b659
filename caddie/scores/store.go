package scores

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"

	"github.com/coffeegolfbot/caddie/caddie/config"
	"github.com/coffeegolfbot/caddie/caddie/golf"
	"github.com/coffeegolfbot/caddie/caddie/services"
)

// DocumentStorage is the load/save pair over the single persisted JSON
// document. Implemented by services.SpacesService; tests supply an in-memory
// fake.
type DocumentStorage interface {
	Load(ctx context.Context) (*golf.ScoreData, error)
	Save(ctx context.Context, data *golf.ScoreData) error
}

// RecordResult reports what happened to one submitted attempt.
type RecordResult struct {
	// Recorded is false when the player already used every attempt for the
	// day; nothing was written in that case.
	Recorded     bool
	FirstOfDay   bool
	AttemptIndex int
	// NewDailyBest is set when this attempt beat every attempt recorded for
	// that date so far, by any player.
	NewDailyBest bool
	Cap          int
}

// Store owns the score document: every mutation goes through it, and the
// daily attempt cap is checked and the attempt recorded under one lock, so
// two racing submissions from the same player cannot both slip under the
// cap within this process. Cross-process writers remain last-writer-wins on
// the whole document.
type Store struct {
	storage DocumentStorage
	cap     int
	ttl     time.Duration

	mu        sync.Mutex
	doc       *golf.ScoreData
	fetchedAt time.Time

	// rendered leaderboards keyed by date/mode, purged on every write
	boards *lru.Cache
}

func New(storage DocumentStorage, dailyCap int, ttl time.Duration) *Store {
	if dailyCap <= 0 {
		dailyCap = config.DefaultDailyCap
	}
	boards, err := lru.New(config.BoardCacheSize)
	if err != nil {
		panic(fmt.Sprintf("failed to create board cache: %v", err))
	}
	return &Store{
		storage: storage,
		cap:     dailyCap,
		ttl:     ttl,
		boards:  boards,
	}
}

// DailyCap returns the configured attempts-per-day limit.
func (s *Store) DailyCap() int {
	return s.cap
}

// load returns the current document, serving the cached copy while fresh.
// A missing document is synthesized and persisted; a failing load degrades
// to an empty document rather than taking the bot down. Callers must hold mu.
func (s *Store) load(ctx context.Context) *golf.ScoreData {
	if s.doc != nil && (s.ttl <= 0 || time.Since(s.fetchedAt) < s.ttl) {
		return s.doc
	}

	doc, err := s.storage.Load(ctx)
	switch {
	case err == nil:
	case errors.Is(err, services.ErrDocumentNotFound):
		doc = golf.NewScoreData()
		if saveErr := s.storage.Save(ctx, doc); saveErr != nil {
			slog.Error("Failed to persist initial score document",
				slog.String("type", "store"),
				slog.Any("error", saveErr))
		}
	default:
		slog.Error("Failed to load score document, serving empty data",
			slog.String("type", "store"),
			slog.Any("error", err))
		// Not cached: the next call retries the storage backend.
		return golf.NewScoreData()
	}

	s.doc = doc
	s.fetchedAt = time.Now()
	// The fresh document may carry another process's writes; rendered
	// boards keyed off the stale copy must not outlive it.
	s.boards.Purge()
	return doc
}

// RecordAttempt appends one attempt, recomputes the submitting player's
// aggregates, and persists the document. Cap enforcement happens here,
// atomically with the write.
func (s *Store) RecordAttempt(ctx context.Context, score golf.Score) (RecordResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load(ctx)

	day := doc.DailyScores[score.Date]
	if len(day[score.PlayerID]) >= s.cap {
		return RecordResult{
			Recorded:     false,
			AttemptIndex: len(day[score.PlayerID]),
			Cap:          s.cap,
		}, nil
	}

	// A trophy only makes sense when there was a best to beat.
	hadPrior := false
	newDailyBest := true
	for _, attempts := range day {
		for _, a := range attempts {
			hadPrior = true
			if a.Strokes <= score.Strokes {
				newDailyBest = false
			}
		}
	}
	newDailyBest = newDailyBest && hadPrior

	if day == nil {
		day = make(map[string][]golf.Score)
		doc.DailyScores[score.Date] = day
	}
	day[score.PlayerID] = append(day[score.PlayerID], score)

	player := doc.Players[score.PlayerID]
	if player == nil {
		player = &golf.PlayerStats{ID: score.PlayerID}
		doc.Players[score.PlayerID] = player
	}
	// Display names drift; always keep the latest one seen.
	player.Name = score.PlayerName
	player.Scores = append(player.Scores, score)
	recomputeStats(player)

	s.addTournamentParticipant(doc, score)

	if err := s.storage.Save(ctx, doc); err != nil {
		// Roll back the in-memory copy so a retry starts clean.
		s.doc = nil
		return RecordResult{}, fmt.Errorf("failed to persist attempt: %w", err)
	}

	s.doc = doc
	s.fetchedAt = time.Now()
	s.boards.Purge()

	return RecordResult{
		Recorded:     true,
		FirstOfDay:   len(day[score.PlayerID]) == 1,
		AttemptIndex: len(day[score.PlayerID]),
		NewDailyBest: newDailyBest,
		Cap:          s.cap,
	}, nil
}

func recomputeStats(p *golf.PlayerStats) {
	p.TotalGames = len(p.Scores)
	if p.TotalGames == 0 {
		p.BestScore = 0
		p.AverageScore = 0
		return
	}
	best := p.Scores[0].Strokes
	total := 0
	for _, s := range p.Scores {
		total += s.Strokes
		if s.Strokes < best {
			best = s.Strokes
		}
	}
	p.BestScore = best
	p.AverageScore = float64(total) / float64(p.TotalGames)
}

// AttemptsFor returns every player's attempts for one date, in submission
// order. The returned map is a copy; mutating it does not touch the store.
func (s *Store) AttemptsFor(ctx context.Context, date string) map[string][]golf.Score {
	s.mu.Lock()
	defer s.mu.Unlock()

	day := s.load(ctx).DailyScores[date]
	out := make(map[string][]golf.Score, len(day))
	for playerID, attempts := range day {
		if len(attempts) == 0 {
			continue
		}
		out[playerID] = append([]golf.Score(nil), attempts...)
	}
	return out
}

// AttemptCount returns how many attempts a player has recorded on a date.
func (s *Store) AttemptCount(ctx context.Context, playerID, date string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.load(ctx).DailyScores[date][playerID])
}

// Player returns a copy of one player's aggregate stats.
func (s *Store) Player(ctx context.Context, playerID string) (golf.PlayerStats, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.load(ctx).Players[playerID]
	if p == nil {
		return golf.PlayerStats{}, false
	}
	return copyStats(p), true
}

// Players returns a copy of every player's aggregate stats.
func (s *Store) Players(ctx context.Context) []golf.PlayerStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load(ctx)
	out := make([]golf.PlayerStats, 0, len(doc.Players))
	for _, p := range doc.Players {
		out = append(out, copyStats(p))
	}
	return out
}

func copyStats(p *golf.PlayerStats) golf.PlayerStats {
	cp := *p
	cp.Scores = append([]golf.Score(nil), p.Scores...)
	return cp
}

// Data returns a deep copy of the whole document, for the debug API.
func (s *Store) Data(ctx context.Context) *golf.ScoreData {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load(ctx)
	cp := golf.NewScoreData()
	for id, p := range doc.Players {
		stats := copyStats(p)
		cp.Players[id] = &stats
	}
	for date, day := range doc.DailyScores {
		cpDay := make(map[string][]golf.Score, len(day))
		for playerID, attempts := range day {
			cpDay[playerID] = append([]golf.Score(nil), attempts...)
		}
		cp.DailyScores[date] = cpDay
	}
	cp.Tournaments = append([]golf.Tournament(nil), doc.Tournaments...)
	cp.CurrentTournament = doc.CurrentTournament
	return cp
}

// Invalidate drops the document and leaderboard caches, forcing the next
// read to hit storage.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = nil
	s.fetchedAt = time.Time{}
	s.boards.Purge()
}
