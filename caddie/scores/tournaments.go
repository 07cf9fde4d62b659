package scores

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coffeegolfbot/caddie/caddie/golf"
)

// ErrTournamentActive reports an attempt to start a second concurrent
// tournament. Only one may be active system-wide.
var ErrTournamentActive = errors.New("a tournament is already active")

// TournamentStatus summarizes where a tournament stands in its date range.
type TournamentStatus struct {
	DaysElapsed   int
	DaysRemaining int
	TotalDays     int
	IsActive      bool
	ScoringType   golf.ScoringType
}

// CreateTournament starts a tournament running from today for durationDays.
// Participants join implicitly by submitting a score inside the range.
func (s *Store) CreateTournament(ctx context.Context, name string, durationDays int, mode golf.ScoringType, now time.Time) (golf.Tournament, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load(ctx)
	if doc.CurrentTournament != "" {
		return golf.Tournament{}, fmt.Errorf("%w: %s", ErrTournamentActive, doc.CurrentTournament)
	}

	t := golf.Tournament{
		Name:         name,
		StartDate:    golf.FormatDate(now),
		EndDate:      golf.FormatDate(now.AddDate(0, 0, durationDays)),
		Participants: []string{},
		Active:       true,
		ScoringType:  string(mode),
	}
	doc.Tournaments = append(doc.Tournaments, t)
	doc.CurrentTournament = name

	if err := s.storage.Save(ctx, doc); err != nil {
		s.doc = nil
		return golf.Tournament{}, fmt.Errorf("failed to persist tournament: %w", err)
	}
	s.doc = doc
	s.fetchedAt = time.Now()
	return t, nil
}

// EndTournament deactivates the current tournament and clears the pointer.
// Returns ok=false when none is active. Tournaments are never deleted.
func (s *Store) EndTournament(ctx context.Context) (golf.Tournament, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load(ctx)
	if doc.CurrentTournament == "" {
		return golf.Tournament{}, false, nil
	}

	for i := range doc.Tournaments {
		if doc.Tournaments[i].Name != doc.CurrentTournament {
			continue
		}
		doc.Tournaments[i].Active = false
		doc.CurrentTournament = ""

		if err := s.storage.Save(ctx, doc); err != nil {
			s.doc = nil
			return golf.Tournament{}, false, fmt.Errorf("failed to persist tournament end: %w", err)
		}
		s.doc = doc
		s.fetchedAt = time.Now()
		return doc.Tournaments[i], true, nil
	}

	// Pointer referenced a tournament that isn't in the list. Persist the
	// correction so it doesn't come back on the next document reload.
	doc.CurrentTournament = ""
	if err := s.storage.Save(ctx, doc); err != nil {
		s.doc = nil
		return golf.Tournament{}, false, fmt.Errorf("failed to persist tournament pointer fix: %w", err)
	}
	s.doc = doc
	s.fetchedAt = time.Now()
	return golf.Tournament{}, false, nil
}

// CurrentTournament returns the active tournament, if any.
func (s *Store) CurrentTournament(ctx context.Context) (golf.Tournament, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load(ctx)
	if doc.CurrentTournament == "" {
		return golf.Tournament{}, false
	}
	return s.findTournament(doc, doc.CurrentTournament)
}

// Tournament looks a tournament up by name.
func (s *Store) Tournament(ctx context.Context, name string) (golf.Tournament, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findTournament(s.load(ctx), name)
}

// Tournaments returns every tournament, past and present.
func (s *Store) Tournaments(ctx context.Context) []golf.Tournament {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]golf.Tournament(nil), s.load(ctx).Tournaments...)
}

func (s *Store) findTournament(doc *golf.ScoreData, name string) (golf.Tournament, bool) {
	for _, t := range doc.Tournaments {
		if t.Name == name {
			return t, true
		}
	}
	return golf.Tournament{}, false
}

// TournamentStandings builds the cumulative board over a tournament's date
// range. Pass mode "" to use the tournament's own scoring type.
func (s *Store) TournamentStandings(ctx context.Context, name string, mode golf.ScoringType) ([]golf.RangeEntry, golf.Tournament, error) {
	t, ok := s.Tournament(ctx, name)
	if !ok {
		return nil, golf.Tournament{}, fmt.Errorf("no such tournament: %s", name)
	}
	if mode == "" {
		mode = golf.ScoringTypeFromString(t.ScoringType)
	}
	return s.RangeLeaderboard(ctx, t.StartDate, t.EndDate, mode), t, nil
}

// Status reports elapsed and remaining days for a tournament.
func (s *Store) Status(ctx context.Context, name string, now time.Time) (TournamentStatus, bool) {
	t, ok := s.Tournament(ctx, name)
	if !ok {
		return TournamentStatus{}, false
	}

	start, err := golf.ParseDate(t.StartDate)
	if err != nil {
		return TournamentStatus{}, false
	}
	end, err := golf.ParseDate(t.EndDate)
	if err != nil {
		return TournamentStatus{}, false
	}

	day := 24 * time.Hour
	total := int(end.Sub(start) / day)
	elapsed := int(now.In(golf.Eastern).Sub(start) / day)
	remaining := total - elapsed

	return TournamentStatus{
		DaysElapsed:   max(0, min(elapsed, total)),
		DaysRemaining: max(0, remaining),
		TotalDays:     total,
		IsActive:      t.Active,
		ScoringType:   golf.ScoringTypeFromString(t.ScoringType),
	}, true
}

// addTournamentParticipant enrolls a submitting player in the active
// tournament when the score lands inside its window. Caller holds mu.
func (s *Store) addTournamentParticipant(doc *golf.ScoreData, score golf.Score) {
	if doc.CurrentTournament == "" {
		return
	}
	for i := range doc.Tournaments {
		t := &doc.Tournaments[i]
		if t.Name != doc.CurrentTournament || !t.Active {
			continue
		}
		if score.Date < t.StartDate || score.Date > t.EndDate {
			return
		}
		for _, p := range t.Participants {
			if p == score.PlayerID {
				return
			}
		}
		t.Participants = append(t.Participants, score.PlayerID)
		return
	}
}
