package scores

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coffeegolfbot/caddie/caddie/golf"
)

func seedStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()
	store := New(&fakeStorage{}, 3, 5*time.Minute)

	seed := []golf.Score{
		// 2024-05-10: player 1 improves over three attempts, player 2 one shot
		attempt("1", "2024-05-10", 12, 1000),
		{PlayerID: "1", PlayerName: "Player 1", Date: "2024-05-10", Strokes: 8, MessageID: "m2", Timestamp: 2000},
		{PlayerID: "1", PlayerName: "Player 1", Date: "2024-05-10", Strokes: 10, MessageID: "m3", Timestamp: 3000},
		attempt("2", "2024-05-10", 9, 4000),
		// 2024-05-11: only player 1
		attempt("1", "2024-05-11", 6, 5000),
	}
	for _, s := range seed {
		res, err := store.RecordAttempt(ctx, s)
		require.NoError(t, err)
		require.True(t, res.Recorded)
	}
	return store
}

func TestStore_DailyLeaderboard_modes(t *testing.T) {
	ctx := context.Background()
	store := seedStore(t)

	first := store.DailyLeaderboard(ctx, "2024-05-10", golf.ScoringFirst)
	require.Len(t, first, 2)
	assert.Equal(t, "2", first[0].PlayerID, "player 2's single 9 beats player 1's first 12")
	assert.Equal(t, 9, first[0].Strokes)
	assert.Equal(t, 12, first[1].Strokes)

	best := store.DailyLeaderboard(ctx, "2024-05-10", golf.ScoringBest)
	require.Len(t, best, 2)
	assert.Equal(t, "1", best[0].PlayerID, "player 1's best-of-three 8 wins")
	assert.Equal(t, 8, best[0].Strokes)
}

func TestStore_DailyLeaderboard_emptyDate(t *testing.T) {
	store := seedStore(t)
	assert.Empty(t, store.DailyLeaderboard(context.Background(), "2024-01-01", golf.ScoringFirst))
}

func TestStore_RangeLeaderboard(t *testing.T) {
	ctx := context.Background()
	store := seedStore(t)

	board := store.RangeLeaderboard(ctx, "2024-05-10", "2024-05-11", golf.ScoringBest)
	require.Len(t, board, 2)

	// Player 1: 8 + 6 over two rounds = 7.0 average; player 2: 9.0 over one.
	assert.Equal(t, "1", board[0].PlayerID)
	assert.Equal(t, 2, board[0].Rounds)
	assert.InDelta(t, 7.0, board[0].Average, 1e-9)
	assert.Equal(t, "2", board[1].PlayerID)
	assert.Equal(t, 1, board[1].Rounds)
}

func TestStore_Tournaments(t *testing.T) {
	ctx := context.Background()
	store := New(&fakeStorage{}, 3, 5*time.Minute)
	now := time.Date(2024, time.May, 10, 12, 0, 0, 0, golf.Eastern)

	tourney, err := store.CreateTournament(ctx, "May Open", 7, golf.ScoringBest, now)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-10", tourney.StartDate)
	assert.Equal(t, "2024-05-17", tourney.EndDate)
	assert.True(t, tourney.Active)

	// Second active tournament is rejected.
	_, err = store.CreateTournament(ctx, "Rival Cup", 3, golf.ScoringFirst, now)
	require.ErrorIs(t, err, ErrTournamentActive)

	// Submitting inside the window enrolls the player.
	_, err = store.RecordAttempt(ctx, attempt("1", "2024-05-12", 7, 1000))
	require.NoError(t, err)
	// Outside the window does not.
	_, err = store.RecordAttempt(ctx, attempt("2", "2024-05-01", 5, 2000))
	require.NoError(t, err)

	current, ok := store.CurrentTournament(ctx)
	require.True(t, ok)
	assert.Equal(t, []string{"1"}, current.Participants)

	standings, got, err := store.TournamentStandings(ctx, "May Open", "")
	require.NoError(t, err)
	assert.Equal(t, "May Open", got.Name)
	require.Len(t, standings, 1)
	assert.Equal(t, "1", standings[0].PlayerID)

	status, ok := store.Status(ctx, "May Open", now.AddDate(0, 0, 2))
	require.True(t, ok)
	assert.Equal(t, 2, status.DaysElapsed)
	assert.Equal(t, 5, status.DaysRemaining)
	assert.Equal(t, 7, status.TotalDays)
	assert.True(t, status.IsActive)

	ended, ok, err := store.EndTournament(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, ended.Active)

	_, ok = store.CurrentTournament(ctx)
	assert.False(t, ok)

	// Ended tournaments stay queryable, never deleted.
	all := store.Tournaments(ctx)
	require.Len(t, all, 1)
	assert.Equal(t, "May Open", all[0].Name)

	// Ending again is a no-op.
	_, ok, err = store.EndTournament(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_DailyLeaderboard_seesExternalWriteAfterTTL(t *testing.T) {
	ctx := context.Background()
	storage := &fakeStorage{}
	store := New(storage, 3, 50*time.Millisecond)

	_, err := store.RecordAttempt(ctx, attempt("1", "2024-05-10", 9, 1000))
	require.NoError(t, err)
	require.Len(t, store.DailyLeaderboard(ctx, "2024-05-10", golf.ScoringFirst), 1)

	// Another process writes the shared document.
	other := New(storage, 3, time.Minute)
	_, err = other.RecordAttempt(ctx, attempt("2", "2024-05-10", 7, 2000))
	require.NoError(t, err)

	time.Sleep(60 * time.Millisecond)

	board := store.DailyLeaderboard(ctx, "2024-05-10", golf.ScoringFirst)
	require.Len(t, board, 2)
	assert.Equal(t, "2", board[0].PlayerID, "the externally written 7 leads")
}

func TestStore_EndTournament_orphanPointerPersisted(t *testing.T) {
	ctx := context.Background()
	storage := &fakeStorage{raw: []byte(`{"currentTournament":"Ghost"}`)}
	store := New(storage, 3, 5*time.Minute)

	_, ok, err := store.EndTournament(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	// The cleared pointer survives a cold reload of the document.
	reloaded := New(storage, 3, 5*time.Minute)
	_, ok = reloaded.CurrentTournament(ctx)
	assert.False(t, ok)

	doc := reloaded.Data(ctx)
	assert.Empty(t, doc.CurrentTournament)
}
