package scores

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coffeegolfbot/caddie/caddie/golf"
	"github.com/coffeegolfbot/caddie/caddie/services"
)

// fakeStorage is an in-memory stand-in for the Spaces document object.
type fakeStorage struct {
	raw     []byte
	loads   int
	saves   int
	loadErr error
	saveErr error
}

func (f *fakeStorage) Load(_ context.Context) (*golf.ScoreData, error) {
	f.loads++
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if f.raw == nil {
		return nil, services.ErrDocumentNotFound
	}
	var data golf.ScoreData
	if err := json.Unmarshal(f.raw, &data); err != nil {
		return nil, err
	}
	data.Normalize()
	return &data, nil
}

func (f *fakeStorage) Save(_ context.Context, data *golf.ScoreData) error {
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	f.raw = raw
	return nil
}

func attempt(playerID, date string, strokes int, ts int64) golf.Score {
	return golf.Score{
		PlayerID:   playerID,
		PlayerName: "Player " + playerID,
		Date:       date,
		Strokes:    strokes,
		MessageID:  "msg-" + playerID + "-" + date,
		Timestamp:  ts,
	}
}

func TestStore_RecordAttempt(t *testing.T) {
	ctx := context.Background()
	fake := &fakeStorage{}
	store := New(fake, 3, 5*time.Minute)

	res, err := store.RecordAttempt(ctx, attempt("1", "2024-05-10", 12, 1000))
	require.NoError(t, err)
	assert.True(t, res.Recorded)
	assert.True(t, res.FirstOfDay)
	assert.Equal(t, 1, res.AttemptIndex)
	assert.False(t, res.NewDailyBest, "first score of the day had no best to beat")

	res, err = store.RecordAttempt(ctx, attempt("1", "2024-05-10", 9, 2000))
	require.NoError(t, err)
	assert.True(t, res.Recorded)
	assert.False(t, res.FirstOfDay)
	assert.Equal(t, 2, res.AttemptIndex)
	assert.True(t, res.NewDailyBest)

	p, ok := store.Player(ctx, "1")
	require.True(t, ok)
	assert.Equal(t, 9, p.BestScore)
	assert.Equal(t, 10.5, p.AverageScore)
	assert.Equal(t, 2, p.TotalGames)
}

func TestStore_RecordAttempt_capIsAtomic(t *testing.T) {
	ctx := context.Background()
	fake := &fakeStorage{}
	store := New(fake, 3, 5*time.Minute)

	for i, strokes := range []int{5, 3, 7} {
		res, err := store.RecordAttempt(ctx, attempt("1", "2024-05-10", strokes, int64(1000+i)))
		require.NoError(t, err)
		require.True(t, res.Recorded)
	}

	before, ok := store.Player(ctx, "1")
	require.True(t, ok)
	savesBefore := fake.saves

	res, err := store.RecordAttempt(ctx, attempt("1", "2024-05-10", 1, 5000))
	require.NoError(t, err)
	assert.False(t, res.Recorded)
	assert.Equal(t, 3, res.AttemptIndex)
	assert.Equal(t, 3, res.Cap)
	assert.Equal(t, savesBefore, fake.saves, "rejected attempt must not write")

	after, ok := store.Player(ctx, "1")
	require.True(t, ok)
	assert.Equal(t, before.BestScore, after.BestScore)
	assert.Equal(t, before.AverageScore, after.AverageScore)
	assert.Equal(t, before.TotalGames, after.TotalGames)
	assert.Equal(t, 3, store.AttemptCount(ctx, "1", "2024-05-10"))

	// A different date is a fresh cap.
	res, err = store.RecordAttempt(ctx, attempt("1", "2024-05-11", 6, 6000))
	require.NoError(t, err)
	assert.True(t, res.Recorded)
}

func TestStore_RecordAttempt_updatesDisplayName(t *testing.T) {
	ctx := context.Background()
	store := New(&fakeStorage{}, 3, 5*time.Minute)

	first := attempt("1", "2024-05-10", 10, 1000)
	first.PlayerName = "oldname"
	_, err := store.RecordAttempt(ctx, first)
	require.NoError(t, err)

	second := attempt("1", "2024-05-11", 11, 2000)
	second.PlayerName = "newname"
	_, err = store.RecordAttempt(ctx, second)
	require.NoError(t, err)

	p, ok := store.Player(ctx, "1")
	require.True(t, ok)
	assert.Equal(t, "newname", p.Name)
}

func TestStore_boardReflectsFreshWrite(t *testing.T) {
	ctx := context.Background()
	store := New(&fakeStorage{}, 3, 5*time.Minute)

	_, err := store.RecordAttempt(ctx, attempt("1", "2024-05-10", 10, 1000))
	require.NoError(t, err)

	board := store.DailyLeaderboard(ctx, "2024-05-10", golf.ScoringFirst)
	require.Len(t, board, 1)

	// The board above is now cached; a new attempt must purge it.
	_, err = store.RecordAttempt(ctx, attempt("2", "2024-05-10", 8, 2000))
	require.NoError(t, err)

	board = store.DailyLeaderboard(ctx, "2024-05-10", golf.ScoringFirst)
	require.Len(t, board, 2)
	assert.Equal(t, "2", board[0].PlayerID)
}

func TestStore_missingDocumentSynthesized(t *testing.T) {
	ctx := context.Background()
	fake := &fakeStorage{}
	store := New(fake, 3, 5*time.Minute)

	assert.Empty(t, store.AttemptsFor(ctx, "2024-05-10"))
	assert.Equal(t, 1, fake.saves, "empty default document persisted on first load")
}

func TestStore_loadFailureDegradesToEmpty(t *testing.T) {
	ctx := context.Background()
	fake := &fakeStorage{loadErr: errors.New("spaces unreachable")}
	store := New(fake, 3, 5*time.Minute)

	assert.Empty(t, store.AttemptsFor(ctx, "2024-05-10"))
	assert.Empty(t, store.Players(ctx))

	// Once storage recovers, the next read goes back to it.
	fake.loadErr = nil
	_, err := store.RecordAttempt(ctx, attempt("1", "2024-05-10", 10, 1000))
	require.NoError(t, err)
	assert.Len(t, store.AttemptsFor(ctx, "2024-05-10"), 1)
}

func TestStore_saveFailureSurfacesAndDropsCache(t *testing.T) {
	ctx := context.Background()
	fake := &fakeStorage{}
	store := New(fake, 3, 5*time.Minute)

	_, err := store.RecordAttempt(ctx, attempt("1", "2024-05-10", 10, 1000))
	require.NoError(t, err)

	fake.saveErr = errors.New("spaces unreachable")
	_, err = store.RecordAttempt(ctx, attempt("1", "2024-05-10", 9, 2000))
	require.Error(t, err)

	fake.saveErr = nil
	assert.Equal(t, 1, store.AttemptCount(ctx, "1", "2024-05-10"),
		"failed write must not linger in the cached document")
}

func TestStore_documentRoundTrip(t *testing.T) {
	ctx := context.Background()
	fake := &fakeStorage{}
	store := New(fake, 3, 5*time.Minute)

	score := attempt("1", "2024-05-10", 10, 1000)
	score.Route = "🟦🟨🟩"
	_, err := store.RecordAttempt(ctx, score)
	require.NoError(t, err)

	// A second store over the same object sees what the first wrote.
	reread := New(fake, 3, 5*time.Minute)
	day := reread.AttemptsFor(ctx, "2024-05-10")
	require.Len(t, day["1"], 1)
	assert.Equal(t, "🟦🟨🟩", day["1"][0].Route)
	assert.Equal(t, score.MessageID, day["1"][0].MessageID)
}
