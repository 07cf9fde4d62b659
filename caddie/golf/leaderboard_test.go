package golf

import "testing"

func Test_DailyBoard_tieLabels(t *testing.T) {
	scores := []Score{
		{PlayerID: "a", PlayerName: "A", Strokes: 5, Timestamp: 1},
		{PlayerID: "b", PlayerName: "B", Strokes: 5, Timestamp: 2},
		{PlayerID: "c", PlayerName: "C", Strokes: 7, Timestamp: 3},
	}

	board := DailyBoard(scores)
	if len(board) != 3 {
		t.Fatalf("DailyBoard() returned %d entries, want 3", len(board))
	}

	// The two tied players absorb ranks 1 and 2, so the unique rank 3
	// still earns its medal.
	wantPositions := []string{"T-1", "T-1", "🥉"}
	for i, want := range wantPositions {
		if board[i].Position != want {
			t.Errorf("entry %d position = %q, want %q", i, board[i].Position, want)
		}
	}
	if board[2].PlayerID != "c" {
		t.Errorf("entry 2 player = %q, want c", board[2].PlayerID)
	}
}

func Test_DailyBoard_medals(t *testing.T) {
	scores := []Score{
		{PlayerID: "a", Strokes: 4},
		{PlayerID: "b", Strokes: 6},
		{PlayerID: "c", Strokes: 8},
		{PlayerID: "d", Strokes: 9},
	}

	board := DailyBoard(scores)
	wantPositions := []string{"🥇", "🥈", "🥉", "4."}
	for i, want := range wantPositions {
		if board[i].Position != want {
			t.Errorf("entry %d position = %q, want %q", i, board[i].Position, want)
		}
	}
}

func Test_DailyBoard_empty(t *testing.T) {
	if got := DailyBoard(nil); len(got) != 0 {
		t.Errorf("DailyBoard(nil) = %v, want empty", got)
	}
}

func Test_RangeBoard_consistencyTiebreak(t *testing.T) {
	// X played twice at 6.0 average, Y once at 6.0: X ranks higher.
	perPlayer := map[string][]Score{
		"x": {
			{PlayerID: "x", PlayerName: "X", Strokes: 5},
			{PlayerID: "x", PlayerName: "X", Strokes: 7},
		},
		"y": {
			{PlayerID: "y", PlayerName: "Y", Strokes: 6},
		},
	}

	board := RangeBoard(perPlayer)
	if len(board) != 2 {
		t.Fatalf("RangeBoard() returned %d entries, want 2", len(board))
	}
	if board[0].PlayerID != "x" {
		t.Errorf("rank 1 = %q, want x (more rounds at equal average)", board[0].PlayerID)
	}
	// Same average but different rounds is not a tie.
	if board[0].Position != "🥇" || board[1].Position != "🥈" {
		t.Errorf("positions = %q, %q, want 🥇, 🥈", board[0].Position, board[1].Position)
	}
}

func Test_RangeBoard_averageRanking(t *testing.T) {
	// B has fewer total strokes but a worse average; average decides.
	perPlayer := map[string][]Score{
		"a": {
			{PlayerID: "a", PlayerName: "A", Strokes: 5},
			{PlayerID: "a", PlayerName: "A", Strokes: 5},
			{PlayerID: "a", PlayerName: "A", Strokes: 5},
		},
		"b": {
			{PlayerID: "b", PlayerName: "B", Strokes: 7},
		},
	}

	board := RangeBoard(perPlayer)
	if board[0].PlayerID != "a" {
		t.Fatalf("rank 1 = %q, want a", board[0].PlayerID)
	}
	if board[0].Average != 5.0 || board[0].TotalStrokes != 15 || board[0].Rounds != 3 {
		t.Errorf("rank 1 aggregates = %+v", board[0])
	}
}

func Test_RangeBoard_exactTie(t *testing.T) {
	perPlayer := map[string][]Score{
		"a": {{PlayerID: "a", Strokes: 6}, {PlayerID: "a", Strokes: 6}},
		"b": {{PlayerID: "b", Strokes: 5}, {PlayerID: "b", Strokes: 7}},
		"c": {{PlayerID: "c", Strokes: 9}, {PlayerID: "c", Strokes: 9}},
	}

	board := RangeBoard(perPlayer)
	if board[0].Position != "T-1" || board[1].Position != "T-1" {
		t.Errorf("tied positions = %q, %q, want T-1, T-1", board[0].Position, board[1].Position)
	}
	if board[2].Position != "🥉" {
		t.Errorf("third position = %q, want 🥉", board[2].Position)
	}
}

func Test_RangeBoard_skipsEmptyPlayers(t *testing.T) {
	perPlayer := map[string][]Score{
		"a": {{PlayerID: "a", Strokes: 6}},
		"b": {},
	}
	if got := RangeBoard(perPlayer); len(got) != 1 {
		t.Errorf("RangeBoard() returned %d entries, want 1", len(got))
	}
}
