package golf

// Score is one parsed Coffee Golf submission. The Date field is the round the
// score is attributed to, which may differ from the day the message was sent
// (players back-report earlier rounds). Timestamp is the message creation time
// in epoch millis and defines intra-day attempt ordering.
type Score struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Date       string `json:"date"`
	Strokes    int    `json:"strokes"`
	MessageID  string `json:"messageId"`
	Timestamp  int64  `json:"timestamp"`
	Route      string `json:"route,omitempty"`
}

// PlayerStats holds per-player aggregates derived from the full score history.
// Recomputed on every recorded attempt.
type PlayerStats struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	BestScore    int     `json:"bestScore"`
	AverageScore float64 `json:"averageScore"`
	TotalGames   int     `json:"totalGames"`
	Scores       []Score `json:"scores"`
}

// DailyScores maps date -> playerID -> that player's attempts, in
// submission order.
type DailyScores map[string]map[string][]Score

// Tournament is an overlay over the daily scores: any score submitted within
// its date range counts. At most one tournament is active at a time.
// Tournaments are ended, never deleted.
type Tournament struct {
	Name         string   `json:"name"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	Participants []string `json:"participants"`
	Active       bool     `json:"active"`
	ScoringType  string   `json:"scoringType"`
}

// ScoreData is the whole persisted document.
type ScoreData struct {
	Players           map[string]*PlayerStats `json:"players"`
	DailyScores       DailyScores             `json:"dailyScores"`
	Tournaments       []Tournament            `json:"tournaments"`
	CurrentTournament string                  `json:"currentTournament,omitempty"`
}

// NewScoreData returns an empty document, the shape persisted when no
// document exists yet.
func NewScoreData() *ScoreData {
	return &ScoreData{
		Players:     make(map[string]*PlayerStats),
		DailyScores: make(DailyScores),
		Tournaments: []Tournament{},
	}
}

// Normalize fills in nil maps after JSON decoding so callers can index
// without nil checks.
func (d *ScoreData) Normalize() {
	if d.Players == nil {
		d.Players = make(map[string]*PlayerStats)
	}
	if d.DailyScores == nil {
		d.DailyScores = make(DailyScores)
	}
	if d.Tournaments == nil {
		d.Tournaments = []Tournament{}
	}
}
