package web

import (
	"fmt"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/coffeegolfbot/caddie/caddie/config"
	"github.com/coffeegolfbot/caddie/caddie/golf"
)

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": s.version,
		"commit":  s.commit,
	})
}

// fullData dumps the whole score document.
func (s *Server) fullData(c *fiber.Ctx) error {
	return c.JSON(s.store.Data(c.Context()))
}

// dates lists every date with at least one recorded score, ascending.
func (s *Server) dates(c *fiber.Ctx) error {
	doc := s.store.Data(c.Context())
	dates := make([]string, 0, len(doc.DailyScores))
	for date := range doc.DailyScores {
		dates = append(dates, date)
	}
	// ISO dates sort chronologically as strings.
	sort.Strings(dates)
	return c.JSON(fiber.Map{"dates": dates, "count": len(dates)})
}

func (s *Server) scoresToday(c *fiber.Ctx) error {
	mode := golf.ScoringTypeFromString(c.Query("scoring"))
	date := golf.Today(time.Now())
	board := s.store.DailyLeaderboard(c.Context(), date, mode)
	return c.JSON(fiber.Map{
		"date":    date,
		"scoring": string(mode),
		"entries": board,
	})
}

func (s *Server) scoresRecent(c *fiber.Ctx) error {
	mode := golf.ScoringTypeFromString(c.Query("scoring"))
	days := c.QueryInt("days", config.DefaultDays)
	if days < 1 {
		days = 1
	}
	if days > config.MaxDays {
		days = config.MaxDays
	}

	now := time.Now().In(golf.Eastern)
	start := golf.FormatDate(now.AddDate(0, 0, -(days - 1)))
	end := golf.FormatDate(now)

	board := s.store.RangeLeaderboard(c.Context(), start, end, mode)
	return c.JSON(fiber.Map{
		"start":   start,
		"end":     end,
		"days":    days,
		"scoring": string(mode),
		"entries": board,
	})
}

func (s *Server) scoresDate(c *fiber.Ctx) error {
	date := c.Query("date")
	if _, err := golf.ParseDate(date); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "date must be YYYY-MM-DD")
	}
	mode := golf.ScoringTypeFromString(c.Query("scoring"))
	board := s.store.DailyLeaderboard(c.Context(), date, mode)
	return c.JSON(fiber.Map{
		"date":    date,
		"scoring": string(mode),
		"entries": board,
	})
}

type testScoreRequest struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Date       string `json:"date"`
	Strokes    int    `json:"strokes"`
	Route      string `json:"route"`
}

// testScore injects one synthetic score, subject to the same daily cap as
// real submissions.
func (s *Server) testScore(c *fiber.Ctx) error {
	var req testScoreRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid JSON body")
	}
	if req.PlayerID == "" || req.PlayerName == "" || req.Strokes < 1 {
		return fiber.NewError(fiber.StatusBadRequest, "playerId, playerName and strokes are required")
	}
	if req.Date == "" {
		req.Date = golf.Today(time.Now())
	} else if _, err := golf.ParseDate(req.Date); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "date must be YYYY-MM-DD")
	}

	result, err := s.store.RecordAttempt(c.Context(), golf.Score{
		PlayerID:   req.PlayerID,
		PlayerName: req.PlayerName,
		Date:       req.Date,
		Strokes:    req.Strokes,
		MessageID:  fmt.Sprintf("test-%d", time.Now().UnixNano()),
		Timestamp:  time.Now().UnixMilli(),
		Route:      req.Route,
	})
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "failed to persist score")
	}
	if !result.Recorded {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"recorded": false,
			"reason":   fmt.Sprintf("daily cap of %d attempts reached", result.Cap),
		})
	}
	return c.JSON(fiber.Map{
		"recorded":     true,
		"attempt":      result.AttemptIndex,
		"cap":          result.Cap,
		"newDailyBest": result.NewDailyBest,
	})
}

// testScoresBulk seeds count random-ish scores for today, useful for
// exercising leaderboard rendering.
func (s *Server) testScoresBulk(c *fiber.Ctx) error {
	count := c.QueryInt("count", 5)
	if count < 1 || count > 50 {
		return fiber.NewError(fiber.StatusBadRequest, "count must be between 1 and 50")
	}

	date := golf.Today(time.Now())
	recorded := 0
	for i := 0; i < count; i++ {
		result, err := s.store.RecordAttempt(c.Context(), golf.Score{
			PlayerID:   fmt.Sprintf("test-player-%d", i+1),
			PlayerName: fmt.Sprintf("Test Player %d", i+1),
			Date:       date,
			Strokes:    6 + (i*7)%15,
			MessageID:  fmt.Sprintf("test-bulk-%d-%d", time.Now().UnixNano(), i),
			Timestamp:  time.Now().UnixMilli(),
		})
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "failed to persist scores")
		}
		if result.Recorded {
			recorded++
		}
	}
	return c.JSON(fiber.Map{"requested": count, "recorded": recorded, "date": date})
}
