package testgames

import (
	"context"
	"fmt"
	"log"
	"net/url"

	"github.com/diamondos/dugout/internal/domain/batting"
	"github.com/diamondos/dugout/internal/domain/model"
	"github.com/diamondos/dugout/pkg/logger"
)

// verifyStats recalculates every player's season line through the API,
// then recomputes the same line locally from the recorded events and
// compares the two.
func verifyStats(ctx context.Context, config *Config, fixture *Fixture, stats *Stats) error {
	log.Println("verifying batting lines...")

	client := newHTTPClient(config.Timeout)

	// Pull every recorded event back and regroup by player.
	byPlayer := make(map[string][]model.PlayEvent)
	for _, gameID := range fixture.GameIDs {
		var events []eventResponse
		status, err := client.getJSON(ctx, config.BaseURL+"/events?game_id="+url.QueryEscape(gameID), &events)
		if err != nil || status != StatusOK {
			return fmt.Errorf("list events for game %s failed (status %d): %w", gameID, status, err)
		}
		for _, ev := range events {
			byPlayer[ev.PlayerID] = append(byPlayer[ev.PlayerID], model.PlayEvent{
				ID:         ev.ID,
				GameID:     ev.GameID,
				PlayerID:   ev.PlayerID,
				Result:     ev.Result,
				RunsScored: ev.RunsScored,
				RBICount:   ev.RBICount,
				IsDisputed: ev.IsDisputed,
				ResolvedAt: ev.ResolvedAt,
			})
		}
	}

	for _, playerID := range fixture.PlayerIDs {
		var got statsResponse
		status, err := client.postJSON(ctx, config.BaseURL+"/stats/recalculate", "",
			map[string]string{"player_id": playerID, "season": fixture.Season}, &got)
		if err != nil || status != StatusOK {
			return fmt.Errorf("recalculate for player %s failed (status %d): %w", playerID, status, err)
		}

		want := batting.Compute(playerID, fixture.Season, byPlayer[playerID])
		stats.PlayersVerified++

		if got.AtBats != want.AtBats || got.Hits != want.Hits ||
			got.Runs != want.Runs || got.RBIs != want.RBIs ||
			got.Walks != want.Walks || got.Strikeouts != want.Strikeouts ||
			got.GamesPlayed != want.GamesPlayed ||
			got.BattingAverage != want.BattingAverage ||
			got.OnBasePercentage != want.OnBasePercentage ||
			got.SluggingPercentage != want.SluggingPercentage ||
			got.OPS != want.OPS {
			stats.VerifyMismatches++
			log.Printf("mismatch for player %s: got %+v want %+v", playerID, got, want)
			continue
		}

		if config.Verbose {
			log.Printf("player %s verified: AB=%d H=%d AVG=%.3f OBP=%.3f SLG=%.3f OPS=%.3f",
				playerID, got.AtBats, got.Hits, got.BattingAverage,
				got.OnBasePercentage, got.SluggingPercentage, got.OPS)
		}
	}

	logger.Get().Info(ctx, "verification complete",
		logger.Int("playersVerified", stats.PlayersVerified),
		logger.Int("mismatches", stats.VerifyMismatches))
	return nil
}
