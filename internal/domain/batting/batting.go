// Package batting derives a player's season batting line from resolved
// play events. Recomputation is always from scratch over the full event
// set, so it is idempotent and order-independent.
package batting

import (
	"context"
	"fmt"
	"math"

	"github.com/diamondos/dugout/internal/domain/model"
	"github.com/diamondos/dugout/internal/domain/outcome"
	"github.com/diamondos/dugout/pkg/metrics"
)

// EventSource supplies the resolved, undisputed events for a player
// and season.
type EventSource interface {
	ListResolvedEvents(ctx context.Context, playerID, season string) ([]model.PlayEvent, error)
}

// StatsSink persists the recomputed stats row.
type StatsSink interface {
	UpsertPlayerSeasonStats(ctx context.Context, s model.PlayerSeasonStats) error
}

// Aggregator recomputes and persists player season stats.
type Aggregator struct {
	events EventSource
	stats  StatsSink
}

// New constructs an Aggregator.
func New(events EventSource, stats StatsSink) *Aggregator {
	return &Aggregator{events: events, stats: stats}
}

// Recalculate rebuilds the full batting line for (playerID, season)
// and upserts it, replacing any prior row wholesale. A player with no
// qualifying events gets an all-zero row rather than an error, so a
// recalculation after the last event is undone still converges.
func (a *Aggregator) Recalculate(ctx context.Context, playerID, season string) (model.PlayerSeasonStats, error) {
	const op = "batting.recalculate"

	events, err := a.events.ListResolvedEvents(ctx, playerID, season)
	if err != nil {
		return model.PlayerSeasonStats{}, fmt.Errorf("%s: %w", op, err)
	}

	line := Compute(playerID, season, events)
	if err := a.stats.UpsertPlayerSeasonStats(ctx, line); err != nil {
		return model.PlayerSeasonStats{}, fmt.Errorf("%s: %w", op, err)
	}

	metrics.RecordRecalculation()
	return line, nil
}

// Compute folds events into a batting line. Disputed or unresolved
// events are skipped from every counter, including games played. The
// on-base percentage deliberately reproduces the simplified formula
// (H+BB)/(AB+BB) rather than the textbook one; see ComputeOBP.
func Compute(playerID, season string, events []model.PlayEvent) model.PlayerSeasonStats {
	line := model.PlayerSeasonStats{
		PlayerID: playerID,
		Season:   season,
	}

	games := make(map[string]struct{})
	for _, ev := range events {
		if ev.IsDisputed || !ev.Resolved() {
			continue
		}
		games[ev.GameID] = struct{}{}

		// Runs and RBIs are recorded directly on the event and summed
		// regardless of how the result classifies.
		line.Runs += ev.RunsScored
		line.RBIs += ev.RBICount

		code, err := outcome.Normalize(ev.Result)
		if err != nil {
			// Codes are validated at submission; a stored event can
			// only carry a recognized result.
			continue
		}

		if outcome.CountsAsAtBat(code) {
			line.AtBats++
		}
		if outcome.IsHit(code) {
			line.Hits++
			switch {
			case outcome.IsDouble(code):
				line.Doubles++
			case outcome.IsTriple(code):
				line.Triples++
			case outcome.IsHomeRun(code):
				line.HomeRuns++
			}
		}
		if outcome.IsWalk(code) {
			line.Walks++
		}
		if outcome.IsStrikeout(code) {
			line.Strikeouts++
		}
		if outcome.IsStolenBase(code) {
			line.StolenBases++
		}
		if outcome.IsCaughtStealing(code) {
			line.CaughtStealing++
		}
	}
	line.GamesPlayed = len(games)

	// OPS sums the unrounded rates; rounding happens once, at the end,
	// so OBP=SLG=1/3 yields .667 rather than .666.
	obp := ComputeOBP(line.Hits, line.Walks, line.AtBats)
	slg := ComputeSlugging(line.Hits, line.Doubles, line.Triples, line.HomeRuns, line.AtBats)
	line.BattingAverage = Round3(ComputeAverage(line.Hits, line.AtBats))
	line.OnBasePercentage = Round3(obp)
	line.SluggingPercentage = Round3(slg)
	line.OPS = Round3(obp + slg)

	return line
}

// ComputeAverage is hits over at-bats, zero when the batter has none.
func ComputeAverage(hits, atBats int) float64 {
	if atBats == 0 {
		return 0
	}
	return float64(hits) / float64(atBats)
}

// ComputeOBP is (H+BB)/(AB+BB). This omits the hit-by-pitch and
// sacrifice-fly terms of the standard plate-appearance denominator;
// the simplified formula is the system of record and is kept as-is.
func ComputeOBP(hits, walks, atBats int) float64 {
	denom := atBats + walks
	if denom == 0 {
		return 0
	}
	return float64(hits+walks) / float64(denom)
}

// ComputeSlugging is total bases over at-bats, where total bases counts
// every hit once plus one extra for a double, two for a triple, and
// three for a home run.
func ComputeSlugging(hits, doubles, triples, homeRuns, atBats int) float64 {
	if atBats == 0 {
		return 0
	}
	totalBases := hits + doubles + triples*2 + homeRuns*3
	return float64(totalBases) / float64(atBats)
}

// Round3 rounds a rate stat to exactly three decimal places, matching
// the precision persisted on the stats row.
func Round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}
