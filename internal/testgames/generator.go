package testgames

import (
	"context"
	"crypto/rand"
	"math/big"

	"github.com/diamondos/dugout/pkg/logger"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
)

// outcomePool is the weighted set of outcome codes the generator draws
// from. Repeated entries raise a code's frequency.
var outcomePool = []string{
	"1B", "1B", "1B", "1B",
	"2B", "2B",
	"3B",
	"HR",
	"BB", "BB",
	"K", "K", "K",
	"KC",
	"F8", "F7", "L6",
	"4-3", "6-3", "5-3",
	"E5",
	"SAC", "SF",
	"HBP",
}

// conflictPool provides an alternate reading for a disagreeing manager.
// Pairs are plausible mix-ups: a liner misread as a hit, a close play
// at first, a dropped third strike.
var conflictPool = map[string]string{
	"1B":  "E5",
	"2B":  "1B",
	"3B":  "2B",
	"HR":  "3B",
	"BB":  "HBP",
	"K":   "KC",
	"KC":  "K",
	"F8":  "2B",
	"F7":  "1B",
	"L6":  "1B",
	"4-3": "E5",
	"6-3": "1B",
	"5-3": "E5",
	"E5":  "1B",
	"SAC": "4-3",
	"SF":  "F8",
	"HBP": "BB",
}

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// pickRandom returns a uniformly chosen element of pool.
func pickRandom(pool []string) string {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(pool))))
	return pool[n.Int64()]
}

// generatePlays scripts every half-inning of every fixture game. Both
// managers see the same play unless the conflict rate says otherwise.
func generatePlays(ctx context.Context, config *Config, fixture *Fixture, stats *Stats) []Play {
	logger.Get().Info(ctx, "scripting plays",
		logger.Int("games", len(fixture.GameIDs)),
		logger.Int("innings", config.Innings),
		logger.Float64("conflictRate", config.ConflictRate))

	var plays []Play
	for _, gameID := range fixture.GameIDs {
		for inning := 1; inning <= config.Innings; inning++ {
			for _, isTop := range []bool{true, false} {
				code := pickRandom(outcomePool)
				play := Play{
					GameID:      gameID,
					Inning:      inning,
					IsTopInning: isTop,
					PlayerID:    pickRandom(fixture.PlayerIDs),
					HomeCode:    code,
					AwayCode:    code,
					RunsScored:  runsForCode(code),
					RBICount:    rbisForCode(code),
				}
				if getRandomFloat() < config.ConflictRate {
					play.AwayCode = conflictPool[code]
				}
				plays = append(plays, play)
			}
		}
	}

	stats.PlaysScripted = len(plays)
	logger.Get().Info(ctx, "scripted plays", logger.Int("count", len(plays)))
	return plays
}

// runsForCode assigns a plausible run total for the outcome.
func runsForCode(code string) int {
	switch code {
	case "HR":
		return 1
	case "3B", "2B":
		if getRandomFloat() < 0.3 {
			return 1
		}
	}
	return 0
}

// rbisForCode assigns a plausible RBI total for the outcome.
func rbisForCode(code string) int {
	switch code {
	case "HR":
		if getRandomFloat() < 0.25 {
			return 2
		}
		return 1
	case "2B", "3B", "SF", "SAC":
		if getRandomFloat() < 0.4 {
			return 1
		}
	}
	return 0
}
