package testgames

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/diamondos/dugout/pkg/logger"
	"github.com/google/uuid"
)

// Run executes the complete scorekeeping test: seed a league over the
// admin API, play every scripted game through both managers, rule the
// disputes as commissioner, then recalculate and verify batting lines.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting dugout scorekeeping test",
		logger.String("baseURL", config.BaseURL),
		logger.Int("games", config.NumGames),
		logger.Int("innings", config.Innings),
		logger.Float64("conflictRate", config.ConflictRate),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.String("logFile", config.LogFile),
		logger.Any("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Seed the league fixture
	fixture, err := seedFixture(ctx, config)
	if err != nil {
		return fmt.Errorf("fixture seeding failed: %w", err)
	}

	// Step 3: Script the plays
	plays := generatePlays(ctx, config, fixture, stats)

	// Step 4: Submit both managers' readings concurrently
	disputed, err := submitPlays(ctx, config, fixture, plays, stats)
	if err != nil {
		return fmt.Errorf("play submission failed: %w", err)
	}

	// Step 5: Rule every dispute as commissioner
	if err := ruleDisputes(ctx, config, fixture, disputed, stats); err != nil {
		return fmt.Errorf("dispute ruling failed: %w", err)
	}

	// Step 6: Recalculate and verify batting lines
	if err := verifyStats(ctx, config, fixture, stats); err != nil {
		return fmt.Errorf("stats verification failed: %w", err)
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	if stats.VerifyMismatches > 0 {
		return fmt.Errorf("verification found %d mismatched batting lines", stats.VerifyMismatches)
	}

	logger.Get().Info(ctx, "test completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/healthz"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	// Accept any 200 response as healthy (the endpoint returns Prometheus metrics)
	if resp.StatusCode != StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// seedFixture creates a league, two teams, a roster, and the scheduled
// games through the admin endpoints.
func seedFixture(ctx context.Context, config *Config) (*Fixture, error) {
	client := newHTTPClient(config.Timeout)

	fixture := &Fixture{
		Season:         strconv.Itoa(time.Now().Year()),
		CommissionerID: "commish-" + uuid.NewString(),
		HomeManagerID:  "mgr-home-" + uuid.NewString(),
		AwayManagerID:  "mgr-away-" + uuid.NewString(),
	}

	var league struct {
		ID string `json:"id"`
	}
	status, err := client.postJSON(ctx, config.BaseURL+"/leagues", "", map[string]string{
		"name":            "Test League",
		"season":          fixture.Season,
		"commissioner_id": fixture.CommissionerID,
	}, &league)
	if err != nil || status != StatusCreated {
		return nil, fmt.Errorf("create league failed (status %d): %w", status, err)
	}
	fixture.LeagueID = league.ID

	var home, away struct {
		ID string `json:"id"`
	}
	status, err = client.postJSON(ctx, config.BaseURL+"/teams", "", map[string]string{
		"league_id":  fixture.LeagueID,
		"name":       "Home Hawks",
		"manager_id": fixture.HomeManagerID,
	}, &home)
	if err != nil || status != StatusCreated {
		return nil, fmt.Errorf("create home team failed (status %d): %w", status, err)
	}
	status, err = client.postJSON(ctx, config.BaseURL+"/teams", "", map[string]string{
		"league_id":  fixture.LeagueID,
		"name":       "Away Otters",
		"manager_id": fixture.AwayManagerID,
	}, &away)
	if err != nil || status != StatusCreated {
		return nil, fmt.Errorf("create away team failed (status %d): %w", status, err)
	}
	fixture.HomeTeamID = home.ID
	fixture.AwayTeamID = away.ID

	for i := 0; i < PlayersPerFixture; i++ {
		var player struct {
			ID string `json:"id"`
		}
		status, err = client.postJSON(ctx, config.BaseURL+"/players", "", map[string]string{
			"team_id": fixture.HomeTeamID,
			"name":    "Player " + strconv.Itoa(i+1),
		}, &player)
		if err != nil || status != StatusCreated {
			return nil, fmt.Errorf("create player failed (status %d): %w", status, err)
		}
		fixture.PlayerIDs = append(fixture.PlayerIDs, player.ID)
	}

	for i := 0; i < config.NumGames; i++ {
		var game struct {
			ID string `json:"id"`
		}
		status, err = client.postJSON(ctx, config.BaseURL+"/games", "", map[string]string{
			"league_id":    fixture.LeagueID,
			"home_team_id": fixture.HomeTeamID,
			"away_team_id": fixture.AwayTeamID,
		}, &game)
		if err != nil || status != StatusCreated {
			return nil, fmt.Errorf("create game failed (status %d): %w", status, err)
		}
		fixture.GameIDs = append(fixture.GameIDs, game.ID)
	}

	logger.Get().Info(ctx, "fixture seeded",
		logger.String("league", fixture.LeagueID),
		logger.Int("games", len(fixture.GameIDs)),
		logger.Int("players", len(fixture.PlayerIDs)))
	return fixture, nil
}

// displayFinalStats prints the final test statistics.
func displayFinalStats(stats *Stats) {
	var resolvedRate float64
	if stats.PlaysScripted > 0 {
		resolvedRate = float64(stats.PlaysResolved) / float64(stats.PlaysScripted) * PercentageMultiplier
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("playsScripted", stats.PlaysScripted),
		logger.Int("playsSubmitted", stats.PlaysSubmitted),
		logger.Int("playsResolved", stats.PlaysResolved),
		logger.Int("playsDisputed", stats.PlaysDisputed),
		logger.Int("playsFailed", stats.PlaysFailed),
		logger.Int("rulingsApplied", stats.RulingsApplied),
		logger.Int("playersVerified", stats.PlayersVerified),
		logger.Int("verifyMismatches", stats.VerifyMismatches),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("resolvedRate", resolvedRate))
}
